package sinkswitch

import (
	"errors"
	"testing"

	"github.com/jfreymuth/pulse/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRequester struct {
	sinks       proto.GetSinkInfoListReply
	defaultSink string
	err         error

	requests []proto.RequestArgs
}

func (f *fakeRequester) Request(req proto.RequestArgs, rpl proto.Reply) error {
	f.requests = append(f.requests, req)

	if f.err != nil {
		return f.err
	}

	switch reply := rpl.(type) {
	case *proto.GetSinkInfoListReply:
		*reply = f.sinks
	case *proto.GetServerInfoReply:
		reply.DefaultSinkName = f.defaultSink
	}

	return nil
}

func newTestNative(t *testing.T, requester *fakeRequester) *nativeControlSurface {
	return &nativeControlSurface{
		logger: zaptest.NewLogger(t).Sugar(),
		client: requester,
	}
}

func TestNativeListSinks(t *testing.T) {
	requester := &fakeRequester{
		sinks: proto.GetSinkInfoListReply{
			{SinkIndex: 3, SinkName: "first"},
			nil,
			{SinkIndex: 7, SinkName: "second"},
		},
	}

	sinks, err := newTestNative(t, requester).ListSinks()
	require.NoError(t, err)

	require.Len(t, sinks, 2)
	assert.Equal(t, Device{Index: 3, Name: "first", Ports: []Port{}}, sinks[0])
	assert.Equal(t, "second", sinks[1].Name)
	assert.True(t, sinks[1].Available())
}

func TestNativeListSinksFailure(t *testing.T) {
	requester := &fakeRequester{err: errors.New("connection reset")}

	_, err := newTestNative(t, requester).ListSinks()
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}

func TestNativeDefaultSinkName(t *testing.T) {
	requester := &fakeRequester{defaultSink: "second"}

	name, err := newTestNative(t, requester).DefaultSinkName()
	require.NoError(t, err)
	assert.Equal(t, "second", name)

	requester.defaultSink = ""
	_, err = newTestNative(t, requester).DefaultSinkName()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNativeSetDefaultSink(t *testing.T) {
	requester := &fakeRequester{}

	out, err := newTestNative(t, requester).SetDefaultSink("second")
	require.NoError(t, err)
	assert.Contains(t, out, "second")

	require.Len(t, requester.requests, 1)
	request, ok := requester.requests[0].(*proto.SetDefaultSink)
	require.True(t, ok)
	assert.Equal(t, "second", request.SinkName)
}

func TestNativeReleaseWithoutConnection(t *testing.T) {
	assert.NoError(t, newTestNative(t, &fakeRequester{}).Release())
}

func TestPortAvailabilityText(t *testing.T) {
	assert.Equal(t, portUnknown, portAvailabilityText(paPortAvailableUnknown))
	assert.Equal(t, portNotAvailable, portAvailabilityText(paPortAvailableNo))
	assert.Equal(t, portAvailable, portAvailabilityText(paPortAvailableYes))
	assert.Equal(t, portUnknown, portAvailabilityText(42))

	assert.False(t, Device{Ports: []Port{{Availability: portAvailabilityText(paPortAvailableNo)}}}.Available())
}
