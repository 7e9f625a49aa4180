package sinkswitch

import (
	"fmt"
	"net"

	"github.com/jfreymuth/pulse/proto"
	"go.uber.org/zap"
)

// port availability as reported over the native protocol
const (
	paPortAvailableUnknown = 0
	paPortAvailableNo      = 1
	paPortAvailableYes     = 2
)

// sinkInfoRequester is the part of *proto.Client the native control surface needs
type sinkInfoRequester interface {
	Request(req proto.RequestArgs, rpl proto.Reply) error
}

type nativeControlSurface struct {
	logger *zap.SugaredLogger

	client sinkInfoRequester
	conn   net.Conn
}

func newNativeControlSurface(logger *zap.SugaredLogger) (ControlSurface, error) {
	logger = logger.Named("native")

	client, conn, err := proto.Connect("")
	if err != nil {
		logger.Debugw("Failed to establish PulseAudio connection", "error", err)
		return nil, fmt.Errorf("establish PulseAudio connection: %v: %w", err, ErrCollaboratorUnavailable)
	}

	request := proto.SetClientName{
		Props: proto.PropList{
			"application.name": proto.PropListString("sinkswitch"),
		},
	}
	reply := proto.SetClientNameReply{}

	if err := client.Request(&request, &reply); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set client name: %v: %w", err, ErrCollaboratorUnavailable)
	}

	cs := &nativeControlSurface{
		logger: logger,
		client: client,
		conn:   conn,
	}

	cs.logger.Debug("Created native control surface instance")

	return cs, nil
}

func (cs *nativeControlSurface) ListSinks() ([]Device, error) {
	request := proto.GetSinkInfoList{}
	reply := proto.GetSinkInfoListReply{}

	if err := cs.client.Request(&request, &reply); err != nil {
		cs.logger.Debugw("Failed to get sink info list", "error", err)
		return nil, fmt.Errorf("get sink info list: %v: %w", err, ErrCollaboratorUnavailable)
	}

	devices := make([]Device, 0, len(reply))
	for _, sink := range reply {
		if sink == nil {
			continue
		}

		device := Device{
			Index: sink.SinkIndex,
			Name:  sink.SinkName,
			Ports: make([]Port, 0, len(sink.Ports)),
		}

		for _, port := range sink.Ports {
			device.Ports = append(device.Ports, Port{Availability: portAvailabilityText(port.Available)})
		}

		devices = append(devices, device)
	}

	cs.logger.Debugw("Listed sinks", "count", len(devices))

	return devices, nil
}

func (cs *nativeControlSurface) DefaultSinkName() (string, error) {
	request := proto.GetServerInfo{}
	reply := proto.GetServerInfoReply{}

	if err := cs.client.Request(&request, &reply); err != nil {
		cs.logger.Debugw("Failed to get server info", "error", err)
		return "", fmt.Errorf("get server info: %v: %w", err, ErrCollaboratorUnavailable)
	}

	if reply.DefaultSinkName == "" {
		return "", fmt.Errorf("server info lacks default sink name: %w", ErrMalformedResponse)
	}

	return reply.DefaultSinkName, nil
}

func (cs *nativeControlSurface) SetDefaultSink(name string) (string, error) {
	request := proto.SetDefaultSink{SinkName: name}

	if err := cs.client.Request(&request, nil); err != nil {
		cs.logger.Debugw("Failed to set default sink", "sink", name, "error", err)
		return "", fmt.Errorf("set default sink: %v: %w", err, ErrCollaboratorUnavailable)
	}

	return fmt.Sprintf("Default sink set to %s", name), nil
}

func (cs *nativeControlSurface) Release() error {
	if cs.conn == nil {
		return nil
	}

	if err := cs.conn.Close(); err != nil {
		cs.logger.Debugw("Failed to close PulseAudio connection", "error", err)
		return fmt.Errorf("close PulseAudio connection: %w", err)
	}

	cs.logger.Debug("Released native control surface instance")

	return nil
}

// maps the protocol's numeric availability onto the text states pactl prints
func portAvailabilityText(available uint32) string {
	switch available {
	case paPortAvailableNo:
		return portNotAvailable
	case paPortAvailableYes:
		return portAvailable
	default:
		return portUnknown
	}
}
