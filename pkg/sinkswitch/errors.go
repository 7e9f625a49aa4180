package sinkswitch

import "errors"

var (
	// ErrCollaboratorUnavailable means the audio control surface could not be reached or run
	ErrCollaboratorUnavailable = errors.New("audio control surface unavailable")

	// ErrMalformedResponse means the control surface answered with something we can't parse
	ErrMalformedResponse = errors.New("malformed response from audio control surface")

	// ErrNoActiveDevice means the default sink name matched none of the listed sinks
	ErrNoActiveDevice = errors.New("no active sink found")

	// ErrNoCandidateDevices means every sink was filtered out as unavailable
	ErrNoCandidateDevices = errors.New("no available sinks to switch to")
)
