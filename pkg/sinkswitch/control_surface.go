package sinkswitch

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	backendPactl  = "pactl"
	backendNative = "native"
)

// ControlSurface is the audio server capability the switcher drives: list sinks,
// read the default sink's name and set a new default
type ControlSurface interface {
	ListSinks() ([]Device, error)
	DefaultSinkName() (string, error)

	// SetDefaultSink returns whatever confirmation text the audio server produced.
	// Modern pactl prints nothing, so an empty confirmation is still a success
	SetDefaultSink(name string) (string, error)

	Release() error
}

func newControlSurface(logger *zap.SugaredLogger, config *CanonicalConfig) (ControlSurface, error) {
	switch config.Backend {
	case backendPactl, "":
		return newPactlControlSurface(logger, config.PactlPath), nil
	case backendNative:
		return newNativeControlSurface(logger)
	default:
		logger.Debugw("Unknown control surface backend", "backend", config.Backend)
		return nil, fmt.Errorf("unknown backend %q (expected %s or %s)", config.Backend, backendPactl, backendNative)
	}
}
