// Package sinkswitch cycles the default audio output (sink) of a PulseAudio or
// PipeWire desktop to the next available sink, in sink index order
package sinkswitch

import (
	"fmt"

	"go.uber.org/zap"
)

// Switcher is the main entity, tying the control surface to the selection logic
type Switcher struct {
	logger   *zap.SugaredLogger
	notifier Notifier
	config   *CanonicalConfig
	surface  ControlSurface

	version string
}

// Result describes one pass through the switcher
type Result struct {
	Devices    []Device
	Candidates []Device

	Previous Device
	Next     Device

	// Confirmation is the control surface's output, empty unless Applied
	Confirmation string
	Applied      bool
}

// NewSwitcher creates a Switcher talking to the control surface picked in config
func NewSwitcher(logger *zap.SugaredLogger, config *CanonicalConfig) (*Switcher, error) {
	surface, err := newControlSurface(logger, config)
	if err != nil {
		logger.Debugw("Failed to create control surface", "backend", config.Backend, "error", err)
		return nil, fmt.Errorf("create control surface: %w", err)
	}

	return NewSwitcherWithSurface(logger, config, surface)
}

// NewSwitcherWithSurface creates a Switcher driving the given control surface
func NewSwitcherWithSurface(logger *zap.SugaredLogger, config *CanonicalConfig, surface ControlSurface) (*Switcher, error) {
	logger = logger.Named("switcher")

	var notifier Notifier = nopNotifier{}
	if config.Notify {
		toast, err := NewToastNotifier(logger)
		if err != nil {
			logger.Debugw("Failed to create ToastNotifier", "error", err)
			return nil, fmt.Errorf("create new ToastNotifier: %w", err)
		}
		notifier = toast
	}

	return newSwitcher(logger, config, surface, notifier), nil
}

func newSwitcher(logger *zap.SugaredLogger, config *CanonicalConfig, surface ControlSurface, notifier Notifier) *Switcher {
	s := &Switcher{
		logger:   logger,
		notifier: notifier,
		config:   config,
		surface:  surface,
	}

	logger.Debug("Created switcher instance")

	return s
}

// SetVersion records the version string reported in debug logs
func (s *Switcher) SetVersion(version string) {
	s.version = version
}

// Plan lists the sinks, works out which one is active and picks the next one,
// without changing anything.
//
// The sink list and the default sink name are fetched by two separate queries.
// If the default sink disappears in between, Plan fails with ErrNoActiveDevice
func (s *Switcher) Plan() (*Result, error) {
	devices, err := s.surface.ListSinks()
	if err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}

	s.logger.Debugw("Got sinks", "count", len(devices), "sinks", devices)

	activeName, err := s.surface.DefaultSinkName()
	if err != nil {
		return nil, fmt.Errorf("get default sink: %w", err)
	}

	current, err := ResolveActive(devices, activeName)
	if err != nil {
		s.logger.Debugw("Default sink is not among listed sinks", "name", activeName)
		return nil, fmt.Errorf("resolve active sink: %w", err)
	}

	candidates := FilterAvailable(devices)
	s.logger.Debugw("Filtered unavailable sinks", "current", current, "candidates", candidates)

	next, err := SelectNext(current, candidates)
	if err != nil {
		s.logger.Debugw("Every sink was filtered out", "count", len(devices))
		return nil, fmt.Errorf("select next sink: %w", err)
	}

	return &Result{
		Devices:    devices,
		Candidates: candidates,
		Previous:   current,
		Next:       next,
	}, nil
}

// Cycle plans and then sets the picked sink as the new default. Nothing is changed
// if planning fails or the switcher is configured for a dry run
func (s *Switcher) Cycle() (*Result, error) {
	s.logger.Debugw("Cycling default sink", "version", s.version, "dryRun", s.config.DryRun)

	result, err := s.Plan()
	if err != nil {
		return nil, err
	}

	if s.config.DryRun {
		s.logger.Infow("Dry run, not switching", "from", result.Previous, "to", result.Next)
		return result, nil
	}

	confirmation, err := s.surface.SetDefaultSink(result.Next.Name)
	if err != nil {
		return nil, fmt.Errorf("set default sink: %w", err)
	}

	result.Confirmation = confirmation
	result.Applied = true

	s.logger.Infow("Switched default sink", "from", result.Previous, "to", result.Next)
	s.notifier.Notify("Audio output switched", result.Next.Name)

	return result, nil
}

// Release lets go of the control surface
func (s *Switcher) Release() error {
	if err := s.surface.Release(); err != nil {
		s.logger.Debugw("Failed to release control surface", "error", err)
		return fmt.Errorf("release control surface: %w", err)
	}

	s.logger.Sync()

	return nil
}
