package sinkswitch

import (
	"fmt"

	"github.com/thoas/go-funk"
)

// ResolveActive returns the first device whose name matches activeName exactly.
//
// The device list and the active name come from two separate queries to the
// audio server, so the default sink may have been removed or renamed in between.
// That case surfaces as ErrNoActiveDevice rather than being retried
func ResolveActive(devices []Device, activeName string) (Device, error) {
	found := funk.Find(devices, func(d Device) bool {
		return d.Name == activeName
	})

	if found == nil {
		return Device{}, fmt.Errorf("match %q against %d sinks: %w", activeName, len(devices), ErrNoActiveDevice)
	}

	return found.(Device), nil
}

// FilterAvailable keeps the devices that have at least one usable port (or no ports at all),
// preserving their relative order. An empty result is left for SelectNext to reject
func FilterAvailable(devices []Device) []Device {
	return funk.Filter(devices, func(d Device) bool {
		return d.Available()
	}).([]Device)
}

// SelectNext picks the first candidate whose index is greater than the current device's,
// wrapping around to the first candidate when there is none. This also covers a current
// device that was filtered out of the candidates
func SelectNext(current Device, candidates []Device) (Device, error) {
	if len(candidates) == 0 {
		return Device{}, ErrNoCandidateDevices
	}

	for _, candidate := range candidates {
		if candidate.Index > current.Index {
			return candidate, nil
		}
	}

	return candidates[0], nil
}
