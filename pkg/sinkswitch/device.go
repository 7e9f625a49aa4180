package sinkswitch

import "fmt"

const (
	portAvailable    = "available"
	portNotAvailable = "not available"
	portUnknown      = "unknown"
)

// Device is a single audio output sink as reported by the audio server.
// Index is only meaningful for ordering within one invocation
type Device struct {
	Index uint32 `json:"index"`
	Name  string `json:"name"`
	Ports []Port `json:"ports"`
}

// Port is a physical connector of a sink
type Port struct {
	Availability string `json:"availability"`
}

// Usable reports whether the port may carry sound. Only the exact
// "not available" literal rules a port out, unknown states count as usable
func (p Port) Usable() bool {
	return p.Availability != portNotAvailable
}

// Available reports whether the device is a candidate for switching into.
// Sinks without ports (virtual sinks) are always available
func (d Device) Available() bool {
	if len(d.Ports) == 0 {
		return true
	}

	for _, port := range d.Ports {
		if port.Usable() {
			return true
		}
	}

	return false
}

func (d Device) String() string {
	return fmt.Sprintf("<sink %d: %s>", d.Index, d.Name)
}
