package sinkswitch

import (
	"fmt"
	"io"
	"strings"
)

// RenderDeviceList writes every listed sink, marking the current default (*),
// the sink a cycle would pick (>) and sinks left out as unavailable (-)
func RenderDeviceList(w io.Writer, result *Result) error {
	for _, device := range result.Devices {
		marker := " "
		switch {
		case device.Name == result.Previous.Name:
			marker = "*"
		case !device.Available():
			marker = "-"
		}

		next := " "
		if device.Name == result.Next.Name {
			next = ">"
		}

		if _, err := fmt.Fprintf(w, "%s%s %3d  %s%s\n", marker, next, device.Index, device.Name, portSummary(device)); err != nil {
			return fmt.Errorf("write sink list: %w", err)
		}
	}

	return nil
}

func portSummary(device Device) string {
	if len(device.Ports) == 0 {
		return ""
	}

	states := make([]string, 0, len(device.Ports))
	for _, port := range device.Ports {
		states = append(states, port.Availability)
	}

	return " [" + strings.Join(states, ", ") + "]"
}
