package sinkswitch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const defaultPactlPath = "pactl"

// runs a program to completion and hands back its stdout
type commandRunner func(name string, args ...string) ([]byte, error)

// pactl's JSON shapes. Pointers tell a missing or null field apart from a zero value,
// every one of them is required
type pactlInfo struct {
	DefaultSinkName *string `json:"default_sink_name"`
}

type pactlSink struct {
	Index *uint32      `json:"index"`
	Name  *string      `json:"name"`
	Ports *[]pactlPort `json:"ports"`
}

type pactlPort struct {
	Availability *string `json:"availability"`
}

type pactlControlSurface struct {
	logger *zap.SugaredLogger

	path string
	run  commandRunner
}

func newPactlControlSurface(logger *zap.SugaredLogger, path string) *pactlControlSurface {
	if path == "" {
		path = defaultPactlPath
	}

	cs := &pactlControlSurface{
		logger: logger.Named("pactl"),
		path:   path,
		run:    runCommand,
	}

	cs.logger.Debugw("Created pactl control surface instance", "path", path)

	return cs
}

func (cs *pactlControlSurface) ListSinks() ([]Device, error) {
	output, err := cs.invoke("-f", "json", "list", "sinks")
	if err != nil {
		return nil, err
	}

	var raw *[]pactlSink
	if err := decodeStrict(output, &raw); err != nil {
		cs.logger.Debugw("Failed to parse sink list", "error", err, "output", string(output))
		return nil, fmt.Errorf("parse sink list: %v: %w", err, ErrMalformedResponse)
	}

	sinks, err := devicesFromPactl(raw)
	if err != nil {
		cs.logger.Debugw("Sink list has unexpected shape", "error", err, "output", string(output))
		return nil, fmt.Errorf("parse sink list: %v: %w", err, ErrMalformedResponse)
	}

	cs.logger.Debugw("Listed sinks", "count", len(sinks))

	return sinks, nil
}

func (cs *pactlControlSurface) DefaultSinkName() (string, error) {
	output, err := cs.invoke("-f", "json", "info")
	if err != nil {
		return "", err
	}

	var info pactlInfo
	if err := decodeStrict(output, &info); err != nil {
		cs.logger.Debugw("Failed to parse server info", "error", err, "output", string(output))
		return "", fmt.Errorf("parse server info: %v: %w", err, ErrMalformedResponse)
	}

	if info.DefaultSinkName == nil || *info.DefaultSinkName == "" {
		cs.logger.Debugw("Server info has no default sink name", "output", string(output))
		return "", fmt.Errorf("server info lacks default_sink_name: %w", ErrMalformedResponse)
	}

	return *info.DefaultSinkName, nil
}

func (cs *pactlControlSurface) SetDefaultSink(name string) (string, error) {
	output, err := cs.invoke("set-default-sink", name)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(output) {
		cs.logger.Debugw("Confirmation text is not valid UTF-8", "sink", name)
		return "", fmt.Errorf("decode set-default-sink output: %w", ErrCollaboratorUnavailable)
	}

	cs.logger.Debugw("Set default sink", "sink", name)

	return string(output), nil
}

func (cs *pactlControlSurface) Release() error {
	return nil
}

func (cs *pactlControlSurface) invoke(args ...string) ([]byte, error) {
	cs.logger.Debugw("Invoking pactl", "args", args)

	output, err := cs.run(cs.path, args...)
	if err != nil {
		cs.logger.Debugw("Failed to invoke pactl", "args", args, "error", err)
		return nil, fmt.Errorf("run %s %s: %v: %w", cs.path, strings.Join(args, " "), err, ErrCollaboratorUnavailable)
	}

	return output, nil
}

func devicesFromPactl(raw *[]pactlSink) ([]Device, error) {
	if raw == nil {
		return nil, errors.New("sink list is null")
	}

	devices := make([]Device, 0, len(*raw))
	for i, sink := range *raw {
		switch {
		case sink.Index == nil:
			return nil, fmt.Errorf("sink %d lacks index", i)
		case sink.Name == nil:
			return nil, fmt.Errorf("sink %d lacks name", i)
		case sink.Ports == nil:
			return nil, fmt.Errorf("sink %d lacks ports", i)
		}

		device := Device{
			Index: *sink.Index,
			Name:  *sink.Name,
			Ports: make([]Port, 0, len(*sink.Ports)),
		}

		for j, port := range *sink.Ports {
			if port.Availability == nil {
				return nil, fmt.Errorf("port %d of sink %d lacks availability", j, i)
			}
			device.Ports = append(device.Ports, Port{Availability: *port.Availability})
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// decodeStrict refuses empty output and anything after the first JSON value, both of
// which pactl produces when it was cut short or doesn't know the json format flag
func decodeStrict(data []byte, v interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty output")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		return err
	}

	if _, err := decoder.Token(); err != io.EOF {
		return errors.New("unexpected trailing data")
	}

	return nil
}

func runCommand(name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer

	command := exec.Command(name, args...)
	command.Stderr = &stderr

	output, err := command.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w (%s)", err, msg)
		}
		return nil, err
	}

	return output, nil
}
