package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stalexteam/sinkswitch/pkg/sinkswitch"
	"github.com/stalexteam/sinkswitch/pkg/sinkswitch/util"
)

var (
	gitCommit  string
	versionTag string

	verbose    bool
	configFile string

	// swapped in tests to avoid talking to a real audio server
	newSwitcher = sinkswitch.NewSwitcher
)

// go build -ldflags "-X main.versionTag=v0.1.0 -X main.gitCommit=$(git rev-parse --short HEAD)" -o sinkswitch ./pkg/sinkswitch/cmd

func main() {
	rootCmd := newRootCommand(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sinkswitch: %v\n", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sinkswitch",
		Short: "Switch the default audio output to the next available sink",
		Long: `sinkswitch makes the next available PulseAudio/PipeWire sink (by index) the default output,
wrapping around to the first one. Sinks whose ports are all unplugged are skipped.`,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSwitcher(cmd, func(s *sinkswitch.Switcher) error {
				result, err := s.Cycle()
				if err != nil {
					return err
				}

				if !result.Applied {
					_, err = fmt.Fprintf(out, "would switch from %s to %s\n", result.Previous.Name, result.Next.Name)
					return err
				}

				_, err = fmt.Fprintln(out, result.Confirmation)
				return err
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug information to stderr")
	flags.StringVarP(&configFile, "config", "c", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/sinkswitch/config.yaml)")
	flags.String("backend", "pactl", "control surface to use: pactl or native")
	flags.String("pactl-path", "pactl", "pactl binary to run")
	flags.Bool("dry-run", false, "pick the next sink without switching to it")
	flags.Bool("notify", false, "show a desktop notification after switching")

	rootCmd.AddCommand(listCommand(out))

	return rootCmd
}

func listCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sinks, marking the default (*), the next pick (>) and unavailable ones (-)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSwitcher(cmd, func(s *sinkswitch.Switcher) error {
				result, err := s.Plan()
				if err != nil {
					return err
				}

				return sinkswitch.RenderDeviceList(out, result)
			})
		},
	}
}

func withSwitcher(cmd *cobra.Command, f func(s *sinkswitch.Switcher) error) error {
	logger, err := sinkswitch.NewLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if !util.Linux() {
		logger.Warnw("Not running on Linux, the audio server may not be reachable")
	}

	config, err := loadConfig(logger, cmd)
	if err != nil {
		return err
	}

	s, err := newSwitcher(logger, config)
	if err != nil {
		return err
	}

	s.SetVersion(versionString())

	defer func() {
		if err := s.Release(); err != nil {
			logger.Warnw("Failed to release switcher", "error", err)
		}
	}()

	return f(s)
}

func loadConfig(logger *zap.SugaredLogger, cmd *cobra.Command) (*sinkswitch.CanonicalConfig, error) {
	config, err := sinkswitch.NewConfig(logger, configFile)
	if err != nil {
		return nil, fmt.Errorf("create config: %w", err)
	}

	if err := config.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return config, nil
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, sinkswitch.ErrCollaboratorUnavailable):
		return "is pactl installed and is the audio server (PulseAudio or pipewire-pulse) running?"
	case errors.Is(err, sinkswitch.ErrMalformedResponse):
		return "pactl answered with unexpected output; JSON output needs pactl 16 or newer"
	case errors.Is(err, sinkswitch.ErrNoActiveDevice):
		return "the default sink changed while querying, try again"
	case errors.Is(err, sinkswitch.ErrNoCandidateDevices):
		return "no sink has anything plugged in"
	default:
		return ""
	}
}

func versionString() string {
	parts := []string{}

	if versionTag != "" {
		parts = append(parts, versionTag)
	} else {
		parts = append(parts, "dev")
	}

	if gitCommit != "" {
		parts = append(parts, "("+gitCommit+")")
	}

	return strings.Join(parts, " ")
}
