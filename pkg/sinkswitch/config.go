package sinkswitch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/stalexteam/sinkswitch/pkg/sinkswitch/util"
)

// CanonicalConfig provides application-wide access to configuration fields,
// merged from defaults, the optional config file, SINKSWITCH_* env vars and flags
type CanonicalConfig struct {
	Backend   string
	PactlPath string

	Notify bool
	DryRun bool

	logger     *zap.SugaredLogger
	userConfig *viper.Viper
}

const (
	userConfigName = "config"
	configType     = "yaml"
	envPrefix      = "SINKSWITCH"

	configKey_Backend   = "backend"
	configKey_PactlPath = "pactl_path"
	configKey_Notify    = "notify"
	configKey_DryRun    = "dry_run"

	default_Backend   = backendPactl
	default_PactlPath = defaultPactlPath
)

// NewConfig creates a config instance and sets up the viper instance backing it.
// configFile may be empty, in which case the usual locations are searched
func NewConfig(logger *zap.SugaredLogger, configFile string) (*CanonicalConfig, error) {
	logger = logger.Named("config")

	cc := &CanonicalConfig{
		logger: logger,
	}

	userConfig := viper.New()
	userConfig.SetConfigType(configType)

	if configFile != "" {
		userConfig.SetConfigFile(configFile)
	} else {
		userConfig.SetConfigName(userConfigName)
		for _, dir := range configSearchPaths() {
			userConfig.AddConfigPath(dir)
		}
	}

	userConfig.SetEnvPrefix(envPrefix)
	userConfig.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	userConfig.AutomaticEnv()

	userConfig.SetDefault(configKey_Backend, default_Backend)
	userConfig.SetDefault(configKey_PactlPath, default_PactlPath)
	userConfig.SetDefault(configKey_Notify, false)
	userConfig.SetDefault(configKey_DryRun, false)

	cc.userConfig = userConfig

	logger.Debug("Created config instance")

	return cc, nil
}

// BindFlags lets explicitly set command line flags win over the config file.
// Flag names use dashes, config keys use underscores
func (cc *CanonicalConfig) BindFlags(flags *pflag.FlagSet) error {
	for _, key := range []string{configKey_Backend, configKey_PactlPath, configKey_Notify, configKey_DryRun} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}

		if err := cc.userConfig.BindPFlag(key, flag); err != nil {
			cc.logger.Debugw("Failed to bind flag", "flag", flag.Name, "error", err)
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	return nil
}

// Load reads the config file if there is one and populates the config fields.
// A missing config file is fine, an unreadable or invalid one is not
func (cc *CanonicalConfig) Load() error {
	if err := cc.userConfig.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			cc.logger.Debugw("No config file found, using defaults", "reminder", "this is fine")
		} else if file := cc.userConfig.ConfigFileUsed(); file != "" && !util.FileExists(file) {
			cc.logger.Debugw("Config file doesn't exist", "path", file)
			return fmt.Errorf("config file doesn't exist: %s", file)
		} else {
			cc.logger.Debugw("Viper failed to read user config", "error", err)
			return fmt.Errorf("read user config: %w", err)
		}
	} else {
		cc.logger.Debugw("Loaded config file", "path", cc.userConfig.ConfigFileUsed())
	}

	if err := cc.populateFromVipers(); err != nil {
		cc.logger.Debugw("Failed to populate config fields", "error", err)
		return fmt.Errorf("populate config fields: %w", err)
	}

	cc.logger.Debugw("Config values",
		"backend", cc.Backend,
		"pactlPath", cc.PactlPath,
		"notify", cc.Notify,
		"dryRun", cc.DryRun,
	)

	return nil
}

func (cc *CanonicalConfig) populateFromVipers() error {
	cc.Backend = strings.ToLower(strings.TrimSpace(cc.userConfig.GetString(configKey_Backend)))
	cc.PactlPath = strings.TrimSpace(cc.userConfig.GetString(configKey_PactlPath))
	cc.Notify = cc.userConfig.GetBool(configKey_Notify)
	cc.DryRun = cc.userConfig.GetBool(configKey_DryRun)

	switch cc.Backend {
	case backendPactl, backendNative:
	default:
		return fmt.Errorf("invalid %s %q (expected %s or %s)", configKey_Backend, cc.Backend, backendPactl, backendNative)
	}

	if cc.PactlPath == "" {
		cc.PactlPath = default_PactlPath
	}

	cc.logger.Debug("Populated config fields from viper")

	return nil
}

func configSearchPaths() []string {
	paths := []string{"."}

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "sinkswitch"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sinkswitch"))
	}

	return paths
}
