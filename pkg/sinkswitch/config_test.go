package sinkswitch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func loadTestConfig(t *testing.T, path string, flags *pflag.FlagSet) (*CanonicalConfig, error) {
	t.Helper()

	cc, err := NewConfig(zaptest.NewLogger(t).Sugar(), path)
	require.NoError(t, err)

	if flags != nil {
		require.NoError(t, cc.BindFlags(flags))
	}

	return cc, cc.Load()
}

func TestConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cc, err := loadTestConfig(t, "", nil)
	require.NoError(t, err)

	assert.Equal(t, backendPactl, cc.Backend)
	assert.Equal(t, defaultPactlPath, cc.PactlPath)
	assert.False(t, cc.Notify)
	assert.False(t, cc.DryRun)
}

func TestConfigFromFile(t *testing.T) {
	path := writeConfig(t, "backend: Native\npactl_path: /opt/pulse/bin/pactl\nnotify: true\n")

	cc, err := loadTestConfig(t, path, nil)
	require.NoError(t, err)

	assert.Equal(t, backendNative, cc.Backend)
	assert.Equal(t, "/opt/pulse/bin/pactl", cc.PactlPath)
	assert.True(t, cc.Notify)
	assert.False(t, cc.DryRun)
}

func TestConfigFromXDGDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "sinkswitch")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dry_run: true\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cc, err := loadTestConfig(t, "", nil)
	require.NoError(t, err)
	assert.True(t, cc.DryRun)
}

func TestConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend: native\n")
	t.Setenv("SINKSWITCH_BACKEND", "pactl")
	t.Setenv("SINKSWITCH_DRY_RUN", "true")

	cc, err := loadTestConfig(t, path, nil)
	require.NoError(t, err)

	assert.Equal(t, backendPactl, cc.Backend)
	assert.True(t, cc.DryRun)
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "backend: native\npactl_path: /from/file\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend", "pactl", "")
	flags.String("pactl-path", "pactl", "")
	flags.Bool("dry-run", false, "")
	require.NoError(t, flags.Parse([]string{"--backend", "pactl", "--dry-run"}))

	cc, err := loadTestConfig(t, path, flags)
	require.NoError(t, err)

	assert.Equal(t, backendPactl, cc.Backend)
	assert.Equal(t, "/from/file", cc.PactlPath)
	assert.True(t, cc.DryRun)
}

func TestConfigInvalidBackend(t *testing.T) {
	path := writeConfig(t, "backend: alsa\n")

	_, err := loadTestConfig(t, path, nil)
	assert.Error(t, err)
}

func TestConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "backend: [pactl\n")

	_, err := loadTestConfig(t, path, nil)
	assert.Error(t, err)
}

func TestConfigMissingExplicitFile(t *testing.T) {
	_, err := loadTestConfig(t, filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestConfigEmptyPactlPathFallsBack(t *testing.T) {
	path := writeConfig(t, "pactl_path: \"  \"\n")

	cc, err := loadTestConfig(t, path, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultPactlPath, cc.PactlPath)
}
