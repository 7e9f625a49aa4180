package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("backend: pactl\n"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir), "directories don't count")
	assert.False(t, FileExists(filepath.Join(dir, "missing.yaml")))
}
