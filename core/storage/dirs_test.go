package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDirs_XDGOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", tmpDir)

	dirs := ResolveDirs()

	assert.Equal(t, filepath.Join(tmpDir, "atlas"), dirs.Config)
	assert.Equal(t, filepath.Join(tmpDir, "atlas"), dirs.Data)
}

func TestResolveDirs_PlatformFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	dirs := ResolveDirs()

	assert.NotEmpty(t, dirs.Config)
	assert.NotEmpty(t, dirs.Data)
	assert.Contains(t, dirs.Config, "atlas")
	assert.Contains(t, dirs.Data, "atlas")
}

func TestDefaultPaths(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "atlas", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join(tmpDir, "atlas", "atlas.db"), DefaultDatabasePath())
}
