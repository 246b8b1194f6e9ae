package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frondster.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr = "127.0.0.1:9000"
idle_timeout = "5m"
sweep_interval = "10s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout.Duration)
	assert.Equal(t, 10*time.Second, cfg.SweepInterval.Duration)
	// Untouched keys keep their defaults.
	assert.Equal(t, "web", cfg.WebDir)
	assert.Equal(t, "Frondster", cfg.Name)
	assert.Equal(t, 2*time.Second, cfg.WriteTimeout.Duration)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, `idle_timeout = "soon"`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `colour = "dark"`))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = Load(writeConfig(t, `sweep_interval = "-1s"`))
	assert.ErrorContains(t, err, "sweep_interval")
}
