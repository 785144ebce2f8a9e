package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.Threshold)
	assert.Equal(t, 2.0, cfg.SuccessHold)
	assert.True(t, cfg.SkipEnabled)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 1.5, cfg.Camera.Duration)
	assert.Equal(t, "smoothstep", cfg.Camera.Easing)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero threshold", mutate: func(c *Config) { c.Threshold = 0 }},
		{name: "negative hold", mutate: func(c *Config) { c.SuccessHold = -1 }},
		{name: "zero tick rate", mutate: func(c *Config) { c.TickRate = 0 }},
		{name: "negative camera duration", mutate: func(c *Config) { c.Camera.Duration = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 50
	assert.InDelta(t, 0.02, cfg.TickInterval(), 1e-12)
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("KAZARI_CONFIG_PATH", "")

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kazari.yaml")
	data := []byte("threshold: 2\nsuccess_hold: 0.5\ncamera:\n  duration: 0.75\n  easing: linear\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Threshold)
	assert.Equal(t, 0.5, cfg.SuccessHold)
	assert.Equal(t, 0.75, cfg.Camera.Duration)
	assert.Equal(t, "linear", cfg.Camera.Easing)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.TickRate)
	assert.True(t, cfg.SkipEnabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KAZARI_CONFIG_PATH", "")
	t.Setenv("KAZARI_SUCCESS_HOLD", "1.25")
	t.Setenv("KAZARI_CAMERA_EASING", "ease-out")

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.25, cfg.SuccessHold)
	assert.Equal(t, "ease-out", cfg.Camera.Easing)
}

func TestLoadInvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kazari.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: -1\n"), 0o644))

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}
