package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"display: HDMI-1\nshift_amount: 3\npattern: true\nwatch_outputs: false\n",
	), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "HDMI-1", cfg.Display)
	assert.Equal(t, 3, cfg.ShiftAmount)
	assert.True(t, cfg.Pattern)
	assert.False(t, cfg.WatchOutputs)

	// Untouched keys keep their defaults.
	assert.Equal(t, "xrandr", cfg.XrandrPath)
	assert.Equal(t, 60, cfg.IntervalSeconds)
	assert.Equal(t, "transform", cfg.Strategy)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shift_amout: 3\n"), 0o644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shift_amount: [oops\n"), 0o644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadEmptyFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{name: "empty xrandr path", mutate: func(c *Config) { c.XrandrPath = "" }, wantPath: "xrandr_path"},
		{name: "shift amount too small", mutate: func(c *Config) { c.ShiftAmount = 0 }, wantPath: "shift_amount"},
		{name: "shift amount too large", mutate: func(c *Config) { c.ShiftAmount = 21 }, wantPath: "shift_amount"},
		{name: "interval too small", mutate: func(c *Config) { c.IntervalSeconds = 0 }, wantPath: "interval_seconds"},
		{name: "interval too large", mutate: func(c *Config) { c.IntervalSeconds = 90000 }, wantPath: "interval_seconds"},
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy = "wobble" }, wantPath: "strategy"},
		{name: "oneshot delay too small", mutate: func(c *Config) { c.OneshotResetSeconds = 0 }, wantPath: "oneshot_reset_seconds"},
		{name: "oneshot delay too large", mutate: func(c *Config) { c.OneshotResetSeconds = 11 }, wantPath: "oneshot_reset_seconds"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantPath: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantPath, verr.Path)
			assert.Contains(t, err.Error(), tt.wantPath+":")
		})
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestDurationGetters(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.IntervalSeconds = 90
	cfg.OneshotResetSeconds = 3

	assert.Equal(t, 90*time.Second, cfg.Interval())
	assert.Equal(t, 3*time.Second, cfg.OneshotResetDelay())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cfg := DefaultConfig()
	cfg.Display = "DP-2"
	cfg.Strategy = "pan"
	cfg.Pattern = true
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cfg := DefaultConfig()
	cfg.ShiftAmount = 0
	require.Error(t, cfg.Save())
}
