// Package config loads, validates and saves the pixeldrift configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the effective configuration after defaults are applied.
type Config struct {
	// XrandrPath overrides the xrandr binary resolved through PATH.
	XrandrPath string `yaml:"xrandr_path"`

	// Display is the output to shift. Empty selects the primary connected
	// output, falling back to the first one.
	Display string `yaml:"display,omitempty"`

	// ShiftAmount is the shift distance in pixels (1-20).
	ShiftAmount int `yaml:"shift_amount"`

	// IntervalSeconds is the time between scheduled shifts (1-86400).
	IntervalSeconds int `yaml:"interval_seconds"`

	// Strategy picks the xrandr mechanism: transform, pan, pan-basic or
	// position.
	Strategy string `yaml:"strategy"`

	// Pattern walks the nine-position ring instead of toggling between
	// base and shifted.
	Pattern bool `yaml:"pattern"`

	// OneshotResetSeconds is how long a one-shot shift stays applied
	// before reverting to base (1-10).
	OneshotResetSeconds int `yaml:"oneshot_reset_seconds"`

	// Autostart begins the shift schedule as soon as the daemon is up.
	Autostart bool `yaml:"autostart"`

	// WatchOutputs enables the RandR hotplug watcher.
	WatchOutputs bool `yaml:"watch_outputs"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFile overrides the default log location under the XDG state dir.
	LogFile string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		XrandrPath:          "xrandr",
		ShiftAmount:         1,
		IntervalSeconds:     60,
		Strategy:            "transform",
		OneshotResetSeconds: 2,
		WatchOutputs:        true,
		LogLevel:            "info",
	}
}

// Interval returns the schedule period as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// OneshotResetDelay returns the one-shot revert delay as a duration.
func (c *Config) OneshotResetDelay() time.Duration {
	return time.Duration(c.OneshotResetSeconds) * time.Second
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if c.XrandrPath == "" {
		return &ValidationError{
			Path: "xrandr_path",
			Err:  fmt.Errorf("xrandr_path must not be empty"),
		}
	}

	if c.ShiftAmount < 1 || c.ShiftAmount > 20 {
		return &ValidationError{
			Path: "shift_amount",
			Err:  fmt.Errorf("shift_amount must be between 1 and 20, got %d", c.ShiftAmount),
		}
	}

	if c.IntervalSeconds < 1 || c.IntervalSeconds > 86400 {
		return &ValidationError{
			Path: "interval_seconds",
			Err:  fmt.Errorf("interval_seconds must be between 1 and 86400, got %d", c.IntervalSeconds),
		}
	}

	switch c.Strategy {
	case "transform", "pan", "pan-basic", "position":
	default:
		return &ValidationError{
			Path: "strategy",
			Err:  fmt.Errorf("strategy must be one of: transform, pan, pan-basic, position; got %q", c.Strategy),
		}
	}

	if c.OneshotResetSeconds < 1 || c.OneshotResetSeconds > 10 {
		return &ValidationError{
			Path: "oneshot_reset_seconds",
			Err:  fmt.Errorf("oneshot_reset_seconds must be between 1 and 10, got %d", c.OneshotResetSeconds),
		}
	}

	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warn" && c.LogLevel != "error" {
		return &ValidationError{
			Path: "log_level",
			Err:  fmt.Errorf("log_level must be one of: debug, info, warn, error; got %q", c.LogLevel),
		}
	}

	return nil
}

// Save validates the config and writes it to the default path, creating
// the directory if needed.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	path := DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
