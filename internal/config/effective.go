package config

import "fmt"

// ValidationError tags a config error with the YAML path it refers to.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig layers the raw file contents over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.XrandrPath != nil {
		cfg.XrandrPath = *raw.XrandrPath
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.ShiftAmount != nil {
		cfg.ShiftAmount = *raw.ShiftAmount
	}
	if raw.IntervalSeconds != nil {
		cfg.IntervalSeconds = *raw.IntervalSeconds
	}
	if raw.Strategy != nil {
		cfg.Strategy = *raw.Strategy
	}
	if raw.Pattern != nil {
		cfg.Pattern = *raw.Pattern
	}
	if raw.OneshotResetSeconds != nil {
		cfg.OneshotResetSeconds = *raw.OneshotResetSeconds
	}
	if raw.Autostart != nil {
		cfg.Autostart = *raw.Autostart
	}
	if raw.WatchOutputs != nil {
		cfg.WatchOutputs = *raw.WatchOutputs
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}

	return cfg
}
