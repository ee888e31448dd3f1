package config

// RawConfig mirrors the YAML file with pointer fields so that absent keys
// can be told apart from zero values when layering over the defaults.
type RawConfig struct {
	XrandrPath          *string `yaml:"xrandr_path"`
	Display             *string `yaml:"display"`
	ShiftAmount         *int    `yaml:"shift_amount"`
	IntervalSeconds     *int    `yaml:"interval_seconds"`
	Strategy            *string `yaml:"strategy"`
	Pattern             *bool   `yaml:"pattern"`
	OneshotResetSeconds *int    `yaml:"oneshot_reset_seconds"`
	Autostart           *bool   `yaml:"autostart"`
	WatchOutputs        *bool   `yaml:"watch_outputs"`
	LogLevel            *string `yaml:"log_level"`
	LogFile             *string `yaml:"log_file"`
}
