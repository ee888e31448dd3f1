package mcp

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning   bool   `json:"daemon_running"`
	Running         bool   `json:"running"`
	Display         string `json:"display,omitempty"`
	Strategy        string `json:"strategy,omitempty"`
	ShiftAmount     int    `json:"shift_amount,omitempty"`
	IntervalSeconds int    `json:"interval_seconds,omitempty"`
	Pattern         bool   `json:"pattern"`
	TickCount       uint64 `json:"tick_count"`
	LastStatus      string `json:"last_status,omitempty"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayEntry describes one connected output.
type DisplayEntry struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	RefreshHz float64 `json:"refresh_hz"`
	Primary   bool    `json:"primary"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayEntry `json:"displays"`
}

// ShiftOnceInput is the input for the shift_once tool.
type ShiftOnceInput struct {
	Display  string `json:"display,omitempty" jsonschema:"Output name to shift (default: the daemon's configured display, falling back to the primary)"`
	Amount   int    `json:"amount,omitempty" jsonschema:"Shift distance in pixels, 1-20 (default: the configured shift_amount)"`
	Strategy string `json:"strategy,omitempty" jsonschema:"Shift mechanism: transform, pan, pan-basic or position (default: the configured strategy)"`
}

// ShiftOnceOutput is the output for the shift_once tool.
type ShiftOnceOutput struct {
	Message string `json:"message"`
}

// StartShiftInput is the input for the start_shift tool.
type StartShiftInput struct {
	Display         string `json:"display,omitempty" jsonschema:"Output name to drive (default: the daemon's configured display, falling back to the primary)"`
	Amount          int    `json:"amount,omitempty" jsonschema:"Shift distance in pixels, 1-20 (default: the configured shift_amount)"`
	IntervalSeconds int    `json:"interval_seconds,omitempty" jsonschema:"Seconds between shifts, 1-86400 (default: the configured interval_seconds)"`
	Strategy        string `json:"strategy,omitempty" jsonschema:"Shift mechanism: transform, pan, pan-basic or position (default: the configured strategy)"`
	Pattern         *bool  `json:"pattern,omitempty" jsonschema:"When true, walk a nine-position ring instead of toggling between base and shifted (default: the configured pattern flag)"`
}

// StartShiftOutput is the output for the start_shift tool.
type StartShiftOutput struct {
	Message string `json:"message"`
}

// StopShiftInput is the input for the stop_shift tool.
type StopShiftInput struct{}

// StopShiftOutput is the output for the stop_shift tool.
type StopShiftOutput struct {
	Message string `json:"message"`
}
