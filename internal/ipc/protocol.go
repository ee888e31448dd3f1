package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListDisplays CommandType = "LIST_DISPLAYS"
	CommandShiftOnce    CommandType = "SHIFT_ONCE"
	CommandStartShift   CommandType = "START_SHIFT"
	CommandStopShift    CommandType = "STOP_SHIFT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Running         bool   `json:"running"`
	Display         string `json:"display,omitempty"`
	Strategy        string `json:"strategy,omitempty"`
	ShiftAmount     int    `json:"shift_amount,omitempty"`
	IntervalSeconds int    `json:"interval_seconds,omitempty"`
	Pattern         bool   `json:"pattern"`
	TickCount       uint64 `json:"tick_count"`
	LastStatus      string `json:"last_status,omitempty"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	DaemonRunning   bool   `json:"daemon_running"`
}

// DisplayInfo represents one connected output in LIST_DISPLAYS data
type DisplayInfo struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	RefreshHz float64 `json:"refresh_hz"`
	Primary   bool    `json:"primary"`
}

// DisplaysData represents the data returned by LIST_DISPLAYS
type DisplaysData struct {
	Displays []DisplayInfo `json:"displays"`
}

// ShiftOncePayload represents the payload for SHIFT_ONCE. Empty fields
// fall back to the daemon's configured values.
type ShiftOncePayload struct {
	Display  string `json:"display,omitempty"`
	Amount   int    `json:"amount,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// StartShiftPayload represents the payload for START_SHIFT. Empty fields
// fall back to the daemon's configured values.
type StartShiftPayload struct {
	Display         string `json:"display,omitempty"`
	Amount          int    `json:"amount,omitempty"`
	IntervalSeconds int    `json:"interval_seconds,omitempty"`
	Strategy        string `json:"strategy,omitempty"`
	Pattern         *bool  `json:"pattern,omitempty"`
}

// MessageData carries the human-readable status line a shift operation
// reported.
type MessageData struct {
	Message string `json:"message"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	resp := &Response{Status: "OK"}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		resp.Data = jsonData
	}

	return resp, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a JSON request from bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal serializes a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return data, nil
}
