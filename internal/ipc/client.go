package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/pixeldrift/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// message extracts the engine status line carried by an OK response.
func message(resp *Response) (string, error) {
	var data MessageData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse response message: %w", err)
	}
	return data.Message, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon and scheduler status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListDisplays retrieves the connected outputs known to the daemon
func (c *Client) ListDisplays() (*DisplaysData, error) {
	req := &Request{
		Command: CommandListDisplays,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var displays DisplaysData
	if err := json.Unmarshal(resp.Data, &displays); err != nil {
		return nil, fmt.Errorf("failed to parse displays data: %w", err)
	}

	return &displays, nil
}

// ShiftOnce applies a single shift. Empty or zero-valued arguments fall
// back to the daemon's configured defaults.
func (c *Client) ShiftOnce(display string, amount int, strategy string) (string, error) {
	payload, err := json.Marshal(ShiftOncePayload{
		Display:  display,
		Amount:   amount,
		Strategy: strategy,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal shift payload: %w", err)
	}

	req := &Request{
		Command: CommandShiftOnce,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return "", err
	}

	return message(resp)
}

// StartShift starts the periodic shift schedule. Zero-valued payload
// fields fall back to the daemon's configured defaults.
func (c *Client) StartShift(p StartShiftPayload) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal start payload: %w", err)
	}

	req := &Request{
		Command: CommandStartShift,
		Payload: payload,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return "", err
	}

	return message(resp)
}

// StopShift stops the schedule and resets the driven display
func (c *Client) StopShift() (string, error) {
	req := &Request{
		Command: CommandStopShift,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return "", err
	}

	return message(resp)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
