// Package mcp exposes the daemon's shift operations as MCP tools over
// stdio, so AI assistants can inspect displays and control the schedule.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

const (
	ServerName    = "pixeldrift"
	ServerVersion = "0.1.0"
)

// Controller is the daemon surface the tools drive. *ipc.Client
// implements it; tests substitute a fake.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	ListDisplays() (*ipc.DisplaysData, error)
	ShiftOnce(display string, amount int, strategy string) (string, error)
	StartShift(p ipc.StartShiftPayload) (string, error)
	StopShift() (string, error)
}

// Server is the MCP server bridging AI clients to the pixeldrift daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Controller
}

// NewServer creates an MCP server that forwards tool calls to the daemon.
func NewServer(daemon Controller) *Server {
	s := &Server{daemon: daemon}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get the pixeldrift daemon status: whether the auto-shift schedule is running, which display it drives, the shift amount, interval and strategy, and the last reported status line.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the connected displays with their resolution, refresh rate and primary flag.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "shift_once",
		Description: "Apply a single pixel shift to a display; it reverts to the base position a moment later. Useful to verify the shift mechanism works on a given output.",
	}, s.handleShiftOnce)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "start_shift",
		Description: "Start the periodic anti-burn-in shift schedule on a display. Omitted arguments fall back to the daemon's configured defaults.",
	}, s.handleStartShift)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stop_shift",
		Description: "Stop the shift schedule and reset the display to its base position.",
	}, s.handleStopShift)
}
