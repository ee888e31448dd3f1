package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		DaemonRunning:   status.DaemonRunning,
		Running:         status.Running,
		Display:         status.Display,
		Strategy:        status.Strategy,
		ShiftAmount:     status.ShiftAmount,
		IntervalSeconds: status.IntervalSeconds,
		Pattern:         status.Pattern,
		TickCount:       status.TickCount,
		LastStatus:      status.LastStatus,
		UptimeSeconds:   status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, args ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.daemon.ListDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}

	out := ListDisplaysOutput{Displays: make([]DisplayEntry, 0, len(displays.Displays))}
	for _, d := range displays.Displays {
		out.Displays = append(out.Displays, DisplayEntry{
			Name:      d.Name,
			Width:     d.Width,
			Height:    d.Height,
			RefreshHz: d.RefreshHz,
			Primary:   d.Primary,
		})
	}
	return nil, out, nil
}

func (s *Server) handleShiftOnce(_ context.Context, _ *mcpsdk.CallToolRequest, args ShiftOnceInput) (*mcpsdk.CallToolResult, ShiftOnceOutput, error) {
	msg, err := s.daemon.ShiftOnce(args.Display, args.Amount, args.Strategy)
	if err != nil {
		return nil, ShiftOnceOutput{}, err
	}
	return nil, ShiftOnceOutput{Message: msg}, nil
}

func (s *Server) handleStartShift(_ context.Context, _ *mcpsdk.CallToolRequest, args StartShiftInput) (*mcpsdk.CallToolResult, StartShiftOutput, error) {
	msg, err := s.daemon.StartShift(ipc.StartShiftPayload{
		Display:         args.Display,
		Amount:          args.Amount,
		IntervalSeconds: args.IntervalSeconds,
		Strategy:        args.Strategy,
		Pattern:         args.Pattern,
	})
	if err != nil {
		return nil, StartShiftOutput{}, err
	}
	return nil, StartShiftOutput{Message: msg}, nil
}

func (s *Server) handleStopShift(_ context.Context, _ *mcpsdk.CallToolRequest, args StopShiftInput) (*mcpsdk.CallToolResult, StopShiftOutput, error) {
	msg, err := s.daemon.StopShift()
	if err != nil {
		return nil, StopShiftOutput{}, err
	}
	return nil, StopShiftOutput{Message: msg}, nil
}
