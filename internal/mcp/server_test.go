package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/pixeldrift/internal/ipc"
)

// fakeController records tool calls and serves canned daemon responses.
type fakeController struct {
	status   *ipc.StatusData
	displays *ipc.DisplaysData
	message  string
	err      error

	shiftArgs []any
	startArgs ipc.StartShiftPayload
	stopped   bool
}

func (f *fakeController) GetStatus() (*ipc.StatusData, error) {
	return f.status, f.err
}

func (f *fakeController) ListDisplays() (*ipc.DisplaysData, error) {
	return f.displays, f.err
}

func (f *fakeController) ShiftOnce(display string, amount int, strategy string) (string, error) {
	f.shiftArgs = []any{display, amount, strategy}
	return f.message, f.err
}

func (f *fakeController) StartShift(p ipc.StartShiftPayload) (string, error) {
	f.startArgs = p
	return f.message, f.err
}

func (f *fakeController) StopShift() (string, error) {
	f.stopped = true
	return f.message, f.err
}

func TestHandleGetStatus(t *testing.T) {
	fake := &fakeController{
		status: &ipc.StatusData{
			Running:         true,
			Display:         "HDMI-1",
			Strategy:        "transform",
			ShiftAmount:     2,
			IntervalSeconds: 60,
			TickCount:       7,
			LastStatus:      "SUCCESS: HDMI-1 set to TRANSFORMED (shift 2px, FB 2562x1442).",
			UptimeSeconds:   120,
			DaemonRunning:   true,
		},
	}
	s := NewServer(fake)

	_, out, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("handleGetStatus returned error: %v", err)
	}
	if !out.DaemonRunning || !out.Running {
		t.Fatalf("flags = (%v, %v), want both true", out.DaemonRunning, out.Running)
	}
	if out.Display != "HDMI-1" {
		t.Errorf("display = %q, want %q", out.Display, "HDMI-1")
	}
	if out.TickCount != 7 {
		t.Errorf("tick count = %d, want 7", out.TickCount)
	}
	if out.LastStatus != fake.status.LastStatus {
		t.Errorf("last status = %q, want %q", out.LastStatus, fake.status.LastStatus)
	}
}

func TestHandleGetStatusDaemonDown(t *testing.T) {
	fake := &fakeController{err: errors.New("failed to connect to daemon")}
	s := NewServer(fake)

	_, _, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err == nil {
		t.Fatal("expected error when the daemon is unreachable")
	}
}

func TestHandleListDisplays(t *testing.T) {
	fake := &fakeController{
		displays: &ipc.DisplaysData{Displays: []ipc.DisplayInfo{
			{Name: "eDP-1", Width: 1920, Height: 1080, RefreshHz: 60.01, Primary: true},
			{Name: "HDMI-1", Width: 2560, Height: 1440, RefreshHz: 59.95},
		}},
	}
	s := NewServer(fake)

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("handleListDisplays returned error: %v", err)
	}
	if len(out.Displays) != 2 {
		t.Fatalf("displays len = %d, want 2", len(out.Displays))
	}
	if out.Displays[0].Name != "eDP-1" || !out.Displays[0].Primary {
		t.Errorf("first display = %+v, want primary eDP-1", out.Displays[0])
	}
	if out.Displays[1].Width != 2560 || out.Displays[1].Height != 1440 {
		t.Errorf("second display size = %dx%d, want 2560x1440", out.Displays[1].Width, out.Displays[1].Height)
	}
}

func TestHandleShiftOnce(t *testing.T) {
	fake := &fakeController{message: "SUCCESS: HDMI-1 set to REPOSITIONED (shift 3px)."}
	s := NewServer(fake)

	_, out, err := s.handleShiftOnce(context.Background(), nil, ShiftOnceInput{
		Display:  "HDMI-1",
		Amount:   3,
		Strategy: "position",
	})
	if err != nil {
		t.Fatalf("handleShiftOnce returned error: %v", err)
	}
	if out.Message != fake.message {
		t.Errorf("message = %q, want %q", out.Message, fake.message)
	}

	want := []any{"HDMI-1", 3, "position"}
	for i, arg := range want {
		if fake.shiftArgs[i] != arg {
			t.Errorf("forwarded arg %d = %v, want %v", i, fake.shiftArgs[i], arg)
		}
	}
}

func TestHandleStartShift(t *testing.T) {
	fake := &fakeController{message: "Auto-shift STARTING for eDP-1 every 1m0s. Initializing to BASE (Identity)."}
	s := NewServer(fake)

	pattern := true
	_, out, err := s.handleStartShift(context.Background(), nil, StartShiftInput{
		Display:         "eDP-1",
		Amount:          2,
		IntervalSeconds: 60,
		Strategy:        "transform",
		Pattern:         &pattern,
	})
	if err != nil {
		t.Fatalf("handleStartShift returned error: %v", err)
	}
	if out.Message != fake.message {
		t.Errorf("message = %q, want %q", out.Message, fake.message)
	}

	got := fake.startArgs
	if got.Display != "eDP-1" || got.Amount != 2 || got.IntervalSeconds != 60 || got.Strategy != "transform" {
		t.Errorf("forwarded payload = %+v", got)
	}
	if got.Pattern == nil || !*got.Pattern {
		t.Error("pattern flag not forwarded")
	}
}

func TestHandleStopShift(t *testing.T) {
	fake := &fakeController{message: "Auto-shift STOPPED and eDP-1 fully RESET via --transform."}
	s := NewServer(fake)

	_, out, err := s.handleStopShift(context.Background(), nil, StopShiftInput{})
	if err != nil {
		t.Fatalf("handleStopShift returned error: %v", err)
	}
	if !fake.stopped {
		t.Error("stop was not forwarded to the daemon")
	}
	if out.Message != fake.message {
		t.Errorf("message = %q, want %q", out.Message, fake.message)
	}
}
