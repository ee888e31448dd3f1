package ipc

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/pixeldrift/internal/config"
	"github.com/1broseidon/pixeldrift/internal/runtimepath"
	"github.com/1broseidon/pixeldrift/internal/shift"
	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

const testReport = `Screen 0: minimum 320 x 200, current 4480 x 1440, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.01*+  59.97
HDMI-1 connected 2560x1440+1920+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440     59.95*+
`

// fakeEngineRunner records xrandr invocations and reports success for all
// of them.
type fakeEngineRunner struct {
	mu    sync.Mutex
	calls [][]string
}

func (f *fakeEngineRunner) Query() (string, error) {
	return testReport, nil
}

func (f *fakeEngineRunner) Execute(args ...string) xrandr.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	return xrandr.Result{ExitSuccess: true}
}

func (f *fakeEngineRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

// newTestServer starts a server on a throwaway socket and returns a
// client wired to it.
func newTestServer(t *testing.T, cfg *config.Config) (*Server, *Client, *fakeEngineRunner, chan struct{}) {
	t.Helper()

	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	xdg.Reload()

	runner := &fakeEngineRunner{}
	engine := shift.NewScheduler(shift.SchedulerConfig{
		Runner: runner,
		Clock:  clockwork.NewFakeClock(),
	})
	t.Cleanup(engine.Close)

	reloadCh := make(chan struct{}, 1)
	srv, err := NewServer(cfg, engine, runner, reloadCh)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	return srv, NewClient(), runner, reloadCh
}

func TestServerGetStatus(t *testing.T) {
	_, client, _, _ := newTestServer(t, config.DefaultConfig())

	status, err := client.GetStatus()
	require.NoError(t, err)

	assert.True(t, status.DaemonRunning)
	assert.False(t, status.Running)
	assert.Zero(t, status.TickCount)
	assert.Empty(t, status.Display)
}

func TestServerListDisplays(t *testing.T) {
	_, client, _, _ := newTestServer(t, config.DefaultConfig())

	displays, err := client.ListDisplays()
	require.NoError(t, err)

	require.Len(t, displays.Displays, 2)
	assert.Equal(t, "eDP-1", displays.Displays[0].Name)
	assert.True(t, displays.Displays[0].Primary)
	assert.Equal(t, "HDMI-1", displays.Displays[1].Name)
	assert.Equal(t, 2560, displays.Displays[1].Width)
}

func TestServerShiftOnce(t *testing.T) {
	_, client, runner, _ := newTestServer(t, config.DefaultConfig())

	msg, err := client.ShiftOnce("HDMI-1", 3, "position")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS: HDMI-1 set to REPOSITIONED (shift 3px).", msg)
	assert.Equal(t, []string{"--output", "HDMI-1", "--pos", "3+3"}, runner.lastCall())
}

func TestServerShiftOnceDefaults(t *testing.T) {
	_, client, runner, _ := newTestServer(t, config.DefaultConfig())

	// Empty arguments resolve to the primary display and the configured
	// amount and strategy.
	msg, err := client.ShiftOnce("", 0, "")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS: eDP-1 set to TRANSFORMED (shift 1px, FB 1922x1082).", msg)
	assert.Equal(t, []string{
		"--output", "eDP-1",
		"--mode", "1920x1080",
		"--fb", "1922x1082",
		"--transform", "1,0,0.000521,0,1,0.000926,0,0,1",
	}, runner.lastCall())
}

func TestServerShiftOnceValidation(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		amount   int
		strategy string
		wantErr  string
	}{
		{
			name:     "amount out of range",
			display:  "eDP-1",
			amount:   45,
			strategy: "transform",
			wantErr:  "daemon error: amount must be between 1 and 20, got 45",
		},
		{
			name:     "unknown strategy",
			display:  "eDP-1",
			amount:   2,
			strategy: "zigzag",
			wantErr:  `daemon error: unknown shift strategy "zigzag" (want transform, pan, pan-basic or position)`,
		},
		{
			name:     "display not connected",
			display:  "DP-9",
			amount:   2,
			strategy: "transform",
			wantErr:  `daemon error: display "DP-9" is not connected`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client, runner, _ := newTestServer(t, config.DefaultConfig())

			_, err := client.ShiftOnce(tt.display, tt.amount, tt.strategy)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)

			// Rejected requests never reach xrandr.
			assert.Nil(t, runner.lastCall())
		})
	}
}

func TestServerStartStopShift(t *testing.T) {
	_, client, _, _ := newTestServer(t, config.DefaultConfig())

	pattern := false
	msg, err := client.StartShift(StartShiftPayload{
		Display:         "eDP-1",
		Amount:          2,
		IntervalSeconds: 30,
		Strategy:        "transform",
		Pattern:         &pattern,
	})
	require.NoError(t, err)
	assert.Equal(t, "Auto-shift STARTING for eDP-1 every 30s. Initializing to BASE (Identity).", msg)

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, "eDP-1", status.Display)
	assert.Equal(t, 2, status.ShiftAmount)
	assert.Equal(t, 30, status.IntervalSeconds)
	assert.False(t, status.Pattern)

	msg, err = client.StopShift()
	require.NoError(t, err)
	assert.Equal(t, "Auto-shift STOPPED and eDP-1 fully RESET via --transform.", msg)

	status, err = client.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Running)
}

func TestServerStartShiftValidation(t *testing.T) {
	_, client, _, _ := newTestServer(t, config.DefaultConfig())

	_, err := client.StartShift(StartShiftPayload{
		Display:         "eDP-1",
		IntervalSeconds: 90000,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "daemon error: interval must be between 1 and 86400 seconds, got 90000")
}

func TestServerReload(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	srv, client, _, reloadCh := newTestServer(t, config.DefaultConfig())

	path := filepath.Join(configHome, "pixeldrift", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("shift_amount: 5\n"), 0o644))

	require.NoError(t, client.Reload())

	assert.Equal(t, 5, srv.GetConfig().ShiftAmount)
	select {
	case <-reloadCh:
	default:
		t.Fatal("expected a reload notification")
	}
}

func TestServerRejectsMalformedRequest(t *testing.T) {
	newTestServer(t, config.DefaultConfig())

	resp := rawRequest(t, "{not json}\n")
	assert.Equal(t, "ERROR", resp.Status)
	assert.Contains(t, resp.Error, "invalid request")
}

func TestServerUnknownCommand(t *testing.T) {
	newTestServer(t, config.DefaultConfig())

	resp := rawRequest(t, `{"command":"NUKE"}`+"\n")
	assert.Equal(t, "ERROR", resp.Status)
	assert.Equal(t, "unknown command: NUKE", resp.Error)
}

// rawRequest writes one raw line to the daemon socket and decodes the
// response envelope.
func rawRequest(t *testing.T, line string) *Response {
	t.Helper()

	socketPath, err := runtimepath.SocketPath()
	require.NoError(t, err)

	conn, err := net.DialTimeout("unix", socketPath, time.Second)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	_, err = conn.Write([]byte(line))
	require.NoError(t, err)

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(data, &resp))
	return &resp
}
