package daemon

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/pixeldrift/internal/shift"
	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

const (
	bothConnected = `Screen 0: minimum 320 x 200, current 4480 x 1440, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.01*+
HDMI-1 connected 2560x1440+1920+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440     59.95*+
`
	hdmiGone = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.01*+
HDMI-1 disconnected (normal left inverted right x axis y axis)
`
)

// fakeRunner serves a canned xrandr report and accepts every mutation.
type fakeRunner struct {
	mu       sync.Mutex
	report   string
	queryErr error
	queries  int
}

func (f *fakeRunner) Query() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	return f.report, f.queryErr
}

func (f *fakeRunner) Execute(args ...string) xrandr.Result {
	return xrandr.Result{ExitSuccess: true}
}

func (f *fakeRunner) set(report string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.report = report
	f.queryErr = err
}

func (f *fakeRunner) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

func newTestReconciler(t *testing.T) (*Reconciler, *shift.Scheduler, *fakeRunner) {
	t.Helper()

	runner := &fakeRunner{report: bothConnected}
	engine := shift.NewScheduler(shift.SchedulerConfig{
		Runner: runner,
		Clock:  clockwork.NewFakeClock(),
	})
	t.Cleanup(engine.Close)

	return NewReconciler(engine, runner), engine, runner
}

func startOnHDMI(engine *shift.Scheduler) {
	engine.Start(
		xrandr.DisplayInfo{Name: "HDMI-1", Width: 2560, Height: 1440},
		2, time.Minute, shift.StrategyTransform, false,
	)
}

func TestReconcileIdleEngine(t *testing.T) {
	rec, engine, runner := newTestReconciler(t)

	rec.Reconcile()

	assert.False(t, engine.State().Running)
	assert.Zero(t, runner.queryCount())
}

func TestReconcileKeepsConnectedDisplay(t *testing.T) {
	rec, engine, _ := newTestReconciler(t)
	startOnHDMI(engine)

	rec.Reconcile()

	assert.True(t, engine.State().Running)
}

func TestReconcileStopsVanishedDisplay(t *testing.T) {
	rec, engine, runner := newTestReconciler(t)
	startOnHDMI(engine)
	runner.set(hdmiGone, nil)

	rec.Reconcile()

	st := engine.State()
	assert.False(t, st.Running)
	assert.Contains(t, st.LastStatus, "STOPPED")
}

func TestReconcileIgnoresQueryFailure(t *testing.T) {
	rec, engine, runner := newTestReconciler(t)
	startOnHDMI(engine)
	runner.set("", errors.New("xrandr query failed: exit status 1"))

	rec.Reconcile()

	assert.True(t, engine.State().Running)
}
