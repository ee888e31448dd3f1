package daemon

import (
	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/shift"
	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

// Reconciler realigns the shift schedule with the physical output layout.
// A schedule driving an output that is no longer connected is stopped so
// the daemon never keeps shifting a phantom display.
type Reconciler struct {
	engine *shift.Scheduler
	runner xrandr.Runner
}

// NewReconciler creates a reconciler over the daemon's engine and runner.
func NewReconciler(engine *shift.Scheduler, runner xrandr.Runner) *Reconciler {
	return &Reconciler{
		engine: engine,
		runner: runner,
	}
}

// Reconcile performs a single pass: when the driven display has vanished
// from the connected set, the schedule is stopped.
func (r *Reconciler) Reconcile() {
	st := r.engine.State()
	if !st.Running {
		return
	}

	out, err := r.runner.Query()
	if err != nil {
		// A failed query proves nothing about the layout; leave the
		// schedule alone.
		log.Warn().Err(err).Msg("reconcile query failed")
		return
	}

	for _, d := range xrandr.ParseDisplays(out) {
		if d.Name == st.Display {
			log.Debug().Str("display", st.Display).Msg("driven display still connected")
			return
		}
	}

	log.Warn().Str("display", st.Display).Msg("driven display disconnected, stopping auto-shift")
	r.engine.Stop()
}
