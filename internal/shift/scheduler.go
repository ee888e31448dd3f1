package shift

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

const (
	minInterval       = time.Second
	defaultResetDelay = 2 * time.Second
)

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Runner xrandr.Runner
	// Clock drives the tick loop and one-shot reverts; nil means the
	// real clock.
	Clock clockwork.Clock
	// ResetDelay is how long a one-shot shift stays applied before the
	// display is moved back to base. Zero defaults to two seconds.
	ResetDelay time.Duration
}

// Scheduler owns the periodic shift cycle for a single display. All
// operations report their outcome as a status message; a failed xrandr
// call never stops a running schedule.
type Scheduler struct {
	clock      clockwork.Clock
	runner     xrandr.Runner
	resetDelay time.Duration

	baseCtx    context.Context
	baseCancel context.CancelFunc
	oneshots   sync.WaitGroup

	mu         sync.Mutex
	running    bool
	display    xrandr.DisplayInfo
	strategy   Strategy
	amount     int
	interval   time.Duration
	pattern    *Pattern
	shifted    bool
	tickCount  uint64
	lastStatus string
	startedAt  time.Time
	cancel     context.CancelFunc
	done       chan struct{}
	onStatus   func(string)

	// execMu serializes every xrandr mutation: scheduled ticks, one-shot
	// shifts, deferred reverts and reset chains never interleave.
	execMu sync.Mutex
}

// State is a point-in-time snapshot of the scheduler.
type State struct {
	Running    bool
	Display    string
	Strategy   Strategy
	Amount     int
	Interval   time.Duration
	Pattern    bool
	TickCount  uint64
	LastStatus string
	StartedAt  time.Time
}

// NewScheduler builds a scheduler around the given runner.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	delay := cfg.ResetDelay
	if delay <= 0 {
		delay = defaultResetDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:      clock,
		runner:     cfg.Runner,
		resetDelay: delay,
		baseCtx:    ctx,
		baseCancel: cancel,
	}
}

// OnStatus registers a callback invoked with every status message. Set it
// before starting a schedule.
func (s *Scheduler) OnStatus(fn func(string)) {
	s.mu.Lock()
	s.onStatus = fn
	s.mu.Unlock()
}

// State returns a snapshot for status reporting.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Running:    s.running,
		Display:    s.display.Name,
		Strategy:   s.strategy,
		Amount:     s.amount,
		Interval:   s.interval,
		Pattern:    s.pattern != nil,
		TickCount:  s.tickCount,
		LastStatus: s.lastStatus,
	}
	if s.running {
		st.StartedAt = s.startedAt
	}
	return st
}

// Start begins the periodic shift schedule and reports the outcome.
// Starting while a schedule runs, or without a display, changes nothing
// beyond the report. The interval is floored at one second.
func (s *Scheduler) Start(d xrandr.DisplayInfo, amount int, interval time.Duration, strategy Strategy, usePattern bool) string {
	s.mu.Lock()
	if s.running {
		status := fmt.Sprintf("Auto-shift already running for %s; stop it first.", s.display.Name)
		s.mu.Unlock()
		return s.report(status)
	}
	if d.Name == "" {
		s.mu.Unlock()
		return s.report("ERROR: No display selected to start auto-shift.")
	}

	if amount < 1 {
		amount = 1
	}
	if interval < minInterval {
		interval = minInterval
	}

	ctx, cancel := context.WithCancel(s.baseCtx)
	s.running = true
	s.display = d
	s.strategy = strategy
	s.amount = amount
	s.interval = interval
	s.shifted = false
	s.tickCount = 0
	if usePattern {
		s.pattern = NewPattern(amount)
	} else {
		s.pattern = nil
	}
	s.cancel = cancel
	s.done = make(chan struct{})
	s.startedAt = s.clock.Now()
	done := s.done
	s.mu.Unlock()

	status := s.report(fmt.Sprintf("Auto-shift STARTING for %s every %s. Initializing to BASE (Identity).", d.Name, interval))
	go s.run(ctx, done, interval)
	return status
}

// Stop cancels the schedule, waits for any in-flight tick, rewinds the
// pattern and walks the reset chain for the last driven display. Safe to
// call repeatedly; the reset runs every time.
func (s *Scheduler) Stop() string {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	if s.pattern != nil {
		s.pattern.Reset()
	}
	d := s.display
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	if d.Name == "" {
		return s.report("Auto-shift is not running; nothing to reset.")
	}

	s.execMu.Lock()
	method, err := ResetDisplay(s.runner, d.Name)
	s.execMu.Unlock()

	if err != nil {
		return s.report(fmt.Sprintf("ERROR: %s could not be reset: %v", d.Name, err))
	}
	if wasRunning {
		return s.report(fmt.Sprintf("Auto-shift STOPPED and %s fully RESET via %s.", d.Name, method))
	}
	return s.report(fmt.Sprintf("SUCCESS: %s fully RESET via %s.", d.Name, method))
}

// ShiftOnce applies a single diagonal shift of the given amount and
// schedules a revert to base after the configured delay. A running
// schedule is left untouched.
func (s *Scheduler) ShiftOnce(d xrandr.DisplayInfo, amount int, strategy Strategy) string {
	if d.Name == "" {
		return s.report("ERROR: No display selected.")
	}
	if amount < 1 {
		amount = 1
	}

	// Remember the display while idle so a later Stop resets it.
	s.mu.Lock()
	if !s.running {
		s.display = d
	}
	s.mu.Unlock()

	status := s.report(s.apply(d, strategy, Offset{DX: amount, DY: amount}, amount))

	s.oneshots.Add(1)
	go func() {
		defer s.oneshots.Done()
		select {
		case <-s.clock.After(s.resetDelay):
			s.report(s.apply(d, strategy, Offset{}, amount))
		case <-s.baseCtx.Done():
		}
	}()

	return status
}

// Close stops the schedule, resets the display and cancels any pending
// one-shot reverts.
func (s *Scheduler) Close() {
	s.baseCancel()
	s.Stop()
	s.oneshots.Wait()
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)

	// Settle on base before the first tick.
	s.applyCurrent(Offset{})

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.tick()
		}
	}
}

// tick applies the next offset of the cycle. A failed invocation is
// reported and the schedule keeps going.
func (s *Scheduler) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	var off Offset
	if s.pattern != nil {
		off = s.pattern.Next()
	} else if s.shifted {
		off = Offset{}
		s.shifted = false
	} else {
		off = Offset{DX: s.amount, DY: s.amount}
		s.shifted = true
	}
	s.tickCount++
	s.mu.Unlock()

	s.applyCurrent(off)
}

// applyCurrent applies an offset using the schedule's display and
// strategy, reporting the outcome.
func (s *Scheduler) applyCurrent(off Offset) {
	s.mu.Lock()
	d := s.display
	strategy := s.strategy
	amount := s.amount
	s.mu.Unlock()

	s.report(s.apply(d, strategy, off, amount))
}

// apply issues one shift invocation and renders its status message.
func (s *Scheduler) apply(d xrandr.DisplayInfo, strategy Strategy, off Offset, amount int) string {
	args := strategy.Args(d, off.DX, off.DY)
	log.Debug().Msg("CMD: xrandr " + strings.Join(args, " "))

	s.execMu.Lock()
	res := s.runner.Execute(args...)
	s.execMu.Unlock()

	if !res.ExitSuccess {
		return fmt.Sprintf("Failed to run xrandr command for %s: %s", d.Name, res.Stderr)
	}
	action := strategy.actionName(off.DX, off.DY)
	if strategy == StrategyTransform {
		return fmt.Sprintf("SUCCESS: %s set to %s (shift %dpx, FB %dx%d).",
			d.Name, action, amount, d.Width+fbMargin, d.Height+fbMargin)
	}
	return fmt.Sprintf("SUCCESS: %s set to %s (shift %dpx).", d.Name, action, amount)
}

func (s *Scheduler) report(status string) string {
	s.mu.Lock()
	s.lastStatus = status
	fn := s.onStatus
	s.mu.Unlock()

	log.Info().Msg(status)
	if fn != nil {
		fn(status)
	}
	return status
}
