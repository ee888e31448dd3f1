// Package daemon hosts the long-running pieces that keep the shift
// schedule aligned with the physical output layout.
package daemon

import (
	"context"
	"time"

	"github.com/BurntSushi/xgb/randr"
	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/x11"
)

// debounceDelay lets a burst of ScreenChangeNotify events settle before
// the change handler runs. Hotplug typically fires several in a row.
const debounceDelay = 500 * time.Millisecond

// OutputWatcher subscribes to RandR screen-change events and invokes a
// callback once the layout settles.
type OutputWatcher struct {
	conn     *x11.Connection
	onChange func()
}

// NewOutputWatcher connects to the X server and subscribes to screen
// changes. onChange runs on the watcher goroutine after each debounced
// burst of events.
func NewOutputWatcher(onChange func()) (*OutputWatcher, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, err
	}
	if err := conn.SubscribeScreenChanges(); err != nil {
		conn.Close()
		return nil, err
	}

	return &OutputWatcher{
		conn:     conn,
		onChange: onChange,
	}, nil
}

// Run pumps events until the context is cancelled or the X connection
// drops.
func (w *OutputWatcher) Run(ctx context.Context) {
	events := make(chan struct{}, 1)
	go w.readEvents(events)

	// Closing the connection unblocks readEvents on any exit path.
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
		}
		w.conn.Close()
	}()

	log.Info().Msg("output watcher started")

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("output watcher stopped")
			return
		case _, ok := <-events:
			if !ok {
				log.Warn().Msg("output watcher lost the X connection")
				return
			}
			settle = time.After(debounceDelay)
		case <-settle:
			settle = nil
			log.Debug().Msg("output layout changed")
			w.onChange()
		}
	}
}

// readEvents forwards screen-change notifications, collapsing events that
// arrive while one is already pending.
func (w *OutputWatcher) readEvents(events chan<- struct{}) {
	defer close(events)
	for {
		ev, err := w.conn.WaitEvent()
		if err != nil {
			return
		}
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}
}
