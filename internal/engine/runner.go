package engine

import (
	"context"
	"log"
	"time"

	"chime/internal/model"
	"chime/internal/store"
)

// Sink receives fired alarms. Fire reports whether the alarm was accepted;
// a false return means the sink is busy and the fire was dropped.
type Sink interface {
	Fire(ctx context.Context, a model.Alarm) bool
}

// Runner drives an Engine from wall-clock ticks against a live store.
type Runner struct {
	Store    store.Store
	Sink     Sink
	Interval time.Duration // defaults to one second

	engine *Engine
	logf   func(format string, args ...any)
}

// NewRunner returns a Runner ticking every second.
func NewRunner(st store.Store, sink Sink) *Runner {
	return &Runner{
		Store:    st,
		Sink:     sink,
		Interval: time.Second,
		engine:   New(),
		logf:     log.Printf,
	}
}

// Run ticks until ctx is cancelled. Each tick reads a fresh snapshot of the
// alarm set; a store error logs and skips the tick rather than stopping the
// loop. Ticks never queue: if one is still in flight when the next is due,
// the next is dropped.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-ticker.C:
			alarms, err := r.Store.List(ctx, store.ListParams{EnabledOnly: true})
			if err != nil {
				r.logf("tick: list alarms: %v", err)
				continue
			}
			for _, a := range r.engine.Tick(now, alarms) {
				if !r.Sink.Fire(ctx, a) {
					r.logf("alarm %s (%s) fired while another is ringing, dropped", a.ID, a.Label)
				}
			}
		}
	}
}
