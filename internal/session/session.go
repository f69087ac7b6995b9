// Package session tracks the currently-ringing alarm and its transitions.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"chime/internal/model"
	"chime/internal/notify"
	"chime/internal/player"
	"chime/internal/store"
)

// DefaultDismissAfter is how long a session may ring with no interaction
// before it is stopped automatically.
const DefaultDismissAfter = 10 * time.Minute

// Session is the lifetime of one actively ringing alarm.
type Session struct {
	Alarm        model.Alarm `json:"alarm"`
	RingingSince time.Time   `json:"ringing_since"`
}

// Machine is the alarm session state machine: Idle or Ringing, at most one
// ringing session per process. Safe for concurrent use; the auto-dismiss
// timer fires on its own goroutine.
type Machine struct {
	store        store.Store
	player       player.Player
	notifier     notify.Notifier
	dismissAfter time.Duration
	now          func() time.Time
	logf         func(format string, args ...any)

	mu     sync.Mutex
	active *Session
	gen    int // increments on every transition, guards stale timers
	timer  *time.Timer
}

// Option configures a Machine.
type Option func(*Machine)

// WithDismissAfter overrides the auto-dismiss timeout. Zero disables it.
func WithDismissAfter(d time.Duration) Option {
	return func(m *Machine) { m.dismissAfter = d }
}

// WithNow injects a synthetic clock.
func WithNow(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithLogf overrides the diagnostic logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(m *Machine) { m.logf = logf }
}

// New returns an idle Machine.
func New(st store.Store, p player.Player, n notify.Notifier, opts ...Option) *Machine {
	m := &Machine{
		store:        st,
		player:       p,
		notifier:     n,
		dismissAfter: DefaultDismissAfter,
		now:          time.Now,
		logf:         log.Printf,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active returns a copy of the ringing session, or nil when idle.
func (m *Machine) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	s := *m.active
	return &s
}

// Fire transitions Idle -> Ringing and reports whether the alarm was
// accepted. A fire while already Ringing is dropped, not queued. Playback
// and notification failures do not reject the fire; the session still rings
// and remains dismissable.
func (m *Machine) Fire(ctx context.Context, a model.Alarm) bool {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return false
	}
	m.active = &Session{Alarm: a, RingingSince: m.now()}
	m.gen++
	gen := m.gen
	if m.dismissAfter > 0 {
		m.timer = time.AfterFunc(m.dismissAfter, func() { m.autoDismiss(gen) })
	}
	m.mu.Unlock()

	if err := m.notifier.Notify("⏰ "+a.Label, "Time: "+a.DisplayTime()+"\nSong: "+a.Ringtone.Title); err != nil {
		m.logf("notify: %v", err)
	}
	if err := m.player.Play(ctx, a.Ringtone.MediaID); err != nil {
		m.logf("playback: %v", err)
	}
	return true
}

// Stop transitions Ringing -> Idle. A no-op when idle.
func (m *Machine) Stop() {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return
	}
	m.clearLocked()
	m.mu.Unlock()

	m.player.Stop()
}

// Snooze transitions Ringing -> Idle and inserts a derived one-shot alarm
// into the store: fresh id, time = now + snoozeMinutes (minute-truncated),
// empty repeat, same ringtone, enabled. The original alarm is untouched.
func (m *Machine) Snooze(ctx context.Context) (*model.Alarm, error) {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return nil, model.Errorf(model.ErrNotFound, "no alarm is ringing")
	}
	a := m.active.Alarm
	m.clearLocked()
	m.mu.Unlock()

	m.player.Stop()

	at := m.now().Add(time.Duration(a.SnoozeMinutes) * time.Minute)
	derived := model.Alarm{
		Label:         a.Label + " (Snoozed)",
		Time:          model.FormatClock(at),
		Display24h:    a.Display24h,
		Ringtone:      a.Ringtone,
		Enabled:       true,
		SnoozeMinutes: a.SnoozeMinutes,
	}
	created, err := m.store.Create(ctx, derived)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// autoDismiss stops the session the timer was armed for. The generation
// check makes it a no-op against any later session.
func (m *Machine) autoDismiss(gen int) {
	m.mu.Lock()
	if m.active == nil || gen != m.gen {
		m.mu.Unlock()
		return
	}
	a := m.active.Alarm
	m.clearLocked()
	m.mu.Unlock()

	m.player.Stop()
	m.logf("alarm %s (%s) auto-dismissed after %v", a.ID, a.Label, m.dismissAfter)
}

// clearLocked resets to Idle. Callers hold m.mu.
func (m *Machine) clearLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.active = nil
	m.gen++
}
