// Package engine implements the alarm trigger engine: a once-per-second
// decision over the alarm set that fires each qualifying occurrence exactly
// once.
package engine

import (
	"log"
	"time"

	"chime/internal/model"
)

const (
	// dedupCap bounds the fired-occurrence set; dedupEvict entries are
	// dropped, oldest first, when the cap is exceeded.
	dedupCap   = 100
	dedupEvict = 50
)

// Engine decides which alarms fire on a given tick. It is not safe for
// concurrent use; drive it from a single loop.
type Engine struct {
	fired *firedSet
	logf  func(format string, args ...any)
}

// New returns an Engine with the default dedup capacity.
func New() *Engine {
	return &Engine{
		fired: newFiredSet(dedupCap, dedupEvict),
		logf:  log.Printf,
	}
}

// Tick returns the alarms that must fire at now. An alarm fires when it is
// enabled, its time matches now truncated to the minute, its repeat set is
// empty or contains now's weekday, and the occurrence (id, date, time) has
// not fired before. Malformed alarms never fire and never panic; they are
// reported through the engine's logger.
func (e *Engine) Tick(now time.Time, alarms []model.Alarm) []model.Alarm {
	clock := model.FormatClock(now)
	date := now.Format("2006-01-02")
	day := model.WeekdayOf(now)

	var fires []model.Alarm
	for _, a := range alarms {
		if !a.Enabled {
			continue
		}
		if _, _, err := model.ParseClock(a.Time); err != nil {
			e.logf("skipping malformed alarm %s: %v", a.ID, err)
			continue
		}
		if a.Time != clock {
			continue
		}
		if !a.RepeatsOn(day) {
			continue
		}
		if !e.fired.add(a.ID + "|" + date + "|" + a.Time) {
			continue
		}
		fires = append(fires, a)
	}
	return fires
}
