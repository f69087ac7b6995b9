package engine

import (
	"fmt"
	"testing"
	"time"

	"chime/internal/model"
)

// 2024-01-01 was a Monday.
var monday = time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)

func alarm(id, clock string, repeat ...model.Weekday) model.Alarm {
	return model.Alarm{
		ID:            id,
		Label:         "test " + id,
		Time:          clock,
		Repeat:        repeat,
		Ringtone:      model.Ringtone{Provider: model.ProviderYouTube, MediaID: "vid-" + id},
		Enabled:       true,
		SnoozeMinutes: 5,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.logf = t.Logf
	return e
}

func TestFiresOnMatchingMinute(t *testing.T) {
	e := newTestEngine(t)
	fires := e.Tick(monday, []model.Alarm{alarm("a", "07:00")})
	if len(fires) != 1 || fires[0].ID != "a" {
		t.Fatalf("expected fire for a, got %v", fires)
	}
}

func TestNoFireOutsideMinute(t *testing.T) {
	e := newTestEngine(t)
	fires := e.Tick(monday.Add(time.Minute), []model.Alarm{alarm("a", "07:00")})
	if len(fires) != 0 {
		t.Fatalf("expected no fire at 07:01, got %v", fires)
	}
}

func TestAtMostOncePerDayThroughWholeMinute(t *testing.T) {
	e := newTestEngine(t)
	alarms := []model.Alarm{alarm("a", "07:00")}

	fired := 0
	for sec := 0; sec < 60; sec++ {
		fired += len(e.Tick(monday.Add(time.Duration(sec)*time.Second), alarms))
	}
	if fired != 1 {
		t.Fatalf("expected exactly 1 fire across the minute, got %d", fired)
	}
}

func TestOneShotFiresAgainNextDay(t *testing.T) {
	e := newTestEngine(t)
	alarms := []model.Alarm{alarm("a", "07:00")}

	if len(e.Tick(monday, alarms)) != 1 {
		t.Fatal("expected fire on day D")
	}
	if len(e.Tick(monday.Add(30*time.Second), alarms)) != 0 {
		t.Fatal("expected no re-fire at 07:00:30 same day")
	}
	if len(e.Tick(monday.AddDate(0, 0, 1), alarms)) != 1 {
		t.Fatal("expected fire again on day D+1")
	}
}

func TestWeekdayGating(t *testing.T) {
	e := newTestEngine(t)
	a := alarm("a", "09:00", model.Mon)
	mondayNine := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tuesdayNine := mondayNine.AddDate(0, 0, 1)

	if len(e.Tick(tuesdayNine, []model.Alarm{a})) != 0 {
		t.Fatal("Mon-only alarm fired on Tuesday")
	}
	if len(e.Tick(mondayNine, []model.Alarm{a})) != 1 {
		t.Fatal("Mon-only alarm did not fire on Monday")
	}
}

func TestDisabledNeverFires(t *testing.T) {
	e := newTestEngine(t)
	a := alarm("a", "07:00")
	a.Enabled = false
	if len(e.Tick(monday, []model.Alarm{a})) != 0 {
		t.Fatal("disabled alarm fired")
	}
}

func TestDisableBetweenTicks(t *testing.T) {
	e := newTestEngine(t)
	a := alarm("a", "07:00")

	// First tick happens one second before the minute, so no dedup key for
	// today was ever recorded.
	if len(e.Tick(monday.Add(-time.Second), []model.Alarm{a})) != 0 {
		t.Fatal("fired before the minute")
	}
	a.Enabled = false
	if len(e.Tick(monday, []model.Alarm{a})) != 0 {
		t.Fatal("fired after being disabled")
	}
}

func TestTwoAlarmsSameMinuteBothFire(t *testing.T) {
	e := newTestEngine(t)
	fires := e.Tick(monday, []model.Alarm{alarm("a", "07:00"), alarm("b", "07:00")})
	if len(fires) != 2 {
		t.Fatalf("expected both alarms in the fire set, got %d", len(fires))
	}
}

func TestMalformedTimeSkippedNotPanicked(t *testing.T) {
	e := newTestEngine(t)
	bad := alarm("bad", "7 o'clock")
	good := alarm("good", "07:00")

	fires := e.Tick(monday, []model.Alarm{bad, good})
	if len(fires) != 1 || fires[0].ID != "good" {
		t.Fatalf("expected only the well-formed alarm to fire, got %v", fires)
	}
}

func TestDedupEviction(t *testing.T) {
	f := newFiredSet(100, 50)

	for i := 0; i < 100; i++ {
		if !f.add(fmt.Sprintf("k%d", i)) {
			t.Fatalf("key %d rejected", i)
		}
	}
	if f.len() != 100 {
		t.Fatalf("expected 100 keys, got %d", f.len())
	}

	// 101st insertion trims the oldest 50.
	f.add("overflow")
	if f.len() != 51 {
		t.Fatalf("expected 51 keys after eviction, got %d", f.len())
	}

	// Evicted keys can fire again; retained keys cannot.
	if !f.add("k10") {
		t.Error("evicted key should be addable again")
	}
	if f.add("k99") {
		t.Error("retained key should still dedup")
	}
	if f.add("overflow") {
		t.Error("fresh key should still dedup")
	}
}
