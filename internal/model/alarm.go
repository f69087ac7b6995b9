// Package model defines the core alarm data types.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ProviderYouTube is the only ringtone provider currently supported.
const ProviderYouTube = "youtube"

// Weekday is a short English weekday name ("Mon".."Sun").
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// ValidWeekdays are the allowed repeat-day values.
var ValidWeekdays = map[Weekday]bool{
	Mon: true, Tue: true, Wed: true, Thu: true, Fri: true, Sat: true, Sun: true,
}

// WeekdayOf returns the Weekday for t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String()[:3])
}

// ParseWeekday parses a weekday name, accepting "Mon" or "Monday" in any case.
func ParseWeekday(s string) (Weekday, error) {
	if len(s) >= 3 {
		cand := Weekday(strings.ToUpper(s[:1]) + strings.ToLower(s[1:3]))
		if ValidWeekdays[cand] {
			return cand, nil
		}
	}
	return "", Errorf(ErrInvalid, "unknown weekday %q", s)
}

// Ringtone references an externally resolved media item bound to an alarm.
type Ringtone struct {
	Provider string `json:"provider"`
	MediaID  string `json:"mediaId"`
	Title    string `json:"title"`
}

// Alarm is a user-configured rule specifying a time, optional repeat weekdays,
// a ringtone, and a snooze duration.
type Alarm struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Time          string    `json:"time"` // canonical 24h "HH:MM"
	Display24h    bool      `json:"display24h"`
	Repeat        []Weekday `json:"repeat,omitempty"` // empty = one-shot semantics
	Ringtone      Ringtone  `json:"ringtone"`
	Enabled       bool      `json:"enabled"`
	SnoozeMinutes int       `json:"snoozeMinutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

var clockRE = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseClock parses a canonical "HH:MM" clock string into hour and minute.
func ParseClock(s string) (hour, min int, err error) {
	if !clockRE.MatchString(s) {
		return 0, 0, Errorf(ErrInvalid, "time %q must be HH:MM", s)
	}
	hour, _ = strconv.Atoi(s[:2])
	min, _ = strconv.Atoi(s[3:])
	if hour > 23 || min > 59 {
		return 0, 0, Errorf(ErrInvalid, "time %q out of range", s)
	}
	return hour, min, nil
}

// FormatClock renders t's time of day as canonical "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// Validate checks all field invariants. It never mutates the alarm.
func (a *Alarm) Validate() error {
	if a.Label == "" {
		return Errorf(ErrInvalid, "label is required")
	}
	if _, _, err := ParseClock(a.Time); err != nil {
		return err
	}
	seen := map[Weekday]bool{}
	for _, d := range a.Repeat {
		if !ValidWeekdays[d] {
			return Errorf(ErrInvalid, "unknown weekday %q", d)
		}
		if seen[d] {
			return Errorf(ErrInvalid, "duplicate weekday %q", d)
		}
		seen[d] = true
	}
	if a.SnoozeMinutes <= 0 {
		return Errorf(ErrInvalid, "snooze minutes must be positive")
	}
	if a.Ringtone.Provider != "" && a.Ringtone.Provider != ProviderYouTube {
		return Errorf(ErrInvalid, "unknown ringtone provider %q", a.Ringtone.Provider)
	}
	if a.Enabled && a.Ringtone.MediaID == "" {
		return Errorf(ErrInvalid, "enabled alarm requires a ringtone")
	}
	return nil
}

// RepeatsOn reports whether the alarm's repeat set contains d. An empty repeat
// set matches every day (one-shot semantics: the dedup key limits it instead).
func (a *Alarm) RepeatsOn(d Weekday) bool {
	if len(a.Repeat) == 0 {
		return true
	}
	for _, r := range a.Repeat {
		if r == d {
			return true
		}
	}
	return false
}

// DisplayTime renders the alarm time for display: the canonical 24h form, or
// 12h with an AM/PM suffix when Display24h is false. Scheduling always uses
// the canonical Time field.
func (a *Alarm) DisplayTime() string {
	if a.Display24h {
		return a.Time
	}
	hour, min, err := ParseClock(a.Time)
	if err != nil {
		return a.Time
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	if hour == 0 {
		hour = 12
	} else if hour > 12 {
		hour -= 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, min, suffix)
}
