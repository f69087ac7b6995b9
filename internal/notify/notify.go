// Package notify sends user-visible notifications when an alarm fires.
package notify

import "github.com/gen2brain/beeep"

// Notifier delivers a fire-and-forget user notification. Errors are only
// worth logging; no caller branches on them.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends OS-level desktop notifications.
type Desktop struct{}

var _ Notifier = Desktop{}

func (Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Discard swallows notifications, for tests and headless runs.
type Discard struct{}

var _ Notifier = Discard{}

func (Discard) Notify(title, body string) error { return nil }
