// Package store provides the alarm storage interface and SQLite implementation.
package store

import (
	"context"

	"chime/internal/model"
)

// ListParams holds parameters for listing alarms.
type ListParams struct {
	EnabledOnly bool
}

// Store defines the alarm storage interface. All mutations are write-through:
// the persisted representation is consistent with the in-memory set when the
// call returns. List returns a fresh snapshot, so callers may iterate while
// other callers mutate.
type Store interface {
	// Create validates and stores a new alarm, assigning it a fresh id.
	Create(ctx context.Context, a model.Alarm) (*model.Alarm, error)

	// Get retrieves an alarm by id.
	Get(ctx context.Context, id string) (*model.Alarm, error)

	// Update validates and replaces the alarm with a.ID.
	Update(ctx context.Context, a model.Alarm) (*model.Alarm, error)

	// Delete removes an alarm by id.
	Delete(ctx context.Context, id string) error

	// SetEnabled flips the enabled flag. Enabling an alarm without a
	// ringtone fails validation.
	SetEnabled(ctx context.Context, id string, enabled bool) (*model.Alarm, error)

	// List lists alarms in creation order.
	List(ctx context.Context, p ListParams) ([]model.Alarm, error)

	// Close closes the store.
	Close() error
}
