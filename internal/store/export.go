package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chime/internal/model"
)

// Export returns the full alarm list for serialization.
func (s *SQLiteStore) Export(ctx context.Context) ([]model.Alarm, error) {
	return s.List(ctx, ListParams{})
}

// Import upserts alarms from an export, keyed by id. Importing an unmodified
// export leaves the persisted set unchanged.
func (s *SQLiteStore) Import(ctx context.Context, alarms []model.Alarm) (int, error) {
	imported := 0
	for _, a := range alarms {
		if a.ID == "" {
			if _, err := s.Create(ctx, a); err != nil {
				return imported, err
			}
			imported++
			continue
		}

		if a.Ringtone.MediaID != "" && a.Ringtone.Provider == "" {
			a.Ringtone.Provider = model.ProviderYouTube
		}
		if err := a.Validate(); err != nil {
			return imported, err
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}

		var repeatJSON *string
		if len(a.Repeat) > 0 {
			b, _ := json.Marshal(a.Repeat)
			j := string(b)
			repeatJSON = &j
		}
		var updatedAt *string
		if !a.UpdatedAt.IsZero() {
			u := a.UpdatedAt.Format(time.RFC3339)
			updatedAt = &u
		}

		_, err := s.db.ExecContext(ctx,
			`INSERT INTO alarms (id, label, time, display_24h, repeat, ringtone_provider, ringtone_media_id, ringtone_title, enabled, snooze_minutes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   label = excluded.label, time = excluded.time, display_24h = excluded.display_24h,
			   repeat = excluded.repeat, ringtone_provider = excluded.ringtone_provider,
			   ringtone_media_id = excluded.ringtone_media_id, ringtone_title = excluded.ringtone_title,
			   enabled = excluded.enabled, snooze_minutes = excluded.snooze_minutes,
			   created_at = excluded.created_at, updated_at = excluded.updated_at`,
			a.ID, a.Label, a.Time, boolInt(a.Display24h), repeatJSON,
			nullable(a.Ringtone.Provider), nullable(a.Ringtone.MediaID), nullable(a.Ringtone.Title),
			boolInt(a.Enabled), a.SnoozeMinutes, a.CreatedAt.Format(time.RFC3339), updatedAt)
		if err != nil {
			return imported, fmt.Errorf("import alarm %s: %w", a.ID, err)
		}
		imported++
	}
	return imported, nil
}
