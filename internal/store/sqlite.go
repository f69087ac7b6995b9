package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"chime/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS alarms (
		id              TEXT PRIMARY KEY,
		label           TEXT NOT NULL,
		time            TEXT NOT NULL,
		display_24h     INTEGER NOT NULL DEFAULT 1,
		repeat          TEXT,
		ringtone_provider TEXT,
		ringtone_media_id TEXT,
		ringtone_title  TEXT,
		enabled         INTEGER NOT NULL DEFAULT 0,
		snooze_minutes  INTEGER NOT NULL DEFAULT 5,
		created_at      TEXT NOT NULL,
		updated_at      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_alarms_enabled ON alarms(enabled);
	CREATE INDEX IF NOT EXISTS idx_alarms_created ON alarms(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(ctx context.Context, a model.Alarm) (*model.Alarm, error) {
	if a.Ringtone.MediaID != "" && a.Ringtone.Provider == "" {
		a.Ringtone.Provider = model.ProviderYouTube
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	a.ID = s.newID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = time.Time{}

	var repeatJSON *string
	if len(a.Repeat) > 0 {
		b, _ := json.Marshal(a.Repeat)
		j := string(b)
		repeatJSON = &j
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alarms (id, label, time, display_24h, repeat, ringtone_provider, ringtone_media_id, ringtone_title, enabled, snooze_minutes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Label, a.Time, boolInt(a.Display24h), repeatJSON,
		nullable(a.Ringtone.Provider), nullable(a.Ringtone.MediaID), nullable(a.Ringtone.Title),
		boolInt(a.Enabled), a.SnoozeMinutes, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert alarm: %w", err)
	}

	return &a, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Alarm, error) {
	row := s.db.QueryRowContext(ctx, selectAlarm+` WHERE id = ?`, id)
	a, err := scanAlarm(row)
	if err == sql.ErrNoRows {
		return nil, model.Errorf(model.ErrNotFound, "alarm not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) Update(ctx context.Context, a model.Alarm) (*model.Alarm, error) {
	if a.ID == "" {
		return nil, model.Errorf(model.ErrInvalid, "id is required")
	}
	if a.Ringtone.MediaID != "" && a.Ringtone.Provider == "" {
		a.Ringtone.Provider = model.ProviderYouTube
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	a.UpdatedAt = time.Now().UTC()

	var repeatJSON *string
	if len(a.Repeat) > 0 {
		b, _ := json.Marshal(a.Repeat)
		j := string(b)
		repeatJSON = &j
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE alarms SET label = ?, time = ?, display_24h = ?, repeat = ?,
		        ringtone_provider = ?, ringtone_media_id = ?, ringtone_title = ?,
		        enabled = ?, snooze_minutes = ?, updated_at = ?
		 WHERE id = ?`,
		a.Label, a.Time, boolInt(a.Display24h), repeatJSON,
		nullable(a.Ringtone.Provider), nullable(a.Ringtone.MediaID), nullable(a.Ringtone.Title),
		boolInt(a.Enabled), a.SnoozeMinutes, a.UpdatedAt.Format(time.RFC3339), a.ID)
	if err != nil {
		return nil, fmt.Errorf("update alarm: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.Errorf(model.ErrNotFound, "alarm not found: %s", a.ID)
	}

	return s.Get(ctx, a.ID)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Errorf(model.ErrNotFound, "alarm not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) SetEnabled(ctx context.Context, id string, enabled bool) (*model.Alarm, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Enabled = enabled
	return s.Update(ctx, *a)
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Alarm, error) {
	query := selectAlarm
	if p.EnabledOnly {
		query += ` WHERE enabled = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []model.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectAlarm = `SELECT id, label, time, display_24h, repeat,
       ringtone_provider, ringtone_media_id, ringtone_title,
       enabled, snooze_minutes, created_at, updated_at
FROM alarms`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAlarm(row scanner) (model.Alarm, error) {
	var a model.Alarm
	var repeatJSON, provider, mediaID, title, updatedAt sql.NullString
	var display24h, enabled int
	var createdAt string

	err := row.Scan(
		&a.ID, &a.Label, &a.Time, &display24h, &repeatJSON,
		&provider, &mediaID, &title,
		&enabled, &a.SnoozeMinutes, &createdAt, &updatedAt,
	)
	if err != nil {
		return a, err
	}

	a.Display24h = display24h != 0
	a.Enabled = enabled != 0
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	if repeatJSON.Valid {
		json.Unmarshal([]byte(repeatJSON.String), &a.Repeat)
	}
	a.Ringtone = model.Ringtone{
		Provider: provider.String,
		MediaID:  mediaID.String,
		Title:    title.String,
	}

	return a, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
