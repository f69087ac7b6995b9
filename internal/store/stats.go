package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	Total       int    `json:"total"`
	Enabled     int    `json:"enabled"`
	Repeating   int    `json:"repeating"`
	OneShot     int    `json:"one_shot"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alarms`).Scan(&st.Total)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alarms WHERE enabled = 1`).Scan(&st.Enabled)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alarms WHERE repeat IS NOT NULL`).Scan(&st.Repeating)
	st.OneShot = st.Total - st.Repeating

	return st, nil
}
