// Package sqlite provides the durable storage implementation backed by
// modernc.org/sqlite. It implements the same repository interfaces as the
// memory package, so deployments choose a backing store purely through
// configuration.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/room-booking/internal/persistence"
	_ "modernc.org/sqlite"
)

// Storage wraps a SQLite database handle.
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the SQLite database identified by dsn.
func Open(dsn string) (*Storage, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: dsn must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}
	// modernc.org/sqlite serializes writes; keeping a single connection
	// avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	return &Storage{db: db, now: time.Now}, nil
}

// SetNowFunc overrides the timestamp source. Intended for tests.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL,
	capacity   INTEGER NOT NULL CHECK (capacity > 0),
	color      TEXT    NOT NULL DEFAULT '',
	created_at TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id      INTEGER NOT NULL REFERENCES rooms(id),
	room_name    TEXT    NOT NULL DEFAULT '',
	color        TEXT    NOT NULL DEFAULT '',
	start_at     TEXT    NOT NULL,
	end_at       TEXT    NOT NULL,
	duration_ns  INTEGER NOT NULL CHECK (duration_ns > 0),
	booker_name  TEXT    NOT NULL,
	booker_email TEXT    NOT NULL,
	description  TEXT    NOT NULL DEFAULT '',
	created_at   TEXT    NOT NULL,
	updated_at   TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_room_start ON bookings(room_id, start_at);

CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	token      TEXT NOT NULL UNIQUE,
	expires_at TEXT NOT NULL,
	created_at TEXT NOT NULL,
	revoked_at TEXT
);
`

// Migrate creates the schema when it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// mapError translates driver errors into persistence sentinels. The modernc
// driver exposes constraint failures only through the error text.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return persistence.ErrForeignKeyViolation
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return persistence.ErrConstraintViolation
	}
	return err
}

// timeLayout is RFC 3339 in UTC with a fixed nine-digit fraction. The fixed
// width keeps lexicographic order and chronological order identical, so SQL
// string comparisons on time columns are exact to the nanosecond.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", value, err)
	}
	return t, nil
}
