// Package prefs is the device preference store: a tiny sqlite database
// holding the one trip id this device is currently associated with. The id
// is written on trip creation or attendance confirmation, read on startup
// and removed on trip deletion. It is a hint, not a guarantee — the remote
// trip may be gone by the time it is read back.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS device_prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const currentTripKey = "current_trip_id"

// Store is a live handle to the preference database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the preference database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create prefs dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CurrentTrip returns the cached trip id. ok is false when no trip is
// cached.
func (s *Store) CurrentTrip() (id string, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT value FROM device_prefs WHERE key = ?", currentTripKey,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read current trip: %w", err)
	}
	return id, id != "", nil
}

// SaveCurrentTrip replaces the cached trip id.
func (s *Store) SaveCurrentTrip(id string) error {
	_, err := s.db.Exec(`
		INSERT INTO device_prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, currentTripKey, id)
	if err != nil {
		return fmt.Errorf("save current trip: %w", err)
	}
	return nil
}

// ClearCurrentTrip removes the cached trip id. Clearing an empty store is a
// no-op.
func (s *Store) ClearCurrentTrip() error {
	if _, err := s.db.Exec("DELETE FROM device_prefs WHERE key = ?", currentTripKey); err != nil {
		return fmt.Errorf("clear current trip: %w", err)
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create prefs schema: %w", err)
	}
	var ver int
	err := db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("insert schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if ver != schemaVersion {
		return fmt.Errorf("prefs schema version %d, expected %d", ver, schemaVersion)
	}
	return nil
}
