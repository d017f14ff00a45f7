package backend

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/sunucargo/platform/internal/record"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is the durable adapter: one snapshot row per collection plus a
// single-row identity marker table, in a database file that survives
// process restarts.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite creates or opens the database file at path and applies the
// required pragmas and schema. Idempotent - safe to call multiple times
// on the same file.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under interleaved reads and writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db, log: zerolog.Nop()}, nil
}

// SetLogger attaches a logger for swallowed read/write faults.
func (s *SQLite) SetLogger(log zerolog.Logger) {
	s.log = log
}

// Close closes the database file.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Read returns the snapshot for collection. A missing row or a corrupt
// snapshot reads as uninitialized so the store reseeds; faults never
// surface to the caller.
func (s *SQLite) Read(collection string) ([]record.Record, bool) {
	var data string
	err := s.db.QueryRow("SELECT data FROM collections WHERE name = ?", collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Msg("snapshot read failed, treating as uninitialized")
		return nil, false
	}

	var rows []record.Record
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Msg("corrupt snapshot, treating as uninitialized")
		return nil, false
	}
	if rows == nil {
		rows = []record.Record{}
	}
	return rows, true
}

// Write replaces the snapshot for collection. Failures are logged and
// swallowed.
func (s *SQLite) Write(collection string, rows []record.Record) {
	if rows == nil {
		rows = []record.Record{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Msg("snapshot marshal failed, dropping write")
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO collections (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		collection, string(data),
	)
	if err != nil {
		s.log.Error().Err(err).Str("collection", collection).Msg("snapshot write failed, dropping write")
	}
}

// Set mirrors the signed-in credential id into the marker table.
func (s *SQLite) Set(credentialID string) {
	_, err := s.db.Exec(
		`INSERT INTO identity_marker (slot, credential_id) VALUES (1, ?)
		 ON CONFLICT(slot) DO UPDATE SET credential_id = excluded.credential_id`,
		credentialID,
	)
	if err != nil {
		s.log.Error().Err(err).Msg("identity marker write failed")
	}
}

// Get reads the marker. False when no identity is recorded.
func (s *SQLite) Get() (string, bool) {
	var id string
	err := s.db.QueryRow("SELECT credential_id FROM identity_marker WHERE slot = 1").Scan(&id)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Clear removes the marker. No error on an already-clear marker.
func (s *SQLite) Clear() {
	if _, err := s.db.Exec("DELETE FROM identity_marker WHERE slot = 1"); err != nil {
		s.log.Error().Err(err).Msg("identity marker clear failed")
	}
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}
