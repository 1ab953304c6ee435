// Package history keeps a local record of past conversion attempts in
// a SQLite database.
package history

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id TEXT PRIMARY KEY,
	source_path TEXT NOT NULL,
	output_name TEXT NOT NULL,
	succeeded INTEGER NOT NULL,
	exit_code INTEGER NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL
)
`

// Record is one completed conversion attempt. ExitCode is -1 when the
// process never started.
type Record struct {
	ID         string    `db:"id"`
	SourcePath string    `db:"source_path"`
	OutputName string    `db:"output_name"`
	Succeeded  bool      `db:"succeeded"`
	ExitCode   int       `db:"exit_code"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
}

// Store wraps the history database connection.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database at path, creating it and its parent
// directory on first use.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Add inserts one record.
func (s *Store) Add(rec Record) error {
	_, err := s.db.NamedExec(`
		INSERT INTO builds (id, source_path, output_name, succeeded, exit_code, started_at, finished_at)
		VALUES (:id, :source_path, :output_name, :succeeded, :exit_code, :started_at, :finished_at)`,
		rec)
	return err
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	records := []Record{}
	err := s.db.Select(&records, `
		SELECT id, source_path, output_name, succeeded, exit_code, started_at, finished_at
		FROM builds ORDER BY started_at DESC LIMIT ?`, n)
	return records, err
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
