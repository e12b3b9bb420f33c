package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the fit log.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the fits table and its indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS fits (
  id              INTEGER PRIMARY KEY,
  source          TEXT NOT NULL,
  shape           TEXT NOT NULL,
  formula         TEXT NOT NULL DEFAULT '',
  radius          REAL,
  shape_width     REAL NOT NULL,
  hole_width      REAL NOT NULL,
  fits            BOOLEAN NOT NULL,
  checked_at      TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fits_source ON fits(source);
CREATE INDEX IF NOT EXISTS idx_fits_checked_at ON fits(checked_at);
`
