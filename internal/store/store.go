package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions, stored in PRAGMA user_version:
//
//	0 - listings table only
//	1 - platform index
const currentSchemaVersion = 1

var (
	// ErrNotFound is returned by OpenReadOnly when the database file is missing.
	ErrNotFound = errors.New("database not found")

	// ErrNoListings is returned by OpenReadOnly when the database has no
	// listings table.
	ErrNoListings = errors.New("database has no listings table")
)

// Store wraps a SQLite database holding a listings table.
type Store struct {
	db *sql.DB
}

// Open opens the database at path for writing, creating it if needed, and
// brings its schema up to date. Opening the same file again is a no-op.
func Open(path string) (*Store, error) {
	db, err := connect(path, false)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing database for reading. The file is never
// created or migrated, so a source path with a typo fails instead of
// yielding an empty table.
func OpenReadOnly(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat database: %w", err)
	}

	db, err := connect(path, true)
	if err != nil {
		return nil, err
	}

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'listings'`).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoListings, path)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// dsn builds a go-sqlite3 URI. Writers get WAL with NORMAL sync; readers
// open with mode=ro and inherit whatever journal mode the file carries.
func dsn(path string, readOnly bool) string {
	q := url.Values{}
	q.Set("_busy_timeout", "5000")
	if readOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("_journal_mode", "WAL")
		q.Set("_synchronous", "NORMAL")
	}
	return "file:" + path + "?" + q.Encode()
}

func connect(path string, readOnly bool) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path, readOnly))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database %s: %w", path, err)
	}
	// One connection: SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// migrate applies schema.sql and then each step above the file's
// user_version.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	steps := []string{
		1: `CREATE INDEX IF NOT EXISTS idx_listings_platform ON listings(platform)`,
	}
	for v := version + 1; v <= currentSchemaVersion; v++ {
		if _, err := db.Exec(steps[v]); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v, err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("write user_version: %w", err)
	}
	return nil
}
