package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// connParams are go-sqlite3 DSN options. The driver applies them to every
// connection it opens, so busy_timeout and foreign_keys hold on each one.
var connParams = url.Values{
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
	"_busy_timeout": {"5000"},
	"_foreign_keys": {"on"},
}

// Store persists reference table datasets in SQLite.
type Store struct {
	db  *sql.DB
	ids IDGenerator
}

// Open opens the dataset database at path, creating the file and the
// dataset tables when missing. ":memory:" opens a private in-memory
// database that lives until Close.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open dataset store %s: %w", path, err)
	}
	// SQLite has one writer, and an in-memory database belongs to a single
	// connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dataset tables in %s: %w", path, err)
	}
	return &Store{db: db, ids: UUIDv7Generator{}}, nil
}

// dsn appends connParams to path, keeping any query the caller supplied.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + connParams.Encode()
}

// Close releases the database. Closing a Store without a database is a
// no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
