// Package sqlite provides SQLite-based storage of batch run datasets.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragma is a connection setting applied before the schema is created.
type pragma struct {
	stmt string
	what string
}

var pragmas = []pragma{
	{"PRAGMA busy_timeout = 5000", "set busy timeout"},
	{"PRAGMA foreign_keys = ON", "enable foreign keys"},
}

// walPragma is skipped for in-memory databases, which do not support WAL.
var walPragma = pragma{"PRAGMA journal_mode = WAL", "enable WAL mode"}

// Open opens the database connection and creates the schema if needed.
// The parent directory of a file database is created when missing.
func (db *DB) Open() error {
	inMemory := db.path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(db.path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; batch runs store a whole dataset per transaction.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	settings := pragmas
	if !inMemory {
		settings = append(settings[:len(settings):len(settings)], walPragma)
	}
	for _, p := range settings {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}

	db.db = conn

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// schema creates the run and record tables if they don't exist. Records
// keep their position so a stored run reads back in completion order.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	fetch_mode TEXT NOT NULL,
	ignore_words TEXT NOT NULL DEFAULT '',
	min_chars INTEGER NOT NULL DEFAULT 0,
	max_chars INTEGER NOT NULL DEFAULT -1,
	accepted INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	record_id TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	source_url TEXT NOT NULL,
	response_description TEXT NOT NULL DEFAULT '',
	images_original TEXT NOT NULL DEFAULT '',
	images_rewritten TEXT NOT NULL DEFAULT '',
	text_length INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id, position);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
