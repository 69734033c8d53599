package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding one imported snapshot
type Store struct {
	conn *sql.DB
	Path string
}

// Open opens (or creates) a snapshot database with WAL mode and foreign
// keys enabled, and ensures the schema exists.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{conn: conn, Path: path}
	if err := s.ensureSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS nodes (
			id         TEXT PRIMARY KEY,
			label      TEXT NOT NULL,
			identifier TEXT NOT NULL DEFAULT '',
			type       TEXT NOT NULL,
			cluster    TEXT NOT NULL,
			position   INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS declarations (
			source   TEXT NOT NULL,
			target   TEXT NOT NULL,
			kind     TEXT NOT NULL CHECK (kind IN ('causes', 'caused_by')),
			position INTEGER NOT NULL,
			PRIMARY KEY (source, target, kind)
		);
		CREATE INDEX IF NOT EXISTS idx_declarations_source ON declarations(source, kind, position);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
