// Package storage persists downloaded SVG markup and search history in a
// local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/iconclip/iconclip/internal/config"
)

// Store wraps the SQLite database.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// Open opens (and if necessary creates) the store at dbPath. An empty path
// uses the default location under the data directory.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = config.DefaultPaths().DatabaseFile()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection. Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// migrate creates the schema when it does not exist yet.
func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS svg_cache (
	hash               TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	markup             TEXT NOT NULL,
	fetched_at_unix_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS search_history (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id          TEXT NOT NULL,
	family              TEXT NOT NULL,
	query               TEXT NOT NULL,
	result_count        INTEGER NOT NULL,
	searched_at_unix_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_history_time
	ON search_history(searched_at_unix_ms DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
