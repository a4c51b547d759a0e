package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotCached is returned when an icon's SVG is not in the cache.
var ErrNotCached = errors.New("svg not cached")

// CachedSVG is one row of the SVG cache.
type CachedSVG struct {
	Hash            string
	Name            string
	Markup          string
	FetchedAtUnixMs int64
}

// GetSVG returns the cached markup for an icon hash, or ErrNotCached.
func (s *Store) GetSVG(ctx context.Context, hash string) (*CachedSVG, error) {
	if hash == "" {
		return nil, errors.New("icon hash is required")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT hash, name, markup, fetched_at_unix_ms
		FROM svg_cache
		WHERE hash = ?
	`, hash)

	var c CachedSVG
	err := row.Scan(&c.Hash, &c.Name, &c.Markup, &c.FetchedAtUnixMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("failed to read svg cache: %w", err)
	}
	return &c, nil
}

// PutSVG stores or replaces the markup for an icon hash.
func (s *Store) PutSVG(ctx context.Context, hash, name, markup string) error {
	if hash == "" {
		return errors.New("icon hash is required")
	}
	if markup == "" {
		return errors.New("markup is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO svg_cache (hash, name, markup, fetched_at_unix_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			name = excluded.name,
			markup = excluded.markup,
			fetched_at_unix_ms = excluded.fetched_at_unix_ms
	`, hash, name, markup, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write svg cache: %w", err)
	}
	return nil
}
