package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SearchEntry is one row of the search history.
type SearchEntry struct {
	SessionID        string
	Family           string
	Query            string
	ResultCount      int
	SearchedAtUnixMs int64
}

// RecordSearch appends one search to the history. Empty queries are not
// recorded; the picker never dispatches them either.
func (s *Store) RecordSearch(ctx context.Context, e SearchEntry) error {
	if e.Query == "" {
		return errors.New("query is required")
	}
	if e.SearchedAtUnixMs == 0 {
		e.SearchedAtUnixMs = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (session_id, family, query, result_count, searched_at_unix_ms)
		VALUES (?, ?, ?, ?, ?)
	`, e.SessionID, e.Family, e.Query, e.ResultCount, e.SearchedAtUnixMs)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns the most recent searches, newest first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, family, query, result_count, searched_at_unix_ms
		FROM search_history
		ORDER BY searched_at_unix_ms DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.SessionID, &e.Family, &e.Query, &e.ResultCount, &e.SearchedAtUnixMs); err != nil {
			return nil, fmt.Errorf("failed to scan search history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
