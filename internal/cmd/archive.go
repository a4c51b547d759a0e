package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iconclip/iconclip/internal/config"
	"github.com/iconclip/iconclip/internal/picker"
	"github.com/iconclip/iconclip/internal/storage"
)

// storeArchive adapts the SQLite store to the picker's best-effort Archive
// interface. Store failures are logged and swallowed; the copy pipeline
// must not depend on the local cache.
type storeArchive struct {
	store     *storage.Store
	sessionID string
	family    string
	logger    *slog.Logger
}

// openArchive opens the local store when caching is enabled. It returns a
// nil Archive (caching off) and a no-op closer when disabled.
func openArchive(cfg *config.Config) (picker.Archive, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	store, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	a := &storeArchive{
		store:     store,
		sessionID: uuid.NewString(),
		family:    cfg.Catalog.Family,
		logger:    slog.Default(),
	}
	return a, func() { store.Close() }, nil
}

func (a *storeArchive) CachedMarkup(ctx context.Context, hash string) (string, bool) {
	cached, err := a.store.GetSVG(ctx, hash)
	if err != nil {
		if !errors.Is(err, storage.ErrNotCached) {
			a.logger.Warn("svg cache read failed", "hash", hash, "err", err)
		}
		return "", false
	}
	return cached.Markup, true
}

func (a *storeArchive) SaveMarkup(ctx context.Context, hash, name, markup string) {
	if err := a.store.PutSVG(ctx, hash, name, markup); err != nil {
		a.logger.Warn("svg cache write failed", "hash", hash, "err", err)
	}
}

func (a *storeArchive) SaveSearch(ctx context.Context, query string, resultCount int) {
	err := a.store.RecordSearch(ctx, storage.SearchEntry{
		SessionID:   a.sessionID,
		Family:      a.family,
		Query:       query,
		ResultCount: resultCount,
	})
	if err != nil {
		a.logger.Warn("recording search failed", "query", query, "err", err)
	}
}
