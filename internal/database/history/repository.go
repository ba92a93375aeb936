// Package history stores the conversion history, newest entry first.
package history

import (
	"context"

	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
)

const (
	// Key is the store key holding the whole history.
	Key = "history"

	// DefaultLimit is the maximum number of entries kept.
	DefaultLimit = 20
)

// Repository handles all history operations. Every mutation rewrites the
// whole history; concurrent mutations are last-write-wins.
type Repository struct {
	store kv.Store
	limit int
}

// NewRepository creates a history repository capped at DefaultLimit.
func NewRepository(store kv.Store) *Repository {
	return NewRepositoryWithLimit(store, DefaultLimit)
}

// NewRepositoryWithLimit creates a history repository with a custom cap.
// Non-positive limits fall back to DefaultLimit.
func NewRepositoryWithLimit(store kv.Store, limit int) *Repository {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Repository{store: store, limit: limit}
}

// List returns the history, index 0 being the most recent entry.
func (r *Repository) List(ctx context.Context) ([]entities.HistoryEntry, error) {
	var entries []entities.HistoryEntry
	if _, err := kv.GetJSON(ctx, r.store, Key, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entities.HistoryEntry{}
	}
	return entries, nil
}

// Add prepends entry and drops the oldest entries beyond the limit.
func (r *Repository) Add(ctx context.Context, entry entities.HistoryEntry) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	entries = append([]entities.HistoryEntry{entry}, entries...)
	if len(entries) > r.limit {
		entries = entries[:r.limit]
	}
	return r.store.Set(ctx, map[string]any{Key: entries})
}

// Clear replaces the history with an empty list.
func (r *Repository) Clear(ctx context.Context) error {
	return r.store.Set(ctx, map[string]any{Key: []entities.HistoryEntry{}})
}
