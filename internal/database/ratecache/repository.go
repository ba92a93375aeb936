// Package ratecache stores one rate table per base currency.
//
// Entries are only ever superseded by newer writes; nothing is evicted.
package ratecache

import (
	"context"

	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
)

// KeyPrefix prefixes the base currency code in store keys.
const KeyPrefix = "ratesCache_"

// Key returns the store key for base.
func Key(base string) string {
	return KeyPrefix + base
}

// Repository handles rate cache operations.
type Repository struct {
	store kv.Store
}

// NewRepository creates a new rate cache repository.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Read returns the cached entry for base, or nil when none is stored. An
// entry without rates is treated as absent.
func (r *Repository) Read(ctx context.Context, base string) (*entities.RateCacheEntry, error) {
	var entry entities.RateCacheEntry
	found, err := kv.GetJSON(ctx, r.store, Key(base), &entry)
	if err != nil {
		return nil, err
	}
	if !found || len(entry.Rates) == 0 {
		return nil, nil
	}
	return &entry, nil
}

// Write stores entry for base, replacing any previous one.
func (r *Repository) Write(ctx context.Context, base string, entry entities.RateCacheEntry) error {
	return r.store.Set(ctx, map[string]any{Key(base): entry})
}
