// Package currencylist stores the durable copy of the supported currency
// list. Freshness is decided by the caller.
package currencylist

import (
	"context"

	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
)

// Key is the store key of the single list entry.
const Key = "supportedCurrenciesListCache"

// Repository handles the durable currency list.
type Repository struct {
	store kv.Store
}

// NewRepository creates a new currency list repository.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// Read returns the stored entry, or nil when none is stored or the stored
// list is empty.
func (r *Repository) Read(ctx context.Context) (*entities.SupportedCurrencyListEntry, error) {
	var entry entities.SupportedCurrencyListEntry
	found, err := kv.GetJSON(ctx, r.store, Key, &entry)
	if err != nil {
		return nil, err
	}
	if !found || len(entry.List) == 0 {
		return nil, nil
	}
	return &entry, nil
}

// Write replaces the stored entry.
func (r *Repository) Write(ctx context.Context, entry entities.SupportedCurrencyListEntry) error {
	return r.store.Set(ctx, map[string]any{Key: entry})
}
