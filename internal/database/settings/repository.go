// Package settings provides typed access to scalar user preferences.
//
// # Usage
//
//	repo := settings.NewRepository(store)
//	places := repo.LoadSetting(ctx, entities.SettingKeyDecimalPlaces, "auto")
package settings

import (
	"context"
	"log"

	"github.com/mrlokans/smartrate/internal/database/kv"
)

// Repository handles all settings operations.
type Repository struct {
	store kv.Store
}

// NewRepository creates a new settings repository.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// SaveSetting creates or overwrites a setting.
func (r *Repository) SaveSetting(ctx context.Context, key, value string) error {
	return r.store.Set(ctx, map[string]any{key: value})
}

// LoadSetting returns the stored value for key, or def when the key is
// absent or the store cannot be read. A stored empty string is returned
// as is.
func (r *Repository) LoadSetting(ctx context.Context, key, def string) string {
	var value string
	found, err := kv.GetJSON(ctx, r.store, key, &value)
	if err != nil {
		log.Printf("[SETTINGS] Failed to load %s, using default: %v", key, err)
		return def
	}
	if !found {
		return def
	}
	return value
}

// DeleteSetting removes a setting so later loads fall back to their default.
func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	return r.store.Delete(ctx, key)
}
