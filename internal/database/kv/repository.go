// Package kv provides the persistent key/value store every other storage
// façade is built on.
//
// Values are stored JSON-encoded. Writes are last-write-wins per key and
// there is no transaction spanning several keys.
//
// # Usage
//
//	store := kv.NewRepository(db)
//	err := store.Set(ctx, map[string]any{"lastAmount": "100"})
//	values, err := store.Get(ctx, "lastAmount", "favorites")
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/smartrate/internal/entities"
)

// ErrStorageUnavailable wraps every failure of the underlying database.
// Callers treat it as a cache miss or a no-op, never as fatal.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the contract the storage façades depend on.
type Store interface {
	// Get returns the stored values for keys. Absent keys are omitted.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)

	// Set JSON-encodes and stores every value in items.
	Set(ctx context.Context, items map[string]any) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Repository implements Store on top of gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new key/value repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// Get retrieves the raw JSON values stored under keys.
func (r *Repository) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	var rows []entities.KVEntry
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, unavailable("get", err)
	}

	for _, row := range rows {
		values[row.Key] = json.RawMessage(row.Value)
	}
	return values, nil
}

// Set upserts every item. Encoding failures are reported before anything is
// written.
func (r *Repository) Set(ctx context.Context, items map[string]any) error {
	if len(items) == 0 {
		return nil
	}

	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]entities.KVEntry, 0, len(items))
	for _, key := range keys {
		encoded, err := json.Marshal(items[key])
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		rows = append(rows, entities.KVEntry{Key: key, Value: string(encoded)})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return unavailable("set", err)
	}
	return nil
}

// Delete removes keys from the store.
func (r *Repository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Delete(&entities.KVEntry{}).Error; err != nil {
		return unavailable("delete", err)
	}
	return nil
}

// GetJSON decodes the value stored under key into dst. It returns false
// when the key is absent.
func GetJSON(ctx context.Context, store Store, key string, dst any) (bool, error) {
	values, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
