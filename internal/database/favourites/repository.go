// Package favourites stores the user's favourite currency pairs.
//
// The collection is an ordered set: insertion order is preserved and each
// exact (from, to) pair appears at most once. Direction matters.
//
// # Interface Implementation
//
//	var _ http.FavouritesStore = (*Repository)(nil)
//
// # Usage
//
//	repo := favourites.NewRepository(store)
//	err := repo.Add(ctx, entities.FavoritePair{From: "USD", To: "EUR"})
package favourites

import (
	"context"
	"slices"

	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
)

// Key is the store key holding the whole collection.
const Key = "favorites"

// Repository handles all favourites operations. Every mutation rewrites the
// whole collection; concurrent mutations are last-write-wins.
type Repository struct {
	store kv.Store
}

// NewRepository creates a new favourites repository.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List returns the favourites in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.FavoritePair, error) {
	var favourites []entities.FavoritePair
	if _, err := kv.GetJSON(ctx, r.store, Key, &favourites); err != nil {
		return nil, err
	}
	if favourites == nil {
		favourites = []entities.FavoritePair{}
	}
	return favourites, nil
}

func (r *Repository) save(ctx context.Context, favourites []entities.FavoritePair) error {
	return r.store.Set(ctx, map[string]any{Key: favourites})
}

// Add appends pair unless an identical pair is already stored.
func (r *Repository) Add(ctx context.Context, pair entities.FavoritePair) error {
	favourites, err := r.List(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(favourites, pair) {
		return nil
	}
	return r.save(ctx, append(favourites, pair))
}

// Remove deletes the exact pair. The reversed pair is left untouched.
func (r *Repository) Remove(ctx context.Context, pair entities.FavoritePair) error {
	favourites, err := r.List(ctx)
	if err != nil {
		return err
	}
	favourites = slices.DeleteFunc(favourites, func(p entities.FavoritePair) bool {
		return p == pair
	})
	return r.save(ctx, favourites)
}

// IsFavorite reports whether the exact pair is stored.
func (r *Repository) IsFavorite(ctx context.Context, pair entities.FavoritePair) (bool, error) {
	favourites, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(favourites, pair), nil
}

// Toggle removes pair when it is a favourite and adds it otherwise. It
// returns the new state.
func (r *Repository) Toggle(ctx context.Context, pair entities.FavoritePair) (bool, error) {
	isFavourite, err := r.IsFavorite(ctx, pair)
	if err != nil {
		return false, err
	}
	if isFavourite {
		return false, r.Remove(ctx, pair)
	}
	return true, r.Add(ctx, pair)
}
