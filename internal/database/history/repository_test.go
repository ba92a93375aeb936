package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/smartrate/internal/database"
	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/entities"
)

func setupTestDB(t *testing.T) (*kv.Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "history.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return kv.NewRepository(db.DB), db
}

func entry(i int) entities.HistoryEntry {
	return entities.HistoryEntry{
		From:      "USD",
		To:        "EUR",
		Amount:    float64(i),
		Result:    float64(i) * 0.9,
		Timestamp: int64(1_700_000_000_000 + i),
	}
}

func TestRepository_Add_PrependsNewest(t *testing.T) {
	store, _ := setupTestDB(t)
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, entry(1)))
	require.NoError(t, repo.Add(ctx, entry(2)))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entry(2), entries[0])
	assert.Equal(t, entry(1), entries[1])
}

func TestRepository_Add_CapsAtLimit(t *testing.T) {
	store, _ := setupTestDB(t)
	repo := NewRepository(store)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Add(ctx, entry(i)))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, DefaultLimit)

	// Newest first; entries 1..5 were evicted.
	for idx, e := range entries {
		assert.Equal(t, entry(25-idx), e)
	}
}

func TestRepository_CustomLimit(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	repo := NewRepositoryWithLimit(store, 3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Add(ctx, entry(i)))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.HistoryEntry{entry(5), entry(4), entry(3)}, entries)

	assert.Equal(t, DefaultLimit, NewRepositoryWithLimit(store, 0).limit)
}

func TestRepository_Clear(t *testing.T) {
	store, _ := setupTestDB(t)
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, entry(1)))
	require.NoError(t, repo.Clear(ctx))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	values, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(values[Key]))
}

func TestRepository_StorageUnavailable(t *testing.T) {
	store, db := setupTestDB(t)
	repo := NewRepository(store)
	require.NoError(t, db.Close())

	err := repo.Add(context.Background(), entry(1))
	assert.ErrorIs(t, err, kv.ErrStorageUnavailable)
}
