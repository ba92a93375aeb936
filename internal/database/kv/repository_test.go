package kv

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/smartrate/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kv.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.KVEntry{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db), db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestRepository_SetAndGet(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	err := repo.Set(ctx, map[string]any{
		"lastAmount": "100",
		"favorites":  []entities.FavoritePair{{From: "USD", To: "EUR"}},
	})
	require.NoError(t, err)

	values, err := repo.Get(ctx, "lastAmount", "favorites", "missing")
	require.NoError(t, err)

	assert.Len(t, values, 2)
	assert.JSONEq(t, `"100"`, string(values["lastAmount"]))
	assert.JSONEq(t, `[{"from":"USD","to":"EUR"}]`, string(values["favorites"]))
	assert.NotContains(t, values, "missing")
}

func TestRepository_Set_Overwrites(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, map[string]any{"userLanguage": "en"}))
	require.NoError(t, repo.Set(ctx, map[string]any{"userLanguage": "zh_CN"}))

	var value string
	found, err := GetJSON(ctx, repo, "userLanguage", &value)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "zh_CN", value)
}

func TestRepository_Get_NoKeys(t *testing.T) {
	repo, _ := setupTestDB(t)

	values, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestRepository_Set_EncodeError(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.Set(context.Background(), map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestRepository_Delete(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, map[string]any{"a": 1, "b": 2}))
	require.NoError(t, repo.Delete(ctx, "a", "nonexistent"))

	values, err := repo.Get(ctx, "a", "b")
	require.NoError(t, err)
	assert.NotContains(t, values, "a")
	assert.Contains(t, values, "b")
}

func TestRepository_StorageUnavailable(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	closeDB(t, db)

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = repo.Set(ctx, map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	err = repo.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestGetJSON(t *testing.T) {
	t.Run("absent key", func(t *testing.T) {
		repo, _ := setupTestDB(t)

		var dst []int
		found, err := GetJSON(context.Background(), repo, "nothing", &dst)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("undecodable value", func(t *testing.T) {
		repo, _ := setupTestDB(t)
		ctx := context.Background()
		require.NoError(t, repo.Set(ctx, map[string]any{"history": "not a list"}))

		var dst []entities.HistoryEntry
		found, err := GetJSON(ctx, repo, "history", &dst)
		assert.False(t, found)
		var typeErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &typeErr)
	})
}
