package currencylist

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

func setupTestDB(t *testing.T) (*Repository, *kv.Repository) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "currencies.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := kv.NewRepository(db.DB)
	return NewRepository(store), store
}

func TestRepository_Read_Absent(t *testing.T) {
	repo, _ := setupTestDB(t)

	entry, err := repo.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRepository_WriteRead(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	written := entities.SupportedCurrencyListEntry{
		List:      []entities.Currency{{Code: "EUR", Name: "Euro"}, {Code: "USD", Name: "US Dollar"}},
		Timestamp: 1_700_000_000_000,
	}
	require.NoError(t, repo.Write(ctx, written))

	entry, err := repo.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, written, *entry)
}

func TestRepository_Read_EmptyListIsAbsent(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Write(ctx, entities.SupportedCurrencyListEntry{Timestamp: 1}))

	entry, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
