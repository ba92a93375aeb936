package rates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/exchangerate"
)

func TestManager_RenewPicksUpNewKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := NewManager(f.deps(), Options{Now: f.clock.Now})

	first := m.Current()
	m.FetchLatestRates(ctx, "USD")

	require.NoError(t, f.settings.SaveSetting(ctx, entities.SettingKeyUserAPIKey, "mine"))
	second := m.Renew()
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, m.Current())

	// EUR is not cached yet, so the renewed session hits the provider.
	m.FetchLatestRates(ctx, "EUR")
	assert.Equal(t, []string{"builtin", "mine"}, f.provider.keys)
}

func TestManager_RenewDropsMemoryTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := NewManager(f.deps(), Options{Now: f.clock.Now})

	m.FetchSupportedCurrencies(ctx)
	require.NoError(t, f.db.Close())
	f.provider.err = exchangerate.ErrNetwork
	m.Renew()

	// Memory is gone, the durable tier is unreadable and the provider is down.
	result := m.FetchSupportedCurrencies(ctx)
	assert.Equal(t, entities.FallbackCurrencies(), result.Currencies)
}
