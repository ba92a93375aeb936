package converter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

func TestLanguageSourceCurrency(t *testing.T) {
	tests := map[string]string{
		"zh_CN": "CNY",
		"ja":    "JPY",
		"de-DE": "EUR",
		"fr":    "EUR",
		"pt_BR": "EUR",
		"nl":    "EUR",
		"en":    "USD",
		"":      "USD",
		"ko":    "USD",
	}
	for language, want := range tests {
		assert.Equal(t, want, LanguageSourceCurrency(language), language)
	}
}

func TestDefaultTargetFor(t *testing.T) {
	assert.Equal(t, "EUR", DefaultTargetFor("USD"))
	assert.Equal(t, "USD", DefaultTargetFor("CNY"))
	assert.Equal(t, "USD", DefaultTargetFor("EUR"))
}

func TestService_DefaultPair(t *testing.T) {
	svc, settingsRepo, _ := setupService(t, &stubRates{})
	ctx := context.Background()

	assert.Equal(t, entities.FavoritePair{From: "USD", To: "EUR"}, svc.DefaultPair(ctx))

	require.NoError(t, settingsRepo.SaveSetting(ctx, entities.SettingKeyUserLanguage, "ja"))
	assert.Equal(t, entities.FavoritePair{From: "JPY", To: "USD"}, svc.DefaultPair(ctx))

	require.NoError(t, settingsRepo.SaveSetting(ctx, entities.SettingKeyDefaultSourceCurrency, "gbp"))
	assert.Equal(t, entities.FavoritePair{From: "GBP", To: "USD"}, svc.DefaultPair(ctx))
}

func TestService_SetPairAndSwap(t *testing.T) {
	svc, settingsRepo, _ := setupService(t, &stubRates{})
	ctx := context.Background()

	require.NoError(t, svc.SetPair(ctx, entities.FavoritePair{From: "cny", To: "jpy"}))
	assert.Equal(t, "CNY", settingsRepo.LoadSetting(ctx, entities.SettingKeyDefaultSourceCurrency, ""))
	assert.Equal(t, "JPY", settingsRepo.LoadSetting(ctx, entities.SettingKeyDefaultTargetCurrency, ""))

	swapped, err := svc.Swap(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.FavoritePair{From: "JPY", To: "CNY"}, swapped)
	assert.Equal(t, swapped, svc.DefaultPair(ctx))

	err = svc.SetPair(ctx, entities.FavoritePair{From: "X", To: "EUR"})
	assert.ErrorIs(t, err, rates.ErrInvalidInput)
}
