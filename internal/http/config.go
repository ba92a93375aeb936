package http

import (
	"context"

	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/database"
	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

// RatesService serves rate tables and the currency list.
type RatesService interface {
	FetchSupportedCurrencies(ctx context.Context) rates.CurrenciesResult
	FetchLatestRates(ctx context.Context, base string) rates.RatesResult
}

// SessionRenewer starts a new session, dropping the resolved API key.
type SessionRenewer interface {
	Renew() *rates.Session
}

// ConverterService performs conversions and manages the default pair.
type ConverterService interface {
	Convert(ctx context.Context, from, to, amount string) (*converter.Conversion, error)
	DefaultPair(ctx context.Context) entities.FavoritePair
	SetPair(ctx context.Context, pair entities.FavoritePair) error
	Swap(ctx context.Context) (entities.FavoritePair, error)
}

// FavouritesStore manages favorite currency pairs.
type FavouritesStore interface {
	List(ctx context.Context) ([]entities.FavoritePair, error)
	Add(ctx context.Context, pair entities.FavoritePair) error
	Remove(ctx context.Context, pair entities.FavoritePair) error
	Toggle(ctx context.Context, pair entities.FavoritePair) (bool, error)
}

// HistoryStore manages the conversion history.
type HistoryStore interface {
	List(ctx context.Context) ([]entities.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// SettingsStore reads and writes scalar settings.
type SettingsStore interface {
	LoadSetting(ctx context.Context, key, def string) string
	SaveSetting(ctx context.Context, key, value string) error
}

// RefreshEnqueuer schedules background rate refreshes.
type RefreshEnqueuer interface {
	EnqueueRefresh(ctx context.Context, bases ...string) ([]string, error)
}

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Health checks
	Database *database.Database
	Version  string

	// Rates
	Rates   RatesService
	Session SessionRenewer

	// Optional; refresh endpoint answers 503 without it
	Refresher RefreshEnqueuer

	Converter  ConverterService
	Favourites FavouritesStore
	History    HistoryStore
	Settings   SettingsStore
}
