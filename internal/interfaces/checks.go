package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/smartrate/internal/apikey"
	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/database/currencylist"
	"github.com/mrlokans/smartrate/internal/database/favourites"
	"github.com/mrlokans/smartrate/internal/database/history"
	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/database/ratecache"
	"github.com/mrlokans/smartrate/internal/database/settings"
	"github.com/mrlokans/smartrate/internal/exchangerate"
	"github.com/mrlokans/smartrate/internal/http"
	"github.com/mrlokans/smartrate/internal/rates"
	"github.com/mrlokans/smartrate/internal/scheduler"
	"github.com/mrlokans/smartrate/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// KV store implementations
var _ kv.Store = (*kv.Repository)(nil)

// Cache tiers
var _ rates.RateStore = (*ratecache.Repository)(nil)
var _ rates.CurrencyListStore = (*currencylist.Repository)(nil)

// Settings
var _ apikey.SettingLoader = (*settings.Repository)(nil)
var _ converter.SettingStore = (*settings.Repository)(nil)
var _ http.SettingsStore = (*settings.Repository)(nil)

// Collections
var _ http.FavouritesStore = (*favourites.Repository)(nil)
var _ scheduler.FavoritesLister = (*favourites.Repository)(nil)
var _ http.HistoryStore = (*history.Repository)(nil)
var _ converter.HistoryStore = (*history.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// Rate provider implementations
var _ rates.Provider = (*exchangerate.Client)(nil)

// =============================================================================
// Rates and Conversion
// =============================================================================

var _ http.RatesService = (*rates.Manager)(nil)
var _ http.SessionRenewer = (*rates.Manager)(nil)
var _ converter.RateSource = (*rates.Manager)(nil)
var _ tasks.RateFetcher = (*rates.Manager)(nil)
var _ scheduler.RateFetcher = (*rates.Manager)(nil)

var _ http.ConverterService = (*converter.Service)(nil)
var _ scheduler.PairSource = (*converter.Service)(nil)

// =============================================================================
// Background Refresh
// =============================================================================

var _ http.RefreshEnqueuer = (*tasks.Refresher)(nil)
var _ http.RefreshEnqueuer = scheduler.DirectRefresher{}
var _ scheduler.RefreshEnqueuer = (*tasks.Refresher)(nil)
