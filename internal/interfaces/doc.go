// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage Interfaces
//
//   - kv.Store: Namespaced JSON values (internal/database/kv)
//   - rates.RateStore: Rate tables per base currency (internal/rates/session.go)
//   - rates.CurrencyListStore: Durable currency list tier (internal/rates/currency_list.go)
//   - http.FavouritesStore, http.HistoryStore, http.SettingsStore: Collections
//     and settings exposed over HTTP (internal/http/config.go)
//
// ## External Service Interfaces
//
//   - rates.Provider: Latest rate table from exchangerate-api.com (internal/exchangerate)
//
// ## Service Interfaces
//
//   - http.RatesService, converter.RateSource: Rate lookups through the
//     current session (internal/rates/manager.go)
//   - http.SessionRenewer: Drops per-session state after an API key change
//   - http.RefreshEnqueuer: Background cache warm-up (internal/tasks, internal/scheduler)
//
// # Adding a New Rate Provider
//
//  1. Implement rates.Provider in a new package:
//
//     type FrankfurterClient struct {
//     httpClient *http.Client
//     }
//
//     func (c *FrankfurterClient) Latest(ctx context.Context, apiKey, base string) (*exchangerate.LatestRates, error)
//
//     var _ rates.Provider = (*FrankfurterClient)(nil)
//
//  2. Pass it as rates.Deps.Provider in internal/entrypoint/app.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
