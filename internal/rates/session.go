// Package rates coordinates the rate caches, the API key resolver and the
// provider client behind the two fetch operations the UI uses.
package rates

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/smartrate/internal/apikey"
	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/exchangerate"
)

const (
	// DefaultRatesTTL is how long a cached rate table counts as fresh.
	DefaultRatesTTL = 12 * time.Hour
	// DefaultCurrencyListTTL is how long the durable currency list is honoured.
	DefaultCurrencyListTTL = 7 * 24 * time.Hour

	currencyListBase = "USD"
)

// Provider fetches the latest rate table for a base currency.
type Provider interface {
	Latest(ctx context.Context, apiKey, base string) (*exchangerate.LatestRates, error)
}

// RateStore is the persistent rate cache.
type RateStore interface {
	Read(ctx context.Context, base string) (*entities.RateCacheEntry, error)
	Write(ctx context.Context, base string, entry entities.RateCacheEntry) error
}

// Deps are the collaborators of a session.
type Deps struct {
	Provider      Provider
	Settings      apikey.SettingLoader
	DefaultAPIKey string
	RateCache     RateStore
	CurrencyList  CurrencyListStore
}

// Options tune cache lifetimes. Zero values select the defaults.
type Options struct {
	RatesTTL        time.Duration
	CurrencyListTTL time.Duration
	Now             func() time.Time
}

// RatesResult is the outcome of FetchLatestRates. Failures are carried in
// Err rather than returned.
type RatesResult struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
	FromCache bool               `json:"isOffline"`
	Stale     bool               `json:"stale"`
	Err       error              `json:"-"`
}

// CurrenciesResult is the outcome of FetchSupportedCurrencies. Warning is set
// when Currencies is the built-in fallback list.
type CurrenciesResult struct {
	Currencies []entities.Currency `json:"currencies"`
	Warning    error               `json:"-"`
}

// MessageKey returns the UI message key for Warning, or "".
func (r CurrenciesResult) MessageKey() string {
	if r.Warning == nil {
		return ""
	}
	return MessageAPICurrencies
}

// Session holds the per-session state: the resolved API key and the memory
// tier of the currency list.
type Session struct {
	ID string

	provider   Provider
	rateCache  RateStore
	resolver   *apikey.Resolver
	currencies *CurrencyListCache
	ratesTTL   time.Duration
	now        func() time.Time
}

// NewSession creates a session with empty in-memory state.
func NewSession(deps Deps, opts Options) *Session {
	if opts.RatesTTL <= 0 {
		opts.RatesTTL = DefaultRatesTTL
	}
	if opts.CurrencyListTTL <= 0 {
		opts.CurrencyListTTL = DefaultCurrencyListTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Session{
		ID:         uuid.NewString(),
		provider:   deps.Provider,
		rateCache:  deps.RateCache,
		resolver:   apikey.NewResolver(deps.Settings, deps.DefaultAPIKey),
		currencies: NewCurrencyListCache(deps.CurrencyList, opts.CurrencyListTTL, opts.Now),
		ratesTTL:   opts.RatesTTL,
		now:        opts.Now,
	}
}

// FetchSupportedCurrencies returns the supported currency list sorted by
// code. When neither cache nor provider can supply it, the fallback list is
// returned with Warning set; the fallback is never cached.
func (s *Session) FetchSupportedCurrencies(ctx context.Context) CurrenciesResult {
	if list, ok := s.currencies.Get(ctx); ok {
		return CurrenciesResult{Currencies: list}
	}

	latest, err := s.fetch(ctx, currencyListBase)
	if err != nil {
		log.Printf("[RATES] Session %s: currency list unavailable, using fallback: %v", s.ID, err)
		return CurrenciesResult{Currencies: entities.FallbackCurrencies(), Warning: err}
	}

	rates := entities.RatesWithBase(latest.Rates, currencyListBase)
	list := make([]entities.Currency, 0, len(rates))
	for code := range rates {
		list = append(list, entities.Currency{Code: code, Name: entities.CurrencyName(code)})
	}
	entities.SortCurrencies(list)

	s.currencies.Put(ctx, list)
	return CurrenciesResult{Currencies: list}
}

// FetchLatestRates returns the rate table for base, preferring a fresh cache
// entry. On fetch failure any cached entry is returned marked stale.
func (s *Session) FetchLatestRates(ctx context.Context, base string) RatesResult {
	result := RatesResult{Base: base}
	if !entities.IsValidCurrencyCode(base) {
		result.Err = fmt.Errorf("%w: base currency %q", ErrInvalidInput, base)
		return result
	}

	cached, err := s.rateCache.Read(ctx, base)
	if err != nil {
		log.Printf("[RATES] Rate cache read for %s failed: %v", base, err)
		cached = nil
	}
	if cached != nil && cached.IsFresh(s.now(), s.ratesTTL) {
		result.Rates = entities.RatesWithBase(cached.Rates, base)
		result.Timestamp = cached.Timestamp
		result.FromCache = true
		return result
	}

	latest, err := s.fetch(ctx, base)
	if err != nil {
		result.Err = err
		if cached != nil {
			log.Printf("[RATES] Fetch for %s failed, serving stale cache: %v", base, err)
			result.Rates = entities.RatesWithBase(cached.Rates, base)
			result.Timestamp = cached.Timestamp
			result.FromCache = true
			result.Stale = true
			return result
		}
		log.Printf("[RATES] Fetch for %s failed with no cached rates: %v", base, err)
		return result
	}

	fetchedAt := s.now().UnixMilli()
	entry := entities.RateCacheEntry{
		Rates:     entities.RatesWithBase(latest.Rates, base),
		Timestamp: fetchedAt,
		FetchedAt: fetchedAt,
	}
	if !latest.LastUpdate.IsZero() {
		entry.Timestamp = latest.LastUpdate.UnixMilli()
	}
	if err := s.rateCache.Write(ctx, base, entry); err != nil {
		log.Printf("[RATES] Rate cache write for %s failed: %v", base, err)
	}

	result.Rates = entry.Rates
	result.Timestamp = entry.Timestamp
	return result
}

// APIKey exposes the session's resolved key.
func (s *Session) APIKey(ctx context.Context) (apikey.Key, error) {
	return s.resolver.Resolve(ctx)
}

func (s *Session) fetch(ctx context.Context, base string) (*exchangerate.LatestRates, error) {
	key, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	latest, err := s.provider.Latest(ctx, key.Value, base)
	if err != nil {
		return nil, &FetchError{Err: err, UserKey: key.UserSupplied}
	}
	return latest, nil
}

// SortedCodes returns the codes of rates in lexicographic order.
func SortedCodes(rates map[string]float64) []string {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
