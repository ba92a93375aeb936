package entities

import "time"

// RateCacheEntry is a cached rate table for one base currency. Timestamp is
// epoch milliseconds and marks when the provider last updated the rates.
// FetchedAt is when the table was fetched; entries written without it age
// from Timestamp.
type RateCacheEntry struct {
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
	FetchedAt int64              `json:"fetchedAt,omitempty"`
}

// Age returns how long ago the entry was fetched at now.
func (e *RateCacheEntry) Age(now time.Time) time.Duration {
	since := e.FetchedAt
	if since == 0 {
		since = e.Timestamp
	}
	return now.Sub(time.UnixMilli(since))
}

// IsFresh reports whether the entry is younger than ttl at now.
func (e *RateCacheEntry) IsFresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) < ttl
}

// RatesWithBase returns a copy of rates that maps base to 1.
func RatesWithBase(rates map[string]float64, base string) map[string]float64 {
	out := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		out[code] = rate
	}
	if _, ok := out[base]; !ok {
		out[base] = 1
	}
	return out
}
