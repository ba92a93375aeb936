package scheduler

import (
	"context"
	"log"

	"github.com/mrlokans/smartrate/internal/rates"
)

// RateFetcher loads a rate table for a base currency.
type RateFetcher interface {
	FetchLatestRates(ctx context.Context, base string) rates.RatesResult
}

// DirectRefresher satisfies RefreshEnqueuer by fetching inline. It is used
// when the task queue is disabled.
type DirectRefresher struct {
	Fetcher RateFetcher
}

// EnqueueRefresh fetches each base in turn. Failures are logged; the
// returned slice lists the bases that produced rates.
func (d DirectRefresher) EnqueueRefresh(ctx context.Context, bases ...string) ([]string, error) {
	var done []string
	for _, base := range bases {
		result := d.Fetcher.FetchLatestRates(ctx, base)
		if result.Err != nil {
			log.Printf("[WARMUP] Refresh of %s failed: %v", base, result.Err)
			continue
		}
		done = append(done, base)
	}
	return done, nil
}
