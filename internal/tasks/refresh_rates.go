package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

// RateFetcher loads the rate table for a base currency, refreshing the
// cache when it has expired.
type RateFetcher interface {
	FetchLatestRates(ctx context.Context, base string) rates.RatesResult
}

// RefreshRatesTask warms the rate cache for one base currency.
type RefreshRatesTask struct {
	Base string `json:"base"`
}

// Config returns the queue configuration for rate refresh tasks.
func (t RefreshRatesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_rates",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// RefreshRatesProcessor creates the processor for RefreshRatesTask. A stale
// or failed fetch is returned as an error so backlite retries it.
func RefreshRatesProcessor(fetcher RateFetcher) backlite.QueueProcessor[RefreshRatesTask] {
	return func(ctx context.Context, task RefreshRatesTask) error {
		if fetcher == nil {
			return fmt.Errorf("rate fetcher not configured")
		}

		result := fetcher.FetchLatestRates(ctx, task.Base)
		if result.Err != nil {
			return fmt.Errorf("refresh %s: %w", task.Base, result.Err)
		}

		source := "provider"
		if result.FromCache {
			source = "cache"
		}
		log.Printf("[TASK] Rates for %s ready (%d currencies, from %s)", task.Base, len(result.Rates), source)
		return nil
	}
}

// NewRefreshRatesQueue creates the backlite queue for rate refreshes.
func NewRefreshRatesQueue(fetcher RateFetcher) backlite.Queue {
	return backlite.NewQueue(RefreshRatesProcessor(fetcher))
}

// EnqueueRefresh adds one refresh task per distinct valid base and returns
// the task IDs.
func (r *Refresher) EnqueueRefresh(ctx context.Context, bases ...string) ([]string, error) {
	seen := make(map[string]bool, len(bases))
	var batch []backlite.Task
	for _, base := range bases {
		base = strings.ToUpper(strings.TrimSpace(base))
		if !entities.IsValidCurrencyCode(base) || seen[base] {
			continue
		}
		seen[base] = true
		batch = append(batch, RefreshRatesTask{Base: base})
	}
	if len(batch) == 0 {
		return nil, nil
	}

	ids, err := r.queue.Add(batch...).Ctx(ctx).Save()
	if err != nil {
		return nil, fmt.Errorf("enqueue rate refresh: %w", err)
	}
	return ids, nil
}
