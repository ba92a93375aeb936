package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

type stubFavorites struct {
	pairs []entities.FavoritePair
	err   error
}

func (s stubFavorites) List(context.Context) ([]entities.FavoritePair, error) {
	return s.pairs, s.err
}

type stubPair struct{ pair entities.FavoritePair }

func (s stubPair) DefaultPair(context.Context) entities.FavoritePair { return s.pair }

type recordingEnqueuer struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingEnqueuer) EnqueueRefresh(_ context.Context, bases ...string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, bases)
	return bases, nil
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 */6 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every hour"))
	assert.Error(t, ValidateSchedule("0 0 * * * *"))
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	next, err := NextRunTime("0 */6 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), next)
}

func TestWarmupScheduler_RunNow(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewWarmupScheduler("0 */6 * * *",
		stubFavorites{pairs: []entities.FavoritePair{
			{From: "EUR", To: "USD"},
			{From: "USD", To: "JPY"},
			{From: "GBP", To: "EUR"},
			{From: "EUR", To: "CNY"},
		}},
		stubPair{pair: entities.FavoritePair{From: "USD", To: "EUR"}},
		enqueuer,
	)

	bases, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR", "GBP"}, bases)
	assert.Equal(t, [][]string{{"USD", "EUR", "GBP"}}, enqueuer.calls)
}

func TestWarmupScheduler_RunNow_FavoritesUnavailable(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewWarmupScheduler("0 */6 * * *",
		stubFavorites{err: errors.New("storage unavailable")},
		stubPair{pair: entities.FavoritePair{From: "CNY", To: "USD"}},
		enqueuer,
	)

	bases, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CNY"}, bases)
}

func TestWarmupScheduler_StartStop(t *testing.T) {
	s := NewWarmupScheduler("0 */6 * * *", stubFavorites{}, stubPair{}, &recordingEnqueuer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRun())
	assert.True(t, s.NextRun().After(time.Now()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestWarmupScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewWarmupScheduler("nope", stubFavorites{}, stubPair{}, &recordingEnqueuer{})

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

type stubFetcher struct {
	failing map[string]bool
}

func (f stubFetcher) FetchLatestRates(_ context.Context, base string) rates.RatesResult {
	if f.failing[base] {
		return rates.RatesResult{Base: base, Err: errors.New("offline")}
	}
	return rates.RatesResult{Base: base, Rates: map[string]float64{"EUR": 0.9}}
}

func TestDirectRefresher(t *testing.T) {
	d := DirectRefresher{Fetcher: stubFetcher{failing: map[string]bool{"GBP": true}}}

	done, err := d.EnqueueRefresh(context.Background(), "USD", "GBP", "EUR")
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR"}, done)
}
