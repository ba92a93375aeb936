package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartrate/internal/rates"
)

func newTestRefresher(t *testing.T, fetcher RateFetcher) (*Refresher, string) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "smartrate.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	refresher, err := NewRefresher(dbPath, cfg, fetcher)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		refresher.Shutdown(ctx)
	})
	return refresher, tmpDir
}

func TestQueuePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "smartrate-tasks.db"), QueuePath(filepath.Join("data", "smartrate.db")))
	assert.Equal(t, "cache-tasks", QueuePath("cache"))
}

func TestNewRefresher(t *testing.T) {
	_, tmpDir := newTestRefresher(t, &recordingFetcher{})

	_, err := os.Stat(filepath.Join(tmpDir, "smartrate-tasks.db"))
	assert.NoError(t, err, "queue database should be created")
}

func TestRefresher_StartShutdown(t *testing.T) {
	refresher, _ := newTestRefresher(t, &recordingFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresher.Start(ctx)
	refresher.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, refresher.Shutdown(stopCtx))
	assert.True(t, refresher.Shutdown(stopCtx), "second shutdown is a no-op")
}

func TestRefresher_ShutdownWithoutStart(t *testing.T) {
	refresher, _ := newTestRefresher(t, &recordingFetcher{})
	assert.True(t, refresher.Shutdown(context.Background()))

	_, err := refresher.EnqueueRefresh(context.Background(), "USD")
	assert.Error(t, err, "queue database is closed")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 5*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, cfg, Config{}.withDefaults())
}

type recordingFetcher struct {
	mu     sync.Mutex
	bases  []string
	result rates.RatesResult
	seen   chan string
}

func (f *recordingFetcher) FetchLatestRates(_ context.Context, base string) rates.RatesResult {
	f.mu.Lock()
	f.bases = append(f.bases, base)
	f.mu.Unlock()
	if f.seen != nil {
		f.seen <- base
	}
	r := f.result
	r.Base = base
	return r
}

func TestRefreshRatesTaskConfig(t *testing.T) {
	cfg := RefreshRatesTask{Base: "USD"}.Config()

	assert.Equal(t, "refresh_rates", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Backoff)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestRefreshRatesProcessor(t *testing.T) {
	ctx := context.Background()

	ok := &recordingFetcher{result: rates.RatesResult{Rates: map[string]float64{"EUR": 0.9}}}
	require.NoError(t, RefreshRatesProcessor(ok)(ctx, RefreshRatesTask{Base: "USD"}))
	assert.Equal(t, []string{"USD"}, ok.bases)

	failure := errors.New("offline")
	stale := &recordingFetcher{result: rates.RatesResult{
		Rates: map[string]float64{"EUR": 0.9}, FromCache: true, Stale: true, Err: failure,
	}}
	err := RefreshRatesProcessor(stale)(ctx, RefreshRatesTask{Base: "USD"})
	assert.ErrorIs(t, err, failure)

	assert.Error(t, RefreshRatesProcessor(nil)(ctx, RefreshRatesTask{Base: "USD"}))
}

func TestEnqueueRefresh_RunsTasks(t *testing.T) {
	fetcher := &recordingFetcher{
		result: rates.RatesResult{Rates: map[string]float64{"EUR": 0.9}},
		seen:   make(chan string, 4),
	}
	refresher, _ := newTestRefresher(t, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresher.Start(ctx)

	ids, err := refresher.EnqueueRefresh(ctx, "usd", "EUR", "USD", "bad!")
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	got := map[string]bool{}
	for len(got) < 2 {
		select {
		case base := <-fetcher.seen:
			got[base] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("refresh tasks not executed, got %v", got)
		}
	}
	assert.Equal(t, map[string]bool{"USD": true, "EUR": true}, got)
}

func TestEnqueueRefresh_NothingToDo(t *testing.T) {
	refresher, _ := newTestRefresher(t, &recordingFetcher{})

	ids, err := refresher.EnqueueRefresh(context.Background(), "", "x")
	require.NoError(t, err)
	assert.Nil(t, ids)
}
