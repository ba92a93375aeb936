// Package scheduler periodically warms the rate cache for the currencies the
// user actually converts from.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/smartrate/internal/entities"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// NextRunTime returns the next activation of schedule after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// FavoritesLister lists the user's favorite pairs.
type FavoritesLister interface {
	List(ctx context.Context) ([]entities.FavoritePair, error)
}

// PairSource returns the current default pair.
type PairSource interface {
	DefaultPair(ctx context.Context) entities.FavoritePair
}

// RefreshEnqueuer schedules rate refreshes for base currencies.
type RefreshEnqueuer interface {
	EnqueueRefresh(ctx context.Context, bases ...string) ([]string, error)
}

// WarmupScheduler enqueues a rate refresh for every favorite's base and the
// default source currency on a cron schedule.
type WarmupScheduler struct {
	schedule  string
	favorites FavoritesLister
	pair      PairSource
	enqueuer  RefreshEnqueuer

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewWarmupScheduler creates a scheduler for schedule.
func NewWarmupScheduler(schedule string, favorites FavoritesLister, pair PairSource, enqueuer RefreshEnqueuer) *WarmupScheduler {
	return &WarmupScheduler{
		schedule:  schedule,
		favorites: favorites,
		pair:      pair,
		enqueuer:  enqueuer,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the warm-up job and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *WarmupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Printf("[WARMUP] Run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule warm-up job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("[WARMUP] Started with schedule '%s'. Next run: %v", s.schedule, next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the cron loop.
func (s *WarmupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("[WARMUP] Stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *WarmupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, or nil when stopped.
func (s *WarmupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// Bases returns the distinct base currencies to warm: the default source
// first, then each favorite's source in list order.
func (s *WarmupScheduler) Bases(ctx context.Context) ([]string, error) {
	bases := []string{s.pair.DefaultPair(ctx).From}

	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return bases, fmt.Errorf("list favorites: %w", err)
	}
	for _, fav := range favorites {
		bases = append(bases, fav.From)
	}

	seen := make(map[string]bool, len(bases))
	out := bases[:0]
	for _, base := range bases {
		if seen[base] {
			continue
		}
		seen[base] = true
		out = append(out, base)
	}
	return out, nil
}

// RunNow enqueues one warm-up round immediately and returns the bases it
// covered. An unreadable favorites list still warms the default source.
func (s *WarmupScheduler) RunNow(ctx context.Context) ([]string, error) {
	bases, listErr := s.Bases(ctx)
	if listErr != nil {
		log.Printf("[WARMUP] %v; warming default pair only", listErr)
	}

	ids, err := s.enqueuer.EnqueueRefresh(ctx, bases...)
	if err != nil {
		return nil, err
	}
	log.Printf("[WARMUP] Enqueued %d refreshes for %v", len(ids), bases)
	return bases, nil
}
