// Package tasks runs background rate refreshes on a SQLite-backed queue.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Refresher warms the rate cache through a durable queue kept in its own
// database, so queued refreshes survive a restart.
type Refresher struct {
	queue  *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.Mutex
	running bool
	closed  bool
	cancel  context.CancelFunc
}

// QueuePath returns the queue database path for the main database at
// mainDBPath: "data/smartrate.db" becomes "data/smartrate-tasks.db".
func QueuePath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

func openQueueDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open refresh queue %s: %w", path, err)
	}
	// One connection per worker plus the dispatcher and enqueuers
	db.SetMaxOpenConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// NewRefresher opens the queue next to mainDBPath and registers the rate
// refresh queue backed by fetcher.
func NewRefresher(mainDBPath string, cfg Config, fetcher RateFetcher) (*Refresher, error) {
	cfg = cfg.withDefaults()

	db, err := openQueueDB(QueuePath(mainDBPath), cfg.Workers)
	if err != nil {
		return nil, err
	}

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create refresh queue: %w", err)
	}
	if err := queue.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("install refresh queue schema: %w", err)
	}
	queue.Register(NewRefreshRatesQueue(fetcher))

	return &Refresher{queue: queue, db: db, config: cfg}, nil
}

// Start launches the workers and returns. They run until ctx ends or
// Shutdown is called. Starting twice is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running || r.closed {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel

	log.Printf("[TASK] Rate refresh queue started with %d workers", r.config.Workers)
	go r.queue.Start(runCtx)
}

// Shutdown waits for in-flight refreshes until ctx ends, then releases the
// queue database. It reports whether the workers drained in time.
func (r *Refresher) Shutdown(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return true
	}
	r.closed = true

	drained := true
	if r.running {
		drained = r.queue.Stop(ctx)
		r.cancel()
		r.running = false
		if drained {
			log.Println("[TASK] Rate refresh queue stopped")
		} else {
			log.Println("[TASK] Rate refresh queue stop timed out, pending refreshes resume on next start")
		}
	}

	if err := r.db.Close(); err != nil {
		log.Printf("[TASK ERROR] Closing refresh queue: %v", err)
	}
	return drained
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
