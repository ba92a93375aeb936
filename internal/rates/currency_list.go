package rates

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/mrlokans/smartrate/internal/entities"
)

// CurrencyListStore is the durable tier of the currency list cache.
type CurrencyListStore interface {
	Read(ctx context.Context) (*entities.SupportedCurrencyListEntry, error)
	Write(ctx context.Context, entry entities.SupportedCurrencyListEntry) error
}

// CurrencyListCache is a two-tier cache of the supported currency list. The
// memory tier lives for the session and never expires; the durable tier is
// honoured while younger than ttl.
type CurrencyListCache struct {
	store CurrencyListStore
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	memory []entities.Currency
}

// NewCurrencyListCache creates a cache over store.
func NewCurrencyListCache(store CurrencyListStore, ttl time.Duration, now func() time.Time) *CurrencyListCache {
	if now == nil {
		now = time.Now
	}
	return &CurrencyListCache{store: store, ttl: ttl, now: now}
}

// Get returns the cached list, consulting memory first and then the durable
// copy. A fresh durable copy populates memory.
func (c *CurrencyListCache) Get(ctx context.Context) ([]entities.Currency, bool) {
	c.mu.Lock()
	if c.memory != nil {
		list := slices.Clone(c.memory)
		c.mu.Unlock()
		return list, true
	}
	c.mu.Unlock()

	entry, err := c.store.Read(ctx)
	if err != nil {
		log.Printf("[RATES] Currency list cache read failed: %v", err)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	if c.now().Sub(time.UnixMilli(entry.Timestamp)) >= c.ttl {
		return nil, false
	}

	c.mu.Lock()
	c.memory = slices.Clone(entry.List)
	c.mu.Unlock()
	return entry.List, true
}

// Put stores list in both tiers, stamped with the current time. A durable
// write failure is logged and the memory tier is still updated.
func (c *CurrencyListCache) Put(ctx context.Context, list []entities.Currency) {
	c.mu.Lock()
	c.memory = slices.Clone(list)
	c.mu.Unlock()

	entry := entities.SupportedCurrencyListEntry{
		List:      list,
		Timestamp: c.now().UnixMilli(),
	}
	if err := c.store.Write(ctx, entry); err != nil {
		log.Printf("[RATES] Currency list cache write failed: %v", err)
	}
}
