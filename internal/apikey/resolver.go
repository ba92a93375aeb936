// Package apikey resolves the provider API key once per session.
package apikey

import (
	"context"
	"strings"
	"sync"

	"github.com/mrlokans/smartrate/internal/entities"
)

// SettingLoader reads a single setting, returning def when it is unset or
// unreadable.
type SettingLoader interface {
	LoadSetting(ctx context.Context, key, def string) string
}

// Key is a resolved provider API key.
type Key struct {
	Value string
	// UserSupplied is true when the key came from the userApiKey setting.
	UserSupplied bool
}

type call struct {
	done chan struct{}
	key  Key
}

// Resolver performs at most one settings read and then serves the cached key.
type Resolver struct {
	settings   SettingLoader
	defaultKey string

	mu       sync.Mutex
	inflight *call
	resolved *Key
}

// NewResolver creates a resolver that falls back to defaultKey.
func NewResolver(settings SettingLoader, defaultKey string) *Resolver {
	return &Resolver{settings: settings, defaultKey: defaultKey}
}

// Resolve returns the session's API key. Concurrent callers share one read;
// a caller whose ctx ends first returns early while the read completes for
// the others.
func (r *Resolver) Resolve(ctx context.Context) (Key, error) {
	r.mu.Lock()
	if r.resolved != nil {
		key := *r.resolved
		r.mu.Unlock()
		return key, nil
	}
	c := r.inflight
	if c == nil {
		c = &call{done: make(chan struct{})}
		r.inflight = c
		go r.load(context.WithoutCancel(ctx), c)
	}
	r.mu.Unlock()

	select {
	case <-c.done:
		return c.key, nil
	case <-ctx.Done():
		return Key{}, ctx.Err()
	}
}

func (r *Resolver) load(ctx context.Context, c *call) {
	key := Key{Value: r.defaultKey}
	stored := strings.TrimSpace(r.settings.LoadSetting(ctx, entities.SettingKeyUserAPIKey, ""))
	if stored != "" {
		key = Key{Value: stored, UserSupplied: true}
	}

	r.mu.Lock()
	c.key = key
	r.resolved = &key
	r.inflight = nil
	r.mu.Unlock()
	close(c.done)
}

// Resolved returns the cached key without triggering a read.
func (r *Resolver) Resolved() (Key, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved == nil {
		return Key{}, false
	}
	return *r.resolved, true
}
