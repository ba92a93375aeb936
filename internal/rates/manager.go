package rates

import (
	"context"
	"log"
	"sync"
)

// Manager owns the current session and replaces it on demand, for example
// after the user saves a new API key.
type Manager struct {
	deps Deps
	opts Options

	mu      sync.RWMutex
	current *Session
}

// NewManager creates a manager with a fresh session.
func NewManager(deps Deps, opts Options) *Manager {
	return &Manager{deps: deps, opts: opts, current: NewSession(deps, opts)}
}

// Current returns the active session.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Renew discards the active session's in-memory state and starts a new one.
func (m *Manager) Renew() *Session {
	session := NewSession(m.deps, m.opts)

	m.mu.Lock()
	previous := m.current
	m.current = session
	m.mu.Unlock()

	log.Printf("[RATES] Session %s replaced by %s", previous.ID, session.ID)
	return session
}

// FetchSupportedCurrencies delegates to the active session.
func (m *Manager) FetchSupportedCurrencies(ctx context.Context) CurrenciesResult {
	return m.Current().FetchSupportedCurrencies(ctx)
}

// FetchLatestRates delegates to the active session.
func (m *Manager) FetchLatestRates(ctx context.Context, base string) RatesResult {
	return m.Current().FetchLatestRates(ctx, base)
}
