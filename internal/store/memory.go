package store

import (
	"context"
	"sort"
	"sync"

	"StockDash/internal/model"
)

// MemoryStore keeps everything in process memory. Used when SQLite is not
// configured and in tests.
type MemoryStore struct {
	mu        sync.Mutex
	watchlist []string
	saved     bool
	quotes    map[string][]model.QuoteSnapshot
	maxQuotes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quotes: make(map[string][]model.QuoteSnapshot), maxQuotes: 1000}
}

func (m *MemoryStore) LoadWatchlist(_ context.Context) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.watchlist...), m.saved, nil
}

func (m *MemoryStore) SaveWatchlist(_ context.Context, symbols []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchlist = append([]string(nil), symbols...)
	m.saved = true
	return nil
}

func (m *MemoryStore) RecordQuotes(_ context.Context, snaps []model.QuoteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range snaps {
		q := append(m.quotes[s.Symbol], s)
		if len(q) > m.maxQuotes {
			q = q[len(q)-m.maxQuotes:]
		}
		m.quotes[s.Symbol] = q
	}
	return nil
}

func (m *MemoryStore) RecentQuotes(_ context.Context, symbol string, limit int) ([]model.QuoteSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.quotes[symbol]
	out := make([]model.QuoteSnapshot, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.After(out[j].ObservedAt) })
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
