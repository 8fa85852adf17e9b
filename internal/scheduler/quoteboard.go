package scheduler

import (
	"sync"
	"time"

	"StockDash/internal/model"
)

// QuoteBoard holds the latest quote of every refreshed symbol.
type QuoteBoard struct {
	mu      sync.RWMutex
	quotes  map[string]model.Quote
	updated time.Time
}

func NewQuoteBoard() *QuoteBoard {
	return &QuoteBoard{quotes: make(map[string]model.Quote)}
}

// Set stores q under symbol.
func (b *QuoteBoard) Set(symbol string, q model.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quotes[symbol] = q
	b.updated = time.Now()
}

// Get returns the latest quote of symbol.
func (b *QuoteBoard) Get(symbol string) (model.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.quotes[symbol]
	return q, ok
}

// UpdatedAt is the time of the last Set.
func (b *QuoteBoard) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updated
}
