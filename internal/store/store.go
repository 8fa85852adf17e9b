// Package store persists the watchlist and the quote snapshots taken by the
// refresh job.
package store

import (
	"context"

	"StockDash/internal/model"
)

// Store persists dashboard state across restarts.
type Store interface {
	// LoadWatchlist returns the saved symbols in display order. saved is
	// false when no watchlist was ever written, which tells the caller to seed.
	LoadWatchlist(ctx context.Context) (symbols []string, saved bool, err error)
	// SaveWatchlist replaces the stored watchlist.
	SaveWatchlist(ctx context.Context, symbols []string) error
	RecordQuotes(ctx context.Context, snaps []model.QuoteSnapshot) error
	// RecentQuotes returns up to limit snapshots of symbol, newest first.
	RecentQuotes(ctx context.Context, symbol string, limit int) ([]model.QuoteSnapshot, error)
	Close() error
}
