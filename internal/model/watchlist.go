package model

import "time"

// WatchlistEventType identifies a watchlist mutation.
type WatchlistEventType string

const (
	WatchlistAdded    WatchlistEventType = "added"
	WatchlistRemoved  WatchlistEventType = "removed"
	WatchlistSnapshot WatchlistEventType = "snapshot"
)

// WatchlistEvent is broadcast to subscribers after every watchlist change.
type WatchlistEvent struct {
	Type    WatchlistEventType `json:"type"`
	Symbol  string             `json:"symbol,omitempty"`
	Symbols []string           `json:"symbols"`
	At      time.Time          `json:"at"`
}

// QuoteSnapshot is a quote observed by the refresh job at a point in time.
type QuoteSnapshot struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	ObservedAt    time.Time `json:"observedAt"`
}
