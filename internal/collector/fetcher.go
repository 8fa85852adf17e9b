package collector

import (
	"context"
	"errors"

	"StockDash/internal/model"
)

// ErrNoData is returned when the provider answers without usable data.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, tf Timeframe) (model.BarSeries, error)
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
	FetchNews(ctx context.Context, symbol string, count int) ([]model.NewsItem, error)
	Name() string
}
