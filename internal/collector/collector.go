package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"StockDash/internal/calculator"
	"StockDash/internal/logger"
	"StockDash/internal/metrics"
	"StockDash/internal/model"
	"StockDash/internal/strategy"
)

// ErrSuperseded is returned when a newer chart load for the same view
// started while this one was in flight; its result has been discarded.
var ErrSuperseded = errors.New("chart load superseded by a newer request")

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher    Fetcher
	Indicators calculator.IndicatorConfig
	Metrics    *metrics.Metrics
	Views      *ViewRegistry
	Now        func() time.Time
	log        zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, indicators calculator.IndicatorConfig, m *metrics.Metrics) *Collector {
	return &Collector{
		Fetcher:    fetcher,
		Indicators: indicators.WithDefaults(),
		Metrics:    m,
		Views:      NewViewRegistry(),
		Now:        time.Now,
		log:        logger.Component("collector"),
	}
}

// Timeframe resolves a range/interval pair against the collector's clock.
func (c *Collector) Timeframe(rng, interval string) (Timeframe, error) {
	return ResolveTimeframe(rng, interval, c.Now())
}

// Chart fetches bars for the symbol and computes indicators, momentum signal
// and range stats. A nil cfg uses the collector's indicator config.
func (c *Collector) Chart(ctx context.Context, symbol string, tf Timeframe, cfg *calculator.IndicatorConfig) (*model.ChartResponse, error) {
	bars, err := c.Fetcher.FetchBars(ctx, symbol, tf)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), "bars", err)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	ind := c.Indicators
	if cfg != nil {
		ind = cfg.WithDefaults()
	}

	start := time.Now()
	bundle, err := calculator.ComputeIndicators(bars, &ind)
	c.Metrics.ObserveIndicatorCompute(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", symbol, err)
	}

	fast, slow := trendPeriods(ind.EMAPeriods)
	resp := &model.ChartResponse{
		Symbol:     strings.ToUpper(symbol),
		Range:      tf.Range,
		Interval:   tf.Interval,
		Bars:       bars,
		Indicators: *bundle,
		Signal:     strategy.Evaluate(bundle, fast, slow),
	}
	if st, err := calculator.CalculateStats(bars); err != nil {
		c.log.Warn().Err(err).Str("symbol", symbol).Msg("series stats unavailable")
	} else {
		resp.Stats = st
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("range", tf.Range).
		Int("bars", len(bars)).
		Int("macd_points", len(bundle.MACD)).
		Msg("chart computed")
	return resp, nil
}

// LoadChart is Chart scoped to a client view. When another load for the same
// view begins before this one completes, this result is dropped and
// ErrSuperseded returned. An empty viewID disables the check.
func (c *Collector) LoadChart(ctx context.Context, viewID, symbol string, tf Timeframe, cfg *calculator.IndicatorConfig) (*model.ChartResponse, error) {
	if viewID == "" {
		return c.Chart(ctx, symbol, tf, cfg)
	}
	view := c.Views.Get(viewID)
	gen := view.Begin()

	resp, err := c.Chart(ctx, symbol, tf, cfg)
	if !view.IsLatest(gen) {
		c.Metrics.ObserveChartSuperseded()
		c.log.Debug().Str("view", viewID).Str("symbol", symbol).Uint64("gen", gen).Msg("discarding stale chart")
		return nil, ErrSuperseded
	}
	return resp, err
}

// Quote fetches the latest quote.
func (c *Collector) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	q, err := c.Fetcher.FetchQuote(ctx, symbol)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), "quote", err)
	return q, err
}

// Search looks up tickers matching query.
func (c *Collector) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	res, err := c.Fetcher.Search(ctx, query)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), "search", err)
	return res, err
}

// News fetches recent headlines for symbol.
func (c *Collector) News(ctx context.Context, symbol string, count int) ([]model.NewsItem, error) {
	res, err := c.Fetcher.FetchNews(ctx, symbol, count)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), "news", err)
	return res, err
}

// trendPeriods picks the two shortest distinct EMA periods for the trend factor.
func trendPeriods(periods []int) (fast, slow int) {
	fast, slow = -1, -1
	for _, p := range periods {
		switch {
		case fast < 0 || p < fast:
			if fast >= 0 && fast != p {
				slow = fast
			}
			fast = p
		case p != fast && (slow < 0 || p < slow):
			slow = p
		}
	}
	return fast, slow
}
