package collector

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"StockDash/internal/model"
)

// MockFetcher returns deterministic synthetic data for development and
// testing. Fixed Bars, when set, are returned as-is.
type MockFetcher struct {
	Price float64
	Bars  model.BarSeries
	News  []model.NewsItem
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, symbol string, tf Timeframe) (model.BarSeries, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	step := intervalDuration(tf.Interval)
	count := int(tf.Period2.Sub(tf.Period1) / step)
	if count > 2000 {
		count = 2000
	}
	if count < 1 {
		count = 1
	}
	return generateMockBars(m.basePrice(symbol), symbolSeed(symbol), tf.Period2.Truncate(step), step, count), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	price := m.basePrice(symbol)
	prev := price * 0.99
	return &model.Quote{
		Symbol:             strings.ToUpper(symbol),
		ShortName:          strings.ToUpper(symbol) + " Mock Inc.",
		Currency:           "USD",
		Exchange:           "MOCK",
		RegularMarketPrice: price,
		PreviousClose:      prev,
		Change:             price - prev,
		ChangePercent:      (price - prev) / prev * 100,
	}, nil
}

func (m *MockFetcher) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return []model.SearchResult{}, nil
	}
	return []model.SearchResult{{Symbol: q, ShortName: q + " Mock Inc.", Exchange: "MOCK", QuoteType: "EQUITY"}}, nil
}

func (m *MockFetcher) FetchNews(_ context.Context, symbol string, count int) ([]model.NewsItem, error) {
	if m.News != nil {
		if count < len(m.News) {
			return m.News[:count], nil
		}
		return m.News, nil
	}
	return []model.NewsItem{}, nil
}

func (m *MockFetcher) basePrice(symbol string) float64 {
	if m.Price > 0 {
		return m.Price
	}
	return 50 + float64(symbolSeed(symbol)%450)
}

func symbolSeed(symbol string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return h.Sum32()
}

func generateMockBars(basePrice float64, seed uint32, end time.Time, step time.Duration, count int) model.BarSeries {
	phase := float64(seed%360) * math.Pi / 180
	bars := make(model.BarSeries, count)
	for i := 0; i < count; i++ {
		x := float64(i)
		p := basePrice * (1 + 0.0005*x + 0.03*math.Sin(x/7+phase))
		bars[i] = model.Bar{
			Time:   end.Add(-time.Duration(count-1-i) * step).Unix(),
			Open:   p * 0.998,
			High:   p * 1.006,
			Low:    p * 0.994,
			Close:  p,
			Volume: 1000000 + float64((int(seed)+i)%7)*25000,
		}
	}
	return bars
}

func intervalDuration(interval string) time.Duration {
	switch interval {
	case "1m":
		return time.Minute
	case "2m":
		return 2 * time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "60m", "1h":
		return time.Hour
	case "90m":
		return 90 * time.Minute
	case "5d":
		return 5 * 24 * time.Hour
	case "1wk":
		return 7 * 24 * time.Hour
	case "1mo":
		return 30 * 24 * time.Hour
	case "3mo":
		return 90 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
