package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"StockDash/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	HTTP      *HTTPClient
	ChartURL  string            // e.g. https://query1.finance.yahoo.com
	SearchURL string            // e.g. https://query2.finance.yahoo.com
	SymbolMap map[string]string // maps friendly aliases to Yahoo tickers
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(client *HTTPClient, chartURL, searchURL string) *YahooFetcher {
	return &YahooFetcher{
		HTTP:      client,
		ChartURL:  strings.TrimRight(chartURL, "/"),
		SearchURL: strings.TrimRight(searchURL, "/"),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^IXIC",
			"DJI":    "^DJI",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}

var browserHeader = http.Header{"User-Agent": []string{"Mozilla/5.0"}}

// yahooChart is the response structure from the chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				FullExchangeName   string  `json:"fullExchangeName"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
				DayHigh            float64 `json:"regularMarketDayHigh"`
				DayLow             float64 `json:"regularMarketDayLow"`
				Volume             float64 `json:"regularMarketVolume"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, params url.Values) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.ChartURL, url.PathEscape(f.yahooSymbol(symbol)), params.Encode())
	body, err := f.HTTP.Get(ctx, u, browserHeader)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrNoData)
	}
	return &chart, nil
}

// FetchBars returns the bars of the timeframe in ascending time order. Bars
// without a close are dropped and repeated timestamps keep the last bar.
func (f *YahooFetcher) FetchBars(ctx context.Context, symbol string, tf Timeframe) (model.BarSeries, error) {
	params := url.Values{}
	params.Set("interval", tf.Interval)
	params.Set("period1", strconv.FormatInt(tf.Period1.Unix(), 10))
	params.Set("period2", strconv.FormatInt(tf.Period2.Unix(), 10))
	params.Set("includePrePost", "false")

	chart, err := f.fetchChart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrNoData)
	}
	quote := result.Indicators.Quote[0]

	bars := make(model.BarSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil {
			continue
		}
		bar := model.Bar{Time: ts, Close: *c, Open: *c, High: *c, Low: *c}
		if v := at(quote.Open, i); v != nil {
			bar.Open = *v
		}
		if v := at(quote.High, i); v != nil {
			bar.High = *v
		}
		if v := at(quote.Low, i); v != nil {
			bar.Low = *v
		}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		bars = append(bars, bar)
	}
	return normalizeBars(bars), nil
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

// normalizeBars sorts by time and collapses repeated timestamps, keeping the
// later bar.
func normalizeBars(bars model.BarSeries) model.BarSeries {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time == b.Time {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// FetchQuote builds a quote from the chart metadata of the current session.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	chart, err := f.fetchChart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, ErrNoData)
	}

	prev := meta.ChartPreviousClose
	if prev == 0 {
		prev = meta.PreviousClose
	}
	q := &model.Quote{
		Symbol:             meta.Symbol,
		ShortName:          meta.ShortName,
		Currency:           meta.Currency,
		Exchange:           meta.FullExchangeName,
		RegularMarketPrice: meta.RegularMarketPrice,
		PreviousClose:      prev,
		DayHigh:            meta.DayHigh,
		DayLow:             meta.DayLow,
		Volume:             meta.Volume,
		MarketTime:         meta.RegularMarketTime,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.ShortName == "" {
		q.ShortName = meta.LongName
	}
	if q.Exchange == "" {
		q.Exchange = meta.ExchangeName
	}
	if prev != 0 {
		q.Change = q.RegularMarketPrice - prev
		q.ChangePercent = q.Change / prev * 100
	}
	return q, nil
}

type yahooSearch struct {
	Quotes []struct {
		Symbol         string `json:"symbol"`
		ShortName      string `json:"shortname"`
		LongName       string `json:"longname"`
		Exchange       string `json:"exchange"`
		QuoteType      string `json:"quoteType"`
		IsYahooFinance bool   `json:"isYahooFinance"`
	} `json:"quotes"`
	News []struct {
		UUID                string `json:"uuid"`
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

func (f *YahooFetcher) search(ctx context.Context, query string, quotes, news int) (*yahooSearch, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", strconv.Itoa(quotes))
	params.Set("newsCount", strconv.Itoa(news))
	u := fmt.Sprintf("%s/v1/finance/search?%s", f.SearchURL, params.Encode())

	body, err := f.HTTP.Get(ctx, u, browserHeader)
	if err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}
	var res yahooSearch
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("yahoo search decode: %w", err)
	}
	return &res, nil
}

// Search returns equity and ETF matches for a free-text query.
func (f *YahooFetcher) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	res, err := f.search(ctx, query, 10, 0)
	if err != nil {
		return nil, err
	}
	out := make([]model.SearchResult, 0, len(res.Quotes))
	for _, q := range res.Quotes {
		if !q.IsYahooFinance || (q.QuoteType != "EQUITY" && q.QuoteType != "ETF") {
			continue
		}
		out = append(out, model.SearchResult{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}
	return out, nil
}

// FetchNews returns up to count headlines for a symbol.
func (f *YahooFetcher) FetchNews(ctx context.Context, symbol string, count int) ([]model.NewsItem, error) {
	res, err := f.search(ctx, f.yahooSymbol(symbol), 0, count)
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsItem, 0, len(res.News))
	for _, n := range res.News {
		out = append(out, model.NewsItem{
			UUID:        n.UUID,
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: n.ProviderPublishTime,
		})
	}
	return out, nil
}
