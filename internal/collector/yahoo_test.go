package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{
  "meta":{"symbol":"AAPL","currency":"USD","fullExchangeName":"NasdaqGS","shortName":"Apple Inc.",
          "regularMarketPrice":190.5,"chartPreviousClose":188.0,"regularMarketTime":1704240000},
  "timestamp":[1704240000,1704153600,1704326400,1704326400,1704412800],
  "indicators":{"quote":[{
    "open":[186,185,null,187,188],
    "high":[191,189,190,190,191],
    "low":[184,183,185,186,187],
    "close":[190,188,null,189,190.5],
    "volume":[100,200,300,400,null]
  }]}
}],"error":null}}`

const searchBody = `{
  "quotes":[
    {"symbol":"AAPL","shortname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY","isYahooFinance":true},
    {"symbol":"AAPL240119C00190000","quoteType":"OPTION","isYahooFinance":true},
    {"symbol":"SPY","shortname":"SPDR S&P 500","exchange":"PCX","quoteType":"ETF","isYahooFinance":true},
    {"symbol":"XYZ","quoteType":"EQUITY","isYahooFinance":false}
  ],
  "news":[
    {"uuid":"n1","title":"Apple ships","publisher":"Wire","link":"https://example.com/1","providerPublishTime":1704240000}
  ]
}`

type requestLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *requestLog) first() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.paths) == 0 {
		return ""
	}
	return l.paths[0]
}

func newYahooServer(t *testing.T) (*httptest.Server, *requestLog) {
	reqs := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs.mu.Lock()
		reqs.paths = append(reqs.paths, r.URL.Path+"?"+r.URL.RawQuery)
		reqs.mu.Unlock()
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			w.Write([]byte(chartBody))
		case r.URL.Path == "/v1/finance/search":
			w.Write([]byte(searchBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

func TestYahooFetcher_FetchBars(t *testing.T) {
	srv, paths := newYahooServer(t)
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	tf, err := ResolveTimeframe("1mo", "1d", time.Unix(1704500000, 0))
	require.NoError(t, err)
	bars, err := f.FetchBars(context.Background(), "AAPL", tf)
	require.NoError(t, err)

	require.Len(t, bars, 4)
	times := []int64{bars[0].Time, bars[1].Time, bars[2].Time, bars[3].Time}
	assert.Equal(t, []int64{1704153600, 1704240000, 1704326400, 1704412800}, times)
	assert.Equal(t, 189.0, bars[2].Close, "duplicate timestamp keeps the later bar")
	assert.Equal(t, 190.5, bars[3].Close)
	assert.Equal(t, 0.0, bars[3].Volume)
	assert.Contains(t, paths.first(), "interval=1d")
}

func TestYahooFetcher_SymbolAlias(t *testing.T) {
	srv, paths := newYahooServer(t)
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	tf, _ := ResolveTimeframe("5d", "", time.Now())
	_, err := f.FetchBars(context.Background(), "spx500", tf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(paths.first(), "/v8/finance/chart/^GSPC"), paths.first())
}

func TestYahooFetcher_FetchQuote(t *testing.T) {
	srv, _ := newYahooServer(t)
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	q, err := f.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.ShortName)
	assert.Equal(t, 188.0, q.PreviousClose)
	assert.InDelta(t, 2.5, q.Change, 1e-9)
	assert.InDelta(t, 2.5/188*100, q.ChangePercent, 1e-9)
}

func TestYahooFetcher_Search(t *testing.T) {
	srv, _ := newYahooServer(t)
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	res, err := f.Search(context.Background(), "app")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "AAPL", res[0].Symbol)
	assert.Equal(t, "ETF", res[1].QuoteType)
}

func TestYahooFetcher_FetchNews(t *testing.T) {
	srv, paths := newYahooServer(t)
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	news, err := f.FetchNews(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Apple ships", news[0].Title)
	assert.EqualValues(t, 1704240000, news[0].PublishedAt)
	assert.Contains(t, paths.first(), "newsCount=5")
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	_, err := f.FetchQuote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooFetcher_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()
	f := NewYahooFetcher(newTestClient(), srv.URL, srv.URL)

	tf, _ := ResolveTimeframe("1mo", "", time.Now())
	_, err := f.FetchBars(context.Background(), "AAPL", tf)
	assert.True(t, errors.Is(err, ErrNoData))
}
