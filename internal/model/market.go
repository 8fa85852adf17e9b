package model

// Bar represents a single OHLCV candlestick. Time is a unix timestamp in seconds.
type Bar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume,omitempty"`
}

// BarSeries is a chronologically ordered run of bars. Callers own it; the
// calculator only reads from it.
type BarSeries []Bar

// Closes extracts the close price of every bar, preserving order.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Quote is the latest trading snapshot for a symbol.
type Quote struct {
	Symbol             string  `json:"symbol"`
	ShortName          string  `json:"shortName,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	Exchange           string  `json:"exchange,omitempty"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	PreviousClose      float64 `json:"previousClose"`
	Change             float64 `json:"regularMarketChange"`
	ChangePercent      float64 `json:"regularMarketChangePercent"`
	DayHigh            float64 `json:"regularMarketDayHigh,omitempty"`
	DayLow             float64 `json:"regularMarketDayLow,omitempty"`
	Volume             float64 `json:"regularMarketVolume,omitempty"`
	MarketTime         int64   `json:"regularMarketTime,omitempty"`
}

// SearchResult is one ticker match from a symbol search.
type SearchResult struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname,omitempty"`
	LongName  string `json:"longname,omitempty"`
	Exchange  string `json:"exchange,omitempty"`
	QuoteType string `json:"quoteType"`
}

// NewsItem is a headline related to a symbol.
type NewsItem struct {
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	PublishedAt int64  `json:"providerPublishTime"`
}
