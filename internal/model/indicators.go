package model

import (
	"encoding/json"
	"strconv"
)

// IndicatorPoint is one indicator value pinned to the bar it belongs to.
type IndicatorPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// MacdPoint is one aligned MACD triple.
type MacdPoint struct {
	Time      int64   `json:"time"`
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// IndicatorBundle holds every indicator series computed for a bar series.
// EMA holds one series per configured period, keyed by period. Each series
// starts at its own warm-up boundary; an empty series means the input was too
// short for that indicator.
type IndicatorBundle struct {
	EMA  map[int][]IndicatorPoint `json:"ema"`
	RSI  []IndicatorPoint         `json:"rsi"`
	MACD []MacdPoint              `json:"macd"`
}

// EMA9 returns the 9-period EMA series, or nil when it was not configured.
func (b *IndicatorBundle) EMA9() []IndicatorPoint { return b.EMA[9] }

// EMA20 returns the 20-period EMA series, or nil when it was not configured.
func (b *IndicatorBundle) EMA20() []IndicatorPoint { return b.EMA[20] }

// SeriesStats summarizes the price range of a bar series.
type SeriesStats struct {
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	First       float64 `json:"first"`
	Last        float64 `json:"last"`
	ChangePct   float64 `json:"changePct"`
	Position    float64 `json:"position"` // 0.0 ~ 1.0 within [Low, High]
	TotalVolume float64 `json:"totalVolume"`
}

// MarshalJSON flattens the EMA map into "ema<period>" keys so the chart layer
// receives ema9, ema20, ... next to rsi and macd.
func (b IndicatorBundle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.EMA)+2)
	for period, series := range b.EMA {
		out["ema"+strconv.Itoa(period)] = nonNilPoints(series)
	}
	out["rsi"] = nonNilPoints(b.RSI)
	if b.MACD == nil {
		out["macd"] = []MacdPoint{}
	} else {
		out["macd"] = b.MACD
	}
	return json.Marshal(out)
}

func nonNilPoints(s []IndicatorPoint) []IndicatorPoint {
	if s == nil {
		return []IndicatorPoint{}
	}
	return s
}
