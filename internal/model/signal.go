package model

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"rawScore"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// MomentumTier maps a total score range to a label.
type MomentumTier struct {
	Label string `json:"label"`
	Bias  int    `json:"bias"` // -2 strong bearish ... +2 strong bullish
}

// MomentumSignal summarizes the latest indicator readings of a chart.
type MomentumSignal struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"totalScore"`
	Tier       MomentumTier  `json:"tier"`
	AsOf       int64         `json:"asOf,omitempty"`
	WarningMsg string        `json:"warning,omitempty"`
}

// ChartResponse is everything the chart view needs for one symbol and range.
type ChartResponse struct {
	Symbol     string          `json:"symbol"`
	Range      string          `json:"range"`
	Interval   string          `json:"interval"`
	Bars       BarSeries       `json:"bars"`
	Indicators IndicatorBundle `json:"indicators"`
	Signal     *MomentumSignal `json:"signal"`
	Stats      *SeriesStats    `json:"stats,omitempty"`
	Watched    bool            `json:"watched"`
}
