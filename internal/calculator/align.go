package calculator

import "StockDash/internal/model"

// AlignSeries pins values[i] to bars[offset+i].Time. The result never holds
// more than len(bars)-offset points and is empty when offset runs past the
// series.
func AlignSeries(bars model.BarSeries, values []float64, offset int) []model.IndicatorPoint {
	n := alignedLen(len(bars), len(values), offset)
	points := make([]model.IndicatorPoint, n)
	for i := 0; i < n; i++ {
		points[i] = model.IndicatorPoint{Time: bars[offset+i].Time, Value: values[i]}
	}
	return points
}

// AlignMACD is AlignSeries for MACD triples.
func AlignMACD(bars model.BarSeries, values []MACDValue, offset int) []model.MacdPoint {
	n := alignedLen(len(bars), len(values), offset)
	points := make([]model.MacdPoint, n)
	for i := 0; i < n; i++ {
		v := values[i]
		points[i] = model.MacdPoint{
			Time:      bars[offset+i].Time,
			MACD:      v.MACD,
			Signal:    v.Signal,
			Histogram: v.Histogram,
		}
	}
	return points
}

func alignedLen(bars, values, offset int) int {
	if offset < 0 || offset >= bars {
		return 0
	}
	return min(values, bars-offset)
}
