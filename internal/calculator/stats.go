package calculator

import (
	"errors"
	"math"

	"StockDash/internal/model"
)

// CalculateStats scans the series for its high/low, change and where the last
// close sits within the range.
func CalculateStats(bars model.BarSeries) (*model.SeriesStats, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars provided")
	}
	st := &model.SeriesStats{
		High:  math.Inf(-1),
		Low:   math.Inf(1),
		First: bars[0].Close,
		Last:  bars[len(bars)-1].Close,
	}
	for _, b := range bars {
		if b.High > st.High {
			st.High = b.High
		}
		if b.Low < st.Low {
			st.Low = b.Low
		}
		st.TotalVolume += b.Volume
	}
	if st.First != 0 {
		if pct := (st.Last - st.First) / st.First * 100; !math.IsInf(pct, 0) {
			st.ChangePct = pct
		}
	}
	pos, err := rangePosition(st.Last, st.High, st.Low)
	if err != nil {
		return nil, err
	}
	st.Position = pos
	return st, nil
}

// rangePosition returns where current sits within [low, high] (0.0~1.0).
func rangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
