package strategy

import (
	"fmt"

	"StockDash/internal/model"
)

const (
	weightEMATrend = 0.35
	weightRSI      = 0.30
	weightMACD     = 0.35
)

func unavailable(name string, weight float64) model.FactorScore {
	return model.FactorScore{Name: name, Weight: weight, Commentary: "unavailable"}
}

// scoreEMATrend scores the spread between the fast and slow EMA at their
// latest common point.
// Weight: 0.35
func scoreEMATrend(fast, slow []model.IndicatorPoint, fastPeriod, slowPeriod int) model.FactorScore {
	name := fmt.Sprintf("EMA%d/EMA%d", fastPeriod, slowPeriod)
	if len(fast) == 0 || len(slow) == 0 {
		return unavailable(name, weightEMATrend)
	}
	f := fast[len(fast)-1].Value
	s := slow[len(slow)-1].Value
	if s == 0 {
		return unavailable(name, weightEMATrend)
	}
	spread := (f - s) / s * 100

	var score float64
	switch {
	case spread >= 3:
		score = 2.0
	case spread >= 1:
		score = 1.0
	case spread >= 0.25:
		score = 0.5
	case spread > -0.25:
		score = 0
	case spread > -1:
		score = -0.5
	case spread > -3:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weightEMATrend,
		Weighted:   score * weightEMATrend,
		Commentary: fmt.Sprintf("spread %+.2f%%", spread),
	}
}

// scoreRSI scores the latest RSI. Oversold readings score as bullish
// mean-reversion, overbought ones as bearish.
// Weight: 0.30
func scoreRSI(rsi []model.IndicatorPoint) model.FactorScore {
	if len(rsi) == 0 {
		return unavailable("RSI", weightRSI)
	}
	v := rsi[len(rsi)-1].Value

	var score float64
	var zone string
	switch {
	case v <= 20:
		score, zone = 2.0, "deeply oversold"
	case v <= 30:
		score, zone = 1.0, "oversold"
	case v < 45:
		score, zone = 0.5, "weak"
	case v <= 55:
		score, zone = 0, "neutral"
	case v < 70:
		score, zone = -0.5, "strong"
	case v < 80:
		score, zone = -1.0, "overbought"
	default:
		score, zone = -2.0, "extremely overbought"
	}

	return model.FactorScore{
		Name:       "RSI",
		RawScore:   score,
		Weight:     weightRSI,
		Weighted:   score * weightRSI,
		Commentary: fmt.Sprintf("RSI=%.0f %s", v, zone),
	}
}

// scoreMACD scores the histogram sign, with a zero cross on the last bar
// counting double.
// Weight: 0.35
func scoreMACD(macd []model.MacdPoint) model.FactorScore {
	if len(macd) == 0 {
		return unavailable("MACD", weightMACD)
	}
	last := macd[len(macd)-1]

	var score float64
	var comment string
	switch {
	case len(macd) >= 2 && macd[len(macd)-2].Histogram <= 0 && last.Histogram > 0:
		score, comment = 2.0, "bullish cross"
	case len(macd) >= 2 && macd[len(macd)-2].Histogram >= 0 && last.Histogram < 0:
		score, comment = -2.0, "bearish cross"
	case last.Histogram > 0:
		score, comment = 1.0, "above signal"
	case last.Histogram < 0:
		score, comment = -1.0, "below signal"
	default:
		comment = "flat"
	}

	return model.FactorScore{
		Name:       "MACD",
		RawScore:   score,
		Weight:     weightMACD,
		Weighted:   score * weightMACD,
		Commentary: fmt.Sprintf("%s, hist %+.3f", comment, last.Histogram),
	}
}
