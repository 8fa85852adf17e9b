package strategy

import "StockDash/internal/model"

// Tiers maps total momentum score to a label, highest first.
var Tiers = []struct {
	MinScore float64
	Tier     model.MomentumTier
}{
	{1.2, model.MomentumTier{Label: "Strong Bullish", Bias: 2}},
	{0.4, model.MomentumTier{Label: "Bullish", Bias: 1}},
	{-0.4, model.MomentumTier{Label: "Neutral", Bias: 0}},
	{-1.2, model.MomentumTier{Label: "Bearish", Bias: -1}},
}

// DefaultTier is the lowest tier for scores below -1.2.
var DefaultTier = model.MomentumTier{Label: "Strong Bearish", Bias: -2}

// OverboughtRSI triggers the overbought warning.
const OverboughtRSI = 80.0

func mapTier(totalScore float64) model.MomentumTier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Evaluate scores the latest readings of an indicator bundle. fast and slow
// name the EMA periods compared by the trend factor.
func Evaluate(b *model.IndicatorBundle, fast, slow int) *model.MomentumSignal {
	f1 := scoreEMATrend(b.EMA[fast], b.EMA[slow], fast, slow)
	f2 := scoreRSI(b.RSI)
	f3 := scoreMACD(b.MACD)

	factors := []model.FactorScore{f1, f2, f3}
	total := f1.Weighted + f2.Weighted + f3.Weighted

	signal := &model.MomentumSignal{
		Factors:    factors,
		TotalScore: total,
		Tier:       mapTier(total),
		AsOf:       latestTime(b),
	}
	if n := len(b.RSI); n > 0 && b.RSI[n-1].Value >= OverboughtRSI {
		signal.WarningMsg = "RSI above 80: overbought, momentum may be exhausted"
	}
	return signal
}

func latestTime(b *model.IndicatorBundle) int64 {
	var t int64
	for _, s := range b.EMA {
		if n := len(s); n > 0 && s[n-1].Time > t {
			t = s[n-1].Time
		}
	}
	if n := len(b.RSI); n > 0 && b.RSI[n-1].Time > t {
		t = b.RSI[n-1].Time
	}
	if n := len(b.MACD); n > 0 && b.MACD[n-1].Time > t {
		t = b.MACD[n-1].Time
	}
	return t
}
