package strategy

import (
	"math"
	"strings"
	"testing"

	"StockDash/internal/model"
)

func points(values ...float64) []model.IndicatorPoint {
	out := make([]model.IndicatorPoint, len(values))
	for i, v := range values {
		out[i] = model.IndicatorPoint{Time: int64(100 + i), Value: v}
	}
	return out
}

func macdPoints(hist ...float64) []model.MacdPoint {
	out := make([]model.MacdPoint, len(hist))
	for i, h := range hist {
		out[i] = model.MacdPoint{Time: int64(100 + i), MACD: h, Signal: 0, Histogram: h}
	}
	return out
}

func TestEvaluate_NeutralMarket(t *testing.T) {
	b := &model.IndicatorBundle{
		EMA:  map[int][]model.IndicatorPoint{9: points(100), 20: points(100)},
		RSI:  points(50),
		MACD: macdPoints(0, 0),
	}
	sig := Evaluate(b, 9, 20)
	if sig == nil {
		t.Fatal("expected non-nil signal")
	}
	if len(sig.Factors) != 3 {
		t.Fatalf("expected 3 factors, got %d", len(sig.Factors))
	}
	if sig.Tier.Label != "Neutral" {
		t.Errorf("expected Neutral, got %s (score %.3f)", sig.Tier.Label, sig.TotalScore)
	}
	if sig.WarningMsg != "" {
		t.Errorf("unexpected warning: %s", sig.WarningMsg)
	}
}

func TestEvaluate_StrongBullish(t *testing.T) {
	b := &model.IndicatorBundle{
		EMA:  map[int][]model.IndicatorPoint{9: points(105), 20: points(100)},
		RSI:  points(25),
		MACD: macdPoints(-0.2, 0.3),
	}
	sig := Evaluate(b, 9, 20)
	// 2*0.35 + 1*0.30 + 2*0.35 = 1.7
	if math.Abs(sig.TotalScore-1.7) > 1e-9 {
		t.Errorf("expected score 1.7, got %.3f", sig.TotalScore)
	}
	if sig.Tier.Label != "Strong Bullish" || sig.Tier.Bias != 2 {
		t.Errorf("expected Strong Bullish, got %+v", sig.Tier)
	}
	if !strings.Contains(sig.Factors[2].Commentary, "bullish cross") {
		t.Errorf("expected bullish cross commentary, got %s", sig.Factors[2].Commentary)
	}
}

func TestEvaluate_OverboughtWarning(t *testing.T) {
	b := &model.IndicatorBundle{
		EMA:  map[int][]model.IndicatorPoint{9: points(98), 20: points(100)},
		RSI:  points(60, 85),
		MACD: macdPoints(0.4, -0.1),
	}
	sig := Evaluate(b, 9, 20)
	if sig.WarningMsg == "" {
		t.Error("expected overbought warning")
	}
	if sig.Tier.Bias >= 0 {
		t.Errorf("expected bearish tier, got %+v (score %.3f)", sig.Tier, sig.TotalScore)
	}
	if sig.AsOf != 101 {
		t.Errorf("expected AsOf 101, got %d", sig.AsOf)
	}
}

func TestEvaluate_MissingSeries(t *testing.T) {
	sig := Evaluate(&model.IndicatorBundle{}, 9, 20)
	if sig.TotalScore != 0 {
		t.Errorf("expected zero score, got %f", sig.TotalScore)
	}
	for _, f := range sig.Factors {
		if f.Commentary != "unavailable" {
			t.Errorf("factor %s: expected unavailable, got %s", f.Name, f.Commentary)
		}
	}
	if sig.Tier.Label != "Neutral" {
		t.Errorf("expected Neutral, got %s", sig.Tier.Label)
	}
}

func TestMapTier_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{2.0, "Strong Bullish"},
		{1.2, "Strong Bullish"},
		{1.19, "Bullish"},
		{0.4, "Bullish"},
		{0, "Neutral"},
		{-0.4, "Neutral"},
		{-0.41, "Bearish"},
		{-1.2, "Bearish"},
		{-1.21, "Strong Bearish"},
	}
	for _, tt := range tests {
		if got := mapTier(tt.score); got.Label != tt.want {
			t.Errorf("mapTier(%v) = %s, want %s", tt.score, got.Label, tt.want)
		}
	}
}
