package calculator

import "fmt"

// MACDValue is one unaligned MACD output.
type MACDValue struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// CalculateMACD computes MACD with exponential averages at every stage: the
// MACD line is fastEMA-slowEMA, the signal line is an EMA of the MACD line and
// the histogram is their difference. The first value corresponds to
// prices[MACDOffset(slow, signal)].
func CalculateMACD(prices []float64, fast, slow, signal int) ([]MACDValue, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, fmt.Errorf("macd periods %d/%d/%d: %w", fast, slow, signal, ErrInvalidPeriod)
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd fast period %d must be below slow period %d: %w", fast, slow, ErrInvalidPeriod)
	}
	if err := checkFinite(prices); err != nil {
		return nil, err
	}

	slowEMA := ema(prices, slow)
	if len(slowEMA) == 0 {
		return []MACDValue{}, nil
	}
	fastEMA := ema(prices, fast)

	// fastEMA starts at input index fast-1, slowEMA at slow-1.
	skip := slow - fast
	line := make([]float64, len(slowEMA))
	for i := range line {
		line[i] = fastEMA[i+skip] - slowEMA[i]
	}

	signalLine := ema(line, signal)
	out := make([]MACDValue, len(signalLine))
	for i, s := range signalLine {
		m := line[i+signal-1]
		out[i] = MACDValue{MACD: m, Signal: s, Histogram: m - s}
	}
	return out, nil
}
