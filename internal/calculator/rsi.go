package calculator

import "fmt"

// CalculateRSI computes the Wilder-smoothed RSI series over the given period.
// The first value needs period+1 prices and corresponds to prices[period];
// the result has len(prices)-period values, or none when data is insufficient.
func CalculateRSI(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi period %d: %w", period, ErrInvalidPeriod)
	}
	if err := checkFinite(prices); err != nil {
		return nil, err
	}
	if len(prices) <= period {
		return []float64{}, nil
	}

	out := make([]float64, 0, len(prices)-period)
	p := float64(period)

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := splitChange(prices[i] - prices[i-1])
		avgGain += gain / p
		avgLoss += loss / p
	}
	out = append(out, rsiValue(avgGain, avgLoss))

	// Wilder smoothing, (avg*(p-1)+x)/p, written so it cannot overflow.
	for i := period + 1; i < len(prices); i++ {
		gain, loss := splitChange(prices[i] - prices[i-1])
		avgGain += (gain - avgGain) / p
		avgLoss += (loss - avgLoss) / p
		out = append(out, rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func splitChange(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
