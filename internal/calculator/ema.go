package calculator

import (
	"fmt"
	"math"
)

// CalculateEMA computes the exponential moving average of prices over the
// given period. The first value is the simple mean of the first period prices
// and corresponds to prices[period-1]; the result has len(prices)-period+1
// values, or none when there are fewer prices than period.
func CalculateEMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema period %d: %w", period, ErrInvalidPeriod)
	}
	if err := checkFinite(prices); err != nil {
		return nil, err
	}
	return ema(prices, period), nil
}

// ema assumes a positive period and finite prices.
func ema(prices []float64, period int) []float64 {
	if len(prices) < period {
		return []float64{}
	}
	out := make([]float64, len(prices)-period+1)
	out[0] = mean(prices[:period])

	alpha := 2.0 / float64(period+1)
	for i := 1; i < len(out); i++ {
		out[i] = prices[period-1+i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// MaxAbsPrice bounds accepted prices so that deltas, averages and MACD
// differences of accepted input stay finite.
const MaxAbsPrice = math.MaxFloat64 / 4

// mean sums pre-divided terms so the total cannot overflow.
func mean(values []float64) float64 {
	n := float64(len(values))
	m := 0.0
	for _, v := range values {
		m += v / n
	}
	return m
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && math.Abs(p) <= MaxAbsPrice
}

func checkFinite(prices []float64) error {
	for i, p := range prices {
		if !validPrice(p) {
			return fmt.Errorf("price at index %d is %v: %w", i, p, ErrNonFinitePrice)
		}
	}
	return nil
}
