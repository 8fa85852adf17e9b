package calculator

import (
	"math"
	"testing"

	"StockDash/internal/model"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

// barsFromCloses builds daily bars starting at 2024-01-02 UTC.
func barsFromCloses(closes []float64) model.BarSeries {
	const start = int64(1704153600)
	bars := make(model.BarSeries, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:   start + int64(i)*86400,
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// wave returns n closes oscillating around 100 with a slow upward drift.
func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)*0.15 + 4*math.Sin(float64(i)/3.0)
	}
	return out
}

func rising(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 50 + float64(i)
	}
	return out
}
