package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateEMA_ConcreteScenario(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	got, err := CalculateEMA(prices, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	assertClose(t, "seed", got[0], 14.0, 1e-12)
	assertClose(t, "second", got[1], 15.0, 1e-12)
}

func TestCalculateEMA_Period3(t *testing.T) {
	// multiplier = 2/(3+1) = 0.5
	// seed = (100+102+104)/3 = 102
	// 103*0.5 + 102*0.5 = 102.5
	// 105*0.5 + 102.5*0.5 = 103.75
	got, err := CalculateEMA([]float64{100, 102, 104, 103, 105}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{102.0, 102.5, 103.75}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		assertClose(t, "EMA(3)", got[i], want[i], 1e-9)
	}
}

func TestCalculateEMA_LengthAndRecurrence(t *testing.T) {
	prices := wave(120)
	for _, period := range []int{1, 2, 5, 9, 20, 50, 120} {
		got, err := CalculateEMA(prices, period)
		if err != nil {
			t.Fatalf("period %d: unexpected error: %v", period, err)
		}
		if len(got) != len(prices)-period+1 {
			t.Fatalf("period %d: expected length %d, got %d", period, len(prices)-period+1, len(got))
		}
		assertClose(t, "seed", got[0], mean(prices[:period]), 1e-9)

		alpha := 2.0 / float64(period+1)
		for i := 1; i < len(got); i++ {
			want := prices[period-1+i]*alpha + got[i-1]*(1-alpha)
			assertClose(t, "recurrence", got[i], want, 1e-9)
		}
	}
}

func TestCalculateEMA_InsufficientData(t *testing.T) {
	got, err := CalculateEMA([]float64{1, 2, 3}, 9)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestCalculateEMA_InvalidInput(t *testing.T) {
	if _, err := CalculateEMA([]float64{1, 2, 3}, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("period 0: expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := CalculateEMA([]float64{1, 2, 3}, -4); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("period -4: expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := CalculateEMA([]float64{1, math.NaN(), 3}, 2); !errors.Is(err, ErrNonFinitePrice) {
		t.Errorf("NaN: expected ErrNonFinitePrice, got %v", err)
	}
	if _, err := CalculateEMA([]float64{1, 2, math.Inf(1)}, 2); !errors.Is(err, ErrNonFinitePrice) {
		t.Errorf("Inf: expected ErrNonFinitePrice, got %v", err)
	}
}

func TestCalculateEMA_DoesNotMutateInput(t *testing.T) {
	prices := wave(30)
	orig := append([]float64(nil), prices...)
	if _, err := CalculateEMA(prices, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range prices {
		if prices[i] != orig[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestCalculateEMA_ExtremePrices(t *testing.T) {
	if _, err := CalculateEMA([]float64{math.MaxFloat64, math.MaxFloat64}, 2); !errors.Is(err, ErrNonFinitePrice) {
		t.Errorf("MaxFloat64: expected ErrNonFinitePrice, got %v", err)
	}

	prices := []float64{MaxAbsPrice, MaxAbsPrice, MaxAbsPrice, -MaxAbsPrice}
	got, err := CalculateEMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range got {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("value %d not finite: %v", i, v)
		}
	}
	if math.Abs(got[0]-MaxAbsPrice) > MaxAbsPrice*1e-12 {
		t.Errorf("seed: got %v, want %v", got[0], MaxAbsPrice)
	}
}
