package collector

import (
	"testing"
	"time"
)

func TestResolveTimeframe(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		rng, interval    string
		wantRange        string
		wantInterval     string
		wantLookback     time.Duration
		wantEpochPeriod1 bool
	}{
		{"", "", "1mo", "60m", 30 * 24 * time.Hour, false},
		{"1d", "", "1d", "5m", 24 * time.Hour, false},
		{"1y", "1wk", "1y", "1wk", 365 * 24 * time.Hour, false},
		{"max", "", "max", "1wk", 0, true},
		{"10y", "", "10y", "1d", 30 * 24 * time.Hour, false},
	}
	for _, tt := range tests {
		tf, err := ResolveTimeframe(tt.rng, tt.interval, now)
		if err != nil {
			t.Fatalf("%q/%q: unexpected error: %v", tt.rng, tt.interval, err)
		}
		if tf.Range != tt.wantRange || tf.Interval != tt.wantInterval {
			t.Errorf("%q/%q: got %s/%s, want %s/%s", tt.rng, tt.interval, tf.Range, tf.Interval, tt.wantRange, tt.wantInterval)
		}
		if !tf.Period2.Equal(now) {
			t.Errorf("%q: period2 = %v, want now", tt.rng, tf.Period2)
		}
		if tt.wantEpochPeriod1 {
			if tf.Period1.Unix() != 0 {
				t.Errorf("%q: period1 = %v, want epoch", tt.rng, tf.Period1)
			}
		} else if got := tf.Period2.Sub(tf.Period1); got != tt.wantLookback {
			t.Errorf("%q: lookback = %v, want %v", tt.rng, got, tt.wantLookback)
		}
	}
}

func TestResolveTimeframe_BadInterval(t *testing.T) {
	if _, err := ResolveTimeframe("1mo", "7m", time.Now()); err == nil {
		t.Fatal("expected error for unsupported interval")
	}
}
