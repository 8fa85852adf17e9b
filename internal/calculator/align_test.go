package calculator

import "testing"

func TestWarmupOffsets(t *testing.T) {
	if got := EMAOffset(9); got != 8 {
		t.Errorf("EMAOffset(9) = %d, want 8", got)
	}
	if got := EMAOffset(20); got != 19 {
		t.Errorf("EMAOffset(20) = %d, want 19", got)
	}
	if got := RSIOffset(14); got != 14 {
		t.Errorf("RSIOffset(14) = %d, want 14", got)
	}
	if got := MACDOffset(26, 9); got != 33 {
		t.Errorf("MACDOffset(26, 9) = %d, want 33", got)
	}
}

func TestAlignSeries_TimesFollowOffset(t *testing.T) {
	bars := barsFromCloses(wave(12))
	values := []float64{1, 2, 3, 4}
	points := AlignSeries(bars, values, 8)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Time != bars[8+i].Time {
			t.Errorf("point %d: time %d, want %d", i, p.Time, bars[8+i].Time)
		}
		if p.Value != values[i] {
			t.Errorf("point %d: value %f, want %f", i, p.Value, values[i])
		}
	}
}

func TestAlignSeries_NeverExceedsRemainingBars(t *testing.T) {
	bars := barsFromCloses(wave(10))
	points := AlignSeries(bars, make([]float64, 20), 7)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
}

func TestAlignSeries_OffsetPastSeriesIsEmpty(t *testing.T) {
	bars := barsFromCloses(wave(5))
	for _, offset := range []int{5, 6, 100, -1} {
		if points := AlignSeries(bars, []float64{1}, offset); len(points) != 0 {
			t.Errorf("offset %d: expected no points, got %d", offset, len(points))
		}
	}
	if points := AlignSeries(nil, nil, 0); len(points) != 0 {
		t.Errorf("expected no points for empty input, got %d", len(points))
	}
}

func TestAlignMACD(t *testing.T) {
	bars := barsFromCloses(wave(40))
	values := []MACDValue{{MACD: 1, Signal: 0.5, Histogram: 0.5}, {MACD: 2, Signal: 1, Histogram: 1}}
	points := AlignMACD(bars, values, 33)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Time != bars[33].Time || points[1].Time != bars[34].Time {
		t.Errorf("unexpected times: %d, %d", points[0].Time, points[1].Time)
	}
	if points[1].MACD != 2 || points[1].Signal != 1 || points[1].Histogram != 1 {
		t.Errorf("unexpected values: %+v", points[1])
	}
}
