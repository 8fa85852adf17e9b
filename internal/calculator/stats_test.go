package calculator

import (
	"testing"

	"StockDash/internal/model"
)

func TestCalculateStats(t *testing.T) {
	bars := model.BarSeries{
		{Time: 1, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Time: 2, Open: 11, High: 15, Low: 10, Close: 14, Volume: 200},
		{Time: 3, Open: 14, High: 14, Low: 8, Close: 12, Volume: 300},
	}
	st, err := CalculateStats(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.High != 15 || st.Low != 8 {
		t.Errorf("expected high 15 low 8, got %v %v", st.High, st.Low)
	}
	if st.TotalVolume != 600 {
		t.Errorf("expected volume 600, got %v", st.TotalVolume)
	}
	assertClose(t, "change", st.ChangePct, (12.0-11.0)/11.0*100, 1e-9)
	assertClose(t, "position", st.Position, 4.0/7.0, 1e-9)
}

func TestCalculateStats_ChangeOverflow(t *testing.T) {
	bars := model.BarSeries{
		{Time: 1, Open: 1e-300, High: 1e-300, Low: 1e-300, Close: 1e-300},
		{Time: 2, Open: 1e300, High: 1e300, Low: 1e300, Close: 1e300},
	}
	st, err := CalculateStats(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ChangePct != 0 {
		t.Errorf("overflowing change should be left at 0, got %v", st.ChangePct)
	}
}

func TestCalculateStats_Empty(t *testing.T) {
	if _, err := CalculateStats(nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		current, high, low float64
		want               float64
		wantErr            bool
	}{
		{5, 10, 0, 0.5, false},
		{15, 10, 0, 1, false},
		{-3, 10, 0, 0, false},
		{7, 7, 7, 0.5, false},
		{5, 0, 10, 0, true},
	}
	for _, tt := range tests {
		got, err := rangePosition(tt.current, tt.high, tt.low)
		if (err != nil) != tt.wantErr {
			t.Fatalf("rangePosition(%v,%v,%v) err=%v, wantErr %v", tt.current, tt.high, tt.low, err, tt.wantErr)
		}
		if !tt.wantErr {
			assertClose(t, "position", got, tt.want, 1e-12)
		}
	}
}
