package stats

import (
	"math"
	"testing"
	"time"

	"ChartPulse/internal/model"
)

func series(prices ...float64) model.PriceSeries {
	out := make(model.PriceSeries, len(prices))
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		day := base.AddDate(0, 0, i)
		out[i] = model.PricePoint{Price: p, Timestamp: day.UnixMilli()}
	}
	return out
}

func TestCompute_BasicChange(t *testing.T) {
	st, err := Compute(series(10, 12, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LatestPrice != 9 {
		t.Errorf("expected latest 9, got %v", st.LatestPrice)
	}
	if st.PreviousPrice != 12 {
		t.Errorf("expected previous 12, got %v", st.PreviousPrice)
	}
	if st.Change != -3 {
		t.Errorf("expected change -3, got %v", st.Change)
	}
	if st.ChangePercent != -25.00 {
		t.Errorf("expected change percent -25.00, got %v", st.ChangePercent)
	}
	if st.Direction != model.DirectionDown {
		t.Errorf("expected direction down, got %s", st.Direction)
	}
	if st.WindowHigh != 12 || st.WindowLow != 9 {
		t.Errorf("expected window 12/9, got %v/%v", st.WindowHigh, st.WindowLow)
	}
	if math.Abs(st.WindowAverage-31.0/3) > 1e-9 {
		t.Errorf("expected average %.4f, got %v", 31.0/3, st.WindowAverage)
	}
}

func TestCompute_SinglePoint(t *testing.T) {
	st, err := Compute(series(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.LatestPrice != 5 || st.PreviousPrice != 5 {
		t.Errorf("expected latest and previous 5, got %v/%v", st.LatestPrice, st.PreviousPrice)
	}
	if st.Change != 0 || st.ChangePercent != 0 {
		t.Errorf("expected zero change, got %v (%v%%)", st.Change, st.ChangePercent)
	}
	// Zero change classifies as up; flat stays unreachable.
	if st.Direction != model.DirectionUp {
		t.Errorf("expected direction up for zero change, got %s", st.Direction)
	}
}

func TestCompute_ZeroPreviousPrice(t *testing.T) {
	st, err := Compute(series(0, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ChangePercent != 0 {
		t.Errorf("expected zero percent when previous price is zero, got %v", st.ChangePercent)
	}
	if st.Direction != model.DirectionUp {
		t.Errorf("expected direction up, got %s", st.Direction)
	}
}

func TestCompute_WindowShorterThan24(t *testing.T) {
	st, err := Compute(series(3, 8, 1, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.WindowHigh != 8 || st.WindowLow != 1 {
		t.Errorf("expected whole-series high/low 8/1, got %v/%v", st.WindowHigh, st.WindowLow)
	}
}

func TestCompute_WindowLongerThan24(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = float64(i + 1) // 1..30 ascending
	}
	st, err := Compute(series(prices...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// High/low scan only the last 24 points (7..30); the average spans
	// the entire series.
	if st.WindowHigh != 30 {
		t.Errorf("expected window high 30, got %v", st.WindowHigh)
	}
	if st.WindowLow != 7 {
		t.Errorf("expected window low 7, got %v", st.WindowLow)
	}
	if math.Abs(st.WindowAverage-15.5) > 1e-9 {
		t.Errorf("expected average 15.5, got %v", st.WindowAverage)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	if _, err := Compute(nil); err == nil {
		t.Error("expected error for empty series")
	}
}
