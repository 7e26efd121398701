package calculator

import (
	"errors"
	"math"
	"testing"

	"StockViewer/internal/model"
)

func TestPeriodRange(t *testing.T) {
	bars := []model.OHLCV{
		{High: 105, Low: 95, Close: 100},
		{High: 120, Low: 101, Close: 110},
		{High: 111, Low: 90, Close: 92},
	}
	high, low, err := PeriodRange(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 120 || low != 90 {
		t.Errorf("expected 120/90, got %.0f/%.0f", high, low)
	}

	if _, _, err := PeriodRange(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestPeriodChange(t *testing.T) {
	pct, err := PeriodChange([]model.OHLCV{{Close: 200}, {Close: 180}, {Close: 250}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pct-25) > 1e-9 {
		t.Errorf("expected +25%%, got %.4f", pct)
	}

	if _, err := PeriodChange([]model.OHLCV{{Close: 0}, {Close: 10}}); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
	if _, err := PeriodChange(nil); err == nil {
		t.Error("expected error for empty bars")
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		price, high, low float64
		want             float64
	}{
		{150, 200, 100, 0.5},
		{100, 200, 100, 0},
		{250, 200, 100, 1},
		{50, 200, 100, 0},
		{42, 42, 42, 0.5},
	}
	for _, tt := range tests {
		got, err := RangePosition(tt.price, tt.high, tt.low)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("RangePosition(%v, %v, %v) = %v, want %v", tt.price, tt.high, tt.low, got, tt.want)
		}
	}
	if _, err := RangePosition(1, 1, 2); err == nil {
		t.Error("expected error when high < low")
	}
}
