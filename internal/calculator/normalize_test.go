package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockViewer/internal/model"
)

func closes(values ...float64) model.PriceSeries {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(values))
	for i, v := range values {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   v,
			High:   v * 1.01,
			Low:    v * 0.99,
			Close:  v,
			Volume: 1000 * float64(i+1),
		}
	}
	return model.PriceSeries{Symbol: "7203.T", Period: model.Period1mo, Bars: bars}
}

func TestNormalize_FirstValueIs100(t *testing.T) {
	tests := [][]float64{
		{2900},
		{2900, 2950, 2875.5},
		{0.0031, 0.0029, 0.004},
		{189.84, 191.2, 185.01, 200},
	}
	for _, values := range tests {
		got, err := Normalize(closes(values...), model.ColumnClose)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", values, err)
		}
		if got.Values[0] != 100 {
			t.Errorf("%v: expected first value exactly 100, got %v", values, got.Values[0])
		}
		if len(got.Values) != len(values) {
			t.Errorf("%v: expected %d values, got %d", values, len(values), len(got.Values))
		}
	}
}

func TestNormalize_Values(t *testing.T) {
	got, err := Normalize(closes(200, 250, 150, 200), model.ColumnClose)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{100, 125, 75, 100}
	for i := range want {
		if math.Abs(got.Values[i]-want[i]) > 1e-9 {
			t.Errorf("index %d: expected %.4f, got %.4f", i, want[i], got.Values[i])
		}
	}
	if got.Symbol != "7203.T" || got.Column != model.ColumnClose {
		t.Errorf("unexpected metadata: %s %s", got.Symbol, got.Column)
	}
	if !got.Dates[0].Before(got.Dates[3]) {
		t.Error("expected chronological dates")
	}
}

func TestNormalize_ScaleInvariant(t *testing.T) {
	base := []float64{2900, 2950, 2875.5, 3010, 2999}
	ref, err := Normalize(closes(base...), model.ColumnClose)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []float64{0.01, 3, 150, 1e6} {
		scaled := make([]float64, len(base))
		for i, v := range base {
			scaled[i] = v * k
		}
		got, err := Normalize(closes(scaled...), model.ColumnClose)
		if err != nil {
			t.Fatalf("k=%v: unexpected error: %v", k, err)
		}
		for i := range ref.Values {
			if math.Abs(got.Values[i]-ref.Values[i]) > 1e-9 {
				t.Errorf("k=%v index %d: expected %.10f, got %.10f", k, i, ref.Values[i], got.Values[i])
			}
		}
	}
}

func TestNormalize_Volume(t *testing.T) {
	got, err := Normalize(closes(10, 11, 12), model.ColumnVolume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Values[0] != 100 || got.Values[2] != 300 {
		t.Errorf("unexpected volume normalization: %v", got.Values)
	}
}

func TestNormalize_EmptySeries(t *testing.T) {
	_, err := Normalize(model.PriceSeries{Symbol: "AAPL"}, model.ColumnClose)
	if !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}

func TestNormalize_InvalidBase(t *testing.T) {
	tests := []struct {
		name string
		base float64
	}{
		{"zero", 0},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}
	for _, tt := range tests {
		_, err := Normalize(closes(tt.base, 10, 11), model.ColumnClose)
		if !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%s: expected ErrDivideByZero, got %v", tt.name, err)
		}
	}
}

func TestNormalize_UnknownColumn(t *testing.T) {
	if _, err := Normalize(closes(1, 2), model.Column("Adj Close")); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
