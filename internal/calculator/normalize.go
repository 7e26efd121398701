package calculator

import (
	"errors"
	"math"

	"StockViewer/internal/model"
)

var (
	// ErrEmptySeries is returned when a series has no bar to use as the base.
	ErrEmptySeries = errors.New("series has no data in the requested period")
	// ErrDivideByZero is returned when the base value is zero or not a finite number.
	ErrDivideByZero = errors.New("first value of the series is zero or missing")
)

// Normalize rescales one column so that its first value is 100.
// Every later value is value[i] / value[0] * 100; order is preserved.
func Normalize(series model.PriceSeries, col model.Column) (model.NormalizedSeries, error) {
	if series.Empty() {
		return model.NormalizedSeries{}, ErrEmptySeries
	}
	values, err := series.Values(col)
	if err != nil {
		return model.NormalizedSeries{}, err
	}
	base := values[0]
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return model.NormalizedSeries{}, ErrDivideByZero
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base * 100
	}
	return model.NormalizedSeries{
		Symbol: series.Symbol,
		Column: col,
		Dates:  series.Dates(),
		Values: out,
	}, nil
}
