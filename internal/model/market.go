package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Column names one field of an OHLCV bar.
type Column string

const (
	ColumnOpen   Column = "Open"
	ColumnHigh   Column = "High"
	ColumnLow    Column = "Low"
	ColumnClose  Column = "Close"
	ColumnVolume Column = "Volume"
)

// PriceSeries holds the chronological bars of one symbol over one period.
type PriceSeries struct {
	Symbol string  `json:"symbol"`
	Period Period  `json:"period"`
	Bars   []OHLCV `json:"bars"`
}

func (s PriceSeries) Len() int    { return len(s.Bars) }
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Dates returns the trading dates of the series.
func (s PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Time
	}
	return dates
}

// Values extracts one column of the series.
func (s PriceSeries) Values(col Column) ([]float64, error) {
	var pick func(OHLCV) float64
	switch col {
	case ColumnOpen:
		pick = func(b OHLCV) float64 { return b.Open }
	case ColumnHigh:
		pick = func(b OHLCV) float64 { return b.High }
	case ColumnLow:
		pick = func(b OHLCV) float64 { return b.Low }
	case ColumnClose:
		pick = func(b OHLCV) float64 { return b.Close }
	case ColumnVolume:
		pick = func(b OHLCV) float64 { return b.Volume }
	default:
		return nil, fmt.Errorf("unknown column %q", col)
	}
	values := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		values[i] = pick(b)
	}
	return values, nil
}

// NormalizedSeries is a column rescaled so that its first value is 100.
type NormalizedSeries struct {
	Symbol string      `json:"symbol"`
	Column Column      `json:"column"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}
