package chart

import (
	"fmt"

	"StockViewer/internal/calculator"
	"StockViewer/internal/model"
)

// Chart ids. They become DOM ids and JS identifiers in the rendered page.
const (
	IDPriceVolume = "priceVolume"
	IDBenchmark   = "benchmark"
	IDRelative    = "relative"
)

const (
	dateTitle     = "日付"
	priceTitle    = "価格"
	volumeTitle   = "出来高"
	relativeTitle = "相対値"
)

func closes(b model.OHLCV) float64  { return b.Close }
func opens(b model.OHLCV) float64   { return b.Open }
func highs(b model.OHLCV) float64   { return b.High }
func lows(b model.OHLCV) float64    { return b.Low }
func volumes(b model.OHLCV) float64 { return b.Volume }

var priceColumns = []struct {
	Name string
	Pick func(model.OHLCV) float64
}{
	{"終値", closes},
	{"始値", opens},
	{"高値", highs},
	{"安値", lows},
}

// pick reads one field of every bar.
func pick(s model.PriceSeries, field func(model.OHLCV) float64) []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = field(b)
	}
	return out
}

func priceTraces(s model.PriceSeries) []Trace {
	dates := s.Dates()
	traces := make([]Trace, 0, len(priceColumns)+1)
	for _, pc := range priceColumns {
		traces = append(traces, Trace{Name: pc.Name, Axis: 0, X: dates, Y: pick(s, pc.Pick)})
	}
	return traces
}

// BuildPriceVolumeChart plots Close, Open, High and Low on the left axis and
// Volume on a right axis with integer ticks. All traces share the trading dates.
func BuildPriceVolumeChart(s model.PriceSeries) Spec {
	traces := priceTraces(s)
	traces = append(traces, Trace{Name: volumeTitle, Axis: 1, X: s.Dates(), Y: pick(s, volumes)})
	return Spec{
		ID:     IDPriceVolume,
		Title:  "価格データと出来高",
		XTitle: dateTitle,
		Axes: []Axis{
			{Title: priceTitle, Side: SideLeft},
			{Title: volumeTitle, Side: SideRight, TickFormat: TickInteger},
		},
		Traces:           traces,
		HorizontalLegend: true,
	}
}

// BuildBenchmarkChart plots the subject prices on the left axis and the benchmark
// close on a right axis titled benchmarkName.
func BuildBenchmarkChart(subject, benchmark model.PriceSeries, benchmarkName string) Spec {
	traces := priceTraces(subject)
	traces = append(traces, Trace{Name: benchmarkName, Axis: 1, X: benchmark.Dates(), Y: pick(benchmark, closes)})
	return Spec{
		ID:     IDBenchmark,
		Title:  benchmarkName + "との比較",
		XTitle: dateTitle,
		Axes: []Axis{
			{Title: priceTitle, Side: SideLeft},
			{Title: benchmarkName, Side: SideRight},
		},
		Traces: traces,
	}
}

// BuildComparisonTraces returns the subject and benchmark closes, each normalized
// against its own first value.
func BuildComparisonTraces(subject, benchmark model.PriceSeries, benchmarkName string) ([]Trace, error) {
	s, err := calculator.Normalize(subject, model.ColumnClose)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", subject.Symbol, err)
	}
	b, err := calculator.Normalize(benchmark, model.ColumnClose)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", benchmark.Symbol, err)
	}
	return []Trace{
		{Name: "終値", X: s.Dates, Y: s.Values},
		{Name: benchmarkName, X: b.Dates, Y: b.Values},
	}, nil
}

// BuildRelativeChart plots the comparison traces on a single relative axis.
func BuildRelativeChart(subject, benchmark model.PriceSeries, benchmarkName string) (Spec, error) {
	traces, err := BuildComparisonTraces(subject, benchmark, benchmarkName)
	if err != nil {
		return Spec{}, err
	}
	return Spec{
		ID:               IDRelative,
		Title:            "相対値比較（開始日=100）",
		XTitle:           dateTitle,
		Axes:             []Axis{{Title: relativeTitle, Side: SideLeft}},
		Traces:           traces,
		HorizontalLegend: true,
	}, nil
}

// BuildAll returns the three dashboard charts in display order.
// Any error aborts; a partial list is never returned.
func BuildAll(d *model.Dashboard) ([]Spec, error) {
	relative, err := BuildRelativeChart(d.History, d.Benchmark, d.BenchmarkName)
	if err != nil {
		return nil, err
	}
	return []Spec{
		BuildPriceVolumeChart(d.History),
		BuildBenchmarkChart(d.History, d.Benchmark, d.BenchmarkName),
		relative,
	}, nil
}
