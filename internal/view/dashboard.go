package view

import (
	"time"

	"StockViewer/internal/chart"
	"StockViewer/internal/model"
)

// NoSummary replaces a missing business summary.
const NoSummary = "No summary available"

// DashboardView is the display model of one submission, shared by the HTML page
// and the JSON API.
type DashboardView struct {
	Query           string                 `json:"query"`
	Symbol          string                 `json:"symbol"`
	Name            string                 `json:"name"`
	Summary         string                 `json:"summary"`
	Period          model.Period           `json:"period"`
	Currency        string                 `json:"currency"`
	BenchmarkSymbol string                 `json:"benchmark_symbol"`
	BenchmarkName   string                 `json:"benchmark_name"`
	Snapshot        *model.QuoteSnapshot   `json:"snapshot"`
	Metrics         []Metric               `json:"metrics"`
	PeriodMetrics   []Metric               `json:"period_metrics"`
	Charts          []chart.Spec           `json:"charts"`
	Targets         []Metric               `json:"targets,omitempty"`
	Income          *model.IncomeStatement `json:"income,omitempty"`
	Options         *model.OptionChain     `json:"options,omitempty"`
	FetchedAt       time.Time              `json:"fetched_at"`
}

// NewDashboardView assembles the display model from fetched data and chart specs.
func NewDashboardView(d *model.Dashboard, specs []chart.Spec) *DashboardView {
	snap := d.Snapshot
	if snap == nil {
		snap = &model.QuoteSnapshot{Symbol: d.Symbol}
	}
	summary := NoSummary
	if snap.BusinessSummary != nil && *snap.BusinessSummary != "" {
		summary = *snap.BusinessSummary
	}
	return &DashboardView{
		Query:           d.Query,
		Symbol:          d.Symbol,
		Name:            snap.DisplayName(),
		Summary:         summary,
		Period:          d.Period,
		Currency:        snap.Currency,
		BenchmarkSymbol: d.BenchmarkSymbol,
		BenchmarkName:   d.BenchmarkName,
		Snapshot:        snap,
		Metrics:         QuoteMetrics(snap),
		PeriodMetrics:   PeriodMetrics(d.History, snap.Currency),
		Charts:          specs,
		Targets:         TargetMetrics(d.Targets, snap.Currency),
		Income:          d.Income,
		Options:         d.Options,
		FetchedAt:       d.FetchedAt,
	}
}
