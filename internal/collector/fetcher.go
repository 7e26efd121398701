package collector

import (
	"context"
	"time"

	"StockViewer/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, symbol string) (*model.QuoteSnapshot, error)
	FetchHistory(ctx context.Context, symbol string, period model.Period) (model.PriceSeries, error)
	// FetchAnalystTargets returns nil when the provider has no targets for symbol.
	FetchAnalystTargets(ctx context.Context, symbol string) (*model.AnalystTargets, error)
	// FetchQuarterlyIncome returns nil when the provider has no statements for symbol.
	FetchQuarterlyIncome(ctx context.Context, symbol string) (*model.IncomeStatement, error)
	FetchOptionExpirations(ctx context.Context, symbol string) ([]time.Time, error)
	FetchOptionChain(ctx context.Context, symbol string, expiration time.Time) (*model.OptionChain, error)
	Name() string
}

// Operation names, used in ProviderError and for error injection in MockFetcher.
const (
	OpSnapshot    = "snapshot"
	OpHistory     = "history"
	OpTargets     = "targets"
	OpIncome      = "income"
	OpExpirations = "expirations"
	OpChain       = "chain"
)
