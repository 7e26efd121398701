package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"StockViewer/internal/model"
)

// Collector runs the fetch stage of one submission.
type Collector struct {
	Fetcher         Fetcher
	BenchmarkSymbol string
	BenchmarkName   string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, benchmarkSymbol, benchmarkName string) *Collector {
	return &Collector{Fetcher: fetcher, BenchmarkSymbol: benchmarkSymbol, BenchmarkName: benchmarkName}
}

// Collect resolves query and fetches everything the dashboard shows.
// The first failing step aborts the submission; nothing is kept between calls.
func (c *Collector) Collect(ctx context.Context, query string, period model.Period) (*model.Dashboard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}

	symbol := Resolve(query)
	logger := log.With().Str("component", "collector").Str("symbol", symbol).Str("period", string(period)).Logger()
	start := time.Now()

	d := &model.Dashboard{
		Query:           query,
		Symbol:          symbol,
		Period:          period,
		BenchmarkSymbol: c.BenchmarkSymbol,
		BenchmarkName:   c.BenchmarkName,
	}

	snap, err := c.Fetcher.FetchSnapshot(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	d.Snapshot = snap

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := c.Fetcher.FetchHistory(gctx, symbol, period)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		d.History = h
		return nil
	})
	g.Go(func() error {
		b, err := c.Fetcher.FetchHistory(gctx, c.BenchmarkSymbol, period)
		if err != nil {
			return fmt.Errorf("fetch benchmark history: %w", err)
		}
		d.Benchmark = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.Targets, err = c.Fetcher.FetchAnalystTargets(ctx, symbol); err != nil {
		return nil, fmt.Errorf("fetch analyst targets: %w", err)
	}
	if d.Income, err = c.Fetcher.FetchQuarterlyIncome(ctx, symbol); err != nil {
		return nil, fmt.Errorf("fetch quarterly income: %w", err)
	}

	expirations, err := c.Fetcher.FetchOptionExpirations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch option expirations: %w", err)
	}
	if len(expirations) > 0 {
		if d.Options, err = c.Fetcher.FetchOptionChain(ctx, symbol, expirations[0]); err != nil {
			return nil, fmt.Errorf("fetch option chain: %w", err)
		}
	}

	d.FetchedAt = time.Now()
	logger.Info().
		Str("provider", c.Fetcher.Name()).
		Int("bars", d.History.Len()).
		Int("benchmark_bars", d.Benchmark.Len()).
		Bool("options", d.Options != nil).
		Dur("elapsed", d.FetchedAt.Sub(start)).
		Msg("collected")
	return d, nil
}
