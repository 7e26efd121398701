package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"StockViewer/internal/chart"
	"StockViewer/internal/collector"
	"StockViewer/internal/config"
	"StockViewer/internal/logger"
	"StockViewer/internal/model"
	"StockViewer/internal/scheduler"
	"StockViewer/internal/server"
	"StockViewer/internal/view"
)

func main() {
	query := flag.String("q", "", "print a text summary for this ticker or code and exit")
	period := flag.String("period", "", "period for -q (1d, 1wk, 1mo, 3mo, 6mo, 1y, 2y, 5y, max)")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Fprintf(os.Stderr, "setup logger: %v\n", err)
		os.Exit(1)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "mock":
		fetcher = collector.NewMockFetcher(2900)
	default:
		yf := collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
		if cfg.DataSource.ChartBaseURL != "" {
			yf.ChartBaseURL = cfg.DataSource.ChartBaseURL
		}
		if cfg.DataSource.SummaryBaseURL != "" {
			yf.SummaryBaseURL = cfg.DataSource.SummaryBaseURL
		}
		fetcher = yf
	}
	log.Info().Str("provider", fetcher.Name()).Str("benchmark", cfg.DataSource.BenchmarkSymbol).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.BenchmarkSymbol, cfg.DataSource.BenchmarkName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *query != "" {
		if err := printSummary(ctx, col, *query, *period, cfg.Period()); err != nil {
			log.Error().Err(err).Str("query", *query).Msg("summary failed")
			os.Exit(1)
		}
		return
	}

	// Provider probe feeds /healthz only.
	var prober server.Prober
	if cfg.Probe.Cron != "" {
		sched := scheduler.NewScheduler(ctx, fetcher, cfg.DataSource.BenchmarkSymbol)
		if err := sched.Register(cfg.Probe.Cron); err != nil {
			log.Fatal().Err(err).Msg("register probe")
		}
		sched.Start()
		defer sched.Stop()
		go sched.RunProbeNow()
		prober = sched
	}

	srv := server.New(server.Config{
		Addr:          cfg.Server.Addr,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		AssetsHost:    cfg.View.AssetsHost,
		DefaultPeriod: cfg.Period(),
	}, col, prober)

	log.Info().Str("addr", srv.Addr()).Msg("StockViewer is running. Press Ctrl+C to stop.")
	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("http server failed")
		return
	}
	log.Info().Msg("StockViewer stopped")
}

func printSummary(ctx context.Context, col *collector.Collector, query, rawPeriod string, fallback model.Period) error {
	period := fallback
	if rawPeriod != "" {
		p, err := model.ParsePeriod(rawPeriod)
		if err != nil {
			return err
		}
		period = p
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	d, err := col.Collect(ctx, query, period)
	if err != nil {
		return err
	}
	specs, err := chart.BuildAll(d)
	if err != nil {
		return err
	}
	fmt.Println(view.FormatSummary(view.NewDashboardView(d, specs)))
	return nil
}
