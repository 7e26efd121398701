package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockViewer/internal/collector"
	"StockViewer/internal/logger"
	"StockViewer/internal/model"
)

// ProbeStatus is the outcome of the latest provider probe.
type ProbeStatus struct {
	Provider  string    `json:"provider"`
	Symbol    string    `json:"symbol"`
	Checked   bool      `json:"checked"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	Bars      int       `json:"bars"`
	Latency   string    `json:"latency,omitempty"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
}

// Scheduler periodically probes the market data provider. The probe result only
// feeds health reporting; dashboards always fetch fresh data.
type Scheduler struct {
	Cron    *cron.Cron
	Fetcher collector.Fetcher
	Symbol  string
	Ctx     context.Context

	log    zerolog.Logger
	mu     sync.RWMutex
	status ProbeStatus
}

// NewScheduler creates a new Scheduler probing symbol through fetcher.
func NewScheduler(ctx context.Context, fetcher collector.Fetcher, symbol string) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: fetcher,
		Symbol:  symbol,
		Ctx:     ctx,
		log:     logger.Component("scheduler"),
		status:  ProbeStatus{Provider: fetcher.Name(), Symbol: symbol},
	}
}

// Register schedules the probe. spec uses the six-field cron syntax with seconds.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.probe); err != nil {
		return fmt.Errorf("register probe task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running probe to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunProbeNow executes the probe immediately.
func (s *Scheduler) RunProbeNow() ProbeStatus {
	s.probe()
	return s.Status()
}

// Status returns the latest probe result.
func (s *Scheduler) Status() ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) probe() {
	start := time.Now()
	series, err := s.Fetcher.FetchHistory(s.Ctx, s.Symbol, model.Period1d)

	st := ProbeStatus{
		Provider:  s.Fetcher.Name(),
		Symbol:    s.Symbol,
		Checked:   true,
		OK:        err == nil,
		Bars:      series.Len(),
		Latency:   time.Since(start).Round(time.Millisecond).String(),
		CheckedAt: time.Now(),
	}
	if err != nil {
		st.Error = err.Error()
		s.log.Error().Err(err).Str("symbol", s.Symbol).Msg("provider probe failed")
	} else {
		s.log.Debug().Str("symbol", s.Symbol).Int("bars", st.Bars).Str("latency", st.Latency).Msg("provider probe ok")
	}

	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
