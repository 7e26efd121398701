package scheduler

import (
	"context"
	"errors"
	"testing"

	"StockViewer/internal/collector"
)

func TestRunProbeNow(t *testing.T) {
	fetcher := collector.NewMockFetcher(38000)
	s := NewScheduler(context.Background(), fetcher, "^N225")

	if st := s.Status(); st.Checked {
		t.Fatal("status should be unchecked before the first probe")
	}

	st := s.RunProbeNow()
	if !st.Checked || !st.OK {
		t.Fatalf("expected a successful probe, got %+v", st)
	}
	if st.Provider != "mock" || st.Symbol != "^N225" {
		t.Errorf("unexpected provider/symbol: %+v", st)
	}
	if st.Bars != 1 {
		t.Errorf("expected 1 bar for the 1d probe, got %d", st.Bars)
	}
	if st.CheckedAt.IsZero() {
		t.Error("expected CheckedAt to be set")
	}
}

func TestRunProbeNow_Failure(t *testing.T) {
	fetcher := collector.NewMockFetcher(38000)
	fetcher.Errors = map[string]error{collector.OpHistory: errors.New("connection refused")}
	s := NewScheduler(context.Background(), fetcher, "^N225")

	st := s.RunProbeNow()
	if st.OK {
		t.Fatal("expected a failed probe")
	}
	if st.Error == "" {
		t.Error("expected the error to be recorded")
	}

	fetcher.Errors = nil
	if st := s.RunProbeNow(); !st.OK || st.Error != "" {
		t.Errorf("expected recovery on the next probe, got %+v", st)
	}
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), collector.NewMockFetcher(1), "^N225")

	if err := s.Register("0 */15 * * * *"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Cron.Entries()) != 1 {
		t.Errorf("expected 1 entry, got %d", len(s.Cron.Entries()))
	}
	if err := s.Register("every now and then"); err == nil {
		t.Error("expected error for an invalid cron spec")
	}

	s.Start()
	s.Stop()
}
