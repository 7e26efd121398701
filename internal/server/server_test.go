package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockViewer/internal/calculator"
	"StockViewer/internal/collector"
	"StockViewer/internal/model"
	"StockViewer/internal/scheduler"
)

type fixedProber struct{ st scheduler.ProbeStatus }

func (p fixedProber) Status() scheduler.ProbeStatus { return p.st }

func newTestServer(t *testing.T, f *collector.MockFetcher, prober Prober) *Server {
	t.Helper()
	col := collector.NewCollector(f, "^N225", "日経平均")
	return New(Config{DefaultPeriod: model.Period1mo}, col, prober)
}

func do(t *testing.T, s *Server, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResolveEndpoint(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/api/resolve?q=7203")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "7203", body["query"])
	assert.Equal(t, "7203.T", body["symbol"])

	rec = do(t, s, "/api/resolve?q=AAPL")
	assert.Equal(t, "AAPL", decode(t, rec)["symbol"])

	rec = do(t, s, "/api/resolve?q=+")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/api/dashboard?q=7203&period=3mo")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "7203.T", body["symbol"])
	assert.Equal(t, "3mo", body["period"])
	assert.Equal(t, "^N225", body["benchmark_symbol"])

	charts, ok := body["charts"].([]any)
	require.True(t, ok)
	require.Len(t, charts, 3)
	for i, want := range []int{5, 5, 2} {
		traces := charts[i].(map[string]any)["traces"].([]any)
		assert.Len(t, traces, want, "chart %d", i)
	}
	assert.NotEmpty(t, body["targets"])
	assert.NotNil(t, body["options"])
}

func TestDashboardEndpoint_DefaultPeriod(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/api/dashboard?q=AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1mo", decode(t, rec)["period"])
}

func TestDashboardEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		setup  func(f *collector.MockFetcher)
		status int
	}{
		{name: "empty query", target: "/api/dashboard?q=", status: http.StatusBadRequest},
		{name: "bad period", target: "/api/dashboard?q=7203&period=7d", status: http.StatusBadRequest},
		{
			name:   "provider failure",
			target: "/api/dashboard?q=7203",
			setup: func(f *collector.MockFetcher) {
				f.Errors = map[string]error{collector.OpHistory: errors.New("connection reset")}
			},
			status: http.StatusBadGateway,
		},
		{
			name:   "empty history",
			target: "/api/dashboard?q=7203",
			setup: func(f *collector.MockFetcher) {
				f.Bars = map[string][]model.OHLCV{"7203.T": {}}
			},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := collector.NewMockFetcher(2900)
			if tt.setup != nil {
				tt.setup(f)
			}
			rec := do(t, newTestServer(t, f, nil), tt.target)
			assert.Equal(t, tt.status, rec.Code)
			msg, ok := decode(t, rec)["error"].(string)
			assert.True(t, ok)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestStatusFor(t *testing.T) {
	pe := &collector.ProviderError{Provider: "yahoo", Op: collector.OpSnapshot, Symbol: "X", Err: collector.ErrNoData}

	assert.Equal(t, http.StatusBadRequest, statusFor(collector.ErrEmptyQuery))
	assert.Equal(t, http.StatusBadGateway, statusFor(pe))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(calculator.ErrDivideByZero))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestIndex_Prompt(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	html := rec.Body.String()
	assert.Contains(t, html, "銘柄を入力してください")
	assert.Contains(t, html, `value="1mo" selected`)
}

func TestIndex_Dashboard(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/?q=7203&period=6mo")
	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "7203.T")
	assert.Contains(t, html, "Mock Motor Corporation")
	assert.Contains(t, html, `id="chart-priceVolume"`)
	assert.Contains(t, html, `id="chart-relative"`)
	assert.Contains(t, html, `value="6mo" selected`)
}

func TestIndex_Error(t *testing.T) {
	f := collector.NewMockFetcher(2900)
	f.Errors = map[string]error{collector.OpSnapshot: collector.ErrNoData}
	s := newTestServer(t, f, nil)

	rec := do(t, s, "/?q=NOPE")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	html := rec.Body.String()
	assert.Equal(t, 1, strings.Count(html, `class="error"`))
	assert.Contains(t, html, "データの取得に失敗しました")
	assert.NotContains(t, html, `class="chart"`)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)

	rec := do(t, s, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = do(t, s, "/", requestIDHeader, "req-42")
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
	assert.Contains(t, rec.Body.String(), "request req-42")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, collector.NewMockFetcher(2900), nil)
	body := decode(t, do(t, s, "/healthz"))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "mock", body["provider"])
	assert.NotContains(t, body, "probe")

	prober := fixedProber{st: scheduler.ProbeStatus{Provider: "mock", Symbol: "^N225", Checked: true, OK: true, Bars: 1}}
	s = newTestServer(t, collector.NewMockFetcher(2900), prober)
	body = decode(t, do(t, s, "/healthz"))
	probe, ok := body["probe"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, probe["ok"])
	assert.Equal(t, "^N225", probe["symbol"])
}
