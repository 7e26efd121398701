package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"StockViewer/internal/calculator"
	"StockViewer/internal/chart"
	"StockViewer/internal/collector"
	"StockViewer/internal/model"
	"StockViewer/internal/view"
)

// submission reads the query and period of a request. An empty period selects
// the configured default.
func (s *Server) submission(c *gin.Context) (string, model.Period, error) {
	query := strings.TrimSpace(c.Query("q"))
	raw := c.Query("period")
	if raw == "" {
		return query, s.cfg.DefaultPeriod, nil
	}
	period, err := model.ParsePeriod(raw)
	if err != nil {
		return query, s.cfg.DefaultPeriod, err
	}
	return query, period, nil
}

// build runs the whole pipeline for one submission.
func (s *Server) build(ctx context.Context, query string, period model.Period) (*view.DashboardView, error) {
	d, err := s.collector.Collect(ctx, query, period)
	if err != nil {
		return nil, err
	}
	specs, err := chart.BuildAll(d)
	if err != nil {
		return nil, err
	}
	return view.NewDashboardView(d, specs), nil
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, collector.ErrEmptyQuery), errors.Is(err, collector.ErrUnknownPeriod):
		return http.StatusBadRequest
	case collector.IsProviderError(err):
		return http.StatusBadGateway
	case errors.Is(err, calculator.ErrEmptySeries), errors.Is(err, calculator.ErrDivideByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	query, period, err := s.submission(c)
	if err != nil {
		s.renderPage(c, http.StatusBadRequest, view.ErrorPage(query, period, s.cfg.AssetsHost, err))
		return
	}
	if query == "" {
		s.renderPage(c, http.StatusOK, view.PromptPage(period, s.cfg.AssetsHost))
		return
	}

	v, err := s.build(c.Request.Context(), query, period)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Str("period", string(period)).Msg("dashboard failed")
		s.renderPage(c, statusFor(err), view.ErrorPage(query, period, s.cfg.AssetsHost, err))
		return
	}
	page, err := view.DashboardPage(v, s.cfg.AssetsHost)
	if err != nil {
		s.log.Error().Err(err).Str("symbol", v.Symbol).Msg("render charts failed")
		s.renderPage(c, http.StatusInternalServerError, view.ErrorPage(query, period, s.cfg.AssetsHost, err))
		return
	}
	s.renderPage(c, http.StatusOK, page)
}

// renderPage buffers the template so a failed render never leaves half a page.
func (s *Server) renderPage(c *gin.Context, status int, page *view.Page) {
	page.RequestID = c.GetString(requestIDKey)
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		s.log.Error().Err(err).Msg("render page failed")
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleDashboard(c *gin.Context) {
	query, period, err := s.submission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := s.build(c.Request.Context(), query, period)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleResolve(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": collector.ErrEmptyQuery.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "symbol": collector.Resolve(query)})
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status":    "ok",
		"provider":  s.collector.Fetcher.Name(),
		"benchmark": s.collector.BenchmarkSymbol,
	}
	if s.prober != nil {
		resp["probe"] = s.prober.Status()
	}
	c.JSON(http.StatusOK, resp)
}
