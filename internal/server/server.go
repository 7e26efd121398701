package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"StockViewer/internal/collector"
	"StockViewer/internal/logger"
	"StockViewer/internal/model"
	"StockViewer/internal/scheduler"
)

// Config describes the HTTP server.
type Config struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	AssetsHost    string
	DefaultPeriod model.Period
}

// Prober reports the latest provider probe. It is nil when probing is disabled.
type Prober interface {
	Status() scheduler.ProbeStatus
}

// Server serves the dashboard page and its JSON API.
type Server struct {
	cfg       Config
	collector *collector.Collector
	prober    Prober
	router    *gin.Engine
	log       zerolog.Logger
}

// New builds the gin engine and registers all routes.
func New(cfg Config, col *collector.Collector, prober Prober) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if !cfg.DefaultPeriod.Valid() {
		cfg.DefaultPeriod = model.DefaultPeriod
	}
	s := &Server{
		cfg:       cfg,
		collector: col,
		prober:    prober,
		log:       logger.Component("server"),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(s.log))

	router.GET("/", s.handleIndex)
	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/resolve", s.handleResolve)

	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Start serves HTTP until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		s.log.Info().Msg("http server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
