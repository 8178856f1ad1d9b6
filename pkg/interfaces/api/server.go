package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/ejector/pkg/application/services"
	"github.com/vsinha/ejector/pkg/infrastructure/config"
	"github.com/vsinha/ejector/pkg/infrastructure/metrics"
)

// maxRequestBytes bounds a sizing request body
const maxRequestBytes = 1 << 20

// Server exposes the sizing service over HTTP
type Server struct {
	httpServer       http.Server
	sizer            *services.SizingService
	metrics          *metrics.SizingMetrics
	gatherer         prometheus.Gatherer
	defaultDischarge float64
	logger           *zap.SugaredLogger
}

// NewServer creates an API server from the loaded configuration. When metrics
// are enabled, collectors are registered with reg and served from /metrics.
func NewServer(cfg *config.Config, reg *prometheus.Registry, logger *zap.SugaredLogger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	sizer, err := services.NewSizingServiceWithAssumptions(cfg.Assumptions, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		sizer:            sizer,
		defaultDischarge: cfg.Server.DischargePressure,
		logger:           logger,
	}

	if cfg.Server.MetricsEnabled {
		if reg == nil {
			return nil, fmt.Errorf("metrics enabled but no registry given")
		}
		s.metrics = metrics.NewSizingMetrics(reg)
		s.gatherer = reg
	}

	s.httpServer.Addr = cfg.Server.ListenAddr
	s.httpServer.Handler = s.setupRouter()
	s.httpServer.ReadHeaderTimeout = 10 * time.Second

	return s, nil
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Infow("starting API server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down the API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// setupRouter configures the HTTP router with all endpoints
func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.requestIDMiddleware)
	router.Use(s.loggingMiddleware)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/sizing", s.PostSizing).Methods(http.MethodPost)
	apiRouter.HandleFunc("/sizing/chart", s.PostSizingChart).Methods(http.MethodPost)
	apiRouter.HandleFunc("/assumptions", s.GetAssumptions).Methods(http.MethodGet)

	router.HandleFunc("/healthz", s.GetHealth).Methods(http.MethodGet)

	if s.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return router
}
