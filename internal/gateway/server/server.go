// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     server
// Description: HTTP server hosting the REST and WebSocket API
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/gateway/handler"
	"github.com/msto63/taxwise/pkg/core/health"
	"github.com/msto63/taxwise/pkg/core/logging"
	"github.com/msto63/taxwise/pkg/core/version"
)

// Server is the TaxWise HTTP API server
type Server struct {
	httpServer *http.Server
	handler    *handler.Handler
	ws         *handler.WebSocketHandler
	health     *health.Registry
	logger     *logging.Logger
	config     Config

	mu       sync.Mutex
	listener net.Listener
}

// Config holds server configuration
type Config struct {
	Host            string
	HTTPPort        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	ReportCacheSize int
	ReportTTL       time.Duration
	Version         string
	Logger          *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		HTTPPort:        8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ReportCacheSize: 1000,
		ReportTTL:       30 * time.Minute,
		Version:         version.App,
	}
}

// New creates a new HTTP server. When registry is nil a registry with a
// table check is created.
func New(cfg Config, calc *calculator.Service, registry *health.Registry) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("http-server")
	}

	if registry == nil {
		registry = health.NewRegistry("taxwise-http", cfg.Version)
		registry.Register(health.ErrorCheck("table", func(ctx context.Context) error {
			return calc.Table().Validate()
		}))
	}

	reports := handler.NewReportStore(cfg.ReportCacheSize, cfg.ReportTTL)
	h := handler.NewHandler(cfg.Version, calc, registry, reports, logger.With("component", "handler"))
	wsHandler := handler.NewWebSocketHandler(calc, reports, logger.With("component", "websocket"))

	mux := http.NewServeMux()

	// WebSocket route
	mux.Handle("/api/v1/ws", wsHandler)

	// API routes
	mux.Handle("/api/v1/", h)
	mux.Handle("/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		ws:         wsHandler,
		health:     registry,
		logger:     logger,
		config:     cfg,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Handler returns the root HTTP handler, including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is canceled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.mu.Lock()
	s.listener = lis
	s.mu.Unlock()

	s.logger.Info("Starting TaxWise HTTP API", "address", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server. Shutdown does not track hijacked
// connections, so open WebSocket sessions are closed explicitly.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping TaxWise HTTP API")
	err := s.httpServer.Shutdown(ctx)
	s.ws.Close()
	return err
}

// Address returns the server address
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.config.ShutdownTimeout > 0 {
		return s.config.ShutdownTimeout
	}
	return 10 * time.Second
}
