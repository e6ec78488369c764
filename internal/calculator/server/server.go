// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     server
// Description: gRPC server exposing the tax calculator
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"net"
	"time"

	"github.com/msto63/taxwise/internal/calculator"
	coreGrpc "github.com/msto63/taxwise/pkg/core/grpc"
	"github.com/msto63/taxwise/pkg/core/logging"
	"google.golang.org/grpc"
)

// Server is the TaxWise gRPC server
type Server struct {
	calc   *calculator.Service
	grpc   *coreGrpc.Server
	logger *logging.Logger
	config Config
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	ShutdownTimeout  time.Duration
	Logger           *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9090,
		EnableReflection: true,
		ShutdownTimeout:  10 * time.Second,
	}
}

// New creates a new gRPC server for calc
func New(cfg Config, calc *calculator.Service) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("grpc-server")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcCfg.Logger = logger

	server := &Server{
		calc:   calc,
		grpc:   coreGrpc.NewServer(grpcCfg),
		logger: logger,
		config: cfg,
	}

	// Register gRPC service
	server.grpc.RegisterService(&TaxServiceDesc, server)

	return server
}

// Run listens on the configured address and serves until ctx is canceled
func (s *Server) Run(ctx context.Context) error {
	lis, err := s.grpc.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is canceled, then stops gracefully
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("Starting TaxWise gRPC API", "address", lis.Addr().String(), "table", s.calc.Table().Name)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpc.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()
	s.Stop(stopCtx)

	if err := <-errCh; err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping TaxWise gRPC API")
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.config.ShutdownTimeout > 0 {
		return s.config.ShutdownTimeout
	}
	return 10 * time.Second
}
