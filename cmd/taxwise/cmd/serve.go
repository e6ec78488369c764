package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcServer "github.com/msto63/taxwise/internal/calculator/server"
	httpServer "github.com/msto63/taxwise/internal/gateway/server"
	"github.com/msto63/taxwise/pkg/core/health"
	"github.com/msto63/taxwise/pkg/core/logging"
	"github.com/msto63/taxwise/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	serveHTTPPort int
	serveGRPCPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC APIs",
	Long: `Starts the TaxWise APIs and runs until SIGINT or SIGTERM.

  HTTP  - REST + WebSocket under /api/v1 (default :8080)
  gRPC  - taxwise.v1.TaxService with health and reflection (default :9090)

Examples:
  taxwise serve
  taxwise serve --http-port 8081 --grpc-port 9091`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP port (default from config)")
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveHTTPPort > 0 {
		appConfig.Server.HTTPPort = serveHTTPPort
	}
	if serveGRPCPort > 0 {
		appConfig.Server.GRPCPort = serveGRPCPort
	}

	// Servers log at the configured level
	if !verbose {
		logging.SetDefaults(appConfig.General.LogLevel, appConfig.General.LogFormat, os.Stderr)
	}
	logger := logging.New("taxwise")
	defer logger.Sync()

	svc, err := newCalculator()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := health.NewRegistry("taxwise", version.App)
	registry.Register(health.ErrorCheck("table", func(ctx context.Context) error {
		return svc.Table().Validate()
	}))
	registry.Register(health.GRPCCheck("grpc", localAddr(appConfig.Server.GRPCPort), 2*time.Second))

	srvCfg := appConfig.Server
	grpcSrv := grpcServer.New(grpcServer.Config{
		Host:             srvCfg.Host,
		Port:             srvCfg.GRPCPort,
		EnableReflection: true,
		ShutdownTimeout:  srvCfg.ShutdownTimeout.Duration,
		Logger:           logging.New("grpc-server"),
	}, svc)

	httpSrv := httpServer.New(httpServer.Config{
		Host:            srvCfg.Host,
		HTTPPort:        srvCfg.HTTPPort,
		ReadTimeout:     srvCfg.ReadTimeout.Duration,
		WriteTimeout:    srvCfg.WriteTimeout.Duration,
		ShutdownTimeout: srvCfg.ShutdownTimeout.Duration,
		ReportCacheSize: appConfig.Export.CacheSize,
		ReportTTL:       appConfig.Export.CacheTTL.Duration,
		Version:         version.App,
		Logger:          logging.New("http-server"),
	}, svc, registry)

	errCh := make(chan error, 2)
	go func() { errCh <- runNamed(ctx, "grpc", grpcSrv.Run) }()
	go func() { errCh <- runNamed(ctx, "http", httpSrv.Run) }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "TaxWise NG v%s (table %s)\n", version.App, svc.Table().Name)
	fmt.Fprintf(out, "HTTP API:     http://localhost:%d/api/v1\n", srvCfg.HTTPPort)
	fmt.Fprintf(out, "Health Check: http://localhost:%d/api/v1/health\n", srvCfg.HTTPPort)
	fmt.Fprintf(out, "gRPC API:     localhost:%d\n", srvCfg.GRPCPort)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	// Wait for signal or the first server error
	var firstErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case firstErr = <-errCh:
		logger.Error("Server failed", "error", firstErr)
		stop()
	}

	// Both servers stop on ctx cancel; collect the remaining result(s)
	remaining := 2
	if firstErr != nil {
		remaining = 1
	}
	for i := 0; i < remaining; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		printError("server stopped", firstErr)
		return firstErr
	}
	logger.Info("Servers stopped")
	return nil
}

func runNamed(ctx context.Context, name string, run func(context.Context) error) error {
	if err := run(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func localAddr(port int) string {
	return fmt.Sprintf("localhost:%d", port)
}
