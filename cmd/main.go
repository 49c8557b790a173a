package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/spruked/dals/internal/adapters/http/api"
	"github.com/spruked/dals/internal/adapters/http/site"
	"github.com/spruked/dals/internal/adapters/http/swagger"
	"github.com/spruked/dals/internal/adapters/http/ws"
	service "github.com/spruked/dals/internal/app"
	"github.com/spruked/dals/internal/config"
	"github.com/spruked/dals/pkg/logger"
	"github.com/spruked/dals/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("logger sync failed: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options.
	svc := service.New(
		service.WithLogger(loggerInstance),
		service.WithName(cfg.ServiceName),
		service.WithVersion(cfg.Version),
		service.WithModules(cfg.Modules),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system and service metrics updaters.
	go startSystemMetricsUpdater(ctx, svc)

	// Telemetry hub for the live dashboard stream.
	hub := ws.New(svc, time.Duration(cfg.WSBroadcastIntervalMS)*time.Millisecond)
	go hub.Run(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Dashboard and static assets under /.
	site.Register(ctx, mux)

	// API reference under /api-docs.
	swagger.Register(ctx, mux)

	// Business API routes with the service dependency.
	api.NewServer(svc).Register(ctx, mux)

	// Live telemetry stream.
	mux.Handle("/ws/telemetry", hub)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.RequestIDMiddleware(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("service", cfg.ServiceName),
			logger.String("version", cfg.Version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownTimeoutS)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater updates process and service gauges on a fixed
// interval until ctx is cancelled.
func startSystemMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics(svc)
		}
	}
}

func updateSystemMetrics(svc *service.Service) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	metrics.UpdateUptime(svc.Uptime().Seconds())

	stats := svc.GetStats()
	if count, ok := stats["registeredModules"].(int); ok {
		metrics.UpdateRegisteredModules(count)
	}
}
