// cmd/locatecar/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"locatecar/internal/car"
	"locatecar/internal/clients"
	"locatecar/internal/config"
	"locatecar/internal/metrics"
	"locatecar/internal/obs"
	"locatecar/internal/server"
	"locatecar/internal/store"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("LOCATECAR_CONFIG"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := obs.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Service stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := obs.InitTracing(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, logger)
	if err != nil {
		return err
	}
	defer warnOnError(logger, "Failed to shut down tracing", func() error {
		return shutdownTracing(context.Background())
	})

	carStore, closeStore, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer warnOnError(logger, "Failed to close car store", closeStore)

	m := metrics.NewMetrics(nil)
	catalogClient := clients.NewCatalogClient(
		cfg.Catalog.BaseURL,
		&http.Client{Timeout: cfg.Catalog.Timeout},
		clients.WithRateLimit(cfg.Catalog.RateLimit),
		clients.WithMetrics(m),
	)

	svc, err := car.NewService(catalogClient, carStore, logger)
	if err != nil {
		return err
	}
	handler := car.NewHandler(svc, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.NewRouter(handler, m, nil, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting locatecar service",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("catalog", cfg.Catalog.BaseURL),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// warnOnError runs a cleanup func and logs its error instead of dropping it.
func warnOnError(logger *zap.Logger, msg string, cleanup func() error) {
	if err := cleanup(); err != nil {
		logger.Warn(msg, zap.Error(err))
	}
}
