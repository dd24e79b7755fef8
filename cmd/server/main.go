// Command server exposes the dot plot pipeline over HTTP: JSON and CSV
// endpoints backed by a live scrape of the Federal Reserve site, plus
// health and Prometheus metrics endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fomcdots/internal/config"
	"fomcdots/internal/infrastructure"
	"fomcdots/internal/scrape"
	"fomcdots/internal/services"
	transport "fomcdots/internal/transport/http"
	"fomcdots/pkg/contracts"
)

func main() {
	source := flag.String("source", "scrape", "vote source: scrape | csv")
	csvPath := flag.String("csv", "", "wide CSV path when -source=csv (defaults to config export paths)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := run(cfg, logger, *source, *csvPath); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, source, csvPath string) error {
	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Error("observability shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create pipeline metrics: %w", err)
	}

	voteSource, err := buildSource(cfg, logger, metrics, source, csvPath)
	if err != nil {
		return err
	}

	router := transport.NewRouter(transport.RouterDeps{
		Dotplot:        services.NewDotplotService(voteSource, metrics, logger),
		Health:         services.NewHealthService(contracts.Version),
		Logger:         logger,
		ServerConfig:   cfg.Server,
		Metrics:        metrics,
		MetricsHandler: providers.PrometheusHTTP,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.Int("port", cfg.Server.Port),
			slog.String("source", source),
			slog.String("version", contracts.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildSource picks the wide-table source for the API.
func buildSource(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.PipelineMetrics, source, csvPath string) (services.VoteSource, error) {
	switch source {
	case "scrape":
		client := scrape.NewClient(scrape.Config{
			BaseURL:           cfg.Scrape.BaseURL,
			Timeout:           cfg.Scrape.Timeout,
			RequestsPerSecond: cfg.Scrape.RequestsPerSecond,
			Burst:             cfg.Scrape.Burst,
			Concurrency:       cfg.Scrape.Concurrency,
			UserAgent:         cfg.Scrape.UserAgent,
		}, logger).WithMetrics(metrics)
		return services.ScrapeSource{Client: client}, nil
	case "csv":
		if csvPath == "" {
			csvPath = filepath.Join(cfg.Export.OutputDir, cfg.Export.WideCSV)
		}
		return services.CSVSource{Path: csvPath}, nil
	default:
		return nil, fmt.Errorf("unknown source %q: use scrape or csv", source)
	}
}
