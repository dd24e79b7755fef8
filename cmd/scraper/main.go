// Command scraper pulls every Summary of Economic Projections table from the
// Federal Reserve site and writes the combined wide table as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fomcdots/internal/config"
	"fomcdots/internal/exporter"
	"fomcdots/internal/infrastructure"
	"fomcdots/internal/scrape"
)

func main() {
	outDir := flag.String("out", "", "directory to write output (defaults to config export.output_dir)")
	outFile := flag.String("file", "", "wide CSV filename (defaults to config export.wide_csv)")
	xlsxFile := flag.String("xlsx", "", "also write the wide table as an XLSX workbook with this filename")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall scrape deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *outDir == "" {
		*outDir = cfg.Export.OutputDir
	}
	if *outFile == "" {
		*outFile = cfg.Export.WideCSV
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *outDir, *outFile, *xlsxFile); err != nil {
		logger.Error("scrape failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, outDir, outFile, xlsxFile string) error {
	client := scrape.NewClient(scrape.Config{
		BaseURL:           cfg.Scrape.BaseURL,
		Timeout:           cfg.Scrape.Timeout,
		RequestsPerSecond: cfg.Scrape.RequestsPerSecond,
		Burst:             cfg.Scrape.Burst,
		Concurrency:       cfg.Scrape.Concurrency,
		UserAgent:         cfg.Scrape.UserAgent,
	}, logger)

	start := time.Now()
	rows, err := client.ScrapeAll(ctx)
	if err != nil {
		return fmt.Errorf("scrape projection tables: %w", err)
	}

	writer := exporter.NewCSVWriter(outDir)
	if err := writer.WriteWideCSV(outFile, rows); err != nil {
		return fmt.Errorf("write wide CSV: %w", err)
	}
	if xlsxFile != "" {
		if err := writer.WriteWideXLSX(xlsxFile, rows); err != nil {
			return fmt.Errorf("write wide workbook: %w", err)
		}
	}

	logger.Info("scrape complete",
		slog.Int("rows", len(rows)),
		slog.String("output", outFile),
		slog.Duration("duration", time.Since(start)))

	return nil
}
