// Command beeswarm reshapes a wide projection table into the display-ready
// vote list and writes it as CSV and XLSX, optionally publishing it to a
// Google Sheet for the chart tooling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fomcdots/internal/config"
	"fomcdots/internal/exporter"
	"fomcdots/internal/infrastructure"
	"fomcdots/internal/reshape"
	"fomcdots/internal/services"
)

func main() {
	inFile := flag.String("in", "", "wide CSV to reshape (defaults to config export paths)")
	outDir := flag.String("out", "", "directory to write output (defaults to config export.output_dir)")
	filter := flag.Bool("filter", true, "keep only meetings within 11 months of the newest")
	publish := flag.Bool("publish", false, "publish the vote table to the configured Google Sheet")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
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
	if *inFile == "" {
		*inFile = filepath.Join(cfg.Export.OutputDir, cfg.Export.WideCSV)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, logger, *inFile, *outDir, *filter, *publish); err != nil {
		logger.Error("beeswarm reshape failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inFile, outDir string, filter, publish bool) error {
	svc := services.NewDotplotService(services.CSVSource{Path: inFile}, nil, logger)

	result, err := svc.Beeswarm(ctx, reshape.Options{FilterLastYear: filter})
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(outDir)
	if err := writer.WriteBeeswarmCSV(cfg.Export.BeeswarmCSV, result.Votes); err != nil {
		return fmt.Errorf("write beeswarm CSV: %w", err)
	}
	if err := writer.WriteBeeswarmXLSX(cfg.Export.BeeswarmXLSX, result.Votes); err != nil {
		return fmt.Errorf("write beeswarm workbook: %w", err)
	}

	if publish {
		if !cfg.Sheets.Enabled() {
			return fmt.Errorf("publish requested but no spreadsheet ID configured")
		}
		publisher, err := exporter.NewSheetsPublisher(ctx, exporter.SheetsConfig{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			Range:           cfg.Sheets.Range,
			CredentialsFile: cfg.Sheets.CredentialsFile,
		}, logger)
		if err != nil {
			return fmt.Errorf("create sheets publisher: %w", err)
		}
		if err := publisher.Publish(ctx, result.Votes); err != nil {
			return fmt.Errorf("publish to sheet: %w", err)
		}
	}

	logger.Info("beeswarm reshape complete",
		slog.String("run_id", result.RunID),
		slog.Int("meetings", result.Meetings),
		slog.Int("votes", len(result.Votes)),
		slog.Bool("published", publish))

	return nil
}
