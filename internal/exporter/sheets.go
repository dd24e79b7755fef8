package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"fomcdots/internal/infrastructure"
	"fomcdots/pkg/contracts/domain"
)

// SheetsConfig configures the Google Sheets publisher.
type SheetsConfig struct {
	// SpreadsheetID is the target spreadsheet.
	SpreadsheetID string
	// Range is the A1-notation range the vote table overwrites,
	// e.g. "dotplot!A:C".
	Range string
	// CredentialsFile is a service account credentials JSON path.
	CredentialsFile string
}

// SheetsPublisher pushes the beeswarm table to a Google Sheet, which is how
// the chart tooling picks up refreshed data.
type SheetsPublisher struct {
	service *sheets.Service
	cfg     SheetsConfig
	logger  *slog.Logger
}

// NewSheetsPublisher creates a publisher backed by a service account.
func NewSheetsPublisher(ctx context.Context, cfg SheetsConfig, logger *slog.Logger) (*SheetsPublisher, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets publisher requires a spreadsheet ID")
	}
	if cfg.Range == "" {
		cfg.Range = "dotplot!A:C"
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsPublisher{
		service: service,
		cfg:     cfg,
		logger:  infrastructure.WithComponent(logger, "sheets_publisher"),
	}, nil
}

// Publish clears the configured range and rewrites it with the header plus
// one row per vote.
func (p *SheetsPublisher) Publish(ctx context.Context, votes []domain.FormattedVote) error {
	values := make([][]interface{}, 0, len(votes)+1)

	header := make([]interface{}, len(BeeswarmHeaders))
	for i, h := range BeeswarmHeaders {
		header[i] = h
	}
	values = append(values, header)

	for _, v := range votes {
		values = append(values, []interface{}{v.MeetingDate, v.Midpoint, v.Year})
	}

	_, err := p.service.Spreadsheets.Values.
		Clear(p.cfg.SpreadsheetID, p.cfg.Range, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet range %s: %w", p.cfg.Range, err)
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err = p.service.Spreadsheets.Values.
		Update(p.cfg.SpreadsheetID, p.cfg.Range, valueRange).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update sheet range %s: %w", p.cfg.Range, err)
	}

	p.logger.InfoContext(ctx, "published beeswarm table to sheet",
		slog.String("spreadsheet_id", p.cfg.SpreadsheetID),
		slog.String("range", p.cfg.Range),
		slog.Int("votes", len(votes)))

	return nil
}
