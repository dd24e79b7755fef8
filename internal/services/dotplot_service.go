package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fomcdots/internal/infrastructure"
	"fomcdots/internal/reshape"
	"fomcdots/internal/scrape"
	"fomcdots/pkg/contracts/domain"
)

// VoteSource produces the wide projection table the pipeline reshapes.
type VoteSource interface {
	WideRows(ctx context.Context) ([]domain.WideRow, error)
}

// CSVSource reads the wide table from a CSV file on disk.
type CSVSource struct {
	Path string
}

// WideRows implements VoteSource.
func (s CSVSource) WideRows(ctx context.Context) ([]domain.WideRow, error) {
	return reshape.LoadWideCSV(s.Path)
}

// ScrapeSource pulls the wide table from the Federal Reserve site.
type ScrapeSource struct {
	Client *scrape.Client
}

// WideRows implements VoteSource.
func (s ScrapeSource) WideRows(ctx context.Context) ([]domain.WideRow, error) {
	return s.Client.ScrapeAll(ctx)
}

// BeeswarmResult is the output of one pipeline run.
type BeeswarmResult struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Meetings    int                    `json:"meetings"`
	Votes       []domain.FormattedVote `json:"votes"`
}

// DotplotService runs the three-stage reshape pipeline against a vote source.
type DotplotService struct {
	source  VoteSource
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewDotplotService creates a dot plot service. metrics may be nil.
func NewDotplotService(source VoteSource, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *DotplotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DotplotService{
		source:  source,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "dotplot_service"),
	}
}

// WideTable returns the source's wide projection table unchanged.
func (s *DotplotService) WideTable(ctx context.Context) ([]domain.WideRow, error) {
	rows, err := s.source.WideRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wide table: %w", err)
	}
	return rows, nil
}

// Beeswarm runs wide-to-long, row expansion, and display formatting, and
// returns the display-ready vote list.
func (s *DotplotService) Beeswarm(ctx context.Context, opts reshape.Options) (result *BeeswarmResult, err error) {
	runID := uuid.New().String()
	start := time.Now()

	defer func() {
		votes := 0
		if result != nil {
			votes = len(result.Votes)
		}
		infrastructure.RecordPipelineRun(ctx, s.metrics, runID, time.Since(start), votes, err)
	}()

	rows, err := s.source.WideRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load wide table: %w", err)
	}

	long, err := reshape.WideToLong(rows)
	if err != nil {
		return nil, fmt.Errorf("pivot wide table: %w", err)
	}

	votes, err := reshape.Expand(long)
	if err != nil {
		return nil, fmt.Errorf("expand participant counts: %w", err)
	}

	formatted := reshape.FormatBeeswarm(votes, opts)

	s.logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", runID),
		slog.Int("meetings", countMeetings(rows)),
		slog.Int("long_records", len(long)),
		slog.Int("votes", len(formatted)),
		slog.Duration("duration", time.Since(start)))

	return &BeeswarmResult{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Meetings:    countMeetings(rows),
		Votes:       formatted,
	}, nil
}

// countMeetings counts distinct meeting dates in the wide table.
func countMeetings(rows []domain.WideRow) int {
	seen := make(map[time.Time]bool)
	for _, row := range rows {
		seen[row.MeetingDate] = true
	}
	return len(seen)
}
