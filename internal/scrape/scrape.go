package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"fomcdots/internal/infrastructure"
	"fomcdots/pkg/contracts/domain"
)

// ScrapeAll discovers every projection table page linked from the FOMC
// calendar, fetches them concurrently under the client's rate limit, and
// merges the parsed rows into a single wide table sorted by meeting date.
func (c *Client) ScrapeAll(ctx context.Context) ([]domain.WideRow, error) {
	sources, err := c.SourceURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("FOMC calendar lists no projection tables")
	}

	results := make([][]domain.WideRow, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for i, src := range sources {
		g.Go(func() error {
			page, err := c.FetchDocument(gctx, src.URL)
			if err != nil {
				return err
			}

			rows, err := ParseProjectionTable(page, src.Date)
			if err != nil {
				return fmt.Errorf("parse %s: %w", src.URL, err)
			}

			c.logger.InfoContext(gctx, "parsed projection table",
				slog.String("url", src.URL),
				slog.String("meeting_date", src.Date.Format("2006-01-02")),
				slog.Int("rows", len(rows)))

			results[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.WideRow
	for _, rows := range results {
		merged = append(merged, rows...)
	}

	// Sources arrive date-sorted, but keep the merged table explicitly
	// ordered by meeting date in case the calendar ever lists duplicates.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MeetingDate.Before(merged[j].MeetingDate)
	})

	infrastructure.RecordMeetingsScraped(ctx, c.metrics, len(sources))

	c.logger.InfoContext(ctx, "scrape complete",
		slog.Int("meetings", len(sources)),
		slog.Int("rows", len(merged)))

	return merged, nil
}
