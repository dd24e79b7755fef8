package reshape

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fomcdots/pkg/contracts/domain"
)

// MeetingDateLayout is the on-disk date format of the wide table.
const MeetingDateLayout = "2006-01-02"

// LoadWideCSV reads a wide projection table written by the scraper.
// Expected layout: meeting_date,midpoint,<horizon>,... where horizon columns
// are four-digit years or longer_run and cells are participant counts or
// empty. Empty cells stay absent; they are never read as zero counts.
func LoadWideCSV(path string) ([]domain.WideRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wide table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read wide table: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("wide table %s is empty", path)
	}

	header := records[0]
	// The exporter prefixes a UTF-8 BOM for Excel.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	if len(header) < 3 || header[0] != "meeting_date" || header[1] != "midpoint" {
		return nil, &SchemaError{Row: 0, Reason: "header must start with meeting_date,midpoint followed by horizon columns"}
	}
	horizons := header[2:]
	for _, h := range horizons {
		if !horizonPattern.MatchString(h) {
			return nil, &SchemaError{Column: h, Row: 0, Reason: "unrecognized horizon label"}
		}
	}

	rows := make([]domain.WideRow, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header

		if len(record) != len(header) {
			return nil, &SchemaError{Row: line, Reason: fmt.Sprintf("expected %d columns, got %d", len(header), len(record))}
		}

		date, err := time.Parse(MeetingDateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, &SchemaError{Column: "meeting_date", Row: line, Reason: err.Error()}
		}

		midpoint, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, &SchemaError{Column: "midpoint", Row: line, Reason: err.Error()}
		}

		counts := make(map[string]int, len(horizons))
		for j, h := range horizons {
			cell := strings.TrimSpace(record[j+2])
			if cell == "" {
				continue
			}
			count, err := strconv.Atoi(cell)
			if err != nil {
				return nil, &SchemaError{Column: h, Row: line, Reason: fmt.Sprintf("non-integer participant count %q", cell)}
			}
			counts[h] = count
		}

		rows = append(rows, domain.WideRow{
			MeetingDate: date,
			Midpoint:    midpoint,
			Counts:      counts,
		})
	}

	slog.Debug("loaded wide projection table",
		slog.String("path", path),
		slog.Int("rows", len(rows)),
		slog.Int("horizons", len(horizons)))

	return rows, nil
}
