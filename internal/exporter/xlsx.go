package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fomcdots/pkg/contracts/domain"
)

const (
	// beeswarmSheetName is the worksheet holding the vote table.
	beeswarmSheetName = "Dot Plot"
	// wideSheetName is the worksheet holding the scraped wide table.
	wideSheetName = "Projections"
)

// WriteBeeswarmXLSX writes the display-ready vote table as an Excel workbook
// for consumers that want the data in a spreadsheet rather than CSV.
func (w *CSVWriter) WriteBeeswarmXLSX(filePath string, votes []domain.FormattedVote) error {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), beeswarmSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range BeeswarmHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(beeswarmSheetName, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
	}

	for i, v := range votes {
		row := i + 2 // after the header
		values := []interface{}{v.MeetingDate, v.Midpoint, v.Year}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(beeswarmSheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	slog.Info("Wrote beeswarm workbook",
		slog.String("path", fullPath),
		slog.Int("votes", len(votes)))

	return nil
}

// WriteWideXLSX writes the scraped wide table as an Excel workbook. Counts
// are written as numbers; horizons a row has no count for stay empty.
func (w *CSVWriter) WriteWideXLSX(filePath string, rows []domain.WideRow) error {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), wideSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := WideHeaders(rows)
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(wideSheetName, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := make([]interface{}, len(headers))
		values[0] = row.MeetingDate.Format("2006-01-02")
		values[1] = row.Midpoint
		for j, h := range headers[2:] {
			if count, ok := row.Counts[h]; ok {
				values[j+2] = count
			}
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(wideSheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	slog.Info("Wrote wide workbook",
		slog.String("path", fullPath),
		slog.Int("rows", len(rows)))

	return nil
}
