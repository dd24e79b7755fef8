package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"fomcdots/pkg/contracts/domain"
)

// wide table column layout: meeting_date, midpoint, then horizons ascending.
const (
	colMeetingDate = "meeting_date"
	colMidpoint    = "midpoint"
	colYear        = "year"
)

// BeeswarmHeaders is the column layout of the display-ready vote table.
var BeeswarmHeaders = []string{colMeetingDate, colMidpoint, colYear}

// WideHeaders returns the CSV header for a wide table: the two fixed columns
// followed by the union of horizon labels across all rows, sorted ascending.
func WideHeaders(rows []domain.WideRow) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for h := range row.Counts {
			seen[h] = true
		}
	}

	horizons := make([]string, 0, len(seen))
	for h := range seen {
		horizons = append(horizons, h)
	}
	sort.Strings(horizons)

	return append([]string{colMeetingDate, colMidpoint}, horizons...)
}

// WideRecords renders wide rows against the given header. Horizons a row has
// no count for stay empty: the CSV must not invent stored zeros.
func WideRecords(rows []domain.WideRow, headers []string) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, len(headers))
		record[0] = row.MeetingDate.Format("2006-01-02")
		record[1] = formatMidpoint(row.Midpoint)
		for i, h := range headers[2:] {
			if count, ok := row.Counts[h]; ok {
				record[i+2] = strconv.Itoa(count)
			}
		}
		records = append(records, record)
	}
	return records
}

// BeeswarmRecords renders formatted votes as CSV records.
func BeeswarmRecords(votes []domain.FormattedVote) [][]string {
	records := make([][]string, 0, len(votes))
	for _, v := range votes {
		records = append(records, []string{v.MeetingDate, formatMidpoint(v.Midpoint), v.Year})
	}
	return records
}

// WriteWideCSV streams the scraper's wide table row by row; the full history
// covers every projection meeting since 2012.
func (w *CSVWriter) WriteWideCSV(filePath string, rows []domain.WideRow) error {
	headers := WideHeaders(rows)

	sw, err := w.CreateStreamWriter(filePath, headers)
	if err != nil {
		return err
	}

	for i, record := range WideRecords(rows, headers) {
		if err := sw.WriteRecord(record); err != nil {
			sw.Close()
			return fmt.Errorf("write wide record %d: %w", i, err)
		}
	}

	return sw.Close()
}

// WriteBeeswarmCSV writes the display-ready vote table.
func (w *CSVWriter) WriteBeeswarmCSV(filePath string, votes []domain.FormattedVote) error {
	return w.WriteSimpleCSV(filePath, BeeswarmHeaders, BeeswarmRecords(votes))
}

// WriteBeeswarmTo streams the display-ready vote table as CSV to w. Unlike
// the file writers it emits no BOM, which suits HTTP responses.
func WriteBeeswarmTo(w io.Writer, votes []domain.FormattedVote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BeeswarmHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range BeeswarmRecords(votes) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatMidpoint keeps rate buckets exact: 5.125 stays "5.125", 2.5 stays
// "2.5", never padded or rounded.
func formatMidpoint(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
