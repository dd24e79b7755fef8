package reshape

import (
	"regexp"
	"sort"

	"fomcdots/pkg/contracts/domain"
)

// horizonPattern matches the recognized horizon labels: a four-digit
// calendar year or the longer-run sentinel. Anything else in a header is a
// contract violation, never something to pivot silently.
var horizonPattern = regexp.MustCompile(`^(\d{4}|longer_run)$`)

// WideToLong pivots the wide projection table into one record per
// (meeting date, midpoint, horizon) holding the participant count for that
// combination. Horizons absent from a row are dropped: absence means zero
// support and must not be materialized as a stored zero. The result is
// sorted ascending by meeting date, then year, then midpoint.
func WideToLong(rows []domain.WideRow) ([]domain.LongRecord, error) {
	records := make([]domain.LongRecord, 0, len(rows))

	for i, row := range rows {
		for _, year := range row.Horizons() {
			if !horizonPattern.MatchString(year) {
				return nil, &SchemaError{Column: year, Row: i, Reason: "unrecognized horizon label"}
			}

			count := row.Counts[year]
			if count < 1 {
				// A stored zero or negative breaks the absence-means-zero
				// contract upstream of us.
				return nil, &SchemaError{Column: year, Row: i, Reason: "participant count must be positive"}
			}

			records = append(records, domain.LongRecord{
				MeetingDate:     row.MeetingDate,
				Midpoint:        row.Midpoint,
				Year:            year,
				NumParticipants: count,
			})
		}
	}

	sortLong(records)
	return records, nil
}

// sortLong orders long records ascending by meeting date, year, midpoint.
// Four-digit years and the longer_run sentinel compare correctly as strings.
func sortLong(records []domain.LongRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.MeetingDate.Equal(b.MeetingDate) {
			return a.MeetingDate.Before(b.MeetingDate)
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Midpoint < b.Midpoint
	})
}
