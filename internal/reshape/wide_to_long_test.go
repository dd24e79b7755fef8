package reshape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomcdots/pkg/contracts/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWideToLong(t *testing.T) {
	tests := []struct {
		name     string
		rows     []domain.WideRow
		expected []domain.LongRecord
	}{
		{
			name: "single row pivots to one record per horizon",
			rows: []domain.WideRow{
				{
					MeetingDate: day("2023-03-22"),
					Midpoint:    5.125,
					Counts:      map[string]int{"2023": 3, "2024": 7, "longer_run": 2},
				},
			},
			expected: []domain.LongRecord{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Year: "2023", NumParticipants: 3},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Year: "2024", NumParticipants: 7},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Year: "longer_run", NumParticipants: 2},
			},
		},
		{
			name: "absent horizons produce no records",
			rows: []domain.WideRow{
				{
					MeetingDate: day("2023-03-22"),
					Midpoint:    4.625,
					Counts:      map[string]int{"2024": 5},
				},
			},
			expected: []domain.LongRecord{
				{MeetingDate: day("2023-03-22"), Midpoint: 4.625, Year: "2024", NumParticipants: 5},
			},
		},
		{
			name: "output sorted by meeting date then year then midpoint",
			rows: []domain.WideRow{
				{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2023": 2}},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.375, Counts: map[string]int{"2024": 1, "2023": 4}},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3}},
			},
			expected: []domain.LongRecord{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Year: "2023", NumParticipants: 3},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.375, Year: "2023", NumParticipants: 4},
				{MeetingDate: day("2023-03-22"), Midpoint: 5.375, Year: "2024", NumParticipants: 1},
				{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Year: "2023", NumParticipants: 2},
			},
		},
		{
			name: "longer_run sorts after calendar years within a meeting",
			rows: []domain.WideRow{
				{MeetingDate: day("2024-12-18"), Midpoint: 3.875, Counts: map[string]int{"longer_run": 6, "2025": 10}},
			},
			expected: []domain.LongRecord{
				{MeetingDate: day("2024-12-18"), Midpoint: 3.875, Year: "2025", NumParticipants: 10},
				{MeetingDate: day("2024-12-18"), Midpoint: 3.875, Year: "longer_run", NumParticipants: 6},
			},
		},
		{
			name:     "empty input yields empty output",
			rows:     nil,
			expected: []domain.LongRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := WideToLong(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestWideToLongSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		rows   []domain.WideRow
		column string
	}{
		{
			name: "unrecognized horizon label",
			rows: []domain.WideRow{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"median": 3}},
			},
			column: "median",
		},
		{
			name: "two-digit year is rejected",
			rows: []domain.WideRow{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"23": 3}},
			},
			column: "23",
		},
		{
			name: "stored zero count breaks the absence contract",
			rows: []domain.WideRow{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 0}},
			},
			column: "2023",
		},
		{
			name: "negative count is rejected",
			rows: []domain.WideRow{
				{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2024": -2}},
			},
			column: "2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := WideToLong(tt.rows)
			require.Error(t, err)
			assert.Nil(t, records)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.column, schemaErr.Column)
		})
	}
}

func TestWideToLongDoesNotMutateInput(t *testing.T) {
	rows := []domain.WideRow{
		{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2023": 2}},
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3, "2024": 7}},
	}
	original := []domain.WideRow{
		{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2023": 2}},
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3, "2024": 7}},
	}

	_, err := WideToLong(rows)
	require.NoError(t, err)
	assert.Equal(t, original, rows)
}
