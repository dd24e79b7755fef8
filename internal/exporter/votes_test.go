package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
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

func TestWideHeaders(t *testing.T) {
	rows := []domain.WideRow{
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2024": 7, "longer_run": 2}},
		{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2023": 2, "2025": 4}},
	}

	headers := WideHeaders(rows)
	assert.Equal(t, []string{"meeting_date", "midpoint", "2023", "2024", "2025", "longer_run"}, headers)
}

func TestWideRecordsLeaveAbsentCellsEmpty(t *testing.T) {
	rows := []domain.WideRow{
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3, "longer_run": 2}},
	}

	headers := []string{"meeting_date", "midpoint", "2023", "2024", "longer_run"}

	records := WideRecords(rows, headers)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"2023-03-22", "5.125", "3", "", "2"}, records[0])
}

func TestBeeswarmRecords(t *testing.T) {
	votes := []domain.FormattedVote{
		{MeetingDate: "Mar 2023", Midpoint: 5.125, Year: "2023"},
		{MeetingDate: "Mar 2023", Midpoint: 2.5, Year: "Longer run"},
	}

	records := BeeswarmRecords(votes)
	assert.Equal(t, [][]string{
		{"Mar 2023", "5.125", "2023"},
		{"Mar 2023", "2.5", "Longer run"},
	}, records)
}

func TestFormatMidpoint(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "three decimals preserved", input: 5.125, expected: "5.125"},
		{name: "no trailing zero padding", input: 2.5, expected: "2.5"},
		{name: "whole number", input: 3, expected: "3"},
		{name: "zero", input: 0, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMidpoint(tt.input))
		})
	}
}

func TestWriteBeeswarmCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	votes := []domain.FormattedVote{
		{MeetingDate: "Jun 2023", Midpoint: 5.625, Year: "2024"},
		{MeetingDate: "Mar 2023", Midpoint: 2.5, Year: "Longer run"},
	}

	require.NoError(t, writer.WriteBeeswarmCSV("beeswarm.csv", votes))

	raw, err := os.ReadFile(filepath.Join(dir, "beeswarm.csv"))
	require.NoError(t, err)

	content := strings.TrimPrefix(string(raw), "\ufeff")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"meeting_date", "midpoint", "year"},
		{"Jun 2023", "5.625", "2024"},
		{"Mar 2023", "2.5", "Longer run"},
	}, records)
}

func TestWriteWideCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	rows := []domain.WideRow{
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3, "2024": 7, "longer_run": 2}},
		{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2024": 9}},
	}

	require.NoError(t, writer.WriteWideCSV("wide.csv", rows))

	raw, err := os.ReadFile(filepath.Join(dir, "wide.csv"))
	require.NoError(t, err)

	content := strings.TrimPrefix(string(raw), "\ufeff")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"meeting_date", "midpoint", "2023", "2024", "longer_run"},
		{"2023-03-22", "5.125", "3", "7", "2"},
		{"2023-06-14", "5.625", "", "9", ""},
	}, records)
}
