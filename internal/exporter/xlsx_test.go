package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fomcdots/pkg/contracts/domain"
)

func TestWriteBeeswarmXLSX(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	votes := []domain.FormattedVote{
		{MeetingDate: "Jun 2023", Midpoint: 5.625, Year: "2024"},
		{MeetingDate: "Mar 2023", Midpoint: 2.5, Year: "Longer run"},
	}

	path := filepath.Join(dir, "dotplot.xlsx")
	require.NoError(t, writer.WriteBeeswarmXLSX(path, votes))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(beeswarmSheetName)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"meeting_date", "midpoint", "year"}, rows[0])
	assert.Equal(t, []string{"Jun 2023", "5.625", "2024"}, rows[1])
	assert.Equal(t, []string{"Mar 2023", "2.5", "Longer run"}, rows[2])
}

func TestWriteWideXLSX(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	wide := []domain.WideRow{
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 3, "longer_run": 2}},
		{MeetingDate: day("2023-06-14"), Midpoint: 5.625, Counts: map[string]int{"2024": 9}},
	}

	path := filepath.Join(dir, "wide.xlsx")
	require.NoError(t, writer.WriteWideXLSX(path, wide))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(wideSheetName)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"meeting_date", "midpoint", "2023", "2024", "longer_run"}, rows[0])
	assert.Equal(t, []string{"2023-03-22", "5.125", "3", "", "2"}, rows[1])
	// GetRows trims trailing empty cells.
	assert.Equal(t, []string{"2023-06-14", "5.625", "", "9"}, rows[2])
}
