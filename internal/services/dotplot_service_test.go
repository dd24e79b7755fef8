package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomcdots/internal/reshape"
	"fomcdots/pkg/contracts/domain"
)

type staticSource struct {
	rows []domain.WideRow
	err  error
}

func (s staticSource) WideRows(ctx context.Context) ([]domain.WideRow, error) {
	return s.rows, s.err
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testService(source VoteSource) *DotplotService {
	return NewDotplotService(source, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBeeswarmRunsFullPipeline(t *testing.T) {
	source := staticSource{rows: []domain.WideRow{
		{
			MeetingDate: day("2023-06-14"),
			Midpoint:    5.625,
			Counts:      map[string]int{"2023": 3, "2024": 7, "longer_run": 2},
		},
	}}

	svc := testService(source)
	result, err := svc.Beeswarm(context.Background(), reshape.DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 1, result.Meetings)
	require.Len(t, result.Votes, 12)

	// Dated votes come first, longer-run votes last.
	assert.Equal(t, "2023", result.Votes[0].Year)
	assert.Equal(t, "Longer run", result.Votes[11].Year)
	assert.Equal(t, "Jun 2023", result.Votes[0].MeetingDate)
}

func TestBeeswarmPropagatesSourceErrors(t *testing.T) {
	svc := testService(staticSource{err: errors.New("fetch failed")})

	result, err := svc.Beeswarm(context.Background(), reshape.DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "fetch failed")
}

func TestBeeswarmPropagatesSchemaErrors(t *testing.T) {
	source := staticSource{rows: []domain.WideRow{
		{
			MeetingDate: day("2023-06-14"),
			Midpoint:    5.625,
			Counts:      map[string]int{"q4_2024": 3},
		},
	}}

	svc := testService(source)
	_, err := svc.Beeswarm(context.Background(), reshape.DefaultOptions())

	var schemaErr *reshape.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "q4_2024", schemaErr.Column)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.csv")
	content := "meeting_date,midpoint,2023,longer_run\n2023-06-14,5.625,3,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := testService(CSVSource{Path: path})
	result, err := svc.Beeswarm(context.Background(), reshape.Options{})
	require.NoError(t, err)
	assert.Len(t, result.Votes, 5)
}

func TestWideTable(t *testing.T) {
	rows := []domain.WideRow{
		{MeetingDate: day("2023-03-22"), Midpoint: 5.125, Counts: map[string]int{"2023": 1}},
		{MeetingDate: day("2023-03-22"), Midpoint: 5.375, Counts: map[string]int{"2023": 2}},
	}
	svc := testService(staticSource{rows: rows})

	got, err := svc.WideTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, 1, countMeetings(rows))
}

func TestHealthService(t *testing.T) {
	svc := NewHealthService("1.2.3")
	status := svc.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.Timestamp.IsZero())
}
