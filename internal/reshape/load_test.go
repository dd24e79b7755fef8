package reshape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomcdots/pkg/contracts/domain"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWideCSV(t *testing.T) {
	path := writeTempCSV(t, "meeting_date,midpoint,2023,2024,longer_run\n"+
		"2023-03-22,5.125,3,7,2\n"+
		"2023-03-22,4.875,,1,\n")

	rows, err := LoadWideCSV(path)
	require.NoError(t, err)

	expected := []domain.WideRow{
		{
			MeetingDate: day("2023-03-22"),
			Midpoint:    5.125,
			Counts:      map[string]int{"2023": 3, "2024": 7, "longer_run": 2},
		},
		{
			MeetingDate: day("2023-03-22"),
			Midpoint:    4.875,
			Counts:      map[string]int{"2024": 1},
		},
	}
	assert.Equal(t, expected, rows)
}

func TestLoadWideCSVWithBOM(t *testing.T) {
	path := writeTempCSV(t, "\ufeffmeeting_date,midpoint,2024\n2023-06-14,5.625,9\n")

	rows, err := LoadWideCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]int{"2024": 9}, rows[0].Counts)
}

func TestLoadWideCSVEmptyCellsStayAbsent(t *testing.T) {
	path := writeTempCSV(t, "meeting_date,midpoint,2023,2024\n2023-03-22,5.125,, 4\n")

	rows, err := LoadWideCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, present := rows[0].Counts["2023"]
	assert.False(t, present, "empty cell must not become a stored zero")
	assert.Equal(t, 4, rows[0].Counts["2024"])
}

func TestLoadWideCSVSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unexpected leading columns",
			content: "date,rate,2023\n2023-03-22,5.125,3\n",
		},
		{
			name:    "unrecognized horizon header",
			content: "meeting_date,midpoint,median\n2023-03-22,5.125,3\n",
		},
		{
			name:    "non-integer participant count",
			content: "meeting_date,midpoint,2023\n2023-03-22,5.125,3.5\n",
		},
		{
			name:    "unparseable meeting date",
			content: "meeting_date,midpoint,2023\nMarch 22,5.125,3\n",
		},
		{
			name:    "non-numeric midpoint",
			content: "meeting_date,midpoint,2023\n2023-03-22,high,3\n",
		},
		{
			name:    "missing horizon columns entirely",
			content: "meeting_date,midpoint\n2023-03-22,5.125\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)

			rows, err := LoadWideCSV(path)
			require.Error(t, err)
			assert.Nil(t, rows)

			var schemaErr *SchemaError
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestLoadWideCSVMissingFile(t *testing.T) {
	_, err := LoadWideCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
