package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "longer run header", input: "Longer run", expected: "longer_run"},
		{name: "calendar year stays intact", input: "2023", expected: "2023"},
		{name: "mixed case collapses", input: "Longer  Run", expected: "longer_run"},
		{name: "punctuation becomes separators", input: "Midpoint of target range (percent)", expected: "midpoint_of_target_range_percent"},
		{name: "leading and trailing junk trimmed", input: "  2024  ", expected: "2024"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSafeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "plain value", input: "17", expected: "17", ok: true},
		{name: "surrounding whitespace trimmed", input: "  5.125\n", expected: "5.125", ok: true},
		{name: "empty cell is absent", input: "", expected: "", ok: false},
		{name: "whitespace-only cell is absent", input: " \t\n", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeString(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
