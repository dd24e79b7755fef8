package domain

import (
	"sort"
	"time"
)

const (
	// LongerRun is the horizon sentinel the Fed uses for steady-state
	// projections, as it appears in slugified table headers.
	LongerRun = "longer_run"

	// LongerRunLabel is the display form of the longer-run horizon.
	LongerRunLabel = "Longer run"
)

// WideRow is one row of a scraped projection table: a rate midpoint at a
// given FOMC meeting plus, per horizon, the number of participants who
// projected that midpoint. A horizon absent from Counts means no participant
// supported it; zero counts are never stored.
type WideRow struct {
	MeetingDate time.Time      `json:"meeting_date"`
	Midpoint    float64        `json:"midpoint"`
	Counts      map[string]int `json:"counts"`
}

// Horizons returns the horizon labels present in the row, sorted ascending.
func (r WideRow) Horizons() []string {
	horizons := make([]string, 0, len(r.Counts))
	for h := range r.Counts {
		horizons = append(horizons, h)
	}
	sort.Strings(horizons)
	return horizons
}

// LongRecord is one (meeting date, midpoint, horizon) combination with the
// count of participants who projected it. NumParticipants is always >= 1:
// combinations without support have no record at all.
type LongRecord struct {
	MeetingDate     time.Time `json:"meeting_date"`
	Midpoint        float64   `json:"midpoint"`
	Year            string    `json:"year"`
	NumParticipants int       `json:"num_participants"`
}

// ParticipantVote is a single policymaker's projection: one row per
// participant, so multiplicity carries the count.
type ParticipantVote struct {
	MeetingDate time.Time `json:"meeting_date"`
	Midpoint    float64   `json:"midpoint"`
	Year        string    `json:"year"`
}

// IsLongerRun reports whether the vote targets the longer-run horizon.
func (v ParticipantVote) IsLongerRun() bool {
	return v.Year == LongerRun
}

// FormattedVote is a display-ready vote: meeting date rendered as "Mon YYYY"
// and the longer-run sentinel relabeled for the chart.
type FormattedVote struct {
	MeetingDate string  `json:"meeting_date"`
	Midpoint    float64 `json:"midpoint"`
	Year        string  `json:"year"`
}
