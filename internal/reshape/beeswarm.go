package reshape

import (
	"sort"
	"time"

	"fomcdots/pkg/contracts/domain"
)

// DisplayDateLayout renders meeting dates the way the chart dropdowns want
// them, e.g. "Mar 2023".
const DisplayDateLayout = "Jan 2006"

// Options configures FormatBeeswarm.
type Options struct {
	// FilterLastYear keeps only meetings within the most recent eleven
	// months of the newest meeting in the input. The filter removes whole
	// meeting-date groups, never individual votes within a kept meeting.
	FilterLastYear bool
}

// DefaultOptions returns the options the chart template expects.
func DefaultOptions() Options {
	return Options{FilterLastYear: true}
}

// FormatBeeswarm orders, filters, and relabels expanded votes for the
// beeswarm template. Dated horizons are sorted by meeting date descending
// (newest meeting's dots first) while longer-run horizons stay chronological
// for trend reading; the dated block precedes the longer-run block. The
// input slice is never reordered or otherwise mutated.
func FormatBeeswarm(votes []domain.ParticipantVote, opts Options) []domain.FormattedVote {
	dated := make([]domain.ParticipantVote, 0, len(votes))
	longerRun := make([]domain.ParticipantVote, 0)
	for _, v := range votes {
		if v.IsLongerRun() {
			longerRun = append(longerRun, v)
		} else {
			dated = append(dated, v)
		}
	}

	// Two independent stable sorts instead of one conditional comparator:
	// the tie-break rules of each partition stay auditable on their own.
	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if !a.MeetingDate.Equal(b.MeetingDate) {
			return a.MeetingDate.After(b.MeetingDate)
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Midpoint < b.Midpoint
	})
	sort.SliceStable(longerRun, func(i, j int) bool {
		a, b := longerRun[i], longerRun[j]
		if !a.MeetingDate.Equal(b.MeetingDate) {
			return a.MeetingDate.Before(b.MeetingDate)
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Midpoint < b.Midpoint
	})

	ordered := append(dated, longerRun...)

	if opts.FilterLastYear {
		ordered = filterRecentMeetings(ordered)
	}

	formatted := make([]domain.FormattedVote, 0, len(ordered))
	for _, v := range ordered {
		year := v.Year
		if year == domain.LongerRun {
			year = domain.LongerRunLabel
		}
		formatted = append(formatted, domain.FormattedVote{
			MeetingDate: v.MeetingDate.Format(DisplayDateLayout),
			Midpoint:    v.Midpoint,
			Year:        year,
		})
	}

	return formatted
}

// filterRecentMeetings drops votes from meetings older than eleven months
// before the newest meeting present. Order is preserved.
func filterRecentMeetings(votes []domain.ParticipantVote) []domain.ParticipantVote {
	if len(votes) == 0 {
		return votes
	}

	var newest time.Time
	for _, v := range votes {
		if v.MeetingDate.After(newest) {
			newest = v.MeetingDate
		}
	}
	cutoff := newest.AddDate(0, -11, 0)

	kept := make([]domain.ParticipantVote, 0, len(votes))
	for _, v := range votes {
		if !v.MeetingDate.Before(cutoff) {
			kept = append(kept, v)
		}
	}
	return kept
}
