package reshape

import "fmt"

// SchemaError reports a structural problem in an input table: an
// unrecognized horizon label, a missing required column, or a count that
// cannot be a participant tally.
type SchemaError struct {
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema violation in column %q (row %d): %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("schema violation (row %d): %s", e.Row, e.Reason)
}

// CountError reports a participant count that reached Expand without being a
// positive integer. Upstream null-dropping should make this unreachable, so
// it always indicates a broken producer rather than bad source data.
type CountError struct {
	Row   int
	Count int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("count violation (row %d): num_participants must be a positive integer, got %d", e.Row, e.Count)
}
