// Package reshape transforms scraped FOMC dot-plot projection tables into
// the row layout the beeswarm chart template consumes.
//
// The package is a strict three-stage pipeline of pure functions:
//
//  1. WideToLong: pivots the wide table (one row per meeting/midpoint with
//     one column per horizon) into long records keyed by
//     (meeting date, midpoint, year), dropping horizons with no support.
//  2. Expand: repeats each long record once per participant, so row
//     multiplicity replaces the count column.
//  3. FormatBeeswarm: orders, optionally date-filters, and relabels the
//     expanded rows for display.
//
// Each stage consumes only the previous stage's output and never mutates
// its input. Stages fail fast with typed validation errors (SchemaError,
// CountError) instead of coercing bad input.
//
// Example usage:
//
//	rows, err := reshape.LoadWideCSV("data/wide.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	long, err := reshape.WideToLong(rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	votes, err := reshape.Expand(long)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	formatted := reshape.FormatBeeswarm(votes, reshape.DefaultOptions())
package reshape
