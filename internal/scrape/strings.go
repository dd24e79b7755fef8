package scrape

import (
	"strings"
	"unicode"
)

// SafeString trims surrounding whitespace and reports whether anything
// remains. Empty table cells come back as ok=false so callers can treat
// absence explicitly instead of storing an empty value.
func SafeString(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// Slugify normalizes a table header to a column label: lowercased, with
// runs of non-alphanumeric characters collapsed to single underscores.
// "Longer run" becomes "longer_run"; "2023" stays "2023".
func Slugify(s string) string {
	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
