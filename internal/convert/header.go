package convert

import (
	"regexp"
	"strconv"
	"strings"
)

var invalidColumnChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeColumnName trims the header cell and replaces every character
// outside [A-Za-z0-9_] with an underscore.
//
// Empty results are returned as is and collisions between sanitized
// names are not resolved.
func SanitizeColumnName(cell string) string {
	return invalidColumnChars.ReplaceAllString(strings.TrimSpace(cell), "_")
}

// PlaceholderColumnName returns the generated name for the column at the
// given 1-based position.
func PlaceholderColumnName(position int) string {
	return "column_" + strconv.Itoa(position)
}

// ResolveHeader computes the column names of a run from the first record
// of the source.
//
// With hasHeader the record cells are sanitized into names, otherwise
// column_1..column_N placeholders are generated and the caller keeps the
// record as data.
func ResolveHeader(record []string, hasHeader bool) []string {
	columns := make([]string, len(record))
	for i, cell := range record {
		if hasHeader {
			columns[i] = SanitizeColumnName(cell)
			continue
		}
		columns[i] = PlaceholderColumnName(i + 1)
	}
	return columns
}
