package harness

import "strings"

// FirstRowMatching returns the index of the first row whose text contains
// want. Matching is a plain substring scan in row order, so repeated lookups
// over unchanged rows always pick the same row.
func FirstRowMatching(rows []string, want string) (int, bool) {
	for i, row := range rows {
		if strings.Contains(row, want) {
			return i, true
		}
	}
	return -1, false
}
