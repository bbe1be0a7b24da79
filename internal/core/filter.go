package core

import (
	"slices"
	"strings"

	"github.com/inovacc/phonebook/internal/model"
)

// Filter returns the records whose username, extension or location contains
// term, ignoring case. Order is preserved. An empty term returns every record.
func Filter(records []model.Record, term string) []model.Record {
	if term == "" {
		return slices.Clone(records)
	}

	needle := strings.ToLower(term)

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, needle) {
			out = append(out, r)
		}
	}

	return out
}

// Matches reports whether r matches an already lower-cased term.
func Matches(r model.Record, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(r.Username), lowerTerm) ||
		strings.Contains(strings.ToLower(r.Extension), lowerTerm) ||
		strings.Contains(strings.ToLower(r.Location), lowerTerm)
}
