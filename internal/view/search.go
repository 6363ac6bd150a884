// Package view holds the pure derivations behind the admin pages: search
// filters, per-status counters and the dashboard summary.  Nothing here
// performs I/O; handlers fetch and pass the data in.
package view

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// All is the filter value that disables status and role filtering.
const All = "all"

// normalize folds case and Vietnamese diacritics so "mat biec" finds
// "Mắt Biếc".  Punctuation is kept and runs of whitespace collapse to one
// space.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(unidecode.Unidecode(s))), " ")
}

// matcher reports whether any candidate contains the search term.  An empty
// term matches everything.
type matcher struct {
	term string
}

func newMatcher(term string) matcher {
	return matcher{term: normalize(term)}
}

func (m matcher) any(candidates ...string) bool {
	if m.term == "" {
		return true
	}
	for _, c := range candidates {
		if c != "" && strings.Contains(normalize(c), m.term) {
			return true
		}
	}
	return false
}
