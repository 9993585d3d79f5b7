// Package sanitize is the single sanitize-on-write boundary for free-text
// fields. Every user-supplied string (names, recipients, bodies) passes
// through Clean before it reaches the store; nothing is sanitized on read.
package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Clean strips markup and control sequences from a free-text field and trims
// surrounding whitespace.
func Clean(s string) string {
	s = policy.Sanitize(s)
	// The strict policy entity-escapes the remaining text; undo that so the
	// stored value is plain text, not HTML.
	s = html.UnescapeString(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
