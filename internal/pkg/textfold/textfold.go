// Package textfold normalises text for case and accent insensitive matching.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Sékretariat" and
// "SEKRETARIAT" fold to the same string.
func Fold(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Matcher tests folded haystacks against one folded needle.
type Matcher struct {
	needle string
}

func NewMatcher(query string) Matcher {
	return Matcher{needle: Fold(strings.TrimSpace(query))}
}

// Empty reports whether the query matches everything.
func (m Matcher) Empty() bool {
	return m.needle == ""
}

// Match reports whether the fields, joined by single spaces, contain the
// query. A query may span adjacent fields, such as a name followed by the
// start of a NIP.
func (m Matcher) Match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(Fold(strings.Join(fields, " ")), m.needle)
}
