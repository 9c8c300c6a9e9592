package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalizeTerm canonicalizes a term for matching: lowercase, collapse
// whitespace, and strip diacritics so "przeziębienie" and "przeziebienie"
// compare equal.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")

	// Decompose and drop combining marks
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
