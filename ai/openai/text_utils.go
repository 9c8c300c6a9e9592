package openai

import "strings"

// scrubTerm trims whitespace and strips characters that would break prompt
// formatting. Interior punctuation such as hyphens is preserved since medical
// terms use it.
func scrubTerm(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("\"`{}[]", r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// stripFences removes markdown code fences and surrounding whitespace from a
// model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
