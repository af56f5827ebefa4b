package normaliser

import "strings"

// removeMarks strips decorations from words in abjad scripts: combining
// marks that carry optional vowel pointing, and the Arabic tatweel used
// to visually stretch a word. Informal writing omits these, so keeping
// them would split one word's counts across pointed and unpointed forms.
func removeMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isOptionalMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isOptionalMark reports whether r is an optional mark in the Hebrew or
// Arabic script ranges, or the tatweel.
func isOptionalMark(r rune) bool {
	switch {
	case r >= 0x0591 && r <= 0x05C7: // Hebrew points and cantillation
		return true
	case r >= 0x0610 && r <= 0x061A: // Arabic honorific marks
		return true
	case r >= 0x064B && r <= 0x065F: // Arabic tashkil
		return true
	case r >= 0x06D6 && r <= 0x06ED: // Arabic Koranic annotation
		return true
	case r == 0x0640: // tatweel
		return true
	}
	return false
}
