package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes raw OCR output before field extraction: whitespace
// runs collapse to a single space, and two frequent OCR misreads are
// corrected ('|' for 'I', '0' for 'O'). The substitutions are applied to
// the whole text, digits included, so numeric fields downstream must
// tolerate corrupted zeros.
func CleanText(text string) string {
	cleaned := whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	cleaned = strings.ReplaceAll(cleaned, "|", "I")
	cleaned = strings.ReplaceAll(cleaned, "0", "O")
	return cleaned
}

// titleCase uppercases the first letter of every alphabetic run and
// lowercases the rest, so "jane doe" becomes "Jane Doe" and "x-ray"
// becomes "X-Ray".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

// allDigits reports whether s is non-empty and made of ASCII digits only.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
