// Package hanzi holds character-level helpers for Chinese text: Han script
// detection, whitespace normalisation, simplified/traditional conversion and
// Mandarin readings.
package hanzi

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsHan reports whether r is a CJK ideograph.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// NormalizeText trims whitespace and collapses internal runs of spaces
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TrimAllWhitespace removes all whitespace characters from text
func TrimAllWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// SingleRune trims text and returns it if it is exactly one rune long.
func SingleRune(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) != 1 {
		return text, false
	}
	return text, true
}
