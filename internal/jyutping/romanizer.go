package jyutping

import "strings"

// Pair is one character of the input with its Jyutping syllable.
// Jyutping is empty when the character has no known pronunciation.
type Pair struct {
	Character string
	Jyutping  string
}

// Romanizer converts text to per-character Jyutping. It must return one
// pair per input rune, in input order, and must not fail on non-Chinese input.
type Romanizer interface {
	Romanize(text string) []Pair
}

// ReadingSource is implemented by romanizers that know every reading of a
// character, not just the preferred one.
type ReadingSource interface {
	Readings(char string) []string
}

// RomanizerFunc adapts a function to the Romanizer interface.
type RomanizerFunc func(text string) []Pair

// Romanize calls f(text).
func (f RomanizerFunc) Romanize(text string) []Pair {
	return f(text)
}

// Join returns the non-empty syllables of pairs separated by spaces.
func Join(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.Jyutping != "" {
			parts = append(parts, p.Jyutping)
		}
	}
	return strings.Join(parts, " ")
}
