package jyutping

import (
	"github.com/palemoky/tinci/internal/hanzi"
)

// Lexicon is a dictionary-backed Romanizer. It is filled once with Add and
// is read-only afterwards, so concurrent Romanize calls need no locking.
type Lexicon struct {
	readings map[string][]string
	variants func(char string) []string
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithVariants sets the function used to find alternative forms of a
// character that is missing from the lexicon. Pass nil to disable fallback.
func WithVariants(fn func(char string) []string) Option {
	return func(l *Lexicon) {
		l.variants = fn
	}
}

// NewLexicon creates an empty lexicon. By default, missing characters are
// retried in their traditional or simplified form via OpenCC.
func NewLexicon(opts ...Option) *Lexicon {
	l := &Lexicon{
		readings: make(map[string][]string),
		variants: hanzi.Variants,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends readings for char, keeping the first occurrence of duplicates.
// Earlier readings take precedence in Romanize.
func (l *Lexicon) Add(char string, readings ...string) {
	existing := l.readings[char]
	for _, r := range readings {
		if r == "" || contains(existing, r) {
			continue
		}
		existing = append(existing, r)
	}
	if len(existing) > 0 {
		l.readings[char] = existing
	}
}

// Readings returns every reading of char in precedence order.
func (l *Lexicon) Readings(char string) []string {
	if rs, ok := l.readings[char]; ok {
		return rs
	}
	if l.variants == nil {
		return nil
	}
	runes := []rune(char)
	if len(runes) != 1 || !hanzi.IsHan(runes[0]) {
		return nil
	}
	for _, v := range l.variants(char) {
		if rs, ok := l.readings[v]; ok {
			return rs
		}
	}
	return nil
}

// Romanize returns the preferred reading of every rune in text.
func (l *Lexicon) Romanize(text string) []Pair {
	pairs := make([]Pair, 0, len(text))
	for _, r := range text {
		char := string(r)
		pair := Pair{Character: char}
		if rs := l.Readings(char); len(rs) > 0 {
			pair.Jyutping = rs[0]
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// Size returns the number of characters with at least one reading.
func (l *Lexicon) Size() int {
	return len(l.readings)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
