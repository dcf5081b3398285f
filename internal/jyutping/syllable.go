// Package jyutping parses Jyutping syllables and romanizes Cantonese text.
package jyutping

import (
	"strconv"
	"strings"

	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/tone"
)

// Syllable is the rhyme-relevant part of a Jyutping syllable.
type Syllable struct {
	Initial string // e.g. "l", "gw", "" for null initial
	Final   string // e.g. "oi", "yun"
	Tone    int    // 1-9
}

// String renders the syllable back to Jyutping, e.g. "loi4".
func (s Syllable) String() string {
	return s.Initial + s.Final + strconv.Itoa(s.Tone)
}

// Two-letter initials come first so that "ng", "gw" and "kw" win over
// their one-letter prefixes.
var initials = []string{
	"ng", "gw", "kw",
	"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "w", "z", "c", "s", "j",
}

// ParseSyllable splits a Jyutping syllable into initial, final and tone.
func ParseSyllable(s string) (Syllable, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))

	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	if end == len(s) {
		return Syllable{}, apperr.MalformedSyllable(raw, "missing tone digit")
	}

	t, err := strconv.Atoi(s[end:])
	if err != nil || len(s)-end != 1 || !tone.Valid(t) {
		return Syllable{}, apperr.MalformedSyllable(raw, "tone must be between 1 and 9")
	}

	body := s[:end]
	if body == "" {
		return Syllable{}, apperr.MalformedSyllable(raw, "missing final")
	}
	for i := 0; i < len(body); i++ {
		if body[i] < 'a' || body[i] > 'z' {
			return Syllable{}, apperr.MalformedSyllable(raw, "unexpected character in syllable")
		}
	}

	initial, final := splitInitial(body)
	if final == "" {
		return Syllable{}, apperr.MalformedSyllable(raw, "missing final")
	}

	return Syllable{Initial: initial, Final: final, Tone: t}, nil
}

// Final returns only the final of a syllable.
func Final(s string) (string, error) {
	syl, err := ParseSyllable(s)
	if err != nil {
		return "", err
	}
	return syl.Final, nil
}

// splitInitial strips the leading consonant cluster. Syllabic nasals
// (m4, ng5, hm4, hng6) keep the nasal as their final.
func splitInitial(body string) (initial, final string) {
	for _, in := range initials {
		if !strings.HasPrefix(body, in) {
			continue
		}
		rest := body[len(in):]
		if rest == "" {
			return "", body
		}
		if in == "h" && (rest == "m" || rest == "ng") {
			return "h", rest
		}
		return in, rest
	}
	return "", body
}
