// Package pattern turns a line of lyrics into its melody digit pattern.
package pattern

import (
	"strings"

	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/hanzi"
	"github.com/palemoky/tinci/internal/jyutping"
	"github.com/palemoky/tinci/internal/tone"
)

// Token is the analysis of one input character. Tone and Mapped are nil
// for characters without a pronunciation.
type Token struct {
	Character string
	Jyutping  string
	Tone      *int
	Mapped    *string
}

// Analysis is the tone pattern of a text under one system.
type Analysis struct {
	Text      string
	System    tone.System
	Pattern   string
	Breakdown []Token
}

// Resolved returns the number of characters that contributed to the pattern.
func (a *Analysis) Resolved() int {
	return len(a.Pattern)
}

// Analyzer computes tone patterns with the readings of a Romanizer.
type Analyzer struct {
	romanizer jyutping.Romanizer
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(romanizer jyutping.Romanizer) *Analyzer {
	return &Analyzer{romanizer: romanizer}
}

// Analyze romanizes text and maps each tone to its melody digit. Characters
// without a syllable stay in the breakdown but are left out of the pattern.
func (a *Analyzer) Analyze(text string, system tone.System) (*Analysis, error) {
	if hanzi.IsBlank(text) {
		return nil, apperr.EmptyInput("text")
	}
	system, err := tone.ParseSystem(string(system))
	if err != nil {
		return nil, err
	}

	pairs := a.romanizer.Romanize(text)
	breakdown := make([]Token, 0, len(pairs))
	var pattern strings.Builder

	for _, p := range pairs {
		tok := Token{Character: p.Character, Jyutping: p.Jyutping}
		if p.Jyutping == "" {
			breakdown = append(breakdown, tok)
			continue
		}

		syl, err := jyutping.ParseSyllable(p.Jyutping)
		if err != nil {
			return nil, err
		}
		c, err := tone.Classify(syl.Tone, system)
		if err != nil {
			return nil, err
		}

		t, digit := syl.Tone, c.Digit
		tok.Tone, tok.Mapped = &t, &digit
		breakdown = append(breakdown, tok)
		pattern.WriteString(digit)
	}

	return &Analysis{
		Text:      text,
		System:    system,
		Pattern:   pattern.String(),
		Breakdown: breakdown,
	}, nil
}
