package rhyme

import (
	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/tone"
)

// FinalQuery lists the characters of one final.
type FinalQuery struct {
	Final  string
	Tone   *int
	System tone.System
	Limit  int
}

// FinalResult holds the characters of one final.
type FinalResult struct {
	Final      string
	Tone       *int
	Characters []Match
	TotalCount int
}

// Finals returns every final in the corpus in ascending order.
func (e *Engine) Finals() []string {
	return e.corpus.Finals()
}

// CharactersByFinal returns the entries of a final, optionally restricted to
// one tone. An unknown final is NOT_FOUND with the available finals attached.
func (e *Engine) CharactersByFinal(q FinalQuery) (*FinalResult, error) {
	if q.Final == "" {
		return nil, apperr.EmptyInput("final")
	}
	if q.Tone != nil && !tone.Valid(*q.Tone) {
		return nil, apperr.InvalidTone(*q.Tone)
	}
	if !e.corpus.HasFinal(q.Final) {
		err := apperr.NotFound("final " + q.Final)
		err.Details = e.corpus.Finals()
		return nil, err
	}

	sys, err := tone.ParseSystem(string(q.System))
	if err != nil {
		return nil, err
	}
	limit := e.clampLimit(q.Limit, DefaultFinalsLimit)

	chars := make([]Match, 0, limit)
	total := 0
	for _, entry := range e.corpus.buckets[q.Final] {
		if q.Tone != nil && entry.Syllable.Tone != *q.Tone {
			continue
		}
		total++
		if len(chars) < limit {
			chars = append(chars, e.match(entry, sys))
		}
	}

	return &FinalResult{
		Final:      q.Final,
		Tone:       q.Tone,
		Characters: chars,
		TotalCount: total,
	}, nil
}
