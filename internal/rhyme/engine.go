package rhyme

import (
	"fmt"

	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/hanzi"
	"github.com/palemoky/tinci/internal/jyutping"
	"github.com/palemoky/tinci/internal/tone"
)

const (
	DefaultLimit       = 50
	DefaultFinalsLimit = 100
	DefaultMaxLimit    = 1000
)

// Engine answers rhyme queries against a corpus.
type Engine struct {
	corpus       *Corpus
	romanizer    jyutping.Romanizer
	defaultLimit int
	maxLimit     int
	strict       bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLimits sets the limit used when a query gives none and the cap
// applied to every query. Non-positive values keep the defaults.
func WithLimits(defaultLimit, maxLimit int) EngineOption {
	return func(e *Engine) {
		if defaultLimit > 0 {
			e.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			e.maxLimit = maxLimit
		}
	}
}

// WithStrictPolyphony makes queries for characters with several readings
// fail with AMBIGUOUS_CHARACTER instead of using the first reading. It only
// has an effect when the romanizer implements jyutping.ReadingSource.
func WithStrictPolyphony(strict bool) EngineOption {
	return func(e *Engine) {
		e.strict = strict
	}
}

// NewEngine creates a rhyme engine.
func NewEngine(corpus *Corpus, romanizer jyutping.Romanizer, opts ...EngineOption) *Engine {
	e := &Engine{
		corpus:       corpus,
		romanizer:    romanizer,
		defaultLimit: DefaultLimit,
		maxLimit:     DefaultMaxLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Corpus returns the corpus the engine reads from.
func (e *Engine) Corpus() *Corpus {
	return e.corpus
}

// Query holds rhyme query parameters
type Query struct {
	Character string
	Selection Selection
	System    tone.System
	Limit     int
}

// Match is a character reading annotated with its tone group.
type Match struct {
	Character string
	Jyutping  string
	Tone      int
	ToneGroup string
}

// Result holds rhyme query results
type Result struct {
	Input      Match
	Final      string
	System     tone.System
	Selection  Selection
	Rhymes     []Match
	TotalCount int
}

// FindRhymes returns the entries sharing the query character's final that
// pass the selection, in corpus order. TotalCount is the filtered size
// before the limit is applied. The query character's own reading is never
// part of the result.
func (e *Engine) FindRhymes(q Query) (*Result, error) {
	char, ok := hanzi.SingleRune(q.Character)
	if char == "" {
		return nil, apperr.EmptyInput("character")
	}
	if !ok {
		return nil, apperr.InvalidRequest(fmt.Sprintf("character must be a single character, got %q", char))
	}

	sys, err := tone.ParseSystem(string(q.System))
	if err != nil {
		return nil, err
	}
	sel := q.Selection
	if sel.Mode == "" {
		sel = All()
	}

	groups := e.corpus.Groups()
	if err := sel.validate(groups, sys); err != nil {
		return nil, err
	}

	input, err := e.resolve(char)
	if err != nil {
		return nil, err
	}

	inputMatch := e.match(input, sys)
	keep := sel.predicate(input.Syllable.Tone, inputMatch.ToneGroup)
	limit := e.clampLimit(q.Limit, e.defaultLimit)

	rhymes := make([]Match, 0, limit)
	total := 0
	for _, cand := range e.corpus.buckets[input.Syllable.Final] {
		if cand.Character == input.Character && cand.Syllable == input.Syllable {
			continue
		}
		m := e.match(cand, sys)
		if !keep(m.Tone, m.ToneGroup) {
			continue
		}
		total++
		if len(rhymes) < limit {
			rhymes = append(rhymes, m)
		}
	}

	return &Result{
		Input:      inputMatch,
		Final:      input.Syllable.Final,
		System:     sys,
		Selection:  sel,
		Rhymes:     rhymes,
		TotalCount: total,
	}, nil
}

// resolve finds the reading of char through the romanizer.
func (e *Engine) resolve(char string) (Entry, error) {
	var jp string
	if pairs := e.romanizer.Romanize(char); len(pairs) > 0 {
		jp = pairs[0].Jyutping
	}
	if jp == "" {
		return Entry{}, apperr.UnresolvedCharacter(char)
	}

	if e.strict {
		if src, ok := e.romanizer.(jyutping.ReadingSource); ok {
			if readings := src.Readings(char); len(readings) > 1 {
				return Entry{}, apperr.AmbiguousCharacter(char, readings)
			}
		}
	}

	return NewEntry(char, jp)
}

func (e *Engine) match(entry Entry, sys tone.System) Match {
	return Match{
		Character: entry.Character,
		Jyutping:  entry.Jyutping,
		Tone:      entry.Syllable.Tone,
		ToneGroup: e.corpus.groups.Of(entry.Syllable.Tone, sys),
	}
}

func (e *Engine) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > e.maxLimit {
		limit = e.maxLimit
	}
	return limit
}
