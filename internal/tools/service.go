// Package tools exposes the lookup operations as named tool calls with
// fixed JSON result shapes. Every transport returns these results verbatim.
package tools

import (
	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/hanzi"
	"github.com/palemoky/tinci/internal/jyutping"
	"github.com/palemoky/tinci/internal/pattern"
	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/tone"
)

// Service implements the tool operations.
type Service struct {
	engine        *rhyme.Engine
	romanizer     jyutping.Romanizer
	analyzer      *pattern.Analyzer
	defaultSystem tone.System
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultSystem sets the system used when a call names none.
func WithDefaultSystem(sys tone.System) Option {
	return func(s *Service) {
		if sys != "" {
			s.defaultSystem = sys
		}
	}
}

// NewService creates a tool service over a rhyme engine and a romanizer.
func NewService(engine *rhyme.Engine, romanizer jyutping.Romanizer, opts ...Option) *Service {
	s := &Service{
		engine:        engine,
		romanizer:     romanizer,
		analyzer:      pattern.NewAnalyzer(romanizer),
		defaultSystem: tone.DefaultSystem,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats reports the size of the loaded corpus.
func (s *Service) Stats() (finals, entries int) {
	c := s.engine.Corpus()
	return len(c.Finals()), c.Size()
}

func (s *Service) system(name string) (tone.System, error) {
	if name == "" {
		return s.defaultSystem, nil
	}
	return tone.ParseSystem(name)
}

// GetJyutping romanizes text character by character. Blank text is
// EMPTY_INPUT.
func (s *Service) GetJyutping(args JyutpingArgs) (*JyutpingResult, error) {
	if hanzi.IsBlank(args.Text) {
		return nil, apperr.EmptyInput("text")
	}
	pairs := s.romanizer.Romanize(args.Text)
	out := make([]CharJyutping, len(pairs))
	for i, p := range pairs {
		out[i] = CharJyutping{Character: p.Character, Jyutping: p.Jyutping}
	}
	return &JyutpingResult{
		Text:         args.Text,
		Jyutping:     out,
		Romanization: jyutping.Join(pairs),
	}, nil
}

// GetTonePattern returns the melody digit pattern of text.
func (s *Service) GetTonePattern(args TonePatternArgs) (*TonePatternResult, error) {
	sys, err := s.system(args.System)
	if err != nil {
		return nil, err
	}
	a, err := s.analyzer.Analyze(args.Text, sys)
	if err != nil {
		return nil, err
	}
	return &TonePatternResult{
		Text:      a.Text,
		System:    string(a.System),
		Pattern:   a.Pattern,
		Breakdown: toneTokens(a.Breakdown),
	}, nil
}

// GetRhymingCharacters finds characters sharing the final of args.Character.
func (s *Service) GetRhymingCharacters(args RhymesArgs) (*RhymesResult, error) {
	sys, err := s.system(args.System)
	if err != nil {
		return nil, err
	}
	sel, err := rhyme.ResolveSelection(args.ToneFilter, args.TargetTone, args.TargetGroup)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.FindRhymes(rhyme.Query{
		Character: args.Character,
		Selection: sel,
		System:    sys,
		Limit:     args.Limit,
	})
	if err != nil {
		return nil, err
	}

	toneFilter := args.ToneFilter
	if toneFilter == "" {
		toneFilter = string(rhyme.ModeAll)
	}
	return &RhymesResult{
		Input:       characterInfo(res.Input),
		Final:       res.Final,
		System:      string(res.System),
		ToneFilter:  toneFilter,
		TargetTone:  args.TargetTone,
		TargetGroup: args.TargetGroup,
		Rhymes:      characterInfos(res.Rhymes),
		Count:       len(res.Rhymes),
		TotalCount:  res.TotalCount,
	}, nil
}

// ListFinals returns every final of the corpus.
func (s *Service) ListFinals() (*FinalsResult, error) {
	finals := s.engine.Finals()
	return &FinalsResult{Finals: finals, Count: len(finals)}, nil
}

// GetCharactersByFinal lists the characters of one final.
func (s *Service) GetCharactersByFinal(args FinalArgs) (*CharactersByFinalResult, error) {
	sys, err := s.system(args.System)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.CharactersByFinal(rhyme.FinalQuery{
		Final:  args.Final,
		Tone:   args.Tone,
		System: sys,
		Limit:  args.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &CharactersByFinalResult{
		Final:      res.Final,
		ToneFilter: res.Tone,
		Characters: characterInfos(res.Characters),
		Count:      len(res.Characters),
		TotalCount: res.TotalCount,
	}, nil
}

// ToneSystems describes the tone groups of both systems as loaded with the corpus.
func (s *Service) ToneSystems() *ToneSystemsResult {
	groups := s.engine.Corpus().Groups()
	out := &ToneSystemsResult{
		Default: string(s.defaultSystem),
		Systems: make(map[string][]ToneGroups, len(tone.Systems())),
	}
	for _, sys := range tone.Systems() {
		var list []ToneGroups
		for _, id := range groups.IDs(sys) {
			tones := groups.Tones(id, sys)
			var label string
			if c, err := tone.Classify(tones[0], sys); err == nil {
				label = string(c.Group)
			}
			list = append(list, ToneGroups{Group: id, Label: label, Tones: tones})
		}
		out.Systems[string(sys)] = list
	}
	return out
}
