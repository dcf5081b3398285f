package tools

import (
	"encoding/json"

	"github.com/palemoky/tinci/internal/pattern"
	"github.com/palemoky/tinci/internal/rhyme"
)

// CharJyutping is one [character, syllable] pair. It encodes as a two
// element JSON array of strings; characters without a reading get "".
type CharJyutping struct {
	Character string
	Jyutping  string
}

// MarshalJSON implements json.Marshaler.
func (c CharJyutping) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Character, c.Jyutping})
}

// JyutpingResult is returned by get_jyutping.
type JyutpingResult struct {
	Text         string         `json:"text"`
	Jyutping     []CharJyutping `json:"jyutping"`
	Romanization string         `json:"romanization"`
}

// ToneToken is one entry of a tone pattern breakdown.
type ToneToken struct {
	Character string  `json:"character"`
	Jyutping  *string `json:"jyutping"`
	Tone      *int    `json:"tone"`
	Mapped    *string `json:"mapped"`
}

// TonePatternResult is returned by get_tone_pattern.
type TonePatternResult struct {
	Text      string      `json:"text"`
	System    string      `json:"system"`
	Pattern   string      `json:"pattern"`
	Breakdown []ToneToken `json:"breakdown"`
}

// CharacterInfo describes one reading of a character.
type CharacterInfo struct {
	Character string `json:"character"`
	Jyutping  string `json:"jyutping"`
	Tone      int    `json:"tone"`
	ToneGroup string `json:"tone_group"`
}

// RhymesResult is returned by get_rhyming_characters.
type RhymesResult struct {
	Input       CharacterInfo   `json:"input"`
	Final       string          `json:"final"`
	System      string          `json:"system"`
	ToneFilter  string          `json:"tone_filter"`
	TargetTone  *int            `json:"target_tone,omitempty"`
	TargetGroup *string         `json:"target_group,omitempty"`
	Rhymes      []CharacterInfo `json:"rhymes"`
	Count       int             `json:"count"`
	TotalCount  int             `json:"total_count"`
}

// FinalsResult is returned by list_finals.
type FinalsResult struct {
	Finals []string `json:"finals"`
	Count  int      `json:"count"`
}

// CharactersByFinalResult is returned by get_characters_by_final.
type CharactersByFinalResult struct {
	Final      string          `json:"final"`
	ToneFilter *int            `json:"tone_filter"`
	Characters []CharacterInfo `json:"characters"`
	Count      int             `json:"count"`
	TotalCount int             `json:"total_count"`
}

// ToneSystemsResult describes the tone groups of every system.
type ToneSystemsResult struct {
	Default string                  `json:"default"`
	Systems map[string][]ToneGroups `json:"systems"`
}

// ToneGroups lists the tones of one group under one system.
type ToneGroups struct {
	Group string `json:"group"`
	Label string `json:"label"`
	Tones []int  `json:"tones"`
}

func characterInfo(m rhyme.Match) CharacterInfo {
	return CharacterInfo{
		Character: m.Character,
		Jyutping:  m.Jyutping,
		Tone:      m.Tone,
		ToneGroup: m.ToneGroup,
	}
}

func characterInfos(ms []rhyme.Match) []CharacterInfo {
	out := make([]CharacterInfo, len(ms))
	for i, m := range ms {
		out[i] = characterInfo(m)
	}
	return out
}

func toneTokens(tokens []pattern.Token) []ToneToken {
	out := make([]ToneToken, len(tokens))
	for i, t := range tokens {
		out[i] = ToneToken{Character: t.Character, Tone: t.Tone, Mapped: t.Mapped}
		if t.Jyutping != "" {
			jp := t.Jyutping
			out[i].Jyutping = &jp
		}
	}
	return out
}
