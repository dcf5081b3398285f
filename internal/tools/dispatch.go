package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	apperr "github.com/palemoky/tinci/internal/errors"
)

// Tool names accepted by Call.
const (
	ToolGetJyutping          = "get_jyutping"
	ToolGetTonePattern       = "get_tone_pattern"
	ToolGetRhymingCharacters = "get_rhyming_characters"
	ToolListFinals           = "list_finals"
	ToolGetCharactersByFinal = "get_characters_by_final"
)

// JyutpingArgs are the arguments of get_jyutping.
type JyutpingArgs struct {
	Text string `json:"text"`
}

// TonePatternArgs are the arguments of get_tone_pattern.
type TonePatternArgs struct {
	Text   string `json:"text"`
	System string `json:"system"`
}

// RhymesArgs are the arguments of get_rhyming_characters.
type RhymesArgs struct {
	Character   string  `json:"character"`
	ToneFilter  string  `json:"tone_filter"`
	System      string  `json:"system"`
	Limit       int     `json:"limit"`
	TargetTone  *int    `json:"target_tone"`
	TargetGroup *string `json:"target_group"`
}

// FinalArgs are the arguments of get_characters_by_final.
type FinalArgs struct {
	Final  string `json:"final"`
	Tone   *int   `json:"tone"`
	System string `json:"system"`
	Limit  int    `json:"limit"`
}

type handlerFunc func(s *Service, raw json.RawMessage) (any, error)

var registry = map[string]handlerFunc{
	ToolGetJyutping: func(s *Service, raw json.RawMessage) (any, error) {
		var args JyutpingArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return s.GetJyutping(args)
	},
	ToolGetTonePattern: func(s *Service, raw json.RawMessage) (any, error) {
		var args TonePatternArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return s.GetTonePattern(args)
	},
	ToolGetRhymingCharacters: func(s *Service, raw json.RawMessage) (any, error) {
		var args RhymesArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return s.GetRhymingCharacters(args)
	},
	ToolListFinals: func(s *Service, _ json.RawMessage) (any, error) {
		return s.ListFinals()
	},
	ToolGetCharactersByFinal: func(s *Service, raw json.RawMessage) (any, error) {
		var args FinalArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return s.GetCharactersByFinal(args)
	},
}

// Names returns the registered tool names in ascending order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named tool with JSON-encoded arguments. Unknown tools are
// NOT_FOUND; undecodable arguments are INVALID_REQUEST.
func (s *Service) Call(name string, raw json.RawMessage) (any, error) {
	h, ok := registry[name]
	if !ok {
		err := apperr.NotFound("tool " + name)
		err.Details = Names()
		return nil, err
	}
	return h(s, raw)
}

func decodeArgs(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.InvalidRequest(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}
