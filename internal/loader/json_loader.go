// Package loader reads the rhyme reference table and the supplementary
// reading list from their file formats.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/palemoky/tinci/data"
	"github.com/palemoky/tinci/internal/rhyme"
	"github.com/palemoky/tinci/internal/tone"
)

// TableData represents the structure of rhymes.json. Two layouts are
// accepted: the wrapped form {"tone_groups": ..., "finals": {final: ...}}
// and the scraped form where every top-level key is a final, optionally
// next to "tone_groups".
type TableData struct {
	ToneGroups map[string]map[string]string `json:"tone_groups,omitempty"`
	Finals     map[string]FinalData         `json:"finals"`
}

// FinalData is one bucket of the table.
type FinalData struct {
	Characters []EntryData `json:"characters"`
}

// EntryData represents one character reading from JSON
type EntryData struct {
	Char     string `json:"char"`
	Jyutping string `json:"jyutping"`
	Tone     int    `json:"tone"`
}

const (
	keyFinals     = "finals"
	keyToneGroups = "tone_groups"
)

// ParseTable decodes a reference table in either layout.
func ParseTable(raw []byte) (*TableData, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("failed to parse rhyme table: %w", err)
	}

	var table TableData
	if _, wrapped := top[keyFinals]; wrapped {
		if err := decodeStrict(raw, &table); err != nil {
			return nil, fmt.Errorf("failed to parse rhyme table: %w", err)
		}
	} else if err := table.decodeFinalKeyed(top); err != nil {
		return nil, fmt.Errorf("failed to parse rhyme table: %w", err)
	}

	if len(table.Finals) == 0 {
		return nil, fmt.Errorf("rhyme table has no finals")
	}
	return &table, nil
}

// decodeFinalKeyed reads the scraped layout: final -> {"characters": [...]}.
func (t *TableData) decodeFinalKeyed(top map[string]json.RawMessage) error {
	t.Finals = make(map[string]FinalData, len(top))
	for key, value := range top {
		if key == keyToneGroups {
			if err := decodeStrict(value, &t.ToneGroups); err != nil {
				return fmt.Errorf("tone_groups: %w", err)
			}
			continue
		}

		var fd FinalData
		if err := decodeStrict(value, &fd); err != nil {
			return fmt.Errorf("final %q: %w", key, err)
		}
		if fd.Characters == nil {
			return fmt.Errorf("final %q: missing characters", key)
		}
		t.Finals[key] = fd
	}
	return nil
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// LoadTableFile reads and decodes a reference table from path.
func LoadTableFile(path string) (*TableData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rhyme table: %w", err)
	}
	table, err := ParseTable(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// DefaultTable decodes the table compiled into the binary.
func DefaultTable() (*TableData, error) {
	return ParseTable(data.Rhymes)
}

// Groups converts the tone_groups section. A table without one gets the
// default digit table.
func (t *TableData) Groups() (rhyme.GroupTable, error) {
	if len(t.ToneGroups) == 0 {
		return rhyme.DefaultGroupTable(), nil
	}

	groups := make(rhyme.GroupTable, len(t.ToneGroups))
	for name, tones := range t.ToneGroups {
		sys, err := tone.ParseSystem(name)
		if err != nil || name == "" {
			return nil, fmt.Errorf("tone_groups: unknown system %q", name)
		}
		m := make(map[int]string, len(tones))
		for key, id := range tones {
			n, err := strconv.Atoi(key)
			if err != nil || !tone.Valid(n) {
				return nil, fmt.Errorf("tone_groups.%s: invalid tone %q", name, key)
			}
			m[n] = id
		}
		groups[sys] = m
	}

	if err := groups.Validate(); err != nil {
		return nil, err
	}
	return groups, nil
}

// Buckets converts the finals section, finals in ascending order. Each
// entry's tone field must agree with its syllable and its final with the
// bucket key.
func (t *TableData) Buckets() ([]rhyme.Bucket, error) {
	finals := make([]string, 0, len(t.Finals))
	for f := range t.Finals {
		finals = append(finals, f)
	}
	sort.Strings(finals)

	buckets := make([]rhyme.Bucket, 0, len(finals))
	for _, f := range finals {
		chars := t.Finals[f].Characters
		b := rhyme.Bucket{Final: f, Entries: make([]rhyme.Entry, 0, len(chars))}
		for i, c := range chars {
			if c.Char == "" {
				return nil, fmt.Errorf("finals.%s[%d]: empty char", f, i)
			}
			e, err := rhyme.NewEntry(c.Char, c.Jyutping)
			if err != nil {
				return nil, fmt.Errorf("finals.%s[%d]: %w", f, i, err)
			}
			if c.Tone != 0 && c.Tone != e.Syllable.Tone {
				return nil, fmt.Errorf("finals.%s[%d]: tone %d does not match %s", f, i, c.Tone, e.Jyutping)
			}
			if e.Syllable.Final != f {
				return nil, fmt.Errorf("finals.%s[%d]: %s has final %q", f, i, e.Jyutping, e.Syllable.Final)
			}
			b.Entries = append(b.Entries, e)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// Corpus builds the rhyme corpus described by the table.
func (t *TableData) Corpus() (*rhyme.Corpus, error) {
	groups, err := t.Groups()
	if err != nil {
		return nil, err
	}
	buckets, err := t.Buckets()
	if err != nil {
		return nil, err
	}
	return rhyme.NewCorpus(groups, buckets)
}

// FromCorpus converts a corpus back into table form.
func FromCorpus(c *rhyme.Corpus) *TableData {
	t := &TableData{
		ToneGroups: make(map[string]map[string]string),
		Finals:     make(map[string]FinalData),
	}
	for sys, tones := range c.Groups() {
		m := make(map[string]string, len(tones))
		for n, id := range tones {
			m[strconv.Itoa(n)] = id
		}
		t.ToneGroups[string(sys)] = m
	}
	for _, f := range c.Finals() {
		entries := c.Entries(f)
		fd := FinalData{Characters: make([]EntryData, len(entries))}
		for i, e := range entries {
			fd.Characters[i] = EntryData{Char: e.Character, Jyutping: e.Jyutping, Tone: e.Syllable.Tone}
		}
		t.Finals[f] = fd
	}
	return t
}
