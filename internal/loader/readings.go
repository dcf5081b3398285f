package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/palemoky/tinci/data"
	"github.com/palemoky/tinci/internal/jyutping"
	"github.com/palemoky/tinci/internal/rhyme"
)

// ReadReadings parses a tab-separated reading list into lex. Each line is
// a character followed by one or more space-separated syllables; lines
// starting with '#' are comments. It returns the number of characters added.
func ReadReadings(r io.Reader, lex *jyutping.Lexicon) (int, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	n := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("failed to read readings: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(rec) < 2 {
			return n, fmt.Errorf("readings line %d: expected char<TAB>jyutping", line)
		}
		char := strings.TrimSpace(rec[0])
		if char == "" {
			return n, fmt.Errorf("readings line %d: empty character", line)
		}

		var syllables []string
		for _, s := range strings.Fields(strings.Join(rec[1:], " ")) {
			syl, err := jyutping.ParseSyllable(s)
			if err != nil {
				return n, fmt.Errorf("readings line %d: %w", line, err)
			}
			syllables = append(syllables, syl.String())
		}
		if len(syllables) == 0 {
			return n, fmt.Errorf("readings line %d: no jyutping for %s", line, char)
		}
		lex.Add(char, syllables...)
		n++
	}
	return n, nil
}

// LoadReadingsFile reads a reading list from path into lex.
func LoadReadingsFile(path string, lex *jyutping.Lexicon) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open readings: %w", err)
	}
	defer f.Close()

	n, err := ReadReadings(f, lex)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// DefaultReadings loads the reading list compiled into the binary.
func DefaultReadings(lex *jyutping.Lexicon) (int, error) {
	return ReadReadings(bytes.NewReader(data.Readings), lex)
}

// NewRomanizer builds the lexicon romanizer used by the lookups: readings
// from the list at readingsPath (the compiled-in list when empty) first,
// then every reading of the corpus.
func NewRomanizer(c *rhyme.Corpus, readingsPath string, opts ...jyutping.Option) (*jyutping.Lexicon, error) {
	lex := jyutping.NewLexicon(opts...)

	var err error
	if readingsPath == "" {
		_, err = DefaultReadings(lex)
	} else {
		_, err = LoadReadingsFile(readingsPath, lex)
	}
	if err != nil {
		return nil, err
	}
	return c.Lexicon(lex), nil
}
