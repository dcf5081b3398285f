package hanzi

import (
	"fmt"
	"sync"

	"github.com/liuzl/gocc"
)

var (
	s2t *gocc.OpenCC // Simplified to Traditional
	t2s *gocc.OpenCC // Traditional to Simplified

	convOnce sync.Once
	convErr  error
)

// initConverters loads the OpenCC dictionaries on first use. The reference
// tables are keyed by traditional characters, so conversion is only needed
// when a lookup misses.
func initConverters() error {
	convOnce.Do(func() {
		var err error

		s2t, err = gocc.New("s2t")
		if err != nil {
			convErr = fmt.Errorf("failed to initialize s2t converter: %w", err)
			return
		}

		t2s, err = gocc.New("t2s")
		if err != nil {
			convErr = fmt.Errorf("failed to initialize t2s converter: %w", err)
			return
		}
	})
	return convErr
}

// ToTraditional converts simplified Chinese to traditional Chinese
func ToTraditional(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if err := initConverters(); err != nil {
		return "", err
	}
	return s2t.Convert(text)
}

// ToSimplified converts traditional Chinese to simplified Chinese
func ToSimplified(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if err := initConverters(); err != nil {
		return "", err
	}
	return t2s.Convert(text)
}

// Variants returns the traditional and simplified forms of a single
// character that differ from it, traditional first.
func Variants(char string) []string {
	var out []string
	seen := map[string]bool{char: true}
	for _, conv := range []func(string) (string, error){ToTraditional, ToSimplified} {
		v, err := conv(char)
		if err != nil || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
