package jyutping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/palemoky/tinci/internal/errors"
)

func TestParseSyllable(t *testing.T) {
	tests := []struct {
		input   string
		initial string
		final   string
		tone    int
	}{
		{"loi4", "l", "oi", 4},
		{"cyun4", "c", "yun", 4},
		{"nei5", "n", "ei", 5},
		{"hou2", "h", "ou", 2},
		{"oi3", "", "oi", 3},
		{"ngoi6", "ng", "oi", 6},
		{"gwong1", "gw", "ong", 1},
		{"kwaang3", "kw", "aang", 3},
		{"jyut6", "j", "yut", 6},
		{"sik7", "s", "ik", 7},
		{"m4", "", "m", 4},
		{"ng5", "", "ng", 5},
		{"hm4", "h", "m", 4},
		{"hng6", "h", "ng", 6},
		{"LOI4", "l", "oi", 4},
		{" loi4 ", "l", "oi", 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSyllable(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.initial, got.Initial)
			assert.Equal(t, tt.final, got.Final)
			assert.Equal(t, tt.tone, got.Tone)
		})
	}
}

func TestParseSyllableMalformed(t *testing.T) {
	for _, input := range []string{"", "loi", "4", "loi0", "loi10", "lo-i4", "來4", "loi44", "loi04"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSyllable(input)
			require.Error(t, err)
			assert.Equal(t, apperr.CodeMalformedSyllable, apperr.CodeOf(err))
		})
	}
}

func TestParseSyllableIdempotent(t *testing.T) {
	for _, input := range []string{"loi4", "cyun4", "m4", "hng6", "gwong1"} {
		first, err := ParseSyllable(input)
		require.NoError(t, err)
		assert.Equal(t, input, first.String())

		second, err := ParseSyllable(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestFinal(t *testing.T) {
	f, err := Final("cyun4")
	require.NoError(t, err)
	assert.Equal(t, "yun", f)

	_, err = Final("cyun")
	assert.Error(t, err)
}
