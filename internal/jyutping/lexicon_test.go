package jyutping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLexicon(variants map[string][]string) *Lexicon {
	l := NewLexicon(WithVariants(func(char string) []string {
		return variants[char]
	}))
	l.Add("你", "nei5")
	l.Add("好", "hou2", "hou3")
	l.Add("來", "loi4")
	return l
}

func TestLexiconRomanize(t *testing.T) {
	l := newTestLexicon(nil)

	got := l.Romanize("你好，world")
	want := []Pair{
		{"你", "nei5"},
		{"好", "hou2"},
		{"，", ""},
		{"w", ""}, {"o", ""}, {"r", ""}, {"l", ""}, {"d", ""},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "nei5 hou2", Join(got))
}

func TestLexiconRomanizeEmpty(t *testing.T) {
	l := newTestLexicon(nil)
	assert.Empty(t, l.Romanize(""))
}

func TestLexiconAddKeepsPrecedence(t *testing.T) {
	l := newTestLexicon(nil)
	l.Add("好", "hou3", "hou1", "")

	assert.Equal(t, []string{"hou2", "hou3", "hou1"}, l.Readings("好"))
	assert.Equal(t, 3, l.Size())

	l.Add("空")
	assert.Equal(t, 3, l.Size(), "adding no readings must not create an entry")
}

func TestLexiconVariantFallback(t *testing.T) {
	l := newTestLexicon(map[string][]string{"来": {"來"}})

	assert.Equal(t, []string{"loi4"}, l.Readings("来"))
	assert.Equal(t, []Pair{{"来", "loi4"}}, l.Romanize("来"))

	// Non-Han runes never reach the variant function.
	assert.Nil(t, l.Readings("a"))
}

func TestLexiconWithoutFallback(t *testing.T) {
	l := NewLexicon(WithVariants(nil))
	l.Add("來", "loi4")

	assert.Nil(t, l.Readings("来"))
}

func TestRomanizerFunc(t *testing.T) {
	var r Romanizer = RomanizerFunc(func(text string) []Pair {
		return []Pair{{Character: text, Jyutping: "x1"}}
	})
	assert.Equal(t, "x1", r.Romanize("a")[0].Jyutping)
}
