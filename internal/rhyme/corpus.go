// Package rhyme indexes characters by their Jyutping final and answers
// rhyme queries with tone and tone-group filtering.
package rhyme

import (
	"fmt"
	"slices"
	"sort"

	"github.com/palemoky/tinci/internal/jyutping"
)

// Entry is one (character, reading) pair of the reference table.
type Entry struct {
	Character string
	Jyutping  string
	Syllable  jyutping.Syllable
}

// NewEntry parses jp and builds an entry for char.
func NewEntry(char, jp string) (Entry, error) {
	syl, err := jyutping.ParseSyllable(jp)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Character: char, Jyutping: syl.String(), Syllable: syl}, nil
}

// Bucket is the ordered list of entries that share a final.
type Bucket struct {
	Final   string
	Entries []Entry
}

// Corpus is the final-keyed rhyme index. It is built once by NewCorpus and
// never modified afterwards, so it can be shared between goroutines.
type Corpus struct {
	buckets map[string][]Entry
	finals  []string
	groups  GroupTable
	size    int
}

// NewCorpus builds a corpus from buckets, keeping entry order. Buckets with
// the same final are concatenated; repeated (character, reading) pairs are
// dropped. Every entry must carry the final of its bucket.
func NewCorpus(groups GroupTable, buckets []Bucket) (*Corpus, error) {
	if err := groups.Validate(); err != nil {
		return nil, err
	}

	c := &Corpus{
		buckets: make(map[string][]Entry, len(buckets)),
		groups:  groups,
	}

	seen := make(map[Entry]bool)
	for _, b := range buckets {
		if b.Final == "" {
			return nil, fmt.Errorf("bucket with empty final")
		}
		if _, ok := c.buckets[b.Final]; !ok {
			c.buckets[b.Final] = make([]Entry, 0, len(b.Entries))
			c.finals = append(c.finals, b.Final)
		}
		for _, e := range b.Entries {
			if e.Syllable.Final != b.Final {
				return nil, fmt.Errorf("entry %s (%s) has final %q but is listed under %q",
					e.Character, e.Jyutping, e.Syllable.Final, b.Final)
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			c.buckets[b.Final] = append(c.buckets[b.Final], e)
			c.size++
		}
	}

	sort.Strings(c.finals)
	return c, nil
}

// Finals returns all finals in ascending order.
func (c *Corpus) Finals() []string {
	return slices.Clone(c.finals)
}

// Entries returns a copy of the bucket for final, or nil if there is none.
func (c *Corpus) Entries(final string) []Entry {
	return slices.Clone(c.buckets[final])
}

// HasFinal reports whether final has a bucket.
func (c *Corpus) HasFinal(final string) bool {
	_, ok := c.buckets[final]
	return ok
}

// Groups returns the tone group table shipped with the corpus.
func (c *Corpus) Groups() GroupTable {
	return c.groups
}

// Size returns the number of entries across all buckets.
func (c *Corpus) Size() int {
	return c.size
}

// Each calls fn for every entry, finals in ascending order and entries in
// table order.
func (c *Corpus) Each(fn func(e Entry)) {
	for _, f := range c.finals {
		for _, e := range c.buckets[f] {
			fn(e)
		}
	}
}

// Lexicon builds a romanizer whose readings come from the corpus, after any
// readings already present in base. With a nil base a new lexicon is created.
func (c *Corpus) Lexicon(base *jyutping.Lexicon) *jyutping.Lexicon {
	if base == nil {
		base = jyutping.NewLexicon()
	}
	c.Each(func(e Entry) {
		base.Add(e.Character, e.Jyutping)
	})
	return base
}
