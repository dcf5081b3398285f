package rhyme

import (
	"fmt"
	"sort"

	"github.com/palemoky/tinci/internal/tone"
)

// GroupTable assigns a tone group id to every tone, per tone system. It is
// metadata of the reference table and travels with the corpus, so that the
// ids reported for entries always match the source the corpus was built from.
type GroupTable map[tone.System]map[int]string

// DefaultGroupTable derives a table from the melody digits of each system.
// It is what the reference data ships with and what the importer writes
// when a source file carries no table of its own.
func DefaultGroupTable() GroupTable {
	table := make(GroupTable, len(tone.Systems()))
	for _, sys := range tone.Systems() {
		table[sys] = tone.DigitTable(sys)
	}
	return table
}

// Validate checks that every system maps all tones 1-9 to a non-empty id.
func (g GroupTable) Validate() error {
	for _, sys := range tone.Systems() {
		m, ok := g[sys]
		if !ok {
			return fmt.Errorf("tone group table has no entry for system %s", sys)
		}
		for t := 1; t <= 9; t++ {
			if m[t] == "" {
				return fmt.Errorf("tone group table for system %s has no group for tone %d", sys, t)
			}
		}
	}
	return nil
}

// Of returns the group id of tone t under sys.
func (g GroupTable) Of(t int, sys tone.System) string {
	return g[sys][t]
}

// Has reports whether id is a group id under sys.
func (g GroupTable) Has(id string, sys tone.System) bool {
	for _, v := range g[sys] {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the distinct group ids of sys in ascending order.
func (g GroupTable) IDs(sys tone.System) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, v := range g[sys] {
		if !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}
	sort.Strings(ids)
	return ids
}

// Tones returns the tones that belong to group id under sys.
func (g GroupTable) Tones(id string, sys tone.System) []int {
	var out []int
	for t := 1; t <= 9; t++ {
		if g[sys][t] == id {
			out = append(out, t)
		}
	}
	return out
}
