package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/palemoky/tinci/internal/tools"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCharacters renders readings as a table.
func printCharacters(w io.Writer, chars []tools.CharacterInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Character", "Jyutping", "Tone", "Group")
	for _, c := range chars {
		_ = table.Append([]string{c.Character, c.Jyutping, strconv.Itoa(c.Tone), c.ToneGroup})
	}
	return table.Render()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
