package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/tinci/internal/tools"
)

// execute runs the CLI against the embedded corpus and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"TINCI_CORPUS_SOURCE", "TINCI_CORPUS_PATH", "TINCI_READINGS_PATH", "TINCI_LOG_LEVEL", "TINCI_LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJyutpingCommandNormalizesText(t *testing.T) {
	out, err := execute(t, "jyutping", "--json", "  好 ", "  好")
	require.NoError(t, err)

	var res tools.JyutpingResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "好 好", res.Text)
	assert.Equal(t, "hou2 hou2", res.Romanization)
}

func TestJyutpingCommandPinyin(t *testing.T) {
	out, err := execute(t, "jyutping", "--pinyin", "好人")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "hao3 ren2", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "好: "), lines[2])
	assert.Contains(t, lines[2], "hao3")
	assert.Contains(t, lines[2], "hao4")
}

func TestPinyinHints(t *testing.T) {
	hints := pinyinHints("好人好")
	require.Len(t, hints, 1, "each polyphonic character is listed once")
	assert.Equal(t, "好: ", hints[0][:len("好: ")])

	assert.Empty(t, pinyinHints("abc!"))
	assert.Empty(t, pinyinHints(""))
}

func TestRhymesCommandTrimsWhitespace(t *testing.T) {
	out, err := execute(t, "rhymes", "--json", " 來　")
	require.NoError(t, err)

	var res tools.RhymesResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "來", res.Input.Character)
	assert.Equal(t, "oi", res.Final)
	assert.Equal(t, 43, res.TotalCount)
}

func TestRhymesCommandTable(t *testing.T) {
	out, err := execute(t, "rhymes", "來", "--filter", "same", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "來 loi4, final oi")
	assert.Contains(t, out, "showing 3 of 9")
}

func TestPatternCommand(t *testing.T) {
	out, err := execute(t, "pattern", "--json", "--system", "1056", "好", " 來")
	require.NoError(t, err)

	var res tools.TonePatternResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "好 來", res.Text)
	assert.Equal(t, "1056", res.System)
}

func TestCallCommand(t *testing.T) {
	out, err := execute(t, "call", "get_jyutping", `{"text":"好"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"romanization": "hou2"`)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"blank jyutping", []string{"jyutping", " "}},
		{"unknown rhyme character", []string{"rhymes", "abc"}},
		{"unknown system", []string{"pattern", "--system", "9999", "好"}},
		{"unknown tool", []string{"call", "nope"}},
		{"bad source", []string{"finals", "--source", "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
