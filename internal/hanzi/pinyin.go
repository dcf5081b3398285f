package hanzi

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs = pinyin.NewArgs()

func init() {
	// Tone numbers read closer to jyutping than tone marks do.
	pinyinArgs.Style = pinyin.Tone3
	pinyinArgs.Heteronym = false
}

// ToPinyin converts Chinese text to Mandarin pinyin with tone numbers, one
// syllable per Han character. Other characters are dropped.
func ToPinyin(text string) string {
	if text == "" {
		return ""
	}

	result := pinyin.Pinyin(text, pinyinArgs)
	var parts []string
	for _, item := range result {
		if len(item) > 0 {
			parts = append(parts, item[0])
		}
	}

	return strings.Join(parts, " ")
}

// PinyinReadings returns every Mandarin reading of a single character.
func PinyinReadings(char string) []string {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3
	args.Heteronym = true

	result := pinyin.Pinyin(char, args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}
