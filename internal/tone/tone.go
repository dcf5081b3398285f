// Package tone classifies Cantonese tones into the melody groups used when
// fitting lyrics to a tune, under the 1056 and 0243 numbering systems.
package tone

import (
	"fmt"

	apperr "github.com/palemoky/tinci/internal/errors"
)

// System is a tone numbering convention.
type System string

const (
	System1056 System = "1056"
	System0243 System = "0243"
)

// DefaultSystem is used when a request does not name one.
const DefaultSystem = System0243

// Systems lists the supported systems.
func Systems() []System {
	return []System{System0243, System1056}
}

// ParseSystem parses a system name. An empty name yields DefaultSystem.
func ParseSystem(s string) (System, error) {
	switch System(s) {
	case "":
		return DefaultSystem, nil
	case System1056, System0243:
		return System(s), nil
	default:
		return "", unknownSystem(s)
	}
}

func unknownSystem(s string) error {
	return apperr.InvalidRequest(fmt.Sprintf("unknown tone system %q (must be '1056' or '0243')", s))
}

// Group is one of the four pitch categories. The label does not depend on the system.
type Group string

const (
	GroupHigh       Group = "high"
	GroupLowFalling Group = "low-falling"
	GroupMid        Group = "mid"
	GroupLow        Group = "low"
)

type groupDigits struct {
	group Group
	d1056 string
	d0243 string
}

// groups is indexed by group order; toneGroup maps tone 1-9 into it.
var groups = [...]groupDigits{
	{GroupHigh, "1", "3"},
	{GroupLowFalling, "0", "0"},
	{GroupMid, "5", "4"},
	{GroupLow, "6", "2"},
}

var toneGroup = [10]int{
	-1, // tone 0 does not exist
	0, 0, // 1, 2
	2,    // 3
	1,    // 4
	2,    // 5
	3,    // 6
	0,    // 7
	2,    // 8
	3,    // 9
}

// Classification is the result of classifying one tone.
type Classification struct {
	Group Group
	Digit string
}

// Valid reports whether t is a Cantonese tone number.
func Valid(t int) bool {
	return t >= 1 && t <= 9
}

// Classify returns the group label and the system's melody digit for tone t.
// An empty or unknown system is INVALID_REQUEST; use ParseSystem to apply
// the default.
func Classify(t int, system System) (Classification, error) {
	if !Valid(t) {
		return Classification{}, apperr.InvalidTone(t)
	}
	g := groups[toneGroup[t]]
	switch system {
	case System0243:
		return Classification{Group: g.group, Digit: g.d0243}, nil
	case System1056:
		return Classification{Group: g.group, Digit: g.d1056}, nil
	default:
		return Classification{}, unknownSystem(string(system))
	}
}

// Digit is shorthand for Classify(t, system).Digit.
func Digit(t int, system System) (string, error) {
	c, err := Classify(t, system)
	if err != nil {
		return "", err
	}
	return c.Digit, nil
}

// Tones returns the tone numbers belonging to g in ascending order.
func (g Group) Tones() []int {
	var out []int
	for t := 1; t <= 9; t++ {
		if groups[toneGroup[t]].group == g {
			out = append(out, t)
		}
	}
	return out
}

// Groups lists the four groups from highest to lowest pitch class.
func Groups() []Group {
	return []Group{GroupHigh, GroupMid, GroupLow, GroupLowFalling}
}

// DigitTable returns tone -> digit for every valid tone under system.
// It is the reference from which corpus group tables are generated.
func DigitTable(system System) map[int]string {
	out := make(map[int]string, 9)
	for t := 1; t <= 9; t++ {
		c, _ := Classify(t, system)
		out[t] = c.Digit
	}
	return out
}
