package rhyme

import (
	"fmt"

	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/tone"
)

// Mode is the kind of tone constraint applied to rhyme candidates.
type Mode string

const (
	ModeAll         Mode = "all"
	ModeSameTone    Mode = "same"
	ModeSameGroup   Mode = "group"
	ModeTargetTone  Mode = "target_tone"
	ModeTargetGroup Mode = "target_group"
)

// Selection is a tagged union: Tone is only meaningful for ModeTargetTone
// and Group only for ModeTargetGroup.
type Selection struct {
	Mode  Mode
	Tone  int
	Group string
}

// All keeps every candidate.
func All() Selection { return Selection{Mode: ModeAll} }

// SameTone keeps candidates with the query character's tone.
func SameTone() Selection { return Selection{Mode: ModeSameTone} }

// SameGroup keeps candidates in the query character's tone group.
func SameGroup() Selection { return Selection{Mode: ModeSameGroup} }

// TargetTone keeps candidates with tone t.
func TargetTone(t int) Selection { return Selection{Mode: ModeTargetTone, Tone: t} }

// TargetGroup keeps candidates whose tone group id is g.
func TargetGroup(g string) Selection { return Selection{Mode: ModeTargetGroup, Group: g} }

// ResolveSelection folds the overlapping request parameters into one
// Selection. A target group wins over a target tone, which wins over the
// tone filter. An empty tone filter means "all". Every supplied parameter is
// validated even when a higher-precedence one overrides it.
func ResolveSelection(toneFilter string, targetTone *int, targetGroup *string) (Selection, error) {
	var base Selection
	switch Mode(toneFilter) {
	case "", ModeAll:
		base = All()
	case ModeSameTone:
		base = SameTone()
	case ModeSameGroup:
		base = SameGroup()
	default:
		return Selection{}, apperr.InvalidRequest(
			fmt.Sprintf("invalid tone_filter %q (must be 'all', 'same', or 'group')", toneFilter))
	}

	if targetTone != nil && !tone.Valid(*targetTone) {
		return Selection{}, apperr.InvalidTone(*targetTone)
	}
	if targetGroup != nil && *targetGroup == "" {
		return Selection{}, apperr.InvalidRequest("target_group must not be empty")
	}

	switch {
	case targetGroup != nil:
		return TargetGroup(*targetGroup), nil
	case targetTone != nil:
		return TargetTone(*targetTone), nil
	default:
		return base, nil
	}
}

// validate checks the parts of a selection that depend on the corpus.
func (s Selection) validate(groups GroupTable, sys tone.System) error {
	switch s.Mode {
	case ModeAll, ModeSameTone, ModeSameGroup:
		return nil
	case ModeTargetTone:
		if !tone.Valid(s.Tone) {
			return apperr.InvalidTone(s.Tone)
		}
		return nil
	case ModeTargetGroup:
		if !groups.Has(s.Group, sys) {
			return apperr.InvalidGroup(s.Group, string(sys))
		}
		return nil
	default:
		return apperr.InvalidRequest(fmt.Sprintf("unknown selection mode %q", s.Mode))
	}
}

// predicate binds the selection to the query character's tone and group.
func (s Selection) predicate(inputTone int, inputGroup string) func(entryTone int, entryGroup string) bool {
	switch s.Mode {
	case ModeSameTone:
		return func(t int, _ string) bool { return t == inputTone }
	case ModeSameGroup:
		return func(_ int, g string) bool { return g == inputGroup }
	case ModeTargetTone:
		return func(t int, _ string) bool { return t == s.Tone }
	case ModeTargetGroup:
		return func(_ int, g string) bool { return g == s.Group }
	default:
		return func(int, string) bool { return true }
	}
}
