package domain

import (
	"errors"
	"fmt"
	"slices"
)

const MaxSubstats = 4

type Substat struct {
	Stat  Stat    `yaml:"stat" json:"stat"`
	Value float64 `yaml:"value" json:"value"`
}

// Artifact is immutable once imported; a re-import replaces the whole inventory.
type Artifact struct {
	ID       string    `yaml:"id"`
	SetKey   string    `yaml:"set"`
	Slot     Slot      `yaml:"slot"`
	Rarity   int       `yaml:"rarity"`
	Level    int       `yaml:"level"`
	MainStat Stat      `yaml:"main"`
	Lock     bool      `yaml:"lock"`
	Substats []Substat `yaml:"substats"`

	TotalRolls  int       `yaml:"total_rolls,omitempty"`
	Unactivated []Substat `yaml:"unactivated,omitempty"`
}

var (
	ErrTooManySubstats   = errors.New("artifact has more than 4 substats")
	ErrMainStatAsSubstat = errors.New("artifact main stat also appears as a substat")
)

// Validate checks structural invariants. A main stat outside the slot pool is not an error;
// see MainStatWrong.
func (a Artifact) Validate() error {
	if len(a.Substats) > MaxSubstats {
		return fmt.Errorf("%s: %w", a.ID, ErrTooManySubstats)
	}
	if a.Rarity < 1 || a.Rarity > 5 {
		return fmt.Errorf("%s: rarity must be in [1..5], got %d", a.ID, a.Rarity)
	}
	if a.Level < 0 || a.Level > 20 {
		return fmt.Errorf("%s: level must be in [0..20], got %d", a.ID, a.Level)
	}
	seen := make(map[Stat]struct{}, len(a.Substats))
	for _, s := range a.Substats {
		if s.Stat == a.MainStat && s.Stat != StatUnknown {
			return fmt.Errorf("%s: %w (%s)", a.ID, ErrMainStatAsSubstat, s.Stat)
		}
		if _, dup := seen[s.Stat]; dup && s.Stat != StatUnknown {
			return fmt.Errorf("%s: duplicate substat %s", a.ID, s.Stat)
		}
		seen[s.Stat] = struct{}{}
	}
	return nil
}

// MainStatWrong reports a main stat that cannot drop in the artifact's slot.
func (a Artifact) MainStatWrong() bool {
	return !slices.Contains(MainStatPool(a.Slot), a.MainStat)
}

// SubstatValue returns the value of a substat or 0 when absent.
func (a Artifact) SubstatValue(stat Stat) float64 {
	for _, s := range a.Substats {
		if s.Stat == stat {
			return s.Value
		}
	}
	return 0
}

func (a Artifact) HasSubstat(stat Stat) bool {
	for _, s := range a.Substats {
		if s.Stat == stat {
			return true
		}
	}
	return false
}

func (a Artifact) SubstatStats() []Stat {
	out := make([]Stat, 0, len(a.Substats))
	for _, s := range a.Substats {
		out = append(out, s.Stat)
	}
	return out
}
