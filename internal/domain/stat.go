package domain

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stat is a closed set of stat kinds. Keys follow the short form used in config files
// ("cr", "atk%", "pyro%").
type Stat int

const (
	StatUnknown Stat = iota
	StatCR
	StatCD
	StatATKP
	StatHPP
	StatDEFP
	StatEM
	StatER
	StatPyroP
	StatHydroP
	StatAnemoP
	StatElectroP
	StatDendroP
	StatCryoP
	StatGeoP
	StatPhysP
	StatHealP
	StatATK
	StatHP
	StatDEF

	// Compute-only pseudo stats.
	StatElementalP
	StatCritAny

	statEnd
)

var statKeys = [...]string{
	StatUnknown:    "",
	StatCR:         "cr",
	StatCD:         "cd",
	StatATKP:       "atk%",
	StatHPP:        "hp%",
	StatDEFP:       "def%",
	StatEM:         "em",
	StatER:         "er",
	StatPyroP:      "pyro%",
	StatHydroP:     "hydro%",
	StatAnemoP:     "anemo%",
	StatElectroP:   "electro%",
	StatDendroP:    "dendro%",
	StatCryoP:      "cryo%",
	StatGeoP:       "geo%",
	StatPhysP:      "phys%",
	StatHealP:      "heal%",
	StatATK:        "atk",
	StatHP:         "hp",
	StatDEF:        "def",
	StatElementalP: "elemental%",
	StatCritAny:    "cr/cd",
}

var statByKey = func() map[string]Stat {
	m := make(map[string]Stat, len(statKeys))
	for i, k := range statKeys {
		if k == "" {
			continue
		}
		m[k] = Stat(i)
	}
	return m
}()

func (s Stat) String() string {
	if s <= StatUnknown || s >= statEnd {
		return "unknown"
	}
	return statKeys[s]
}

// ParseStat resolves a stat key. Unknown keys return StatUnknown and false.
func ParseStat(key string) (Stat, bool) {
	s, ok := statByKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return StatUnknown, false
	}
	return s, true
}

// MustParseStats is for literals in tests and tables.
func MustParseStats(keys ...string) []Stat {
	out := make([]Stat, 0, len(keys))
	for _, k := range keys {
		s, ok := ParseStat(k)
		if !ok {
			panic(fmt.Sprintf("unknown stat %q", k))
		}
		out = append(out, s)
	}
	return out
}

func (s Stat) Valid() bool { return s > StatUnknown && s < statEnd }

// IsPseudo reports stats that only exist inside computed filter configurations.
func (s Stat) IsPseudo() bool { return s == StatElementalP || s == StatCritAny }

func (s Stat) IsFlat() bool { return s == StatATK || s == StatHP || s == StatDEF }

// IsElementalDMG includes physical, matching how goblets are grouped in game filters.
func (s Stat) IsElementalDMG() bool {
	switch s {
	case StatPyroP, StatHydroP, StatAnemoP, StatElectroP, StatDendroP, StatCryoP, StatGeoP, StatPhysP:
		return true
	}
	return false
}

func (s Stat) IsSubstat() bool {
	for _, sub := range SubstatPool {
		if sub == s {
			return true
		}
	}
	return false
}

// SubstatPool lists the stats that can roll as substats, in display order.
var SubstatPool = []Stat{StatCR, StatCD, StatATKP, StatHPP, StatDEFP, StatEM, StatER, StatATK, StatHP, StatDEF}

// ElementalDMGStats is the goblet group collapsed into StatElementalP.
var ElementalDMGStats = []Stat{StatPyroP, StatHydroP, StatAnemoP, StatElectroP, StatDendroP, StatCryoP, StatGeoP, StatPhysP}

// MainStatOrder is the canonical order of main stat choices, pseudo stats last.
var MainStatOrder = []Stat{
	StatCR, StatCD, StatATKP, StatHPP, StatDEFP, StatEM, StatER,
	StatPyroP, StatHydroP, StatAnemoP, StatElectroP, StatDendroP, StatCryoP, StatGeoP, StatPhysP,
	StatHealP, StatATK, StatHP, StatElementalP, StatCritAny,
}

var errUnencodableStat = errors.New("stat has no key")

// MarshalYAML refuses StatUnknown so that everything written can be read back.
func (s Stat) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", errUnencodableStat, int(s))
	}
	return s.String(), nil
}

func (s *Stat) UnmarshalYAML(value *yaml.Node) error {
	parsed, ok := ParseStat(value.Value)
	if !ok {
		return fmt.Errorf("unknown stat %q (line %d)", value.Value, value.Line)
	}
	*s = parsed
	return nil
}

func (s Stat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", errUnencodableStat, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Stat) UnmarshalText(b []byte) error {
	parsed, ok := ParseStat(string(b))
	if !ok {
		return fmt.Errorf("unknown stat %q", string(b))
	}
	*s = parsed
	return nil
}

// StatsString joins stat keys for display.
func StatsString(stats []Stat) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
