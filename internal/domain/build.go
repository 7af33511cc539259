package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Composition string

const (
	Composition4pc    Composition = "4pc"
	Composition2pc2pc Composition = "2pc+2pc"
)

// Build is a desired artifact build for one character.
type Build struct {
	ID          string      `yaml:"id"`
	CharacterID string      `yaml:"character"`
	Name        string      `yaml:"name"`
	Visible     bool        `yaml:"visible"`
	Composition Composition `yaml:"composition"`
	ArtifactSet string      `yaml:"set,omitempty"`
	HalfSet1    *int        `yaml:"half_set_1,omitempty"`
	HalfSet2    *int        `yaml:"half_set_2,omitempty"`
	Sands       []Stat      `yaml:"sands"`
	Goblet      []Stat      `yaml:"goblet"`
	Circlet     []Stat      `yaml:"circlet"`
	Substats    []Stat      `yaml:"substats"`
	// KOverride sets the minimum number of wanted substats when it differs from len(Substats).
	KOverride *int `yaml:"k,omitempty"`
}

var buildKeys = map[string]struct{}{
	"id":          {},
	"character":   {},
	"name":        {},
	"visible":     {},
	"composition": {},
	"set":         {},
	"half_set_1":  {},
	"half_set_2":  {},
	"sands":       {},
	"goblet":      {},
	"circlet":     {},
	"substats":    {},
	"k":           {},
}

func (b *Build) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "build", buildKeys); err != nil {
		return err
	}
	type raw Build
	tmp := raw{Visible: true}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*b = Build(tmp)
	switch b.Composition {
	case Composition4pc, Composition2pc2pc:
	case "":
		b.Composition = Composition4pc
	default:
		return fmt.Errorf("build %q: unsupported composition %q", b.ID, b.Composition)
	}
	return nil
}

// MinStatCount is k, the minimum number of wanted substats.
func (b Build) MinStatCount() int {
	if b.KOverride != nil {
		return *b.KOverride
	}
	return len(b.Substats)
}

type BuildGroup struct {
	CharacterID string   `yaml:"character"`
	Builds      []Build  `yaml:"builds"`
	Hidden      bool     `yaml:"hidden,omitempty"`
	Weapons     []string `yaml:"weapons,omitempty"`
}

// SlotConfig is one slot of an in-game artifact filter: allowed main stats, the wanted
// substat pool, the substats that must be present and the minimum matched count.
type SlotConfig struct {
	MainStats    []Stat `yaml:"main_stats"`
	Substats     []Stat `yaml:"substats"`
	MustPresent  []Stat `yaml:"must_present"`
	MinStatCount int    `yaml:"min_stat_count"`
}

func (s SlotConfig) Clone() SlotConfig {
	return SlotConfig{
		MainStats:    append([]Stat(nil), s.MainStats...),
		Substats:     append([]Stat(nil), s.Substats...),
		MustPresent:  append([]Stat(nil), s.MustPresent...),
		MinStatCount: s.MinStatCount,
	}
}

type CharacterMergeInfo struct {
	CharacterID string `yaml:"character"`
	// HasPerfectMerge is false when the character's build was only covered by a looser config.
	HasPerfectMerge bool `yaml:"perfect"`
	Has4pcBuild     bool `yaml:"has_4pc"`
}

// SetConfig covers the four filter slots of one artifact set (flower and plume share one).
type SetConfig struct {
	FlowerPlume      SlotConfig           `yaml:"flower_plume"`
	Sands            SlotConfig           `yaml:"sands"`
	Goblet           SlotConfig           `yaml:"goblet"`
	Circlet          SlotConfig           `yaml:"circlet"`
	ServedCharacters []CharacterMergeInfo `yaml:"served"`
}

// SlotKind names the four filter slots.
type SlotKind string

const (
	KindFlowerPlume SlotKind = "flower_plume"
	KindSands       SlotKind = SlotKind(SlotSands)
	KindGoblet      SlotKind = SlotKind(SlotGoblet)
	KindCirclet     SlotKind = SlotKind(SlotCirclet)
)

var SlotKinds = []SlotKind{KindFlowerPlume, KindSands, KindGoblet, KindCirclet}

// KindOf maps an artifact slot to its filter slot.
func KindOf(slot Slot) SlotKind {
	if slot == SlotFlower || slot == SlotPlume {
		return KindFlowerPlume
	}
	return SlotKind(slot)
}

func (c *SetConfig) Slot(kind SlotKind) *SlotConfig {
	switch kind {
	case KindFlowerPlume:
		return &c.FlowerPlume
	case KindSands:
		return &c.Sands
	case KindGoblet:
		return &c.Goblet
	case KindCirclet:
		return &c.Circlet
	}
	return nil
}

func (c SetConfig) Clone() SetConfig {
	out := SetConfig{
		FlowerPlume: c.FlowerPlume.Clone(),
		Sands:       c.Sands.Clone(),
		Goblet:      c.Goblet.Clone(),
		Circlet:     c.Circlet.Clone(),
	}
	out.ServedCharacters = append([]CharacterMergeInfo(nil), c.ServedCharacters...)
	return out
}

type ArtifactSetConfigs struct {
	SetID          string      `yaml:"set"`
	Configurations []SetConfig `yaml:"configurations"`
}
