package domain

import "time"

type Element string

const (
	ElementPyro    Element = "Pyro"
	ElementHydro   Element = "Hydro"
	ElementElectro Element = "Electro"
	ElementCryo    Element = "Cryo"
	ElementAnemo   Element = "Anemo"
	ElementGeo     Element = "Geo"
	ElementDendro  Element = "Dendro"
)

var Elements = []Element{ElementPyro, ElementHydro, ElementElectro, ElementCryo, ElementAnemo, ElementGeo, ElementDendro}

// DMGStat returns the goblet stat matching the element.
func (e Element) DMGStat() Stat {
	switch e {
	case ElementPyro:
		return StatPyroP
	case ElementHydro:
		return StatHydroP
	case ElementElectro:
		return StatElectroP
	case ElementCryo:
		return StatCryoP
	case ElementAnemo:
		return StatAnemoP
	case ElementGeo:
		return StatGeoP
	case ElementDendro:
		return StatDendroP
	}
	return StatUnknown
}

type WeaponType string

const (
	WeaponSword    WeaponType = "Sword"
	WeaponClaymore WeaponType = "Claymore"
	WeaponPolearm  WeaponType = "Polearm"
	WeaponCatalyst WeaponType = "Catalyst"
	WeaponBow      WeaponType = "Bow"
)

var WeaponTypes = []WeaponType{WeaponSword, WeaponClaymore, WeaponPolearm, WeaponCatalyst, WeaponBow}

type Region string

// Character is a static catalog entry.
type Character struct {
	ID          string     `yaml:"id"`
	Rarity      int        `yaml:"rarity"`
	Element     Element    `yaml:"element"`
	WeaponType  WeaponType `yaml:"weapon"`
	Region      Region     `yaml:"region"`
	ReleaseDate string     `yaml:"release_date"`
}

// Released parses ReleaseDate (YYYY-MM-DD). Unparsable dates sort as the zero time.
func (c Character) Released() time.Time {
	t, err := time.Parse(time.DateOnly, c.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Talent struct {
	Auto  int `yaml:"auto"`
	Skill int `yaml:"skill"`
	Burst int `yaml:"burst"`
}

type WeaponData struct {
	ID         string `yaml:"id"`
	Key        string `yaml:"key"`
	Level      int    `yaml:"level"`
	Refinement int    `yaml:"refinement"`
	Lock       bool   `yaml:"lock"`
}

// CharacterData is an owned character from an account import.
type CharacterData struct {
	Key           string             `yaml:"key"`
	Constellation int                `yaml:"constellation"`
	Level         int                `yaml:"level"`
	Talent        Talent             `yaml:"talent"`
	Weapon        *WeaponData        `yaml:"weapon,omitempty"`
	Artifacts     map[Slot]*Artifact `yaml:"artifacts"`
}

type AccountData struct {
	Characters     []CharacterData `yaml:"characters"`
	ExtraArtifacts []Artifact      `yaml:"extra_artifacts"`
	ExtraWeapons   []WeaponData    `yaml:"extra_weapons"`
}

// AllArtifacts returns equipped artifacts (in character then slot order) followed by extras.
func (d AccountData) AllArtifacts() []Artifact {
	var out []Artifact
	for _, c := range d.Characters {
		for _, slot := range Slots {
			if a := c.Artifacts[slot]; a != nil {
				out = append(out, *a)
			}
		}
	}
	return append(out, d.ExtraArtifacts...)
}

func (d AccountData) Character(key string) (CharacterData, bool) {
	for _, c := range d.Characters {
		if c.Key == key {
			return c, true
		}
	}
	return CharacterData{}, false
}
