// Package catalog loads static game data: characters, artifact sets, weapons, half-set
// bonus groups, Enka id maps, default stat weights and tier placements.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"gopkg.in/yaml.v3"
)

type CharacterEntry struct {
	domain.Character `yaml:",inline"`
	Name             string `yaml:"name"`
	EnkaID           int    `yaml:"enka_id,omitempty"`
}

type SetEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	MaxRarity int    `yaml:"max_rarity"`
	EnkaID    string `yaml:"enka_id,omitempty"`
}

type WeaponEntry struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Type   domain.WeaponType `yaml:"type"`
	Rarity int               `yaml:"rarity"`
	EnkaID int               `yaml:"enka_id,omitempty"`
}

// HalfSet is a 2pc bonus shared by several sets (e.g. ATK +18%).
type HalfSet struct {
	ID    int      `yaml:"id"`
	Bonus string   `yaml:"bonus"`
	Sets  []string `yaml:"sets"`
}

type Catalog struct {
	Characters     []CharacterEntry            `yaml:"characters"`
	Sets           []SetEntry                  `yaml:"sets"`
	Weapons        []WeaponEntry               `yaml:"weapons"`
	HalfSets       []HalfSet                   `yaml:"half_sets"`
	DefaultWeights map[string]domain.WeightMap `yaml:"default_weights"`
	Tiers          domain.TierAssignment       `yaml:"tiers"`

	charByName   map[string]string
	setByName    map[string]string
	weaponByName map[string]string
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Normalize strips everything but letters and digits and lowercases the rest, so that
// "Hu Tao", "HuTao" and "hu_tao" compare equal.
func Normalize(s string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(s, ""))
}

// Load reads a catalog yaml; unknown keys are rejected.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	for _, ch := range c.Characters {
		if strings.TrimSpace(ch.ID) == "" {
			return errors.New("catalog: character with empty id")
		}
		if seen[ch.ID] {
			return fmt.Errorf("catalog: duplicate character %q", ch.ID)
		}
		seen[ch.ID] = true
		if ch.Rarity != 4 && ch.Rarity != 5 {
			return fmt.Errorf("catalog: character %q: rarity must be 4 or 5, got %d", ch.ID, ch.Rarity)
		}
		if !slices.Contains(domain.Elements, ch.Element) {
			return fmt.Errorf("catalog: character %q: unknown element %q", ch.ID, ch.Element)
		}
		if !slices.Contains(domain.WeaponTypes, ch.WeaponType) {
			return fmt.Errorf("catalog: character %q: unknown weapon type %q", ch.ID, ch.WeaponType)
		}
	}

	sets := map[string]bool{}
	for _, s := range c.Sets {
		if sets[s.ID] {
			return fmt.Errorf("catalog: duplicate set %q", s.ID)
		}
		sets[s.ID] = true
	}
	halfIDs := map[int]bool{}
	for _, h := range c.HalfSets {
		if halfIDs[h.ID] {
			return fmt.Errorf("catalog: duplicate half set %d", h.ID)
		}
		halfIDs[h.ID] = true
		for _, id := range h.Sets {
			if !sets[id] {
				return fmt.Errorf("catalog: half set %d: unknown set %q", h.ID, id)
			}
		}
	}

	for id, w := range c.DefaultWeights {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("catalog: default_weights.%s: %w", id, err)
		}
	}
	for id, p := range c.Tiers {
		if !slices.Contains(domain.Tiers, p.Tier) {
			return fmt.Errorf("catalog: tiers.%s: unknown tier %q", id, p.Tier)
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.charByName = make(map[string]string, len(c.Characters)*2)
	for _, ch := range c.Characters {
		c.charByName[Normalize(ch.ID)] = ch.ID
		if ch.Name != "" {
			c.charByName[Normalize(ch.Name)] = ch.ID
		}
	}
	c.setByName = make(map[string]string, len(c.Sets)*2)
	for _, s := range c.Sets {
		c.setByName[Normalize(s.ID)] = s.ID
		if s.Name != "" {
			c.setByName[Normalize(s.Name)] = s.ID
		}
	}
	c.weaponByName = make(map[string]string, len(c.Weapons)*2)
	for _, w := range c.Weapons {
		c.weaponByName[Normalize(w.ID)] = w.ID
		if w.Name != "" {
			c.weaponByName[Normalize(w.Name)] = w.ID
		}
	}
}

// CharacterID resolves a display name or key to a catalog id.
func (c *Catalog) CharacterID(name string) (string, bool) {
	id, ok := c.charByName[Normalize(name)]
	return id, ok
}

func (c *Catalog) SetID(name string) (string, bool) {
	id, ok := c.setByName[Normalize(name)]
	return id, ok
}

func (c *Catalog) WeaponID(name string) (string, bool) {
	id, ok := c.weaponByName[Normalize(name)]
	return id, ok
}

func (c *Catalog) Character(id string) (CharacterEntry, bool) {
	i := slices.IndexFunc(c.Characters, func(e CharacterEntry) bool { return e.ID == id })
	if i < 0 {
		return CharacterEntry{}, false
	}
	return c.Characters[i], true
}

// CharacterList returns the catalog entries in file order.
func (c *Catalog) CharacterList() []domain.Character {
	out := make([]domain.Character, 0, len(c.Characters))
	for _, e := range c.Characters {
		out = append(out, e.Character)
	}
	return out
}

func (c *Catalog) CharacterByEnkaID(id int) (CharacterEntry, bool) {
	i := slices.IndexFunc(c.Characters, func(e CharacterEntry) bool { return e.EnkaID != 0 && e.EnkaID == id })
	if i < 0 {
		return CharacterEntry{}, false
	}
	return c.Characters[i], true
}

func (c *Catalog) SetByEnkaID(id string) (SetEntry, bool) {
	i := slices.IndexFunc(c.Sets, func(e SetEntry) bool { return e.EnkaID != "" && e.EnkaID == id })
	if i < 0 {
		return SetEntry{}, false
	}
	return c.Sets[i], true
}

func (c *Catalog) WeaponByEnkaID(id int) (WeaponEntry, bool) {
	i := slices.IndexFunc(c.Weapons, func(e WeaponEntry) bool { return e.EnkaID != 0 && e.EnkaID == id })
	if i < 0 {
		return WeaponEntry{}, false
	}
	return c.Weapons[i], true
}

// HalfSetIndex maps half-set ids to their member sets.
func (c *Catalog) HalfSetIndex() map[int][]string {
	out := make(map[int][]string, len(c.HalfSets))
	for _, h := range c.HalfSets {
		out[h.ID] = slices.Clone(h.Sets)
	}
	return out
}

// DefaultScoreConfig is the weight configuration a fresh state starts from.
func (c *Catalog) DefaultScoreConfig() domain.ScoreConfig {
	cfg := domain.ScoreConfig{Global: domain.DefaultGlobalWeights(), Characters: map[string]domain.WeightMap{}}
	for id, w := range c.DefaultWeights {
		cfg.Characters[id] = w
	}
	return cfg.Clone()
}

// CharacterName returns the display name, or id when unknown.
func (c *Catalog) CharacterName(id string) string {
	if e, ok := c.Character(id); ok && e.Name != "" {
		return e.Name
	}
	return id
}

func (c *Catalog) SetName(id string) string {
	i := slices.IndexFunc(c.Sets, func(e SetEntry) bool { return e.ID == id })
	if i >= 0 && c.Sets[i].Name != "" {
		return c.Sets[i].Name
	}
	return id
}

func (c *Catalog) WeaponName(id string) string {
	i := slices.IndexFunc(c.Weapons, func(e WeaponEntry) bool { return e.ID == id })
	if i >= 0 && c.Weapons[i].Name != "" {
		return c.Weapons[i].Name
	}
	return id
}

// HalfSetBonus returns the bonus text of a half set, e.g. "ATK +18%".
func (c *Catalog) HalfSetBonus(id int) string {
	i := slices.IndexFunc(c.HalfSets, func(h HalfSet) bool { return h.ID == id })
	if i < 0 {
		return fmt.Sprintf("half set %d", id)
	}
	return c.HalfSets[i].Bonus
}
