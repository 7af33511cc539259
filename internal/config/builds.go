package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"gopkg.in/yaml.v3"
)

const BuildsVersion = 1

// BuildsFile lists the desired builds the filter computation starts from.
type BuildsFile struct {
	Version int                 `yaml:"version"`
	Groups  []domain.BuildGroup `yaml:"groups"`
}

// SetLookup is the part of the catalog build validation needs.
type SetLookup interface {
	SetID(name string) (string, bool)
	CharacterID(name string) (string, bool)
}

// LoadBuilds reads and validates a builds file. Unknown keys are rejected. Set and character
// names are resolved to catalog ids when sets is non-nil.
func LoadBuilds(path string, sets SetLookup, halfSets map[int][]string) (BuildsFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return BuildsFile{}, fmt.Errorf("read builds yaml %s: %w", path, err)
	}
	var bf BuildsFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return BuildsFile{}, fmt.Errorf("parse builds yaml %s: %w", path, err)
	}
	if bf.Version != BuildsVersion {
		return BuildsFile{}, fmt.Errorf("builds %s: unsupported version %d (expected %d)", path, bf.Version, BuildsVersion)
	}
	if err := bf.resolve(sets, halfSets); err != nil {
		return BuildsFile{}, fmt.Errorf("builds %s: %w", path, err)
	}
	return bf, nil
}

func (bf *BuildsFile) resolve(lk SetLookup, halfSets map[int][]string) error {
	seen := map[string]bool{}
	for gi := range bf.Groups {
		g := &bf.Groups[gi]
		if g.CharacterID == "" {
			return fmt.Errorf("groups[%d]: character must be specified", gi)
		}
		if lk != nil {
			id, ok := lk.CharacterID(g.CharacterID)
			if !ok {
				return fmt.Errorf("groups[%d]: unknown character %q", gi, g.CharacterID)
			}
			g.CharacterID = id
		}
		for bi := range g.Builds {
			b := &g.Builds[bi]
			if b.ID == "" {
				b.ID = fmt.Sprintf("%s-%d", g.CharacterID, bi)
			}
			if seen[b.ID] {
				return fmt.Errorf("duplicate build id %q", b.ID)
			}
			seen[b.ID] = true
			if b.CharacterID == "" {
				b.CharacterID = g.CharacterID
			}
			if b.ArtifactSet != "" && lk != nil {
				id, ok := lk.SetID(b.ArtifactSet)
				if !ok {
					return fmt.Errorf("build %q: unknown set %q", b.ID, b.ArtifactSet)
				}
				b.ArtifactSet = id
			}
			if err := ValidateBuild(*b, halfSets); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateBuild checks that a build can produce filter configurations.
func ValidateBuild(b domain.Build, halfSets map[int][]string) error {
	switch b.Composition {
	case domain.Composition4pc:
		if b.ArtifactSet == "" {
			return fmt.Errorf("build %q: 4pc build needs a set", b.ID)
		}
	case domain.Composition2pc2pc:
		if b.HalfSet1 == nil || b.HalfSet2 == nil {
			return fmt.Errorf("build %q: 2pc+2pc build needs half_set_1 and half_set_2", b.ID)
		}
		for _, id := range []int{*b.HalfSet1, *b.HalfSet2} {
			if _, ok := halfSets[id]; halfSets != nil && !ok {
				return fmt.Errorf("build %q: unknown half set %d", b.ID, id)
			}
		}
	}

	for _, slot := range domain.MainStatSlots {
		var stats []domain.Stat
		switch slot {
		case domain.SlotSands:
			stats = b.Sands
		case domain.SlotGoblet:
			stats = b.Goblet
		case domain.SlotCirclet:
			stats = b.Circlet
		}
		pool := domain.MainStatPool(slot)
		for _, s := range stats {
			if s == domain.StatElementalP && slot == domain.SlotGoblet || s == domain.StatCritAny && slot == domain.SlotCirclet {
				continue
			}
			if !slices.Contains(pool, s) {
				return fmt.Errorf("build %q: %s cannot be a %s main stat", b.ID, s, slot)
			}
		}
	}

	for _, s := range b.Substats {
		if !s.IsSubstat() {
			return fmt.Errorf("build %q: %s is not a substat", b.ID, s)
		}
	}
	if k := b.MinStatCount(); k < 0 || k > domain.MaxSubstats {
		return fmt.Errorf("build %q: k must be in [0..%d], got %d", b.ID, domain.MaxSubstats, k)
	}
	return nil
}

var errNoBuilds = errors.New("no builds defined")

// Builds flattens all visible builds of visible groups.
func (bf BuildsFile) Builds() ([]domain.Build, error) {
	var out []domain.Build
	for _, g := range bf.Groups {
		if g.Hidden {
			continue
		}
		for _, b := range g.Builds {
			if b.Visible {
				out = append(out, b)
			}
		}
	}
	if len(out) == 0 {
		return nil, errNoBuilds
	}
	return out, nil
}
