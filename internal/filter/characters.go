// Package filter narrows and orders character and artifact lists. Filters are AND across
// categories and OR within one; sorting is stable and tri-state.
package filter

import (
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

type CharacterFilters struct {
	Elements    []domain.Element     `yaml:"elements"`
	WeaponTypes []domain.WeaponType  `yaml:"weapon_types"`
	Regions     []domain.Region      `yaml:"regions"`
	Rarities    []int                `yaml:"rarities"`
	TierSort    domain.SortDirection `yaml:"tier_sort"`
	ReleaseSort domain.SortDirection `yaml:"release_sort"`
}

func DefaultCharacterFilters() CharacterFilters {
	return CharacterFilters{
		Elements:    []domain.Element{},
		WeaponTypes: []domain.WeaponType{},
		Regions:     []domain.Region{},
		Rarities:    []int{},
		TierSort:    domain.SortOff,
		ReleaseSort: domain.SortDesc,
	}
}

// HasActiveFilters ignores sort settings.
func HasActiveFilters(f CharacterFilters) bool {
	return len(f.Elements) > 0 || len(f.WeaponTypes) > 0 || len(f.Regions) > 0 || len(f.Rarities) > 0
}

func MatchCharacter(c domain.Character, f CharacterFilters) bool {
	return containsOrEmpty(f.Elements, c.Element) &&
		containsOrEmpty(f.WeaponTypes, c.WeaponType) &&
		containsOrEmpty(f.Regions, c.Region) &&
		containsOrEmpty(f.Rarities, c.Rarity)
}

// Characters returns a new slice with the matching characters. Tier order is the primary key
// when TierSort is on and tier data is given (untiered characters sort after every tier),
// release date breaks ties.
func Characters(items []domain.Character, f CharacterFilters, tiers domain.TierAssignment, tierOrder []domain.Tier) []domain.Character {
	out := make([]domain.Character, 0, len(items))
	for _, c := range items {
		if MatchCharacter(c, f) {
			out = append(out, c)
		}
	}

	useTier := f.TierSort != domain.SortOff && f.TierSort != "" && tiers != nil && tierOrder != nil
	useRelease := f.ReleaseSort != domain.SortOff && f.ReleaseSort != ""
	if !useTier && !useRelease {
		return out
	}

	// Untiered characters and tiers missing from tierOrder rank after the last tier.
	tierIndex := func(c domain.Character) int {
		p, ok := tiers[c.ID]
		if !ok {
			return len(tierOrder)
		}
		if i := slices.Index(tierOrder, p.Tier); i >= 0 {
			return i
		}
		return len(tierOrder)
	}

	slices.SortStableFunc(out, func(a, b domain.Character) int {
		if useTier {
			ta, tb := tierIndex(a), tierIndex(b)
			if ta != tb {
				// asc lists Pool first, desc lists S first.
				if f.TierSort == domain.SortAsc {
					return tb - ta
				}
				return ta - tb
			}
		}
		if useRelease {
			c := a.Released().Compare(b.Released())
			if f.ReleaseSort == domain.SortDesc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}
