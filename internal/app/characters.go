package app

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/filter"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/output"
	"github.com/rs/zerolog/log"
)

// runCharacters lists catalog characters. Flags override the saved filters; -save keeps them.
func runCharacters(_ context.Context, s *session, args []string) error {
	fs := flag.NewFlagSet("characters", flag.ContinueOnError)
	var elements, weapons, regions, rarities listOpt
	fs.Var(&elements, "element", "elements, e.g. pyro,hydro")
	fs.Var(&weapons, "weapon", "weapon types, e.g. sword,bow")
	fs.Var(&regions, "region", "regions, e.g. Liyue")
	fs.Var(&rarities, "rarity", "rarities, e.g. 4,5")
	var tierSort, releaseSort stringOpt
	fs.Var(&tierSort, "tier", "tier sort: asc, desc or off")
	fs.Var(&releaseSort, "release", "release date sort: asc, desc or off")
	reset := fs.Bool("reset", false, "start from the default filters instead of the saved ones")
	save := fs.Bool("save", false, "save the resulting filters to the state file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f := s.state.CharacterFilters
	if *reset {
		f = filter.DefaultCharacterFilters()
	}
	var err error
	if elements.set {
		if f.Elements, err = parseEnum(elements.v, domain.Elements, "element"); err != nil {
			return usageError(err)
		}
	}
	if weapons.set {
		if f.WeaponTypes, err = parseEnum(weapons.v, domain.WeaponTypes, "weapon type"); err != nil {
			return usageError(err)
		}
	}
	if regions.set {
		if f.Regions, err = parseEnum(regions.v, catalogRegions(s.cat.CharacterList()), "region"); err != nil {
			return usageError(err)
		}
	}
	if rarities.set {
		f.Rarities = make([]int, 0, len(rarities.v))
		for _, v := range rarities.v {
			r, err := strconv.Atoi(v)
			if err != nil || (r != 4 && r != 5) {
				return usageError(fmt.Errorf("invalid character rarity %q", v))
			}
			f.Rarities = append(f.Rarities, r)
		}
	}
	if tierSort.set {
		if f.TierSort, err = domain.ParseSortDirection(tierSort.v); err != nil {
			return usageError(err)
		}
	}
	if releaseSort.set {
		if f.ReleaseSort, err = domain.ParseSortDirection(releaseSort.v); err != nil {
			return usageError(err)
		}
	}

	chars := filter.Characters(s.cat.CharacterList(), f, s.cat.Tiers, domain.Tiers)
	output.PrintCharacters(s.out, chars, s.cat.CharacterName, s.cat.Tiers)
	fmt.Fprintf(s.out, "%d of %d characters\n", len(chars), len(s.cat.CharacterList()))
	log.Debug().Bool("filtered", filter.HasActiveFilters(f)).Int("shown", len(chars)).Msg("Characters listed")

	if !*save {
		return nil
	}
	s.state.CharacterFilters = f
	return s.saveState()
}

// parseEnum matches values case-insensitively against the allowed list.
func parseEnum[T ~string](values []string, allowed []T, kind string) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		i := slices.IndexFunc(allowed, func(a T) bool { return strings.EqualFold(string(a), v) })
		if i < 0 {
			return nil, fmt.Errorf("unknown %s %q", kind, v)
		}
		out = append(out, allowed[i])
	}
	return out, nil
}

func catalogRegions(chars []domain.Character) []domain.Region {
	var out []domain.Region
	for _, c := range chars {
		if c.Region != "" && !slices.Contains(out, c.Region) {
			out = append(out, c.Region)
		}
	}
	return out
}
