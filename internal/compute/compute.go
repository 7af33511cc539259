// Package compute turns character builds into per-set in-game artifact filter configurations,
// merges configurations that can share a filter and estimates how often a fresh drop passes.
package compute

import (
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/rs/zerolog/log"
)

// HalfSetIndex maps a half-set id (a 2pc bonus group) to the artifact sets that grant it.
type HalfSetIndex map[int][]string

// ExpandFunc rewrites the main stat choices of one slot before merging. is4pc is set for
// builds that wear four pieces of the set.
type ExpandFunc func(mainStats []domain.Stat, slot domain.Slot, opts domain.ComputeOptions, is4pc bool) []domain.Stat

// DefaultExpand collapses every elemental goblet choice into one elemental% entry and, for 4pc
// builds, crit circlets into one cr/cd entry. Both synthetic stats are listed first.
func DefaultExpand(mainStats []domain.Stat, slot domain.Slot, opts domain.ComputeOptions, is4pc bool) []domain.Stat {
	out := slices.Clone(mainStats)

	if opts.ExpandElementalGoblet && slot == domain.SlotGoblet &&
		slices.ContainsFunc(mainStats, domain.Stat.IsElementalDMG) {
		rest := slices.DeleteFunc(out, domain.Stat.IsElementalDMG)
		return append([]domain.Stat{domain.StatElementalP}, rest...)
	}

	if opts.ExpandCritCirclet && slot == domain.SlotCirclet && is4pc &&
		(slices.Contains(mainStats, domain.StatCR) || slices.Contains(mainStats, domain.StatCD)) {
		rest := slices.DeleteFunc(out, func(s domain.Stat) bool { return s == domain.StatCR || s == domain.StatCD })
		return append([]domain.Stat{domain.StatCritAny}, rest...)
	}

	return out
}

// Computer holds the inputs that stay fixed across compute runs.
type Computer struct {
	Options  domain.ComputeOptions
	HalfSets HalfSetIndex
	// Expand defaults to DefaultExpand.
	Expand ExpandFunc
}

// Filters computes configurations with the default expansion policy.
func Filters(groups []domain.BuildGroup, opts domain.ComputeOptions, halfSets HalfSetIndex) []domain.ArtifactSetConfigs {
	return Computer{Options: opts, HalfSets: halfSets}.Filters(groups)
}

// Filters runs the add and merge phases. Sets are returned in the order they were first
// referenced; within a set, configurations serving more 4pc builds come first.
func (c Computer) Filters(groups []domain.BuildGroup) []domain.ArtifactSetConfigs {
	expand := c.Expand
	if expand == nil {
		expand = DefaultExpand
	}

	var order []string
	perSet := map[string][]domain.SetConfig{}

	for _, g := range groups {
		if g.Hidden {
			continue
		}
		for _, b := range g.Builds {
			if !b.Visible {
				continue
			}
			is4pc := b.Composition == domain.Composition4pc
			for _, setID := range c.relevantSets(b) {
				if _, ok := perSet[setID]; !ok {
					order = append(order, setID)
					perSet[setID] = nil
				}
				cfg := configFromBuild(b, g.CharacterID, is4pc, c.Options, expand)
				if c.Options.SkipCritBuilds && requiresCrit(cfg) {
					continue
				}
				perSet[setID] = append(perSet[setID], cfg)
			}
		}
	}

	out := make([]domain.ArtifactSetConfigs, 0, len(order))
	for _, setID := range order {
		merged := Merge(perSet[setID], MergeOptions{
			PickOne:      c.Options.MergeSingleFlexVariants,
			PromoteRigid: c.Options.FindRigidCommonSubset,
		})
		for i := range merged {
			finalize(&merged[i])
		}
		sortConfigurations(merged)
		log.Debug().Str("set", setID).Int("builds", len(perSet[setID])).Int("configs", len(merged)).Msg("Compute merged set")
		out = append(out, domain.ArtifactSetConfigs{SetID: setID, Configurations: merged})
	}
	return out
}

func (c Computer) relevantSets(b domain.Build) []string {
	switch b.Composition {
	case domain.Composition4pc:
		if b.ArtifactSet != "" {
			return []string{b.ArtifactSet}
		}
	case domain.Composition2pc2pc:
		if b.HalfSet1 == nil || b.HalfSet2 == nil {
			return nil
		}
		first, ok1 := c.HalfSets[*b.HalfSet1]
		second, ok2 := c.HalfSets[*b.HalfSet2]
		if !ok1 || !ok2 {
			log.Warn().Str("build", b.ID).Int("half_set_1", *b.HalfSet1).Int("half_set_2", *b.HalfSet2).Msg("Compute skipped build with unknown half set")
			return nil
		}
		return orderedUnion(first, second)
	}
	return nil
}

// MustPresent picks the substats a filter must require: cr and cd together, otherwise every
// wanted substat when the required count leaves no slack.
func MustPresent(substats []domain.Stat, minStatCount int) []domain.Stat {
	if len(substats) < 2 {
		return nil
	}
	if slices.Contains(substats, domain.StatCR) && slices.Contains(substats, domain.StatCD) {
		return []domain.Stat{domain.StatCR, domain.StatCD}
	}
	if len(substats) == minStatCount {
		return slices.Clone(substats)
	}
	return nil
}

func requiresCrit(cfg domain.SetConfig) bool {
	must := cfg.FlowerPlume.MustPresent
	return slices.Contains(must, domain.StatCR) && slices.Contains(must, domain.StatCD)
}

func configFromBuild(b domain.Build, characterID string, is4pc bool, opts domain.ComputeOptions, expand ExpandFunc) domain.SetConfig {
	k := b.MinStatCount()
	must := MustPresent(b.Substats, k)
	slot := func(main []domain.Stat) domain.SlotConfig {
		return domain.SlotConfig{
			MainStats:    main,
			Substats:     slices.Clone(b.Substats),
			MustPresent:  slices.Clone(must),
			MinStatCount: k,
		}
	}
	return domain.SetConfig{
		FlowerPlume: slot([]domain.Stat{}),
		Sands:       slot(expand(b.Sands, domain.SlotSands, opts, is4pc)),
		Goblet:      slot(expand(b.Goblet, domain.SlotGoblet, opts, is4pc)),
		Circlet:     slot(expand(b.Circlet, domain.SlotCirclet, opts, is4pc)),
		ServedCharacters: []domain.CharacterMergeInfo{
			{CharacterID: characterID, HasPerfectMerge: true, Has4pcBuild: is4pc},
		},
	}
}

// finalize turns cr/cd back into its two stats and orders main stats for display.
func finalize(cfg *domain.SetConfig) {
	for _, kind := range domain.SlotKinds {
		s := cfg.Slot(kind)
		var expanded []domain.Stat
		for _, stat := range s.MainStats {
			if stat == domain.StatCritAny {
				expanded = append(expanded, domain.StatCR, domain.StatCD)
				continue
			}
			expanded = append(expanded, stat)
		}
		expanded = orderedUnion(expanded, nil)
		slices.SortStableFunc(expanded, func(a, b domain.Stat) int {
			return mainStatRank(a) - mainStatRank(b)
		})
		if expanded == nil {
			expanded = []domain.Stat{}
		}
		s.MainStats = expanded
	}
}

// mainStatRank places elemental% right before the individual elemental stats.
func mainStatRank(s domain.Stat) int {
	if s == domain.StatElementalP {
		return 2*slices.Index(domain.MainStatOrder, domain.StatPyroP) - 1
	}
	i := slices.Index(domain.MainStatOrder, s)
	if i < 0 {
		return 2 * len(domain.MainStatOrder)
	}
	return 2 * i
}

func sortConfigurations(cfgs []domain.SetConfig) {
	count4pc := func(c domain.SetConfig) int {
		n := 0
		for _, info := range c.ServedCharacters {
			if info.Has4pcBuild {
				n++
			}
		}
		return n
	}
	slices.SortStableFunc(cfgs, func(a, b domain.SetConfig) int {
		if d := count4pc(b) - count4pc(a); d != 0 {
			return d
		}
		return len(b.ServedCharacters) - len(a.ServedCharacters)
	})
}
