package compute

import (
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

// MatchResult is one computed configuration an artifact passes.
type MatchResult struct {
	SetID       string
	ConfigIndex int
	Served      []domain.CharacterMergeInfo
}

// Match lists the configurations of the artifact's set that it passes, in configuration order.
func Match(a domain.Artifact, filters []domain.ArtifactSetConfigs) []MatchResult {
	var out []MatchResult
	kind := domain.KindOf(a.Slot)
	for _, set := range filters {
		if set.SetID != a.SetKey {
			continue
		}
		for i, cfg := range set.Configurations {
			if SlotMatch(a, *cfg.Slot(kind)) {
				out = append(out, MatchResult{SetID: set.SetID, ConfigIndex: i, Served: cfg.ServedCharacters})
			}
		}
	}
	return out
}

// SlotMatch checks an artifact against one slot config. Unactivated substats count as present
// and a main stat that is also a substat kind satisfies its own requirement.
func SlotMatch(a domain.Artifact, cfg domain.SlotConfig) bool {
	if len(cfg.MainStats) > 0 && !slices.ContainsFunc(cfg.MainStats, func(s domain.Stat) bool {
		return mainStatAccepts(s, a.MainStat)
	}) {
		return false
	}
	has := func(s domain.Stat) bool {
		if s == a.MainStat && s.IsSubstat() {
			return true
		}
		return a.HasSubstat(s) || slices.ContainsFunc(a.Unactivated, func(u domain.Substat) bool { return u.Stat == s })
	}
	for _, s := range cfg.MustPresent {
		if !has(s) {
			return false
		}
	}
	n := 0
	for _, s := range cfg.Substats {
		if has(s) {
			n++
		}
	}
	return n >= cfg.MinStatCount
}

func mainStatAccepts(want, got domain.Stat) bool {
	switch want {
	case domain.StatElementalP:
		return got.IsElementalDMG()
	case domain.StatCritAny:
		return got == domain.StatCR || got == domain.StatCD
	}
	return want == got
}
