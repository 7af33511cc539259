package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

type ArtifactSortField string

const (
	SortNone   ArtifactSortField = ""
	SortLevel  ArtifactSortField = "level"
	SortRarity ArtifactSortField = "rarity"
	SortScore  ArtifactSortField = "score"
)

func ParseArtifactSortField(s string) (ArtifactSortField, error) {
	switch f := ArtifactSortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortNone, SortLevel, SortRarity, SortScore:
		return f, nil
	case "none":
		return SortNone, nil
	}
	return SortNone, fmt.Errorf("unsupported sort field %q (supported: level, rarity, score)", s)
}

// ArtifactQuery selects artifacts. Empty lists do not restrict.
type ArtifactQuery struct {
	Sets             []string
	Slots            []domain.Slot
	MainStats        []domain.Stat
	Rarities         []int
	MinLevel         int
	MaxLevel         *int
	RequiredSubstats []domain.Stat
	Locked           *bool
	// ExpandElementalGoblet lets an elemental DMG main stat filter match every elemental
	// (and physical) goblet; elemental% in MainStats always does.
	ExpandElementalGoblet bool
	// Predicate is an extra caller-supplied condition, e.g. a compiled rule.
	Predicate func(domain.Artifact) bool

	SortField ArtifactSortField
	SortDir   domain.SortDirection
}

// ScoreFunc scores one artifact for score sorting.
type ScoreFunc func(domain.Artifact) float64

func (q ArtifactQuery) mainStatMatches(stat domain.Stat) bool {
	if len(q.MainStats) == 0 || slices.Contains(q.MainStats, stat) {
		return true
	}
	if !stat.IsElementalDMG() {
		return false
	}
	for _, want := range q.MainStats {
		if want == domain.StatElementalP {
			return true
		}
		if q.ExpandElementalGoblet && want.IsElementalDMG() {
			return true
		}
	}
	return false
}

// MatchArtifact reports whether a satisfies every predicate of q.
func MatchArtifact(a domain.Artifact, q ArtifactQuery) bool {
	if !containsOrEmpty(q.Sets, a.SetKey) ||
		!containsOrEmpty(q.Slots, a.Slot) ||
		!containsOrEmpty(q.Rarities, a.Rarity) ||
		!q.mainStatMatches(a.MainStat) {
		return false
	}
	if a.Level < q.MinLevel || (q.MaxLevel != nil && a.Level > *q.MaxLevel) {
		return false
	}
	for _, s := range q.RequiredSubstats {
		if !a.HasSubstat(s) {
			return false
		}
	}
	if q.Locked != nil && a.Lock != *q.Locked {
		return false
	}
	if q.Predicate != nil && !q.Predicate(a) {
		return false
	}
	return true
}

// Artifacts returns a new slice with the matching artifacts, sorted per q. Score sorting
// without a ScoreFunc keeps input order.
func Artifacts(items []domain.Artifact, q ArtifactQuery, scoreFn ScoreFunc) []domain.Artifact {
	out := make([]domain.Artifact, 0, len(items))
	for _, a := range items {
		if MatchArtifact(a, q) {
			out = append(out, a)
		}
	}

	switch q.SortField {
	case SortLevel:
		sortStable(out, q.SortDir, func(a domain.Artifact) int { return a.Level })
	case SortRarity:
		sortStable(out, q.SortDir, func(a domain.Artifact) int { return a.Rarity })
	case SortScore:
		if scoreFn == nil {
			break
		}
		type scored struct {
			a domain.Artifact
			s float64
		}
		tmp := make([]scored, len(out))
		for i, a := range out {
			tmp[i] = scored{a: a, s: scoreFn(a)}
		}
		sortStable(tmp, q.SortDir, func(v scored) float64 { return v.s })
		for i := range tmp {
			out[i] = tmp[i].a
		}
	}
	return out
}
