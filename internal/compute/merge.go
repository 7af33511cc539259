package compute

import (
	"fmt"
	"slices"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

type MergeOptions struct {
	// PickOne merges configs sharing the same must-present set with k = |must|+1 by
	// unioning their optional pools.
	PickOne bool
	// PromoteRigid turns rigid (every substat required) configs that share k-1 stats into
	// pick-one configs.
	PromoteRigid bool
}

// Merge reduces configs of one set. Configs that differ only by main stats are always merged.
// The input slice is not modified.
func Merge(cfgs []domain.SetConfig, opts MergeOptions) []domain.SetConfig {
	if len(cfgs) <= 1 {
		out := make([]domain.SetConfig, 0, len(cfgs))
		for _, c := range cfgs {
			out = append(out, c.Clone())
		}
		return out
	}

	cur := mergeIdentical(cfgs)
	if opts.PickOne {
		cur = mergeUntilStable(cur, tryMergePickOne)
	}
	if opts.PromoteRigid {
		cur = mergeUntilStable(cur, tryPromoteRigid)
		// promotion yields pick-one configs
		if opts.PickOne {
			cur = mergeUntilStable(cur, tryMergePickOne)
		}
	}
	return cur
}

func mergeIdentical(cfgs []domain.SetConfig) []domain.SetConfig {
	index := map[string]int{}
	var out []domain.SetConfig
	for _, c := range cfgs {
		sig := configSignature(c)
		if i, ok := index[sig]; ok {
			mergeMetadata(&out[i], c)
			continue
		}
		index[sig] = len(out)
		out = append(out, c.Clone())
	}
	return out
}

// mergeUntilStable merges the first mergeable pair, then starts over, until no pair merges.
func mergeUntilStable(cfgs []domain.SetConfig, try func(target *domain.SetConfig, candidate domain.SetConfig) bool) []domain.SetConfig {
	list := slices.Clone(cfgs)
	for merged := true; merged; {
		merged = false
	scan:
		for i := range list {
			for j := i + 1; j < len(list); j++ {
				if try(&list[i], list[j]) {
					list = slices.Delete(list, j, j+1)
					merged = true
					break scan
				}
			}
		}
	}
	return list
}

type slotMerger func(target, candidate domain.SlotConfig) (domain.SlotConfig, bool)

func tryMergePickOne(target *domain.SetConfig, candidate domain.SetConfig) bool {
	return tryMergeSlots(target, candidate, mergePickOneSlot)
}

func tryPromoteRigid(target *domain.SetConfig, candidate domain.SetConfig) bool {
	return tryMergeSlots(target, candidate, promoteRigidSlot)
}

// tryMergeSlots applies merge to every slot that differs. Structurally equal slots just union
// their main stats. Nothing changes unless every differing slot merges and at least one differs.
func tryMergeSlots(target *domain.SetConfig, candidate domain.SetConfig, merge slotMerger) bool {
	updates := map[domain.SlotKind]domain.SlotConfig{}
	changed := false

	for _, kind := range domain.SlotKinds {
		t, c := *target.Slot(kind), *candidate.Slot(kind)
		if slotsEqual(t, c) {
			updates[kind] = domain.SlotConfig{
				MainStats:    orderedUnion(t.MainStats, c.MainStats),
				Substats:     normalizeSubstats(orderedUnion(t.Substats, c.Substats), t.MustPresent),
				MustPresent:  slices.Clone(t.MustPresent),
				MinStatCount: t.MinStatCount,
			}
			continue
		}
		m, ok := merge(t, c)
		if !ok {
			return false
		}
		updates[kind] = m
		changed = true
	}
	if !changed {
		return false
	}

	for kind, u := range updates {
		*target.Slot(kind) = u
	}
	mergeMetadata(target, candidate)
	return true
}

func mergePickOneSlot(t, c domain.SlotConfig) (domain.SlotConfig, bool) {
	if t.MinStatCount != c.MinStatCount ||
		len(t.MustPresent) != len(c.MustPresent) ||
		t.MinStatCount != len(t.MustPresent)+1 ||
		!sameElements(t.MustPresent, c.MustPresent) {
		return domain.SlotConfig{}, false
	}
	must := orderedUnion(t.MustPresent, c.MustPresent)
	return domain.SlotConfig{
		MainStats:    orderedUnion(t.MainStats, c.MainStats),
		Substats:     normalizeSubstats(orderedUnion(t.Substats, c.Substats), must),
		MustPresent:  must,
		MinStatCount: t.MinStatCount,
	}, true
}

// shape classifies a slot for promotion: rigid when every one of the k matched stats is
// required, pick-one when exactly one is free.
type shape struct {
	rigid    bool
	k        int
	must     []domain.Stat
	optional []domain.Stat
}

func analyzeShape(s domain.SlotConfig) (shape, bool) {
	k := s.MinStatCount
	if k <= 0 {
		return shape{}, false
	}
	must := orderedUnion(s.MustPresent, nil)
	switch len(must) {
	case k:
		return shape{rigid: true, k: k, must: must}, true
	case k - 1:
		var optional []domain.Stat
		for _, st := range s.Substats {
			if !slices.Contains(must, st) {
				optional = append(optional, st)
			}
		}
		return shape{k: k, must: must, optional: orderedUnion(optional, nil)}, true
	}
	return shape{}, false
}

func promoteRigidSlot(t, c domain.SlotConfig) (domain.SlotConfig, bool) {
	if t.MinStatCount != c.MinStatCount || t.MinStatCount <= 0 {
		return domain.SlotConfig{}, false
	}
	st, ok1 := analyzeShape(t)
	sc, ok2 := analyzeShape(c)
	if !ok1 || !ok2 || st.k != sc.k {
		return domain.SlotConfig{}, false
	}

	switch {
	case st.rigid && sc.rigid:
		return mergeRigidPair(t, c, st, sc)
	case !st.rigid && sc.rigid:
		return mergePickWithRigid(t, c, st, sc)
	case st.rigid && !sc.rigid:
		m, ok := mergePickWithRigid(c, t, sc, st)
		if !ok {
			return domain.SlotConfig{}, false
		}
		m.MainStats = orderedUnion(t.MainStats, c.MainStats)
		return m, true
	}
	// two pick-one slots are left to the pick-one pass
	return domain.SlotConfig{}, false
}

func mergeRigidPair(t, c domain.SlotConfig, st, sc shape) (domain.SlotConfig, bool) {
	k := st.k
	common := intersection(st.must, sc.must)
	if len(common) < max(0, k-1) {
		return domain.SlotConfig{}, false
	}
	must := orderedSubset(k-1, st.must, sc.must, common)
	subs := orderedUnion(orderedUnion(t.Substats, c.Substats), orderedUnion(st.must, sc.must))
	return domain.SlotConfig{
		MainStats:    orderedUnion(t.MainStats, c.MainStats),
		Substats:     normalizeSubstats(subs, must),
		MustPresent:  must,
		MinStatCount: k,
	}, true
}

func mergePickWithRigid(pick, rigid domain.SlotConfig, ps, rs shape) (domain.SlotConfig, bool) {
	if len(intersection(rs.must, ps.must)) < len(ps.must) {
		return domain.SlotConfig{}, false
	}
	var extras []domain.Stat
	for _, st := range rs.must {
		if !slices.Contains(ps.must, st) {
			extras = append(extras, st)
		}
	}
	optional := orderedUnion(ps.optional, extras)
	subs := orderedUnion(orderedUnion(pick.Substats, rigid.Substats), orderedUnion(ps.must, optional))
	return domain.SlotConfig{
		MainStats:    orderedUnion(pick.MainStats, rigid.MainStats),
		Substats:     normalizeSubstats(subs, ps.must),
		MustPresent:  slices.Clone(ps.must),
		MinStatCount: ps.k,
	}, true
}

// mergeMetadata unions main stats and served characters into target. A character served by
// both keeps a perfect merge only if both were perfect, and counts as 4pc if either was.
func mergeMetadata(target *domain.SetConfig, src domain.SetConfig) {
	for _, kind := range domain.SlotKinds {
		t := target.Slot(kind)
		t.MainStats = orderedUnion(t.MainStats, src.Slot(kind).MainStats)
	}
	for _, info := range src.ServedCharacters {
		i := slices.IndexFunc(target.ServedCharacters, func(c domain.CharacterMergeInfo) bool {
			return c.CharacterID == info.CharacterID
		})
		if i < 0 {
			target.ServedCharacters = append(target.ServedCharacters, info)
			continue
		}
		cur := &target.ServedCharacters[i]
		cur.HasPerfectMerge = cur.HasPerfectMerge && info.HasPerfectMerge
		cur.Has4pcBuild = cur.Has4pcBuild || info.Has4pcBuild
	}
}

func configSignature(c domain.SetConfig) string {
	parts := make([]string, 0, len(domain.SlotKinds))
	for _, kind := range domain.SlotKinds {
		s := c.Slot(kind)
		parts = append(parts, fmt.Sprintf("%d:%s:%s", s.MinStatCount, sortedKeys(s.MustPresent), sortedKeys(s.Substats)))
	}
	return strings.Join(parts, "|")
}

func sortedKeys(stats []domain.Stat) string {
	keys := make([]string, len(stats))
	for i, s := range stats {
		keys[i] = s.String()
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}

func slotsEqual(a, b domain.SlotConfig) bool {
	return a.MinStatCount == b.MinStatCount &&
		sameElements(a.MustPresent, b.MustPresent) &&
		sameElements(a.Substats, b.Substats)
}

// sameElements compares as multisets.
func sameElements[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}

func orderedUnion[T comparable](first, second []T) []T {
	seen := make(map[T]struct{}, len(first)+len(second))
	out := make([]T, 0, len(first)+len(second))
	for _, list := range [][]T{first, second} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// normalizeSubstats lists must-present stats first, then the rest in their original order.
func normalizeSubstats(all, must []domain.Stat) []domain.Stat {
	out := orderedUnion(must, nil)
	for _, s := range all {
		if !slices.Contains(must, s) {
			out = append(out, s)
		}
	}
	return out
}

func intersection[T comparable](a, b []T) []T {
	var out []T
	for _, v := range a {
		if slices.Contains(b, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// orderedSubset picks count stats from pool, preferring the order they appear in primary,
// then secondary.
func orderedSubset(count int, primary, secondary, pool []domain.Stat) []domain.Stat {
	if count <= 0 {
		return []domain.Stat{}
	}
	out := make([]domain.Stat, 0, count)
	for _, src := range [][]domain.Stat{primary, secondary, pool} {
		for _, s := range src {
			if slices.Contains(pool, s) && !slices.Contains(out, s) {
				out = append(out, s)
				if len(out) == count {
					return out
				}
			}
		}
	}
	return out
}
