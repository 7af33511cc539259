// Package score computes substat efficiency scores. Every function is a pure function of its
// arguments.
package score

import (
	"cmp"
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

type Contribution struct {
	Stat  domain.Stat
	Value float64
	// Weight is the effective weight, including the global flat factor.
	Weight float64
	Score  float64
}

type ArtifactResult struct {
	// Score is capped at MaxScore whenever MaxScore is positive.
	Score         float64
	MaxScore      float64
	Percent       float64
	Contributions []Contribution
	MainStatWrong bool
}

// EffectiveWeight is the character weight of a stat times the global factor for flat stats.
func EffectiveWeight(stat domain.Stat, weights domain.WeightMap, global domain.GlobalWeights) float64 {
	w := weights.Weight(stat)
	if stat.IsFlat() {
		f := global.Factor(stat)
		if f < 0 {
			return 0
		}
		w *= f
	}
	return w
}

// Substat returns value*effective weight, never negative.
func Substat(stat domain.Stat, value float64, weights domain.WeightMap, global domain.GlobalWeights) float64 {
	if value <= 0 || !stat.IsSubstat() {
		return 0
	}
	return value * EffectiveWeight(stat, weights, global)
}

// Artifact scores the substats of one artifact against a weight map.
func Artifact(a domain.Artifact, weights domain.WeightMap, global domain.GlobalWeights) ArtifactResult {
	res := ArtifactResult{
		Contributions: make([]Contribution, 0, len(a.Substats)),
		MainStatWrong: a.MainStatWrong(),
	}
	for _, sub := range a.Substats {
		c := Contribution{Stat: sub.Stat, Value: sub.Value}
		if sub.Stat.IsSubstat() {
			c.Weight = EffectiveWeight(sub.Stat, weights, global)
		}
		c.Score = Substat(sub.Stat, sub.Value, weights, global)
		res.Score += c.Score
		res.Contributions = append(res.Contributions, c)
	}
	// Imports may carry more lines than the level allows (low rarity, misreads); every line
	// present counts as at least one roll.
	lines := 0
	for _, sub := range a.Substats {
		if sub.Stat.IsSubstat() {
			lines++
		}
	}
	res.MaxScore = maxScore(a.Rarity, max(Rolls(a.Rarity, a.Level), lines), a.MainStat, weights, global)
	if res.MaxScore > 0 && res.Score > res.MaxScore {
		res.Score = res.MaxScore
	}
	res.Percent = Percent(res.Score, res.MaxScore)
	return res
}

// Rolls is the highest possible number of substat rolls at a level: the initial substats
// (rarity-1, at most 4) plus one upgrade every 4 levels.
func Rolls(rarity, level int) int {
	initial := min(max(rarity-1, 0), domain.MaxSubstats)
	return initial + max(level, 0)/4
}

// MaxScore is the best score an artifact of this rarity, level and main stat could reach:
// the best distinct substats one roll each, every remaining roll on the best of them.
func MaxScore(rarity, level int, main domain.Stat, weights domain.WeightMap, global domain.GlobalWeights) float64 {
	return maxScore(rarity, Rolls(rarity, level), main, weights, global)
}

func maxScore(rarity, rolls int, main domain.Stat, weights domain.WeightMap, global domain.GlobalWeights) float64 {
	if rolls == 0 {
		return 0
	}
	perRoll := make([]float64, 0, len(domain.SubstatPool))
	for _, stat := range domain.SubstatPool {
		if stat == main {
			continue
		}
		perRoll = append(perRoll, MaxRoll(rarity, stat)*EffectiveWeight(stat, weights, global))
	}
	slices.SortFunc(perRoll, func(a, b float64) int { return cmp.Compare(b, a) })

	lines := min(rolls, domain.MaxSubstats, len(perRoll))
	total := 0.0
	for _, v := range perRoll[:lines] {
		total += v
	}
	if lines > 0 {
		total += float64(rolls-lines) * perRoll[0]
	}
	return total
}

// Percent expresses score as a percentage of maxScore, clamped to [0, 100]. A non-positive
// maxScore yields 0.
func Percent(score, maxScore float64) float64 {
	if maxScore <= 0 || score <= 0 {
		return 0
	}
	p := score / maxScore * 100
	if p > 100 {
		return 100
	}
	return p
}
