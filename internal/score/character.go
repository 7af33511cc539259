package score

import "github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"

type StatBreakdown struct {
	MainValue float64
	SubValue  float64
	MainScore float64
	SubScore  float64
	Weight    float64
}

// CharacterResult is the roll-equivalent score of a character's equipped build.
type CharacterResult struct {
	MainScore      float64
	SubScore       float64
	SlotMainScores map[domain.Slot]float64
	SlotSubScores  map[domain.Slot]float64
	StatScores     map[domain.Stat]StatBreakdown
	IsComplete     bool
}

func (r CharacterResult) Total() float64 { return r.MainScore + r.SubScore }

// Attribute converts a stat value into crit-damage equivalents weighted by the character's
// 0-100 weight. It also returns the effective weight shown to users (flat stats include the
// global factor). Unknown stats score 0.
func Attribute(stat domain.Stat, value float64, weights domain.WeightMap, global domain.GlobalWeights) (float64, float64) {
	raw := weights.Weight(stat)
	coef, ok := rollCoefficient[stat]
	if !ok {
		return 0, raw
	}
	effective := raw
	if stat.IsFlat() {
		effective = raw * global.Factor(stat)
	}
	s := value * coef * effective / 100
	if s < 0 {
		s = 0
	}
	return s, effective
}

// Character scores every equipped artifact of a character. Main stats count at their max
// level value for the artifact's rarity; substats at their actual value.
func Character(char domain.CharacterData, cfg domain.ScoreConfig) CharacterResult {
	weights := cfg.Weights(char.Key)
	res := CharacterResult{
		SlotMainScores: make(map[domain.Slot]float64, len(domain.Slots)),
		SlotSubScores:  make(map[domain.Slot]float64, len(domain.Slots)),
		StatScores:     make(map[domain.Stat]StatBreakdown, len(potentialStats)),
	}
	for _, stat := range potentialStats {
		_, w := Attribute(stat, 0, weights, cfg.Global)
		res.StatScores[stat] = StatBreakdown{Weight: w}
	}

	equipped := 0
	for _, slot := range domain.Slots {
		a := char.Artifacts[slot]
		if a == nil {
			res.SlotMainScores[slot] = 0
			res.SlotSubScores[slot] = 0
			continue
		}
		equipped++

		mainVal := MainStatValue(a.MainStat, a.Rarity)
		s, w := Attribute(a.MainStat, mainVal, weights, cfg.Global)
		b := res.StatScores[a.MainStat]
		b.MainValue += mainVal
		b.MainScore += s
		b.Weight = w
		res.StatScores[a.MainStat] = b
		res.SlotMainScores[slot] = s
		res.MainScore += s

		slotSub := 0.0
		for _, sub := range a.Substats {
			s, w := Attribute(sub.Stat, sub.Value, weights, cfg.Global)
			b := res.StatScores[sub.Stat]
			b.SubValue += sub.Value
			b.SubScore += s
			b.Weight = w
			res.StatScores[sub.Stat] = b
			slotSub += s
		}
		res.SlotSubScores[slot] = slotSub
		res.SubScore += slotSub
	}
	res.IsComplete = equipped == len(domain.Slots)
	return res
}
