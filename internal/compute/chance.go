package compute

import (
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

const substatDraws = 4

// SlotChances holds the drop pass rate of each filter slot of a configuration.
type SlotChances struct {
	FlowerPlume float64 `yaml:"flower_plume"`
	Sands       float64 `yaml:"sands"`
	Goblet      float64 `yaml:"goblet"`
	Circlet     float64 `yaml:"circlet"`
}

func (c SlotChances) Of(kind domain.SlotKind) float64 {
	switch kind {
	case domain.KindFlowerPlume:
		return c.FlowerPlume
	case domain.KindSands:
		return c.Sands
	case domain.KindGoblet:
		return c.Goblet
	case domain.KindCirclet:
		return c.Circlet
	}
	return 0
}

func Chances(cfg domain.SetConfig) SlotChances {
	return SlotChances{
		FlowerPlume: SlotChance(domain.KindFlowerPlume, cfg.FlowerPlume),
		Sands:       SlotChance(domain.KindSands, cfg.Sands),
		Goblet:      SlotChance(domain.KindGoblet, cfg.Goblet),
		Circlet:     SlotChance(domain.KindCirclet, cfg.Circlet),
	}
}

// SlotChance is the probability that a fresh artifact of the slot, with four substats drawn
// by weight without replacement, passes the slot config. Flower and plume are averaged.
func SlotChance(kind domain.SlotKind, cfg domain.SlotConfig) float64 {
	if cfg.MinStatCount <= 0 && len(cfg.MustPresent) == 0 {
		return 1
	}
	if kind == domain.KindFlowerPlume {
		return (substatPassChance(domain.StatHP, cfg) + substatPassChance(domain.StatATK, cfg)) / 2
	}

	pool := domain.MainStatDropWeights[domain.Slot(kind)]
	total := 0.0
	for _, w := range pool {
		total += w
	}
	if total <= 0 {
		return 0
	}

	p := 0.0
	for _, main := range mainStatChoices(cfg.MainStats, pool) {
		p += pool[main] / total * substatPassChance(main, cfg)
	}
	return p
}

// mainStatChoices resolves pseudo stats and drops stats the slot cannot roll. An empty list
// allows every main stat of the pool; a list with no droppable stat allows none.
func mainStatChoices(mainStats []domain.Stat, pool map[domain.Stat]float64) []domain.Stat {
	var out []domain.Stat
	add := func(s domain.Stat) {
		if pool[s] > 0 && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	if len(mainStats) == 0 {
		for _, s := range domain.MainStatOrder {
			add(s)
		}
		return out
	}
	for _, s := range mainStats {
		switch s {
		case domain.StatElementalP:
			for _, e := range domain.ElementalDMGStats {
				add(e)
			}
		case domain.StatCritAny:
			add(domain.StatCR)
			add(domain.StatCD)
		default:
			add(s)
		}
	}
	return out
}

func substatPassChance(main domain.Stat, cfg domain.SlotConfig) float64 {
	var pool []domain.Stat
	var weights []float64
	total := 0.0
	for _, s := range domain.SubstatPool {
		if s == main {
			continue
		}
		pool = append(pool, s)
		weights = append(weights, domain.SubstatDropWeights[s])
		total += domain.SubstatDropWeights[s]
	}
	if len(pool) < substatDraws || total <= 0 {
		return 0
	}

	// must-present stats covered by the main stat need not be drawn
	var must []domain.Stat
	for _, s := range orderedUnion(cfg.MustPresent, nil) {
		if s == main {
			continue
		}
		if !slices.Contains(pool, s) {
			return 0
		}
		must = append(must, s)
	}
	if len(must) > substatDraws {
		return 0
	}

	d := newDrawTable(weights, total)
	p := 0.0
	combinations(len(pool), substatDraws, func(idx []int) {
		drawn := make([]domain.Stat, len(idx))
		mask := 0
		for i, j := range idx {
			drawn[i] = pool[j]
			mask |= 1 << j
		}
		for _, s := range must {
			if !slices.Contains(drawn, s) {
				return
			}
		}
		if !slotMatches(drawn, main, cfg) {
			return
		}
		p += d.prob(mask)
	})
	return p
}

// slotMatches counts the main stat as present when it is a substat kind.
func slotMatches(drawn []domain.Stat, main domain.Stat, cfg domain.SlotConfig) bool {
	has := func(s domain.Stat) bool {
		return slices.Contains(drawn, s) || (s == main && main.IsSubstat())
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

// drawTable memoises the probability that weighted draws without replacement produce exactly
// the set in mask, in any order.
type drawTable struct {
	weights []float64
	total   float64
	memo    []float64
	known   []bool
}

func newDrawTable(weights []float64, total float64) *drawTable {
	n := 1 << len(weights)
	d := &drawTable{weights: weights, total: total, memo: make([]float64, n), known: make([]bool, n)}
	d.memo[0], d.known[0] = 1, true
	return d
}

func (d *drawTable) prob(mask int) float64 {
	if d.known[mask] {
		return d.memo[mask]
	}
	sum := 0.0
	for i, w := range d.weights {
		if mask&(1<<i) != 0 {
			sum += w
		}
	}
	p := 0.0
	for i, w := range d.weights {
		if mask&(1<<i) == 0 {
			continue
		}
		// i is the last draw: the others were drawn first, leaving total-(sum-w) in the pool.
		denom := d.total - (sum - w)
		if denom <= 0 {
			continue
		}
		p += w / denom * d.prob(mask&^(1<<i))
	}
	d.memo[mask], d.known[mask] = p, true
	return p
}

// combinations calls fn with every k-subset of [0,n) in lexicographic order. idx is reused.
func combinations(n, k int, fn func(idx []int)) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
