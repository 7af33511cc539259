package domain

import (
	"fmt"
	"maps"
	"slices"
)

// WeightMap maps a stat to a non-negative weight.
type WeightMap map[Stat]float64

// GlobalWeights scale flat ATK/HP/DEF for every character. Values are percentages.
type GlobalWeights struct {
	FlatAtk float64 `yaml:"flat_atk"`
	FlatHP  float64 `yaml:"flat_hp"`
	FlatDef float64 `yaml:"flat_def"`
}

// Factor returns the global multiplier for a flat stat, 1 for every other stat.
func (g GlobalWeights) Factor(stat Stat) float64 {
	switch stat {
	case StatATK:
		return g.FlatAtk / 100
	case StatHP:
		return g.FlatHP / 100
	case StatDEF:
		return g.FlatDef / 100
	}
	return 1
}

func DefaultGlobalWeights() GlobalWeights {
	return GlobalWeights{FlatAtk: 30, FlatHP: 30, FlatDef: 30}
}

type ScoreConfig struct {
	Global     GlobalWeights        `yaml:"global"`
	Characters map[string]WeightMap `yaml:"characters"`
}

// Weights returns the character's weight map, empty when not configured.
func (c ScoreConfig) Weights(charKey string) WeightMap {
	if w, ok := c.Characters[charKey]; ok {
		return w
	}
	return WeightMap{}
}

func (c ScoreConfig) Clone() ScoreConfig {
	out := ScoreConfig{Global: c.Global, Characters: make(map[string]WeightMap, len(c.Characters))}
	for k, w := range c.Characters {
		out.Characters[k] = maps.Clone(w)
	}
	return out
}

func (c ScoreConfig) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"flat_atk", c.Global.FlatAtk}, {"flat_hp", c.Global.FlatHP}, {"flat_def", c.Global.FlatDef}} {
		if v.val < 0 {
			return fmt.Errorf("global.%s: negative weight %v", v.name, v.val)
		}
	}
	keys := slices.Sorted(maps.Keys(c.Characters))
	for _, k := range keys {
		if err := c.Characters[k].Validate(); err != nil {
			return fmt.Errorf("characters.%s: %w", k, err)
		}
	}
	return nil
}

func (w WeightMap) Validate() error {
	for stat, v := range w {
		if v < 0 {
			return fmt.Errorf("%s: negative weight %v", stat, v)
		}
		if stat.IsPseudo() || !stat.Valid() {
			return fmt.Errorf("%s: not a weightable stat", stat)
		}
	}
	return nil
}

// Weight returns the weight for a stat; negative values are treated as 0.
func (w WeightMap) Weight(stat Stat) float64 {
	v := w[stat]
	if v < 0 {
		return 0
	}
	return v
}

// Set updates one global weight by its config key (flat_atk, flat_hp, flat_def).
func (g *GlobalWeights) Set(key string, value float64) error {
	if value < 0 {
		return fmt.Errorf("global.%s: negative weight %v", key, value)
	}
	switch key {
	case "flat_atk":
		g.FlatAtk = value
	case "flat_hp":
		g.FlatHP = value
	case "flat_def":
		g.FlatDef = value
	default:
		return fmt.Errorf("unknown global weight %q (supported: flat_atk, flat_hp, flat_def)", key)
	}
	return nil
}
