package domain

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Slot string

const (
	SlotFlower  Slot = "flower"
	SlotPlume   Slot = "plume"
	SlotSands   Slot = "sands"
	SlotGoblet  Slot = "goblet"
	SlotCirclet Slot = "circlet"
)

var Slots = []Slot{SlotFlower, SlotPlume, SlotSands, SlotGoblet, SlotCirclet}

// MainStatSlots are the slots with a choice of main stat.
var MainStatSlots = []Slot{SlotSands, SlotGoblet, SlotCirclet}

func ParseSlot(s string) (Slot, bool) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Slots, slot) {
		return "", false
	}
	return slot, true
}

func (s *Slot) UnmarshalYAML(value *yaml.Node) error {
	slot, ok := ParseSlot(value.Value)
	if !ok {
		return fmt.Errorf("unknown slot %q (line %d)", value.Value, value.Line)
	}
	*s = slot
	return nil
}

// MainStatPool returns the main stats that can drop in a slot.
func MainStatPool(slot Slot) []Stat {
	switch slot {
	case SlotFlower:
		return []Stat{StatHP}
	case SlotPlume:
		return []Stat{StatATK}
	case SlotSands:
		return []Stat{StatATKP, StatHPP, StatDEFP, StatEM, StatER}
	case SlotGoblet:
		return []Stat{StatATKP, StatHPP, StatDEFP, StatEM,
			StatPyroP, StatHydroP, StatAnemoP, StatElectroP, StatDendroP, StatCryoP, StatGeoP, StatPhysP}
	case SlotCirclet:
		return []Stat{StatCR, StatCD, StatATKP, StatHPP, StatDEFP, StatEM, StatHealP}
	}
	return nil
}

// MainStatDropWeights are the relative drop rates of main stats per slot.
var MainStatDropWeights = map[Slot]map[Stat]float64{
	SlotSands: {StatATKP: 26.66, StatHPP: 26.66, StatDEFP: 26.66, StatEM: 10, StatER: 10},
	SlotGoblet: {
		StatATKP: 21.25, StatHPP: 21.25, StatDEFP: 20, StatEM: 2.5,
		StatPyroP: 5, StatHydroP: 5, StatAnemoP: 5, StatElectroP: 5,
		StatDendroP: 5, StatCryoP: 5, StatGeoP: 5, StatPhysP: 5,
	},
	SlotCirclet: {StatCR: 10, StatCD: 10, StatATKP: 22, StatHPP: 22, StatDEFP: 22, StatEM: 4, StatHealP: 10},
}

// SubstatDropWeights are the relative rates of each substat being drawn.
var SubstatDropWeights = map[Stat]float64{
	StatCR: 7.5, StatCD: 7.5,
	StatATKP: 10, StatHPP: 10, StatDEFP: 10, StatEM: 10, StatER: 10,
	StatATK: 15, StatHP: 15, StatDEF: 15,
}
