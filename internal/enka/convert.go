package enka

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/catalog"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/good"
	"github.com/rs/zerolog/log"
)

// Lookup resolves Enka numeric ids; *catalog.Catalog implements it.
type Lookup interface {
	CharacterByEnkaID(id int) (catalog.CharacterEntry, bool)
	SetByEnkaID(id string) (catalog.SetEntry, bool)
	WeaponByEnkaID(id int) (catalog.WeaponEntry, bool)
}

var slotByEquipType = map[string]string{
	"EQUIP_BRACER":   "flower",
	"EQUIP_NECKLACE": "plume",
	"EQUIP_SHOES":    "sands",
	"EQUIP_RING":     "goblet",
	"EQUIP_DRESS":    "circlet",
}

var goodKeyByFightProp = map[string]string{
	"FIGHT_PROP_HP":                "hp",
	"FIGHT_PROP_HP_PERCENT":        "hp_",
	"FIGHT_PROP_ATTACK":            "atk",
	"FIGHT_PROP_ATTACK_PERCENT":    "atk_",
	"FIGHT_PROP_DEFENSE":           "def",
	"FIGHT_PROP_DEFENSE_PERCENT":   "def_",
	"FIGHT_PROP_CHARGE_EFFICIENCY": "enerRech_",
	"FIGHT_PROP_ELEMENT_MASTERY":   "eleMas",
	"FIGHT_PROP_CRITICAL":          "critRate_",
	"FIGHT_PROP_CRITICAL_HURT":     "critDMG_",
	"FIGHT_PROP_HEAL_ADD":          "heal_",
	"FIGHT_PROP_FIRE_ADD_HURT":     "pyro_dmg_",
	"FIGHT_PROP_ELEC_ADD_HURT":     "electro_dmg_",
	"FIGHT_PROP_ICE_ADD_HURT":      "cryo_dmg_",
	"FIGHT_PROP_WATER_ADD_HURT":    "hydro_dmg_",
	"FIGHT_PROP_WIND_ADD_HURT":     "anemo_dmg_",
	"FIGHT_PROP_ROCK_ADD_HURT":     "geo_dmg_",
	"FIGHT_PROP_GRASS_ADD_HURT":    "dendro_dmg_",
	"FIGHT_PROP_PHYSICAL_ADD_HURT": "physical_dmg_",
}

var relicIconRe = regexp.MustCompile(`RelicIcon_(\d+)_`)

// GOODVersion is the GOOD schema version emitted for Enka imports.
const GOODVersion = 3

// ToGOOD converts a showcase into a GOOD document. Every item is located on its wearer.
// Unknown ids are reported once each as warnings with key "ID:<id>".
func ToGOOD(resp *UIDResponse, lk Lookup) (good.Data, []good.Warning) {
	out := good.Data{Format: good.Format, Version: GOODVersion, Source: "enka",
		Characters: []good.Character{}, Weapons: []good.Weapon{}, Artifacts: []good.Artifact{}}
	var warns []good.Warning
	seen := map[string]bool{}
	warn := func(kind good.WarningKind, id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		warns = append(warns, good.Warning{Kind: kind, Key: "ID:" + id})
		log.Warn().Str("kind", string(kind)).Str("id", id).Msg("Enka id not in catalog")
	}
	if resp == nil {
		return out, nil
	}

	for _, a := range resp.AvatarInfoList {
		entry, ok := lk.CharacterByEnkaID(a.AvatarID)
		if !ok {
			warn(good.WarnCharacter, strconv.Itoa(a.AvatarID))
			continue
		}
		charKey := pascalKey(entry.Name, entry.ID)
		out.Characters = append(out.Characters, good.Character{
			Key:           charKey,
			Level:         max(propInt(a.PropMap, "4001"), 1),
			Constellation: len(a.TalentIDList),
			Ascension:     propInt(a.PropMap, "1002"),
			Talent:        talents(a.SkillLevelMap),
		})

		for _, eq := range a.EquipList {
			switch eq.Flat.ItemType {
			case ItemWeapon:
				w, ok := lk.WeaponByEnkaID(eq.ItemID)
				if !ok {
					warn(good.WarnWeapon, strconv.Itoa(eq.ItemID))
					continue
				}
				if eq.Weapon == nil {
					continue
				}
				out.Weapons = append(out.Weapons, good.Weapon{
					Key:        pascalKey(w.Name, w.ID),
					Level:      eq.Weapon.Level,
					Ascension:  eq.Weapon.PromoteLevel,
					Refinement: refinement(eq.Weapon.AffixMap),
					Location:   charKey,
				})
			case ItemReliquary:
				if eq.Reliquary == nil {
					continue
				}
				setID := relicSetID(eq.Flat)
				if setID == "" {
					continue
				}
				set, ok := lk.SetByEnkaID(setID)
				if !ok {
					warn(good.WarnArtifact, setID)
					continue
				}
				art, ok := convertRelic(eq, pascalKey(set.Name, set.ID), charKey)
				if !ok {
					continue
				}
				out.Artifacts = append(out.Artifacts, art)
			}
		}
	}
	return out, warns
}

func convertRelic(eq EquipItem, setKey, location string) (good.Artifact, bool) {
	slot, ok := slotByEquipType[eq.Flat.EquipType]
	if !ok || eq.Flat.ReliquaryMainstat == nil {
		return good.Artifact{}, false
	}
	main, ok := goodKeyByFightProp[eq.Flat.ReliquaryMainstat.MainPropID]
	if !ok {
		return good.Artifact{}, false
	}
	subs := make([]good.Substat, 0, len(eq.Flat.ReliquarySubstats))
	for _, s := range eq.Flat.ReliquarySubstats {
		if key, ok := goodKeyByFightProp[s.AppendPropID]; ok {
			subs = append(subs, good.Substat{Key: key, Value: s.StatValue})
		}
	}
	return good.Artifact{
		SetKey:      setKey,
		SlotKey:     slot,
		Level:       max(eq.Reliquary.Level-1, 0),
		Rarity:      eq.Flat.RankLevel,
		MainStatKey: main,
		Location:    location,
		Substats:    subs,
	}, true
}

func relicSetID(f EquipFlat) string {
	for _, icon := range []string{f.Icon, f.SetAndKindIcon} {
		if m := relicIconRe.FindStringSubmatch(icon); m != nil {
			return m[1]
		}
	}
	return ""
}

func propInt(m map[string]PropMapItem, key string) int {
	item, ok := m[key]
	if !ok {
		return 0
	}
	v := item.Ival
	if v == "" {
		v = item.Val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// talents reads skill levels in ascending skill id order (normal attack, skill, burst).
func talents(levels map[string]int) *good.Talent {
	ids := make([]int, 0, len(levels))
	for k := range levels {
		if id, err := strconv.Atoi(k); err == nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	lv := [3]int{1, 1, 1}
	for i := 0; i < len(ids) && i < 3; i++ {
		if v := levels[strconv.Itoa(ids[i])]; v > 0 {
			lv[i] = v
		}
	}
	return &good.Talent{Auto: lv[0], Skill: lv[1], Burst: lv[2]}
}

// refinement is the first affix level plus one; enka reports R1 as 0.
func refinement(affix map[string]int) int {
	keys := make([]string, 0, len(affix))
	for k := range affix {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return 1
	}
	slices.Sort(keys)
	return affix[keys[0]] + 1
}

// pascalKey turns a display name into a GOOD style key ("Hu Tao" -> "HuTao").
func pascalKey(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	return nonAlnum.ReplaceAllString(name, "")
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
