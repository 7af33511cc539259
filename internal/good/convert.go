package good

import (
	"fmt"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/catalog"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/rs/zerolog/log"
)

var statByKey = map[string]domain.Stat{
	"hp":            domain.StatHP,
	"hp_":           domain.StatHPP,
	"atk":           domain.StatATK,
	"atk_":          domain.StatATKP,
	"def":           domain.StatDEF,
	"def_":          domain.StatDEFP,
	"eleMas":        domain.StatEM,
	"enerRech_":     domain.StatER,
	"heal_":         domain.StatHealP,
	"critRate_":     domain.StatCR,
	"critDMG_":      domain.StatCD,
	"physical_dmg_": domain.StatPhysP,
	"anemo_dmg_":    domain.StatAnemoP,
	"geo_dmg_":      domain.StatGeoP,
	"electro_dmg_":  domain.StatElectroP,
	"hydro_dmg_":    domain.StatHydroP,
	"pyro_dmg_":     domain.StatPyroP,
	"cryo_dmg_":     domain.StatCryoP,
	"dendro_dmg_":   domain.StatDendroP,
}

var keyByStat = func() map[domain.Stat]string {
	m := make(map[domain.Stat]string, len(statByKey))
	for k, s := range statByKey {
		m[s] = k
	}
	return m
}()

// StatFromKey maps a GOOD stat key ("critRate_") to a stat.
func StatFromKey(key string) (domain.Stat, bool) {
	s, ok := statByKey[key]
	return s, ok
}

// KeyFromStat is the inverse of StatFromKey.
func KeyFromStat(s domain.Stat) (string, bool) {
	k, ok := keyByStat[s]
	return k, ok
}

// Resolver maps export names to catalog ids.
type Resolver interface {
	CharacterID(name string) (string, bool)
	SetID(name string) (string, bool)
	WeaponID(name string) (string, bool)
}

type WarningKind string

const (
	WarnCharacter WarningKind = "character"
	WarnWeapon    WarningKind = "weapon"
	WarnArtifact  WarningKind = "artifact"
	WarnInvalid   WarningKind = "invalid"
)

// Warning reports an entry the conversion dropped. Each kind/key pair is reported once.
type Warning struct {
	Kind WarningKind
	Key  string
}

func (w Warning) String() string { return fmt.Sprintf("%s not found: %s", w.Kind, w.Key) }

// Entries that are skipped without a warning, compared after catalog.Normalize.
var (
	skipCharacters = map[string]bool{"manekina": true, "manekin": true}
	skipSets       = map[string]bool{
		"adventurer": true, "braveheart": true, "luckydog": true, "travelingdoctor": true,
		"resolutionofsojourner": true, "tinymiracle": true, "berserker": true, "theexile": true,
		"defenderswill": true, "martialartist": true, "gambler": true, "scholar": true,
	}
)

// travelerKey resolves the element-less GOOD key; exports do not record the element.
func travelerKey(key string) string {
	if key == "Traveler" {
		return "Traveler (Anemo)"
	}
	return key
}

type warnings struct {
	seen map[Warning]bool
	list []Warning
}

func (w *warnings) add(kind WarningKind, key string) {
	wr := Warning{Kind: kind, Key: key}
	if w.seen[wr] {
		return
	}
	if w.seen == nil {
		w.seen = map[Warning]bool{}
	}
	w.seen[wr] = true
	w.list = append(w.list, wr)
	log.Warn().Str("kind", string(kind)).Str("key", key).Msg("GOOD entry skipped")
}

// Convert builds account data from a GOOD document. Items are placed on the character named by
// their location, or kept as extras. Ids are artifact-N and weapon-N by position in the export.
func Convert(d Data, r Resolver) (domain.AccountData, []Warning) {
	var warn warnings
	var chars []domain.CharacterData
	charIndex := map[string]int{}

	for _, c := range d.Characters {
		key := travelerKey(c.Key)
		if skipCharacters[catalog.Normalize(key)] {
			continue
		}
		id, ok := r.CharacterID(key)
		if !ok {
			warn.add(WarnCharacter, c.Key)
			continue
		}
		cd := domain.CharacterData{
			Key:           id,
			Constellation: c.Constellation,
			Level:         max(c.Level, 1),
			Talent:        domain.Talent{Auto: 1, Skill: 1, Burst: 1},
			Artifacts:     map[domain.Slot]*domain.Artifact{},
		}
		if c.Talent != nil {
			cd.Talent = domain.Talent{Auto: c.Talent.Auto, Skill: c.Talent.Skill, Burst: c.Talent.Burst}
		}
		if i, dup := charIndex[id]; dup {
			chars[i] = cd
			continue
		}
		charIndex[id] = len(chars)
		chars = append(chars, cd)
	}

	owner := func(location string) (int, bool) {
		if location == "" {
			return 0, false
		}
		id, ok := r.CharacterID(travelerKey(location))
		if !ok {
			return 0, false
		}
		i, ok := charIndex[id]
		return i, ok
	}

	var extraWeapons []domain.WeaponData
	for i, w := range d.Weapons {
		id, ok := r.WeaponID(w.Key)
		if !ok {
			warn.add(WarnWeapon, w.Key)
			continue
		}
		wd := domain.WeaponData{
			ID:         fmt.Sprintf("weapon-%d", i),
			Key:        id,
			Level:      w.Level,
			Refinement: w.Refinement,
			Lock:       w.Lock,
		}
		if ci, ok := owner(w.Location); ok && chars[ci].Weapon == nil {
			chars[ci].Weapon = &wd
			continue
		}
		extraWeapons = append(extraWeapons, wd)
	}

	var extraArtifacts []domain.Artifact
	for i, a := range d.Artifacts {
		if skipSets[catalog.Normalize(a.SetKey)] {
			continue
		}
		setID, ok := r.SetID(a.SetKey)
		if !ok {
			warn.add(WarnArtifact, a.SetKey)
			continue
		}
		art, err := convertArtifact(fmt.Sprintf("artifact-%d", i), setID, a)
		if err != nil {
			log.Debug().Err(err).Msg("GOOD artifact rejected")
			warn.add(WarnInvalid, err.Error())
			continue
		}
		if ci, ok := owner(a.Location); ok && chars[ci].Artifacts[art.Slot] == nil {
			chars[ci].Artifacts[art.Slot] = &art
			continue
		}
		extraArtifacts = append(extraArtifacts, art)
	}

	return domain.AccountData{
		Characters:     chars,
		ExtraArtifacts: extraArtifacts,
		ExtraWeapons:   extraWeapons,
	}, warn.list
}

func convertArtifact(id, setID string, a Artifact) (domain.Artifact, error) {
	slot, ok := domain.ParseSlot(a.SlotKey)
	if !ok {
		return domain.Artifact{}, fmt.Errorf("%s: unknown slot %q", id, a.SlotKey)
	}
	main, ok := StatFromKey(a.MainStatKey)
	if !ok {
		return domain.Artifact{}, fmt.Errorf("%s: unknown main stat %q", id, a.MainStatKey)
	}
	art := domain.Artifact{
		ID:         id,
		SetKey:     setID,
		Slot:       slot,
		Rarity:     a.Rarity,
		Level:      a.Level,
		MainStat:   main,
		Lock:       a.Lock,
		Substats:   convertSubstats(a.Substats),
		TotalRolls: a.TotalRolls,
	}
	if u := convertSubstats(a.UnactivatedSubstats); len(u) > 0 {
		art.Unactivated = u
	}
	if err := art.Validate(); err != nil {
		return domain.Artifact{}, err
	}
	return art, nil
}

// convertSubstats drops unknown and empty keys; GOOD pads missing lines with key "".
func convertSubstats(in []Substat) []domain.Substat {
	out := make([]domain.Substat, 0, len(in))
	for _, s := range in {
		stat, ok := StatFromKey(s.Key)
		if !ok {
			continue
		}
		out = append(out, domain.Substat{Stat: stat, Value: s.Value})
	}
	return out
}
