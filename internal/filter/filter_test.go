package filter

import (
	"testing"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []domain.Character {
	return []domain.Character{
		{ID: "hutao", Rarity: 5, Element: domain.ElementPyro, WeaponType: domain.WeaponPolearm, Region: "Liyue", ReleaseDate: "2021-03-02"},
		{ID: "xingqiu", Rarity: 4, Element: domain.ElementHydro, WeaponType: domain.WeaponSword, Region: "Liyue", ReleaseDate: "2020-09-28"},
		{ID: "bennett", Rarity: 4, Element: domain.ElementPyro, WeaponType: domain.WeaponSword, Region: "Mondstadt", ReleaseDate: "2020-09-28"},
		{ID: "furina", Rarity: 5, Element: domain.ElementHydro, WeaponType: domain.WeaponSword, Region: "Fontaine", ReleaseDate: "2023-11-08"},
	}
}

func ids(cs []domain.Character) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func offFilters() CharacterFilters {
	f := DefaultCharacterFilters()
	f.ReleaseSort = domain.SortOff
	return f
}

func TestCharacters_ElementFilter(t *testing.T) {
	items := []domain.Character{{ID: "a", Element: domain.ElementPyro}, {ID: "b", Element: domain.ElementHydro}}
	f := offFilters()
	f.Elements = []domain.Element{domain.ElementPyro}

	got := Characters(items, f, nil, nil)

	assert.Equal(t, []string{"a"}, ids(got))
}

func TestCharacters_EmptyFilterKeepsOrder(t *testing.T) {
	got := Characters(roster(), offFilters(), nil, nil)

	assert.Equal(t, []string{"hutao", "xingqiu", "bennett", "furina"}, ids(got))
	assert.False(t, HasActiveFilters(offFilters()))
}

func TestCharacters_AndAcrossOrWithin(t *testing.T) {
	f := offFilters()
	f.Elements = []domain.Element{domain.ElementPyro, domain.ElementHydro}
	f.WeaponTypes = []domain.WeaponType{domain.WeaponSword}
	f.Rarities = []int{4}

	got := Characters(roster(), f, nil, nil)

	assert.Equal(t, []string{"xingqiu", "bennett"}, ids(got))
	assert.True(t, HasActiveFilters(f))
}

func TestCharacters_ResultIsNewSlice(t *testing.T) {
	items := roster()
	got := Characters(items, offFilters(), nil, nil)
	got[0].ID = "changed"

	assert.Equal(t, "hutao", items[0].ID)
}

func TestCharacters_ReleaseSortIsStable(t *testing.T) {
	f := DefaultCharacterFilters()

	desc := Characters(roster(), f, nil, nil)
	assert.Equal(t, []string{"furina", "hutao", "xingqiu", "bennett"}, ids(desc))

	f.ReleaseSort = domain.SortAsc
	asc := Characters(roster(), f, nil, nil)
	assert.Equal(t, []string{"xingqiu", "bennett", "hutao", "furina"}, ids(asc))
}

func TestCharacters_TierSortBeforeRelease(t *testing.T) {
	tiers := domain.TierAssignment{
		"bennett": {Tier: "S"},
		"xingqiu": {Tier: "S"},
		"hutao":   {Tier: "A"},
	}
	f := DefaultCharacterFilters()
	f.TierSort = domain.SortDesc

	got := Characters(roster(), f, tiers, domain.Tiers)

	// same tier and release date keep input order; untiered last
	assert.Equal(t, []string{"xingqiu", "bennett", "hutao", "furina"}, ids(got))

	f.TierSort = domain.SortAsc
	got = Characters(roster(), f, tiers, domain.Tiers)
	assert.Equal(t, []string{"furina", "hutao", "xingqiu", "bennett"}, ids(got))
}

func TestCharacters_TierOutsideOrderRanksWithUntiered(t *testing.T) {
	tiers := domain.TierAssignment{
		"bennett": {Tier: "S"},
		"hutao":   {Tier: "B"},
	}
	f := DefaultCharacterFilters()
	f.TierSort = domain.SortDesc

	got := Characters(roster(), f, tiers, []domain.Tier{"S", "A"})

	assert.Equal(t, []string{"bennett", "furina", "hutao", "xingqiu"}, ids(got))
}

func TestCharacters_TierSortWithoutDataFallsBackToRelease(t *testing.T) {
	f := DefaultCharacterFilters()
	f.TierSort = domain.SortDesc

	got := Characters(roster(), f, nil, nil)

	assert.Equal(t, "furina", got[0].ID)
}

func inventory() []domain.Artifact {
	return []domain.Artifact{
		{ID: "a1", SetKey: "crimson_witch", Slot: domain.SlotGoblet, Rarity: 5, Level: 20, MainStat: domain.StatPyroP, Lock: true,
			Substats: []domain.Substat{{Stat: domain.StatCR, Value: 7.8}, {Stat: domain.StatCD, Value: 14}}},
		{ID: "a2", SetKey: "crimson_witch", Slot: domain.SlotGoblet, Rarity: 4, Level: 8, MainStat: domain.StatHydroP,
			Substats: []domain.Substat{{Stat: domain.StatCR, Value: 3.1}}},
		{ID: "a3", SetKey: "emblem", Slot: domain.SlotSands, Rarity: 5, Level: 0, MainStat: domain.StatER,
			Substats: []domain.Substat{{Stat: domain.StatCD, Value: 7.8}}},
		{ID: "a4", SetKey: "emblem", Slot: domain.SlotGoblet, Rarity: 5, Level: 12, MainStat: domain.StatATKP,
			Substats: []domain.Substat{{Stat: domain.StatCR, Value: 3.9}, {Stat: domain.StatCD, Value: 7.8}}},
	}
}

func artIDs(as []domain.Artifact) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func TestArtifacts_EmptyQueryReturnsAll(t *testing.T) {
	got := Artifacts(inventory(), ArtifactQuery{}, nil)

	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, artIDs(got))
}

func TestArtifacts_CombinedPredicates(t *testing.T) {
	locked := false
	maxLevel := 16
	q := ArtifactQuery{
		Slots:            []domain.Slot{domain.SlotGoblet},
		RequiredSubstats: []domain.Stat{domain.StatCR, domain.StatCD},
		Locked:           &locked,
		MaxLevel:         &maxLevel,
	}

	got := Artifacts(inventory(), q, nil)

	assert.Equal(t, []string{"a4"}, artIDs(got))
}

func TestArtifacts_ElementalMainStat(t *testing.T) {
	q := ArtifactQuery{MainStats: []domain.Stat{domain.StatPyroP}}
	assert.Equal(t, []string{"a1"}, artIDs(Artifacts(inventory(), q, nil)))

	q.ExpandElementalGoblet = true
	assert.Equal(t, []string{"a1", "a2"}, artIDs(Artifacts(inventory(), q, nil)))

	q = ArtifactQuery{MainStats: []domain.Stat{domain.StatElementalP}}
	assert.Equal(t, []string{"a1", "a2"}, artIDs(Artifacts(inventory(), q, nil)))
}

func TestArtifacts_Predicate(t *testing.T) {
	q := ArtifactQuery{
		Sets:      []string{"emblem"},
		Predicate: func(a domain.Artifact) bool { return a.Level >= 12 },
	}

	assert.Equal(t, []string{"a4"}, artIDs(Artifacts(inventory(), q, nil)))
}

func TestArtifacts_SortByLevelAndRarity(t *testing.T) {
	q := ArtifactQuery{SortField: SortLevel, SortDir: domain.SortDesc}
	assert.Equal(t, []string{"a1", "a4", "a2", "a3"}, artIDs(Artifacts(inventory(), q, nil)))

	q = ArtifactQuery{SortField: SortRarity, SortDir: domain.SortAsc}
	assert.Equal(t, []string{"a2", "a1", "a3", "a4"}, artIDs(Artifacts(inventory(), q, nil)))

	q.SortDir = domain.SortOff
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, artIDs(Artifacts(inventory(), q, nil)))
}

func TestArtifacts_SortByScore(t *testing.T) {
	critValue := func(a domain.Artifact) float64 {
		return 2*a.SubstatValue(domain.StatCR) + a.SubstatValue(domain.StatCD)
	}
	q := ArtifactQuery{SortField: SortScore, SortDir: domain.SortDesc}

	got := Artifacts(inventory(), q, critValue)
	assert.Equal(t, []string{"a1", "a4", "a3", "a2"}, artIDs(got))

	got = Artifacts(inventory(), q, nil)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, artIDs(got))
}

func TestParseArtifactSortField(t *testing.T) {
	f, err := ParseArtifactSortField(" Score ")
	require.NoError(t, err)
	assert.Equal(t, SortScore, f)

	f, err = ParseArtifactSortField("none")
	require.NoError(t, err)
	assert.Equal(t, SortNone, f)

	_, err = ParseArtifactSortField("set")
	assert.Error(t, err)
}
