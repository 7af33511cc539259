package compute

import (
	"testing"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotCfg(main, subs, must []domain.Stat, k int) domain.SlotConfig {
	return domain.SlotConfig{MainStats: main, Substats: subs, MustPresent: must, MinStatCount: k}
}

// uniform builds a config with the same substat rule on every slot.
func uniform(character string, subs, must []domain.Stat, k int) domain.SetConfig {
	return domain.SetConfig{
		FlowerPlume: slotCfg(nil, subs, must, k),
		Sands:       slotCfg(stats("atk%"), subs, must, k),
		Goblet:      slotCfg(stats("anemo%"), subs, must, k),
		Circlet:     slotCfg(stats("cr"), subs, must, k),
		ServedCharacters: []domain.CharacterMergeInfo{
			{CharacterID: character, HasPerfectMerge: true, Has4pcBuild: true},
		},
	}
}

var allOn = MergeOptions{PickOne: true, PromoteRigid: true}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, allOn))
}

func TestMerge_SingleUnchanged(t *testing.T) {
	in := uniform("kazuha", stats("cr", "cd", "atk%", "er"), stats("cr", "cd"), 4)

	got := Merge([]domain.SetConfig{in}, allOn)

	require.Len(t, got, 1)
	assert.Equal(t, "kazuha", got[0].ServedCharacters[0].CharacterID)
}

func TestMerge_IdenticalConfigs(t *testing.T) {
	a := uniform("kazuha", stats("cr", "cd", "atk%", "er"), stats("cr", "cd"), 4)
	b := uniform("venti", stats("er", "atk%", "cd", "cr"), stats("cd", "cr"), 4)
	b.Sands.MainStats = stats("em")

	got := Merge([]domain.SetConfig{a, b}, MergeOptions{})

	require.Len(t, got, 1)
	assert.Len(t, got[0].ServedCharacters, 2)
	assert.Equal(t, stats("atk%", "em"), got[0].Sands.MainStats)
}

func TestMerge_DifferentSubstatsStaySeparate(t *testing.T) {
	a := uniform("kazuha", stats("cr", "cd", "atk%", "er"), stats("cr", "cd"), 4)
	b := uniform("venti", stats("hp%", "def%", "em", "er"), nil, 4)

	assert.Len(t, Merge([]domain.SetConfig{a, b}, allOn), 2)
}

func TestMerge_PickOne(t *testing.T) {
	a := uniform("char1", stats("cr", "cd", "atk%"), stats("cr", "cd"), 3)
	b := uniform("char2", stats("cr", "cd", "er"), stats("cr", "cd"), 3)

	got := Merge([]domain.SetConfig{a, b}, MergeOptions{PickOne: true})

	require.Len(t, got, 1)
	assert.Equal(t, stats("cr", "cd", "atk%", "er"), got[0].FlowerPlume.Substats)
	assert.Equal(t, stats("cr", "cd"), got[0].FlowerPlume.MustPresent)
	assert.Equal(t, 3, got[0].FlowerPlume.MinStatCount)

	assert.Len(t, Merge([]domain.SetConfig{a, b}, MergeOptions{}), 2)
}

func TestMerge_PickOneNeedsSingleFlex(t *testing.T) {
	a := uniform("char1", stats("cr", "cd", "atk%", "er"), stats("cr", "cd"), 4)
	b := uniform("char2", stats("cr", "cd", "er", "em"), stats("cr", "cd"), 4)

	assert.Len(t, Merge([]domain.SetConfig{a, b}, MergeOptions{PickOne: true}), 2)
}

func TestMerge_PromoteRigidPair(t *testing.T) {
	a := uniform("char1", stats("cr", "cd"), stats("cr", "cd"), 2)
	b := uniform("char2", stats("cr", "atk%"), stats("cr", "atk%"), 2)

	got := Merge([]domain.SetConfig{a, b}, MergeOptions{PromoteRigid: true})

	require.Len(t, got, 1)
	assert.Equal(t, stats("cr"), got[0].FlowerPlume.MustPresent)
	assert.Equal(t, stats("cr", "cd", "atk%"), got[0].FlowerPlume.Substats)
	assert.Equal(t, 2, got[0].FlowerPlume.MinStatCount)
}

func TestMerge_PromoteRigidIntoPick(t *testing.T) {
	pick := uniform("char1", stats("er", "atk%", "hp%"), stats("er"), 2)
	rigid := uniform("char2", stats("er", "em"), stats("er", "em"), 2)

	got := Merge([]domain.SetConfig{rigid, pick}, MergeOptions{PromoteRigid: true})

	require.Len(t, got, 1)
	assert.Equal(t, stats("er"), got[0].Sands.MustPresent)
	assert.ElementsMatch(t, stats("er", "em", "atk%", "hp%"), got[0].Sands.Substats)
	assert.Equal(t, domain.StatER, got[0].Sands.Substats[0])
}

func TestMerge_RigidWithoutCommonSubset(t *testing.T) {
	a := uniform("char1", stats("cr", "cd"), stats("cr", "cd"), 2)
	b := uniform("char2", stats("er", "em"), stats("er", "em"), 2)

	assert.Len(t, Merge([]domain.SetConfig{a, b}, allOn), 2)
}

func TestMerge_Metadata(t *testing.T) {
	a := uniform("char1", stats("cr", "cd"), stats("cr", "cd"), 2)
	b := uniform("char1", stats("cr", "cd"), stats("cr", "cd"), 2)
	b.ServedCharacters[0].HasPerfectMerge = false
	b.ServedCharacters[0].Has4pcBuild = false
	a.ServedCharacters[0].Has4pcBuild = false
	b2 := b
	b2.ServedCharacters = []domain.CharacterMergeInfo{{CharacterID: "char1", HasPerfectMerge: true, Has4pcBuild: true}}

	got := Merge([]domain.SetConfig{a, b, b2}, MergeOptions{})

	require.Len(t, got, 1)
	require.Len(t, got[0].ServedCharacters, 1)
	assert.False(t, got[0].ServedCharacters[0].HasPerfectMerge)
	assert.True(t, got[0].ServedCharacters[0].Has4pcBuild)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	a := uniform("char1", stats("cr", "cd", "atk%"), stats("cr", "cd"), 3)
	b := uniform("char2", stats("cr", "cd", "er"), stats("cr", "cd"), 3)

	Merge([]domain.SetConfig{a, b}, allOn)

	assert.Equal(t, stats("cr", "cd", "atk%"), a.FlowerPlume.Substats)
	assert.Len(t, a.ServedCharacters, 1)
}
