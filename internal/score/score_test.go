package score

import (
	"testing"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func critArtifact() domain.Artifact {
	return domain.Artifact{
		ID: "a1", SetKey: "gladiators_finale", Slot: domain.SlotFlower,
		Rarity: 5, Level: 20, MainStat: domain.StatHP,
		Substats: []domain.Substat{
			{Stat: domain.StatCR, Value: 3.9},
			{Stat: domain.StatCD, Value: 7.8},
		},
	}
}

func TestArtifact_WeightedSum(t *testing.T) {
	w := domain.WeightMap{domain.StatCR: 10, domain.StatCD: 5}

	res := Artifact(critArtifact(), w, domain.DefaultGlobalWeights())

	assert.InDelta(t, 78.0, res.Score, 1e-9)
	require.Len(t, res.Contributions, 2)
	assert.InDelta(t, 39.0, res.Contributions[0].Score, 1e-9)
	assert.False(t, res.MainStatWrong)
}

func TestArtifact_FlatStatsUseGlobalFactor(t *testing.T) {
	a := domain.Artifact{
		Slot: domain.SlotSands, Rarity: 5, Level: 20, MainStat: domain.StatATKP,
		Substats: []domain.Substat{{Stat: domain.StatATK, Value: 20}, {Stat: domain.StatHP, Value: 300}},
	}
	w := domain.WeightMap{domain.StatATK: 2, domain.StatHP: 1}
	g := domain.GlobalWeights{FlatAtk: 50, FlatHP: 0, FlatDef: 30}

	res := Artifact(a, w, g)

	assert.InDelta(t, 20.0, res.Score, 1e-9)
	assert.InDelta(t, 1.0, res.Contributions[0].Weight, 1e-9)
	assert.Zero(t, res.Contributions[1].Score)
}

func TestArtifact_UnknownAndMissingStatsContributeZero(t *testing.T) {
	a := critArtifact()
	a.Substats = append(a.Substats, domain.Substat{Stat: domain.StatUnknown, Value: 100})
	w := domain.WeightMap{domain.StatCR: 10}

	res := Artifact(a, w, domain.DefaultGlobalWeights())

	assert.InDelta(t, 39.0, res.Score, 1e-9)
	assert.Zero(t, res.Contributions[2].Score)
}

func TestArtifact_ZeroWeightsScoreZero(t *testing.T) {
	w := domain.WeightMap{}
	for _, s := range domain.SubstatPool {
		w[s] = 0
	}

	res := Artifact(critArtifact(), w, domain.DefaultGlobalWeights())

	assert.Zero(t, res.Score)
	assert.Zero(t, res.MaxScore)
	assert.Zero(t, res.Percent)
}

func TestArtifact_NegativeInputsNeverScoreNegative(t *testing.T) {
	a := critArtifact()
	a.Substats[0].Value = -5
	w := domain.WeightMap{domain.StatCR: 10, domain.StatCD: -3}

	res := Artifact(a, w, domain.DefaultGlobalWeights())

	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.Zero(t, res.Score)
}

func TestArtifact_Deterministic(t *testing.T) {
	w := domain.WeightMap{domain.StatCR: 10, domain.StatCD: 5, domain.StatATKP: 3}
	first := Artifact(critArtifact(), w, domain.DefaultGlobalWeights())
	for range 10 {
		assert.Equal(t, first, Artifact(critArtifact(), w, domain.DefaultGlobalWeights()))
	}
}

func TestArtifact_MainStatWrongFlag(t *testing.T) {
	a := critArtifact()
	a.Slot = domain.SlotGoblet
	a.MainStat = domain.StatCR
	a.Substats = nil

	res := Artifact(a, domain.WeightMap{}, domain.DefaultGlobalWeights())

	assert.True(t, res.MainStatWrong)
}

func TestRolls(t *testing.T) {
	assert.Equal(t, 4, Rolls(5, 0))
	assert.Equal(t, 9, Rolls(5, 20))
	assert.Equal(t, 7, Rolls(4, 16))
	assert.Equal(t, 0, Rolls(1, 3))
	assert.Equal(t, 1, Rolls(1, 4))
}

func TestMaxScore_SurplusRollsLandOnBestStat(t *testing.T) {
	w := domain.WeightMap{domain.StatCR: 1, domain.StatCD: 1}

	got := MaxScore(5, 20, domain.StatHP, w, domain.DefaultGlobalWeights())

	// 4 lines: cr 3.9*1, cd 7.8*1, 0, 0; then 5 surplus rolls of cd.
	assert.InDelta(t, 3.9+7.8+5*7.8, got, 1e-9)
}

func TestMaxScore_ExcludesMainStat(t *testing.T) {
	w := domain.WeightMap{domain.StatCD: 1}

	assert.Zero(t, MaxScore(5, 20, domain.StatCD, w, domain.DefaultGlobalWeights()))
}

func TestPercent(t *testing.T) {
	assert.Zero(t, Percent(10, 0))
	assert.Zero(t, Percent(10, -1))
	assert.InDelta(t, 50.0, Percent(5, 10), 1e-9)
	assert.Equal(t, 100.0, Percent(12, 10))
	assert.Zero(t, Percent(-1, 10))
}

func TestArtifact_PercentWithinBounds(t *testing.T) {
	w := domain.WeightMap{domain.StatCR: 100, domain.StatCD: 100, domain.StatATKP: 50, domain.StatER: 20}
	for _, level := range []int{0, 4, 8, 12, 16, 20} {
		a := critArtifact()
		a.Level = level
		res := Artifact(a, w, domain.DefaultGlobalWeights())
		require.Positive(t, res.MaxScore)
		assert.GreaterOrEqual(t, res.Percent, 0.0)
		assert.LessOrEqual(t, res.Percent, 100.0)
	}
}

func TestArtifact_ExtraLinesRaiseMaxScore(t *testing.T) {
	// Four lines on a level 0 three star: more than the level allows.
	a := domain.Artifact{
		ID: "low", Slot: domain.SlotFlower, Rarity: 3, Level: 0, MainStat: domain.StatHP,
		Substats: []domain.Substat{
			{Stat: domain.StatCR, Value: 2.4}, {Stat: domain.StatCD, Value: 4.7},
			{Stat: domain.StatEM, Value: 14}, {Stat: domain.StatER, Value: 3.9},
		},
	}
	require.NoError(t, a.Validate())
	w := domain.WeightMap{domain.StatCR: 10, domain.StatCD: 10, domain.StatEM: 10, domain.StatER: 10}

	res := Artifact(a, w, domain.DefaultGlobalWeights())

	assert.InDelta(t, 250.0, res.MaxScore, 1e-9)
	assert.InDelta(t, 250.0, res.Score, 1e-9)
	assert.LessOrEqual(t, res.Score, res.MaxScore)
	assert.InDelta(t, 100.0, res.Percent, 1e-9)
}

func TestArtifact_ScoreCappedAtMaxScore(t *testing.T) {
	a := critArtifact()
	a.Level = 0
	a.Substats = []domain.Substat{{Stat: domain.StatCR, Value: 39}}
	w := domain.WeightMap{domain.StatCR: 10}

	res := Artifact(a, w, domain.DefaultGlobalWeights())

	require.Positive(t, res.MaxScore)
	assert.Equal(t, res.MaxScore, res.Score)
	assert.Equal(t, 100.0, res.Percent)
}
