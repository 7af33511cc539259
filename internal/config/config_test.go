package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/catalog"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "input/artifact_scorer/catalog.yaml", cfg.Paths.Catalog)
	assert.Equal(t, 25*time.Second, cfg.Enka.Timeout)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	p := writeFile(t, "config.yaml", "logger:\n  level: debug\nenka:\n  timeout: 5s\npaths:\n  out_dir: out\n")
	t.Setenv("ARTIFACT_SCORER_PATHS_OUT_DIR", "from-env")

	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5*time.Second, cfg.Enka.Timeout)
	assert.Equal(t, "from-env", cfg.Paths.OutDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"level":   "logger:\n  level: loud\n",
		"url":     "enka:\n  base_url: ftp://x\n",
		"timeout": "enka:\n  timeout: 0s\n",
		"catalog": "paths:\n  catalog: \"\"\n",
	}
	for name, in := range cases {
		_, err := LoadConfig(writeFile(t, "config.yaml", in))
		assert.Error(t, err, name)
	}
}

func TestLoadConfig_BundledFiles(t *testing.T) {
	for _, p := range []string{
		filepath.Join("..", "..", "input", "artifact_scorer", "config.yaml"),
		filepath.Join("..", "..", "input", "artifact_scorer", "examples", "config.example.yaml"),
	} {
		_, err := LoadConfig(p)
		assert.NoError(t, err, p)
	}
}

func defaultWeights() domain.ScoreConfig {
	return domain.ScoreConfig{
		Global:     domain.DefaultGlobalWeights(),
		Characters: map[string]domain.WeightMap{"hutao": {domain.StatCR: 100}, "bennett": {domain.StatER: 100}},
	}
}

func TestLoadState_MissingFile(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "state.yaml"), defaultWeights())
	require.NoError(t, err)

	assert.Equal(t, StateVersion, st.Version)
	assert.Equal(t, domain.DefaultComputeOptions(), st.Compute)
	assert.Equal(t, domain.SortDesc, st.CharacterFilters.ReleaseSort)
	assert.Equal(t, 100.0, st.Weights.Characters["hutao"][domain.StatCR])
}

func TestLoadState_PartialFileKeepsDefaults(t *testing.T) {
	p := writeFile(t, "state.yaml", "version: 1\nweights:\n  characters:\n    hutao: { cd: 50 }\ncompute:\n  skip_crit_builds: true\n")

	st, err := LoadState(p, defaultWeights())
	require.NoError(t, err)

	assert.Equal(t, domain.WeightMap{domain.StatCD: 50}, st.Weights.Characters["hutao"])
	assert.Equal(t, domain.WeightMap{domain.StatER: 100}, st.Weights.Characters["bennett"])
	assert.Equal(t, domain.DefaultGlobalWeights(), st.Weights.Global)
	assert.True(t, st.Compute.SkipCritBuilds)
	assert.True(t, st.Compute.ExpandElementalGoblet)
}

func TestLoadState_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "version: 1\nextra: true\n",
		"missing version": "weights: {}\n",
		"future version":  "version: 2\n",
		"negative weight": "version: 1\nweights:\n  characters:\n    hutao: { cr: -1 }\n",
		"bad sort":        "version: 1\ncharacter_filters:\n  tier_sort: sideways\n",
	}
	for name, in := range cases {
		_, err := LoadState(writeFile(t, "state.yaml", in), defaultWeights())
		assert.Error(t, err, name)
	}
}

func TestLoadState_RejectsUnknownNestedKeys(t *testing.T) {
	in := "version: 1\ncompute:\n  skip_crit_buildz: true\n"
	_, err := LoadState(writeFile(t, "state.yaml", in), defaultWeights())
	assert.ErrorContains(t, err, `unsupported key "skip_crit_buildz"`)
}

func TestSaveState_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "state.yaml")
	st := DefaultState(defaultWeights())
	st.Weights.Global.FlatDef = 0
	st.Compute.SkipCritBuilds = true
	st.CharacterFilters.Elements = []domain.Element{domain.ElementPyro}

	require.NoError(t, SaveState(p, st))
	got, err := LoadState(p, domain.ScoreConfig{})
	require.NoError(t, err)

	assert.Equal(t, st, got)
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadBuilds_Example(t *testing.T) {
	cat, err := catalog.Load(filepath.Join("..", "..", "input", "artifact_scorer", "catalog.yaml"))
	require.NoError(t, err)

	bf, err := LoadBuilds(filepath.Join("..", "..", "input", "artifact_scorer", "examples", "builds.example.yaml"), cat, cat.HalfSetIndex())
	require.NoError(t, err)

	require.Len(t, bf.Groups, 4)
	assert.Equal(t, "hutao", bf.Groups[0].CharacterID)
	hutao := bf.Groups[0].Builds[0]
	assert.Equal(t, "crimson_witch_of_flames", hutao.ArtifactSet)
	assert.Equal(t, "hutao", hutao.CharacterID)
	assert.Equal(t, domain.Composition4pc, hutao.Composition)
	assert.Equal(t, 2, hutao.MinStatCount())

	bennett := bf.Groups[2].Builds[0]
	assert.Equal(t, 2, bennett.MinStatCount())

	builds, err := bf.Builds()
	require.NoError(t, err)
	assert.Len(t, builds, 4, "hidden group is excluded")
}

func TestLoadBuilds_Rejects(t *testing.T) {
	cases := map[string]string{
		"version":       "version: 9\ngroups: []\n",
		"unknown key":   "version: 1\ngroups: []\nbogus: 1\n",
		"no character":  "version: 1\ngroups:\n  - builds: []\n",
		"no set":        "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x }\n",
		"no half sets":  "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, composition: 2pc+2pc, half_set_1: 1 }\n",
		"bad main":      "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, sands: [cr] }\n",
		"bad pseudo":    "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, sands: [elemental%] }\n",
		"bad substat":   "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, substats: [pyro%] }\n",
		"bad k":         "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, substats: [cr], k: 5 }\n",
		"duplicate id":  "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s }\n      - { id: x, set: s }\n",
		"composition":   "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, composition: 3pc }\n",
	}
	for name, in := range cases {
		_, err := LoadBuilds(writeFile(t, "builds.yaml", in), nil, nil)
		assert.Error(t, err, name)
	}
}

func TestLoadBuilds_RejectsUnknownBuildKeys(t *testing.T) {
	in := "version: 1\ngroups:\n  - character: a\n    builds:\n      - { id: x, set: s, substat: [cr, cd] }\n"
	_, err := LoadBuilds(writeFile(t, "builds.yaml", in), nil, nil)
	assert.ErrorContains(t, err, `unsupported key "substat"`)
}

func TestBuilds_Empty(t *testing.T) {
	_, err := BuildsFile{}.Builds()
	assert.ErrorIs(t, err, errNoBuilds)
}
