package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/config"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// runApp runs one command against the bundled example files. State and output go to a temp dir.
func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	tmp := t.TempDir()
	if os.Getenv("ARTIFACT_SCORER_PATHS_STATE") == "" {
		t.Setenv("ARTIFACT_SCORER_PATHS_STATE", filepath.Join(tmp, "state.yaml"))
	}
	outDir := filepath.Join(tmp, "out")
	t.Setenv("ARTIFACT_SCORER_PATHS_OUT_DIR", outDir)

	var out bytes.Buffer
	code := RunWithOptions(Options{
		UseExamples: true,
		Args:        args,
		Root:        root,
		Stdout:      &out,
		Now:         func() time.Time { return fixedNow },
	})
	return code, out.String(), outDir
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"no command":      nil,
		"unknown command": {"frobnicate"},
		"bad flag":        {"score", "-nope"},
		"extra args":      {"score", "extra"},
		"unknown char":    {"score", "-char", "Nobody", "-no-xlsx"},
		"bad slot":        {"artifacts", "-slot", "boots"},
		"bad sort":        {"artifacts", "-sort", "name"},
		"bad element":     {"characters", "-element", "fire"},
		"weights action":  {"weights", "tweak"},
		"enka no uid":     {"enka"},
		"enka bad uid":    {"enka", "-uid", "12345"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runApp(t, args...)
			assert.Equal(t, exitUsage, code)
		})
	}
}

func TestRun_ReadsProcessArgs(t *testing.T) {
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })

	os.Args = []string{"artifact_scorer", "frobnicate"}
	assert.Equal(t, exitUsage, Run())
}

func TestRun_Score(t *testing.T) {
	code, out, outDir := runApp(t, "score")
	require.Equal(t, exitOK, code, out)

	assert.Contains(t, out, "Hu Tao")
	assert.Contains(t, out, "Xingqiu")
	assert.Contains(t, out, "WARN: weapon not found: DullBlade")
	assert.FileExists(t, filepath.Join(outDir, "20261018_artifact_scores.xlsx"))
}

func TestRun_ScoreOneCharacter(t *testing.T) {
	code, out, _ := runApp(t, "score", "-char", "Hu Tao", "-no-xlsx")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "Hu Tao")
	assert.NotContains(t, out, "Xingqiu")
}

func TestRun_ArtifactsFilters(t *testing.T) {
	code, out, _ := runApp(t, "artifacts", "-no-rules", "-slot", "flower", "-sort", "score")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "flower")
	assert.NotContains(t, out, "circlet ")
}

func TestRun_ArtifactsRule(t *testing.T) {
	code, out, outDir := runApp(t, "artifacts", "-no-rules", "-rule", "rarity == 4", "-xlsx")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "No artifacts")
	assert.FileExists(t, filepath.Join(outDir, "20261018_artifacts.xlsx"))

	code, _, _ = runApp(t, "artifacts", "-rule", "level >")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Characters(t *testing.T) {
	code, out, _ := runApp(t, "characters", "-element", "pyro")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "Hu Tao")
	assert.NotContains(t, out, "Xingqiu")
}

func TestRun_CharactersSave(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	t.Setenv("ARTIFACT_SCORER_PATHS_STATE", statePath)

	code, out, _ := runApp(t, "characters", "-element", "hydro", "-release", "asc", "-save")
	require.Equal(t, exitOK, code, out)

	st, err := config.LoadState(statePath, domain.ScoreConfig{})
	require.NoError(t, err)
	assert.Equal(t, []domain.Element{domain.ElementHydro}, st.CharacterFilters.Elements)
	assert.Equal(t, domain.SortAsc, st.CharacterFilters.ReleaseSort)
}

func TestRun_Compute(t *testing.T) {
	md := filepath.Join(t.TempDir(), "filters.md")
	code, out, outDir := runApp(t, "compute", "-out", md, "-good", "input/artifact_scorer/examples/good.json")
	require.Equal(t, exitOK, code, out)

	b, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Crimson Witch of Flames")
	assert.Contains(t, out, "match a filter")
	assert.FileExists(t, filepath.Join(outDir, "20261018_artifact_filters.xlsx"))
}

func TestRun_WeightsSetShowReset(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	t.Setenv("ARTIFACT_SCORER_PATHS_STATE", statePath)

	code, out, _ := runApp(t, "weights", "set", "-char", "Hu Tao", "-stat", "cr", "-value", "50")
	require.Equal(t, exitOK, code, out)
	require.FileExists(t, statePath)

	_, out, _ = runApp(t, "weights", "show", "-char", "hutao")
	assert.Contains(t, out, "cr=50")

	code, out, _ = runApp(t, "weights", "set", "-global", "flat_atk", "-value", "10")
	require.Equal(t, exitOK, code, out)
	_, out, _ = runApp(t, "weights", "show")
	assert.Contains(t, out, "flat_atk=10")

	code, _, _ = runApp(t, "weights", "reset")
	require.Equal(t, exitOK, code)
	_, out, _ = runApp(t, "weights", "show", "-char", "hutao")
	assert.Contains(t, out, "cr=100")
	assert.Contains(t, out, "flat_atk=30")
}

func TestRun_WeightsSetRejects(t *testing.T) {
	cases := [][]string{
		{"weights", "set", "-char", "Hu Tao", "-stat", "cr"},
		{"weights", "set", "-char", "Hu Tao", "-stat", "cr", "-value", "-1"},
		{"weights", "set", "-char", "Hu Tao", "-stat", "elemental%", "-value", "1"},
		{"weights", "set", "-global", "flat_em", "-value", "1"},
		{"weights", "set", "-global", "flat_atk", "-char", "Hu Tao", "-value", "1"},
	}
	for _, args := range cases {
		code, _, _ := runApp(t, args...)
		assert.Equal(t, exitUsage, code, "%v", args)
	}
}

func TestRun_Enka(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/uid/123456789" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"playerInfo": {"nickname": "Test Player"}, "avatarInfoList": [{"avatarId": 10000046, "propMap": {"4001": {"ival": "90"}}}]}`))
	}))
	defer srv.Close()
	t.Setenv("ARTIFACT_SCORER_ENKA_BASE_URL", srv.URL)

	code, out, outDir := runApp(t, "enka", "-uid", "123456789", "-score")
	require.Equal(t, exitOK, code, out)
	assert.FileExists(t, filepath.Join(outDir, "20261018_Test_Player_good.json"))
	assert.Contains(t, out, "Hu Tao")

	code, _, _ = runApp(t, "enka", "-uid", "987654321")
	assert.Equal(t, exitFailure, code)
}

func TestSafeFilename(t *testing.T) {
	for in, want := range map[string]string{
		"  Test Player ": "Test_Player",
		"a/b:c":          "a_b_c",
		"..":             "",
		"":               "",
	} {
		assert.Equal(t, want, safeFilename(in), in)
	}
}
