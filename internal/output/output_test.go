package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubNames struct{}

func (stubNames) CharacterName(id string) string { return strings.ToUpper(id) }
func (stubNames) SetName(id string) string       { return "Set " + id }
func (stubNames) HalfSetBonus(id int) string {
	if id == 1 {
		return "ATK +18%"
	}
	return "ER +20%"
}

var day = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleFilters() []domain.ArtifactSetConfigs {
	return []domain.ArtifactSetConfigs{{
		SetID: "cw",
		Configurations: []domain.SetConfig{{
			FlowerPlume: domain.SlotConfig{MainStats: []domain.Stat{}, Substats: []domain.Stat{domain.StatCR, domain.StatCD, domain.StatHP}, MinStatCount: 2},
			Sands:       domain.SlotConfig{MainStats: []domain.Stat{domain.StatHPP}, Substats: []domain.Stat{domain.StatCR, domain.StatCD, domain.StatHPP}, MinStatCount: 2},
			Goblet:      domain.SlotConfig{MainStats: []domain.Stat{domain.StatPyroP}, Substats: []domain.Stat{domain.StatCR, domain.StatCD}, MinStatCount: 2},
			Circlet:     domain.SlotConfig{MainStats: []domain.Stat{}, Substats: []domain.Stat{domain.StatCR}, MinStatCount: 1},
			ServedCharacters: []domain.CharacterMergeInfo{
				{CharacterID: "xiangling", HasPerfectMerge: false, Has4pcBuild: true},
				{CharacterID: "hutao", HasPerfectMerge: true, Has4pcBuild: true},
				{CharacterID: "bennett", HasPerfectMerge: true, Has4pcBuild: false},
			},
		}},
	}}
}

func TestFiltersMarkdown(t *testing.T) {
	k := 3
	h1, h2 := 1, 2
	groups := []domain.BuildGroup{
		{CharacterID: "hutao", Builds: []domain.Build{
			{ID: "b1", Name: "Vape", Visible: true, Composition: domain.Composition4pc, ArtifactSet: "cw",
				Sands: []domain.Stat{domain.StatHPP}, Substats: []domain.Stat{domain.StatCR, domain.StatCD}, KOverride: &k},
			{ID: "b2", Visible: true, Composition: domain.Composition2pc2pc, HalfSet1: &h1, HalfSet2: &h2},
			{ID: "hidden", Visible: false, Composition: domain.Composition4pc, ArtifactSet: "cw"},
		}},
		{CharacterID: "raiden", Hidden: true},
	}

	md := FiltersMarkdown(sampleFilters(), groups, stubNames{}, day)

	assert.Contains(t, md, "_Generated on 2026-03-01_")
	assert.Contains(t, md, "## Set cw\n")
	assert.Contains(t, md, "- **4pc:** HUTAO, XIANGLING^\n")
	assert.Contains(t, md, "- **2pc:** BENNETT\n")
	// flat hp in the pool splits flower and plume rows
	assert.Contains(t, md, "| F | --- | cr, cd [>= 1] |\n")
	assert.Contains(t, md, "| P | --- | cr, cd, hp [>= 2] |\n")
	assert.Contains(t, md, "| S | hp% | cr, cd [>= 1] |\n")
	assert.Contains(t, md, "| G | pyro% | cr, cd [>= 2] |\n")
	assert.Contains(t, md, "| C | Any | cr [>= 1] |\n")
	assert.Contains(t, md, "  - Vape: **Set:** Set cw | S: hp% | G: Any | C: Any | Sub: cr,cd _(k=3)_\n")
	assert.Contains(t, md, "  - b2: **Half:** ATK +18% + ER +20% |")
	assert.NotContains(t, md, "hidden")
	assert.NotContains(t, md, "RAIDEN")
}

func TestSlotDisplay_DoesNotMutateInput(t *testing.T) {
	cfg := domain.SlotConfig{Substats: []domain.Stat{domain.StatER, domain.StatCR}, MinStatCount: 2}
	subs, k := slotDisplay(cfg, []domain.Stat{domain.StatER})

	assert.Equal(t, []domain.Stat{domain.StatCR}, subs)
	assert.Equal(t, 1, k)
	assert.Equal(t, []domain.Stat{domain.StatER, domain.StatCR}, cfg.Substats)
}

func TestColName(t *testing.T) {
	for n, want := range map[int]string{0: "", 1: "A", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"} {
		assert.Equal(t, want, colName(n), n)
	}
}

func TestPrintScoresAndArtifacts(t *testing.T) {
	var buf bytes.Buffer
	PrintScores(&buf, nil)
	assert.Equal(t, "No characters\n", buf.String())

	buf.Reset()
	PrintScores(&buf, []ScoreRow{{Name: "Hu Tao", Result: score.CharacterResult{MainScore: 10, SubScore: 5.5, IsComplete: true}}})
	assert.Contains(t, buf.String(), "Hu Tao")
	assert.Contains(t, buf.String(), "15.50")
	assert.Contains(t, buf.String(), "yes")

	buf.Reset()
	PrintArtifacts(&buf, []ArtifactRow{{
		Artifact: domain.Artifact{ID: "artifact-1", SetKey: "cw", Slot: domain.SlotSands, MainStat: domain.StatCR, Rarity: 5,
			Substats: []domain.Substat{{Stat: domain.StatCD, Value: 7.8}}},
		Result: score.ArtifactResult{Score: 7.8, Percent: 12.5, MainStatWrong: true},
	}})
	assert.Contains(t, buf.String(), "cr!")
	assert.Contains(t, buf.String(), "cd=7.8")
	assert.Contains(t, buf.String(), "12.5%")
}

func TestPrintMatches(t *testing.T) {
	arts := []domain.Artifact{
		{ID: "a1", SetKey: "cw", Slot: domain.SlotGoblet, MainStat: domain.StatPyroP,
			Substats: []domain.Substat{{Stat: domain.StatCR, Value: 3}, {Stat: domain.StatCD, Value: 7}}},
		{ID: "a2", SetKey: "cw", Slot: domain.SlotGoblet, MainStat: domain.StatHydroP},
		{ID: "a3", SetKey: "other", Slot: domain.SlotGoblet, MainStat: domain.StatPyroP},
	}
	var buf bytes.Buffer
	kept := PrintMatches(&buf, arts, sampleFilters())

	assert.Equal(t, 1, kept)
	assert.Contains(t, buf.String(), "- a1 cw goblet (pyro%) matches #1")
	assert.Contains(t, buf.String(), "1 of 3 artifacts match a filter")
}

func TestExportFiltersXLSX(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportFiltersXLSX(dir, sampleFilters(), stubNames{}, day)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20260301_artifact_filters.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Set cw", v)
	v, _ = f.GetCellValue(sheet, "C3")
	assert.Equal(t, "sands", v)
	v, _ = f.GetCellValue(sheet, "D5")
	assert.Equal(t, "Any", v)
	v, _ = f.GetCellValue(sheet, "I2")
	assert.Equal(t, "XIANGLING, HUTAO, BENNETT", v)
}

func TestExportScoresXLSX(t *testing.T) {
	rows := []ScoreRow{{Name: "Hu Tao", Result: score.CharacterResult{
		MainScore: 1, SubScore: 2,
		SlotMainScores: map[domain.Slot]float64{domain.SlotFlower: 1},
		SlotSubScores:  map[domain.Slot]float64{domain.SlotFlower: 2},
	}}}
	path, err := ExportScoresXLSX(t.TempDir(), rows, day)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "Hu Tao", v)
	v, _ = f.GetCellValue(sheet, "D2")
	assert.Equal(t, "3", v)
	v, _ = f.GetCellValue(sheet, "F1")
	assert.Equal(t, "flower main", v)
}

func TestWriteTextFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b.md")
	require.NoError(t, WriteTextFile(p, "# hi\n"))
}
