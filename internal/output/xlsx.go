package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/compute"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

func writeHeader(f *excelize.File, headers []string) error {
	for i, h := range headers {
		f.SetCellValue(sheet, cell(i+1, 1), h)
	}
	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", cell(len(headers), 1), styleID)
}

// percentColumn formats rows 2..lastRow of a column holding fractions (1.0 => 100%).
func percentColumn(f *excelize.File, col, lastRow int) error {
	if lastRow < 2 {
		return nil
	}
	styleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell(col, 2), cell(col, lastRow), styleID)
}

func save(f *excelize.File, outDir, kind string, now time.Time) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(outDir, fmt.Sprintf("%s_%s.xlsx", now.Format("20060102"), kind))
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}

// ExportScoresXLSX writes one row per character with totals and per-slot scores.
func ExportScoresXLSX(outDir string, rows []ScoreRow, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Character", "Main", "Sub", "Total", "Complete"}
	for _, slot := range domain.Slots {
		headers = append(headers, string(slot)+" main", string(slot)+" sub")
	}
	if err := writeHeader(f, headers); err != nil {
		return "", err
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, cell(1, row), r.Name)
		f.SetCellValue(sheet, cell(2, row), r.Result.MainScore)
		f.SetCellValue(sheet, cell(3, row), r.Result.SubScore)
		f.SetCellValue(sheet, cell(4, row), r.Result.Total())
		f.SetCellValue(sheet, cell(5, row), r.Result.IsComplete)
		for j, slot := range domain.Slots {
			f.SetCellValue(sheet, cell(6+j*2, row), r.Result.SlotMainScores[slot])
			f.SetCellValue(sheet, cell(7+j*2, row), r.Result.SlotSubScores[slot])
		}
	}
	return save(f, outDir, "artifact_scores", now)
}

// ExportArtifactsXLSX writes a filtered artifact list with scores.
func ExportArtifactsXLSX(outDir string, rows []ArtifactRow, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"ID", "Owner", "Set", "Slot", "Main", "Level", "Rarity", "Lock", "Score", "Max", "Percent", "Substats"}
	if err := writeHeader(f, headers); err != nil {
		return "", err
	}
	for i, r := range rows {
		row := i + 2
		a := r.Artifact
		values := []any{a.ID, r.Owner, a.SetKey, string(a.Slot), a.MainStat.String(), a.Level, a.Rarity, a.Lock,
			r.Result.Score, r.Result.MaxScore, r.Result.Percent / 100, substatsText(a.Substats)}
		for j, v := range values {
			f.SetCellValue(sheet, cell(j+1, row), v)
		}
	}
	if err := percentColumn(f, 11, len(rows)+1); err != nil {
		return "", err
	}
	return save(f, outDir, "artifacts", now)
}

// ExportFiltersXLSX writes one row per slot of every computed configuration, with the drop
// chance of a matching artifact.
func ExportFiltersXLSX(outDir string, filters []domain.ArtifactSetConfigs, names Names, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Set", "Config", "Slot", "Main Stats", "Sub Stats", "Must Have", "Min Count", "Chance", "Characters"}
	if err := writeHeader(f, headers); err != nil {
		return "", err
	}

	row := 2
	for _, set := range filters {
		for i, cfg := range set.Configurations {
			chances := compute.Chances(cfg)
			served := make([]string, 0, len(cfg.ServedCharacters))
			for _, c := range cfg.ServedCharacters {
				served = append(served, names.CharacterName(c.CharacterID))
			}
			first := row
			for _, kind := range domain.SlotKinds {
				sc := cfg.Slot(kind)
				main := joinStats(sc.MainStats, ", ")
				if main == "" {
					main = "Any"
				}
				values := []any{names.SetName(set.SetID), i + 1, string(kind), main,
					joinStats(sc.Substats, ", "), joinStats(sc.MustPresent, ", "), sc.MinStatCount, chances.Of(kind)}
				for j, v := range values {
					f.SetCellValue(sheet, cell(j+1, row), v)
				}
				row++
			}
			f.SetCellValue(sheet, cell(9, first), strings.Join(served, ", "))
			_ = f.MergeCell(sheet, cell(9, first), cell(9, row-1))
		}
	}
	if err := percentColumn(f, 8, row-1); err != nil {
		return "", err
	}
	return save(f, outDir, "artifact_filters", now)
}
