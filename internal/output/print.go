package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/compute"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/score"
)

type ScoreRow struct {
	CharacterID string
	Name        string
	Result      score.CharacterResult
}

type ArtifactRow struct {
	Artifact domain.Artifact
	Owner    string
	Result   score.ArtifactResult
}

func PrintScores(w io.Writer, rows []ScoreRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No characters")
		return
	}
	fmt.Fprintf(w, "%-22s %8s %8s %8s  %s\n", "Character", "Main", "Sub", "Total", "Complete")
	for _, r := range rows {
		complete := "no"
		if r.Result.IsComplete {
			complete = "yes"
		}
		fmt.Fprintf(w, "%-22s %8.2f %8.2f %8.2f  %s\n", r.Name, r.Result.MainScore, r.Result.SubScore, r.Result.Total(), complete)
	}
}

func PrintArtifacts(w io.Writer, rows []ArtifactRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No artifacts")
		return
	}
	fmt.Fprintf(w, "%-12s %-26s %-8s %-9s %3s %2s %8s %7s  %s\n", "ID", "Set", "Slot", "Main", "Lv", "R", "Score", "Pct", "Substats")
	for _, r := range rows {
		a := r.Artifact
		main := a.MainStat.String()
		if r.Result.MainStatWrong {
			main += "!"
		}
		fmt.Fprintf(w, "%-12s %-26s %-8s %-9s %3d %2d %8.2f %6.1f%%  %s\n",
			a.ID, a.SetKey, a.Slot, main, a.Level, a.Rarity, r.Result.Score, r.Result.Percent, substatsText(a.Substats))
	}
}

func substatsText(subs []domain.Substat) string {
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		parts = append(parts, fmt.Sprintf("%s=%g", s.Stat, s.Value))
	}
	return strings.Join(parts, " ")
}

func PrintCharacters(w io.Writer, chars []domain.Character, names func(id string) string, tiers domain.TierAssignment) {
	if len(chars) == 0 {
		fmt.Fprintln(w, "No characters")
		return
	}
	for _, c := range chars {
		tier := "-"
		if p, ok := tiers[c.ID]; ok {
			tier = string(p.Tier)
		}
		fmt.Fprintf(w, "- %s (%d*, %s, %s, %s) tier=%s released=%s\n",
			names(c.ID), c.Rarity, c.Element, c.WeaponType, c.Region, tier, c.ReleaseDate)
	}
}

// PrintChances lists each configuration's per-slot drop chance of a matching artifact.
func PrintChances(w io.Writer, filters []domain.ArtifactSetConfigs, names Names) {
	for _, f := range filters {
		fmt.Fprintf(w, "%s:\n", names.SetName(f.SetID))
		for i, cfg := range f.Configurations {
			c := compute.Chances(cfg)
			fmt.Fprintf(w, "  #%d  F/P %5.1f%%  S %5.1f%%  G %5.1f%%  C %5.1f%%\n",
				i+1, c.FlowerPlume*100, c.Sands*100, c.Goblet*100, c.Circlet*100)
		}
	}
}

// PrintMatches lists inventory artifacts kept by at least one configuration.
func PrintMatches(w io.Writer, arts []domain.Artifact, filters []domain.ArtifactSetConfigs) int {
	kept := 0
	for _, a := range arts {
		m := compute.Match(a, filters)
		if len(m) == 0 {
			continue
		}
		kept++
		idx := make([]string, 0, len(m))
		for _, r := range m {
			idx = append(idx, fmt.Sprintf("#%d", r.ConfigIndex+1))
		}
		fmt.Fprintf(w, "- %s %s %s (%s) matches %s\n", a.ID, a.SetKey, a.Slot, a.MainStat, strings.Join(idx, ","))
	}
	fmt.Fprintf(w, "%d of %d artifacts match a filter\n", kept, len(arts))
	return kept
}
