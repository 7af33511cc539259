package output

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

// Names resolves catalog ids to display text; *catalog.Catalog implements it.
type Names interface {
	CharacterName(id string) string
	SetName(id string) string
	HalfSetBonus(id int) string
}

// FiltersMarkdown renders computed filter configurations as a printable document, followed by
// an appendix of the visible builds they came from.
func FiltersMarkdown(filters []domain.ArtifactSetConfigs, groups []domain.BuildGroup, names Names, generated time.Time) string {
	var sb strings.Builder
	sb.WriteString("# Artifact Filter Configurations\n\n")
	fmt.Fprintf(&sb, "_Generated on %s_\n\n", generated.Format(time.DateOnly))
	sb.WriteString("---\n\n")

	for i, f := range filters {
		fmt.Fprintf(&sb, "## %s\n\n", names.SetName(f.SetID))
		for j, cfg := range f.Configurations {
			writeConfig(&sb, cfg, j+1, names)
		}
		if i < len(filters)-1 {
			sb.WriteString("---\n\n")
		}
	}

	if len(groups) > 0 {
		writeBuildsAppendix(&sb, groups, names)
	}
	return sb.String()
}

func writeConfig(sb *strings.Builder, cfg domain.SetConfig, n int, names Names) {
	fmt.Fprintf(sb, "### Configuration %d\n\n", n)

	var fourPc, twoPc []string
	for _, perfect := range []bool{true, false} {
		for _, c := range cfg.ServedCharacters {
			if c.HasPerfectMerge != perfect {
				continue
			}
			name := names.CharacterName(c.CharacterID)
			if !perfect {
				name += "^"
			}
			if c.Has4pcBuild {
				fourPc = append(fourPc, name)
			} else {
				twoPc = append(twoPc, name)
			}
		}
	}
	if len(fourPc) > 0 {
		fmt.Fprintf(sb, "- **4pc:** %s\n", strings.Join(fourPc, ", "))
	}
	if len(twoPc) > 0 {
		fmt.Fprintf(sb, "- **2pc:** %s\n", strings.Join(twoPc, ", "))
	}
	sb.WriteString("\n")

	sb.WriteString("| Slot | Main Stat | Sub Stats |\n")
	sb.WriteString("|------|-----------|-----------|\n")

	fp := cfg.FlowerPlume
	if slices.Contains(fp.Substats, domain.StatHP) || slices.Contains(fp.Substats, domain.StatATK) {
		subs, k := slotDisplay(fp, []domain.Stat{domain.StatHP})
		fmt.Fprintf(sb, "| F | --- | %s [>= %d] |\n", joinStats(subs, ", "), k)
		subs, k = slotDisplay(fp, []domain.Stat{domain.StatATK})
		fmt.Fprintf(sb, "| P | --- | %s [>= %d] |\n", joinStats(subs, ", "), k)
	} else {
		fmt.Fprintf(sb, "| F/P | --- | %s [>= %d] |\n", joinStats(fp.Substats, ", "), fp.MinStatCount)
	}

	for _, row := range []struct {
		label string
		slot  domain.SlotConfig
	}{{"S", cfg.Sands}, {"G", cfg.Goblet}, {"C", cfg.Circlet}} {
		main := "Any"
		if len(row.slot.MainStats) > 0 {
			main = joinStats(row.slot.MainStats, ", ")
		}
		subs, k := slotDisplay(row.slot, row.slot.MainStats)
		fmt.Fprintf(sb, "| %s | %s | %s [>= %d] |\n", row.label, main, joinStats(subs, ", "), k)
	}
	sb.WriteString("\n")
}

// slotDisplay hides a substat that is also the only allowed main stat; the game never rolls it
// as a substat, so the threshold drops by one.
func slotDisplay(cfg domain.SlotConfig, mainStats []domain.Stat) ([]domain.Stat, int) {
	if len(mainStats) == 1 && slices.Contains(cfg.Substats, mainStats[0]) {
		subs := slices.DeleteFunc(slices.Clone(cfg.Substats), func(s domain.Stat) bool { return s == mainStats[0] })
		return subs, cfg.MinStatCount - 1
	}
	return cfg.Substats, cfg.MinStatCount
}

func writeBuildsAppendix(sb *strings.Builder, groups []domain.BuildGroup, names Names) {
	sb.WriteString("---\n\n")
	sb.WriteString("# Appendix: Character Builds\n\n")
	for _, g := range groups {
		if g.Hidden {
			continue
		}
		fmt.Fprintf(sb, "## %s\n\n", names.CharacterName(g.CharacterID))
		for _, b := range g.Builds {
			if b.Visible {
				sb.WriteString(buildLine(b, names))
			}
		}
		sb.WriteString("\n")
	}
}

func buildLine(b domain.Build, names Names) string {
	setInfo := ""
	switch {
	case b.Composition == domain.Composition4pc && b.ArtifactSet != "":
		setInfo = "**Set:** " + names.SetName(b.ArtifactSet)
	case b.Composition == domain.Composition2pc2pc && b.HalfSet1 != nil && b.HalfSet2 != nil:
		setInfo = "**Half:** " + names.HalfSetBonus(*b.HalfSet1) + " + " + names.HalfSetBonus(*b.HalfSet2)
	}
	anyOr := func(stats []domain.Stat) string {
		if len(stats) == 0 {
			return "Any"
		}
		return joinStats(stats, "/")
	}
	k := ""
	if b.KOverride != nil {
		k = fmt.Sprintf(" _(k=%d)_", *b.KOverride)
	}
	name := b.Name
	if name == "" {
		name = b.ID
	}
	return fmt.Sprintf("  - %s: %s | S: %s | G: %s | C: %s | Sub: %s%s\n",
		name, setInfo, anyOr(b.Sands), anyOr(b.Goblet), anyOr(b.Circlet), joinStats(b.Substats, ","), k)
}

func joinStats(stats []domain.Stat, sep string) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}
