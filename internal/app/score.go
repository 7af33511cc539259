package app

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/output"
)

func runScore(_ context.Context, s *session, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	goodPath := fs.String("good", "", "GOOD json to import (default: paths.good)")
	char := fs.String("char", "", "only score this character (id or name)")
	noXLSX := fs.Bool("no-xlsx", false, "skip the xlsx export")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := s.importGOOD(*goodPath); err != nil {
		return err
	}

	var only string
	if *char != "" {
		id, ok := s.cat.CharacterID(*char)
		if !ok {
			return usageError(fmt.Errorf("unknown character %q", *char))
		}
		only = id
	}

	scores := s.store.Scores()
	rows := make([]output.ScoreRow, 0, len(scores))
	for _, c := range s.store.Data().Characters {
		if only != "" && c.Key != only {
			continue
		}
		rows = append(rows, output.ScoreRow{CharacterID: c.Key, Name: s.cat.CharacterName(c.Key), Result: scores[c.Key]})
	}
	if only != "" && len(rows) == 0 {
		return fmt.Errorf("character %q is not in the imported account", only)
	}
	slices.SortStableFunc(rows, func(a, b output.ScoreRow) int {
		return cmp.Compare(b.Result.Total(), a.Result.Total())
	})

	output.PrintScores(s.out, rows)
	if *noXLSX {
		return nil
	}
	path, err := output.ExportScoresXLSX(s.outDir(), rows, s.now())
	if err != nil {
		return fmt.Errorf("export scores: %w", err)
	}
	fmt.Fprintf(s.out, "Wrote %d character(s) to %s\n", len(rows), path)
	return nil
}
