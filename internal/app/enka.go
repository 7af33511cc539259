package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/enka"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/good"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/output"
)

// runEnka fetches a public showcase and writes it as GOOD json, optionally scoring it right away.
func runEnka(ctx context.Context, s *session, args []string) error {
	fs := flag.NewFlagSet("enka", flag.ContinueOnError)
	uid := fs.String("uid", "", "player UID (9 digits)")
	outPath := fs.String("out", "", "GOOD output path (default: out_dir/<date>_<nickname>_good.json)")
	scoreNow := fs.Bool("score", false, "score the imported characters")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*uid) == "" {
		return usageError(errors.New("enka: -uid is required"))
	}
	if err := enka.ValidateUID(strings.TrimSpace(*uid)); err != nil {
		return usageError(err)
	}

	client := enka.NewClient(s.cfg.Enka.UserAgent, s.cfg.Enka.BaseURL, s.cfg.Enka.Timeout)
	resp, err := client.FetchUID(ctx, *uid)
	if err != nil {
		return err
	}

	data, warns := enka.ToGOOD(resp, s.cat)
	if len(warns) > 0 {
		fmt.Fprintf(s.out, "WARN: %d id(s) missing from the catalog\n", len(warns))
		for _, w := range warns {
			fmt.Fprintf(s.out, "  - %s\n", w)
		}
	}

	path := strings.TrimSpace(*outPath)
	if path == "" {
		base := safeFilename(resp.PlayerInfo.Nickname)
		if base == "" {
			base = strings.TrimSpace(*uid)
		}
		path = filepath.Join(s.outDir(), fmt.Sprintf("%s_%s_good.json", s.now().Format("20060102"), base))
	} else {
		path = s.path(path)
	}
	var buf bytes.Buffer
	if err := good.Write(&buf, data); err != nil {
		return err
	}
	if err := output.WriteTextFile(filepath.Clean(path), buf.String()); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Wrote %d character(s) and %d artifact(s) to %s\n", len(data.Characters), len(data.Artifacts), path)

	if !*scoreNow {
		return nil
	}
	acc, convWarns := good.Convert(data, s.cat)
	for _, w := range convWarns {
		fmt.Fprintf(s.out, "WARN: %s\n", w)
	}
	s.store.Replace(acc)
	scores := s.store.Scores()
	rows := make([]output.ScoreRow, 0, len(acc.Characters))
	for _, c := range acc.Characters {
		rows = append(rows, output.ScoreRow{CharacterID: c.Key, Name: s.cat.CharacterName(c.Key), Result: scores[c.Key]})
	}
	output.PrintScores(s.out, rows)
	return nil
}

// safeFilename keeps nicknames usable as file names on every platform.
func safeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		if r < 32 {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(strings.Join(strings.Fields(name), "_"), ". ")
	if name == "." || name == ".." {
		return ""
	}
	return name
}
