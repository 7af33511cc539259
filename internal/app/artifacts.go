package app

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/filter"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/output"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/rule"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/score"
)

func runArtifacts(_ context.Context, s *session, args []string) error {
	fs := flag.NewFlagSet("artifacts", flag.ContinueOnError)
	goodPath := fs.String("good", "", "GOOD json to import (default: paths.good)")
	char := fs.String("char", "", "score with this character's weights (default: the wearer's)")
	var sets, slots, mains, rarities, required listOpt
	fs.Var(&sets, "set", "artifact sets (comma separated, repeatable)")
	fs.Var(&slots, "slot", "slots: flower, plume, sands, goblet, circlet")
	fs.Var(&mains, "main", "main stats, e.g. atk%,pyro%,elemental%")
	fs.Var(&rarities, "rarity", "rarities, e.g. 4,5")
	fs.Var(&required, "sub", "substats that must all be present")
	minLevel := fs.Int("min-level", 0, "minimum level")
	var maxLevel stringOpt
	fs.Var(&maxLevel, "max-level", "maximum level")
	var locked boolOpt
	fs.Var(&locked, "locked", "only locked (true) or unlocked (false) artifacts")
	expand := fs.Bool("expand-elemental", false, "an elemental main stat filter matches every elemental goblet")
	var rules multiOpt
	fs.Var(&rules, "rule", "CEL condition, e.g. 'subs[\"cr\"] > 6.0' (repeatable)")
	noRules := fs.Bool("no-rules", false, "ignore the rules file from paths.rules")
	sortField := fs.String("sort", "", "sort by level, rarity or score")
	sortDir := fs.String("dir", "desc", "sort direction: asc, desc or off")
	xlsx := fs.Bool("xlsx", false, "also export the list to xlsx")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	q := filter.ArtifactQuery{MinLevel: *minLevel, ExpandElementalGoblet: *expand}
	var err error
	if q.Sets, err = resolveAll(sets.v, s.cat.SetID, "set"); err != nil {
		return usageError(err)
	}
	for _, v := range slots.v {
		slot, ok := domain.ParseSlot(v)
		if !ok {
			return usageError(fmt.Errorf("unknown slot %q", v))
		}
		q.Slots = append(q.Slots, slot)
	}
	if q.MainStats, err = parseStats(mains.v); err != nil {
		return usageError(err)
	}
	if q.RequiredSubstats, err = parseStats(required.v); err != nil {
		return usageError(err)
	}
	for _, v := range rarities.v {
		r, err := strconv.Atoi(v)
		if err != nil || r < 1 || r > 5 {
			return usageError(fmt.Errorf("invalid rarity %q", v))
		}
		q.Rarities = append(q.Rarities, r)
	}
	if maxLevel.set {
		lv, err := strconv.Atoi(maxLevel.v)
		if err != nil {
			return usageError(fmt.Errorf("invalid max-level %q", maxLevel.v))
		}
		q.MaxLevel = &lv
	}
	if locked.set {
		q.Locked = &locked.v
	}
	if q.SortField, err = filter.ParseArtifactSortField(*sortField); err != nil {
		return usageError(err)
	}
	if q.SortDir, err = domain.ParseSortDirection(*sortDir); err != nil {
		return usageError(err)
	}

	var weightsFor string
	if *char != "" {
		id, ok := s.cat.CharacterID(*char)
		if !ok {
			return usageError(fmt.Errorf("unknown character %q", *char))
		}
		weightsFor = id
	}

	if err := s.importGOOD(*goodPath); err != nil {
		return err
	}
	data := s.store.Data()
	owners := map[string]string{}
	for _, c := range data.Characters {
		for _, a := range c.Artifacts {
			if a != nil {
				owners[a.ID] = c.Key
			}
		}
	}

	results := map[string]score.ArtifactResult{}
	scoreOf := func(a domain.Artifact) score.ArtifactResult {
		if r, ok := results[a.ID]; ok {
			return r
		}
		key := weightsFor
		if key == "" {
			key = owners[a.ID]
		}
		r := s.store.ArtifactScore(key, a)
		results[a.ID] = r
		return r
	}

	compiled, err := s.loadRules(rules, !*noRules)
	if err != nil {
		return usageError(err)
	}
	if len(compiled) > 0 {
		q.Predicate = rule.Predicate(compiled, func(a domain.Artifact) rule.Scored {
			r := scoreOf(a)
			return rule.Scored{Score: r.Score, Percent: r.Percent}
		})
	}

	list := filter.Artifacts(data.AllArtifacts(), q, func(a domain.Artifact) float64 { return scoreOf(a).Score })
	rows := make([]output.ArtifactRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, output.ArtifactRow{Artifact: a, Owner: owners[a.ID], Result: scoreOf(a)})
	}
	output.PrintArtifacts(s.out, rows)
	fmt.Fprintf(s.out, "%d of %d artifacts\n", len(rows), len(data.AllArtifacts()))

	if !*xlsx {
		return nil
	}
	path, err := output.ExportArtifactsXLSX(s.outDir(), rows, s.now())
	if err != nil {
		return fmt.Errorf("export artifacts: %w", err)
	}
	fmt.Fprintf(s.out, "Wrote %d artifact(s) to %s\n", len(rows), path)
	return nil
}

// loadRules compiles the rules file from paths.rules plus any -rule expressions.
func (s *session) loadRules(exprs []string, useFile bool) ([]*rule.Rule, error) {
	var out []*rule.Rule
	if useFile && s.cfg.Paths.Rules != "" {
		fromFile, err := rule.LoadFromFile(s.path(s.cfg.Paths.Rules))
		if err != nil {
			return nil, err
		}
		for i := range fromFile {
			out = append(out, &fromFile[i])
		}
	}
	for i, expr := range exprs {
		r, err := rule.Compile(fmt.Sprintf("flag-%d", i+1), expr)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseStats(keys []string) ([]domain.Stat, error) {
	out := make([]domain.Stat, 0, len(keys))
	for _, k := range keys {
		st, ok := domain.ParseStat(k)
		if !ok {
			return nil, fmt.Errorf("unknown stat %q", k)
		}
		out = append(out, st)
	}
	return out, nil
}

func resolveAll(names []string, lookup func(string) (string, bool), kind string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		id, ok := lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, n)
		}
		out = append(out, id)
	}
	return out, nil
}
