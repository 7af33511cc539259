package app

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/compute"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/config"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/output"
	"github.com/rs/zerolog/log"
)

func runCompute(_ context.Context, s *session, args []string) error {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	buildsPath := fs.String("builds", "", "builds yaml (default: paths.builds)")
	var skipCrit, expandGoblet, expandCirclet, mergeFlex, rigid boolOpt
	fs.Var(&skipCrit, "skip-crit", "skip builds that need both cr and cd")
	fs.Var(&expandGoblet, "expand-goblet", "widen 4pc elemental goblets to every element")
	fs.Var(&expandCirclet, "expand-circlet", "widen cr or cd circlets to both")
	fs.Var(&mergeFlex, "merge-flex", "merge configurations that differ in one flexible substat")
	fs.Var(&rigid, "rigid", "promote configurations to a common required subset")
	goodPath := fs.String("good", "", "GOOD json to check against the filters (optional)")
	mdPath := fs.String("out", "", "markdown output path (default: out_dir/<date>_artifact_filters.md)")
	noXLSX := fs.Bool("no-xlsx", false, "skip the xlsx export")
	save := fs.Bool("save", false, "save the compute options to the state file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	opts := s.state.Compute
	overlay := func(o boolOpt, dst *bool) {
		if o.set {
			*dst = o.v
		}
	}
	overlay(skipCrit, &opts.SkipCritBuilds)
	overlay(expandGoblet, &opts.ExpandElementalGoblet)
	overlay(expandCirclet, &opts.ExpandCritCirclet)
	overlay(mergeFlex, &opts.MergeSingleFlexVariants)
	overlay(rigid, &opts.FindRigidCommonSubset)

	path := *buildsPath
	if path == "" {
		path = s.cfg.Paths.Builds
	}
	halfSets := s.cat.HalfSetIndex()
	bf, err := config.LoadBuilds(s.path(path), s.cat, halfSets)
	if err != nil {
		return err
	}
	builds, err := bf.Builds()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	filters := compute.Filters(bf.Groups, opts, halfSets)
	configs := 0
	for _, f := range filters {
		configs += len(f.Configurations)
	}
	log.Info().Int("builds", len(builds)).Int("sets", len(filters)).Int("configs", configs).Msg("Compute filters done")

	now := s.now()
	md := *mdPath
	if md == "" {
		md = filepath.Join(s.outDir(), now.Format("20060102")+"_artifact_filters.md")
	} else {
		md = s.path(md)
	}
	if err := output.WriteTextFile(md, output.FiltersMarkdown(filters, bf.Groups, s.cat, now)); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Wrote %d configuration(s) for %d set(s) to %s\n", configs, len(filters), md)

	if !*noXLSX {
		xlsxPath, err := output.ExportFiltersXLSX(s.outDir(), filters, s.cat, now)
		if err != nil {
			return fmt.Errorf("export filters: %w", err)
		}
		fmt.Fprintf(s.out, "Wrote %s\n", xlsxPath)
	}

	output.PrintChances(s.out, filters, s.cat)

	if *goodPath != "" {
		if err := s.importGOOD(*goodPath); err != nil {
			return err
		}
		output.PrintMatches(s.out, s.store.Data().AllArtifacts(), filters)
	}

	if !*save {
		return nil
	}
	s.state.Compute = opts
	return s.saveState()
}
