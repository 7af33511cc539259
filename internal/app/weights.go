package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/rs/zerolog/log"
)

const weightsUsage = `usage: artifact_scorer weights <show|set|reset> [flags]
  show  [-char name]
  set   -char name -stat cr -value 80
  set   -global flat_atk -value 50
  reset [-global] [-chars] (no flag resets both)`

func runWeights(_ context.Context, s *session, args []string) error {
	if len(args) == 0 {
		return usageError(errors.New(weightsUsage))
	}
	switch strings.ToLower(args[0]) {
	case "show":
		return weightsShow(s, args[1:])
	case "set":
		return weightsSet(s, args[1:])
	case "reset":
		return weightsReset(s, args[1:])
	}
	return usageError(fmt.Errorf("unknown weights action %q\n%s", args[0], weightsUsage))
}

func weightsShow(s *session, args []string) error {
	fs := flag.NewFlagSet("weights show", flag.ContinueOnError)
	char := fs.String("char", "", "only show this character")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg := s.store.Config()
	fmt.Fprintf(s.out, "global: flat_atk=%g flat_hp=%g flat_def=%g\n", cfg.Global.FlatAtk, cfg.Global.FlatHP, cfg.Global.FlatDef)

	keys := slices.Sorted(maps.Keys(cfg.Characters))
	if *char != "" {
		id, ok := s.cat.CharacterID(*char)
		if !ok {
			return usageError(fmt.Errorf("unknown character %q", *char))
		}
		keys = []string{id}
	}
	for _, k := range keys {
		fmt.Fprintf(s.out, "%s: %s\n", s.cat.CharacterName(k), weightsText(cfg.Weights(k)))
	}
	return nil
}

func weightsSet(s *session, args []string) error {
	fs := flag.NewFlagSet("weights set", flag.ContinueOnError)
	char := fs.String("char", "", "character id or name")
	stat := fs.String("stat", "", "substat key, e.g. cr, atk%, em")
	global := fs.String("global", "", "global weight: flat_atk, flat_hp or flat_def")
	var value stringOpt
	fs.Var(&value, "value", "weight value (>= 0)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !value.set {
		return usageError(errors.New("weights set: -value is required"))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value.v), 64)
	if err != nil {
		return usageError(fmt.Errorf("weights set: invalid value %q", value.v))
	}

	switch {
	case *global != "" && *char == "":
		if err := s.store.SetGlobalWeight(*global, v); err != nil {
			return usageError(err)
		}
		log.Info().Str("key", *global).Float64("value", v).Msg("Weights global set")
	case *char != "" && *global == "":
		id, ok := s.cat.CharacterID(*char)
		if !ok {
			return usageError(fmt.Errorf("unknown character %q", *char))
		}
		st, ok := domain.ParseStat(*stat)
		if !ok {
			return usageError(fmt.Errorf("unknown stat %q", *stat))
		}
		if err := s.store.SetCharacterWeight(id, st, v); err != nil {
			return usageError(err)
		}
		log.Info().Str("character", id).Str("stat", st.String()).Float64("value", v).Msg("Weights character set")
	default:
		return usageError(errors.New("weights set: give either -char with -stat, or -global"))
	}
	if err := s.saveState(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Weights saved")
	return nil
}

func weightsReset(s *session, args []string) error {
	fs := flag.NewFlagSet("weights reset", flag.ContinueOnError)
	global := fs.Bool("global", false, "reset the global weights")
	chars := fs.Bool("chars", false, "reset every character's weights")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	switch {
	case *global && !*chars:
		s.store.ResetGlobal()
	case *chars && !*global:
		s.store.ResetCharacterWeights()
	default:
		s.store.ResetConfig()
	}
	if err := s.saveState(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Weights reset")
	return nil
}

func weightsText(w domain.WeightMap) string {
	if len(w) == 0 {
		return "(none)"
	}
	stats := slices.SortedFunc(maps.Keys(w), func(a, b domain.Stat) int {
		return strings.Compare(a.String(), b.String())
	})
	parts := make([]string, 0, len(stats))
	for _, st := range stats {
		parts = append(parts, fmt.Sprintf("%s=%g", st, w[st]))
	}
	return strings.Join(parts, " ")
}
