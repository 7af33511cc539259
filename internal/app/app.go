// Package app wires the artifact_scorer commands: flag parsing, config and state loading,
// and the score/artifacts/characters/compute/enka/weights flows.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/config"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/logger"
	"github.com/rs/zerolog/log"
)

type Options struct {
	UseExamples bool
	Args        []string

	// Root, Stdout and Now override discovery, os.Stdout and time.Now.
	Root   string
	Stdout io.Writer
	Now    func() time.Time
}

// Run executes the command in os.Args and returns the desired process exit code.
func Run() int {
	return RunWithOptions(Options{Args: os.Args[1:]})
}

// RunWithOptions executes one command and returns the desired process exit code.
func RunWithOptions(opts Options) int {
	appRoot := opts.Root
	if appRoot == "" {
		var err error
		if appRoot, err = FindRoot(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if err := run(context.Background(), appRoot, opts); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != exitOK {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	return exitOK
}

const usage = `usage: artifact_scorer [-config file] [-useExamples] <command> [flags]

commands:
  score       score every character of an imported account
  artifacts   filter, sort and score inventory artifacts
  characters  filter and sort catalog characters
  compute     compute in-game artifact filter configurations from builds
  enka        fetch an Enka showcase and write it as GOOD json
  weights     show, set or reset stat weights`

type command func(ctx context.Context, s *session, args []string) error

var commands = map[string]command{
	"score":      runScore,
	"artifacts":  runArtifacts,
	"characters": runCharacters,
	"compute":    runCompute,
	"enka":       runEnka,
	"weights":    runWeights,
}

func run(ctx context.Context, appRoot string, opts Options) error {
	fs := flag.NewFlagSet("artifact_scorer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath stringOpt
	useExamples := opts.UseExamples
	fs.Var(&configPath, "config", "path to config yaml (default: input/artifact_scorer/config.yaml)")
	fs.BoolVar(&useExamples, "useExamples", useExamples, "use example config from input/artifact_scorer/examples/")
	if err := fs.Parse(opts.Args); err != nil {
		return usageError(fmt.Errorf("%w\n%s", err, usage))
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return usageError(errors.New(usage))
	}
	name, args := strings.ToLower(rest[0]), rest[1:]
	cmd, ok := commands[name]
	if !ok {
		return usageError(fmt.Errorf("unknown command %q\n%s", name, usage))
	}

	path := strings.TrimSpace(configPath.v)
	if path == "" {
		path = filepath.Join("input", "artifact_scorer", "config.yaml")
	}
	if useExamples {
		path = filepath.Join("input", "artifact_scorer", "examples", "config.example.yaml")
	}
	cfg, err := config.LoadConfig(resolve(appRoot, path))
	if err != nil {
		return usageError(err)
	}

	closer, err := logger.Setup(logger.Options{
		Level:      cfg.Logger.Level,
		File:       resolve(appRoot, cfg.Logger.File),
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := newSession(appRoot, cfg, opts.Stdout, opts.Now)
	if err != nil {
		return err
	}

	start := opts.Now()
	log.Debug().Str("command", name).Strs("args", args).Msg("App command started")
	if err := cmd(ctx, s, args); err != nil {
		return err
	}
	log.Debug().Str("command", name).Dur("took", opts.Now().Sub(start)).Msg("App command finished")
	return nil
}

// parseFlags parses command flags; errors become usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitWithError(exitUsage, fmt.Errorf("usage of %s:\n%s", fs.Name(), flagUsage(fs)))
		}
		return usageError(fmt.Errorf("%s: %w", fs.Name(), err))
	}
	if fs.NArg() > 0 {
		return usageError(fmt.Errorf("%s: unexpected arguments %v", fs.Name(), fs.Args()))
	}
	return nil
}

func flagUsage(fs *flag.FlagSet) string {
	var sb strings.Builder
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&sb, "  -%s\t%s\n", f.Name, f.Usage)
	})
	return sb.String()
}
