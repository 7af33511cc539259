package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/filter"
	"gopkg.in/yaml.v3"
)

// StateVersion is bumped whenever the state layout changes; other versions are rejected.
const StateVersion = 1

// State is what the tool persists between runs.
type State struct {
	Version          int                     `yaml:"version"`
	Weights          domain.ScoreConfig      `yaml:"weights"`
	CharacterFilters filter.CharacterFilters `yaml:"character_filters"`
	Compute          domain.ComputeOptions   `yaml:"compute"`
}

// DefaultState starts from the catalog's weights.
func DefaultState(weights domain.ScoreConfig) State {
	return State{
		Version:          StateVersion,
		Weights:          weights.Clone(),
		CharacterFilters: filter.DefaultCharacterFilters(),
		Compute:          domain.DefaultComputeOptions(),
	}
}

// LoadState reads a state file. A missing file yields DefaultState(defaults); keys absent from
// the file keep their default values.
func LoadState(path string, defaults domain.ScoreConfig) (State, error) {
	st := DefaultState(defaults)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return State{}, fmt.Errorf("read state yaml %s: %w", path, err)
	}

	st.Version = 0
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultState(defaults), nil
		}
		return State{}, fmt.Errorf("parse state yaml %s: %w", path, err)
	}
	if st.Version != StateVersion {
		return State{}, fmt.Errorf("state %s: unsupported version %d (expected %d)", path, st.Version, StateVersion)
	}
	if st.Weights.Characters == nil {
		st.Weights.Characters = map[string]domain.WeightMap{}
	}
	if err := st.Weights.Validate(); err != nil {
		return State{}, fmt.Errorf("state %s: weights: %w", path, err)
	}
	return st, nil
}

// SaveState writes the state atomically (temp file + rename).
func SaveState(path string, st State) error {
	st.Version = StateVersion
	b, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
