// Package account holds the imported account together with the weight configuration and
// caches per-character scores until either changes.
package account

import (
	"fmt"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/score"
	"github.com/rs/zerolog/log"
)

// Store is not safe for concurrent use.
type Store struct {
	data     *domain.AccountData
	cfg      domain.ScoreConfig
	defaults domain.ScoreConfig

	scores map[string]score.CharacterResult
	stale  bool
}

// New starts with a copy of defaults as the active configuration.
func New(defaults domain.ScoreConfig) *Store {
	return &Store{
		cfg:      defaults.Clone(),
		defaults: defaults.Clone(),
		stale:    true,
	}
}

// Replace swaps in a freshly imported account.
func (s *Store) Replace(data domain.AccountData) {
	s.data = &data
	s.invalidate()
}

// Clear drops the account; weights are kept.
func (s *Store) Clear() {
	s.data = nil
	s.invalidate()
}

func (s *Store) HasData() bool { return s.data != nil }

// Data returns the current account, the zero value when nothing was imported.
func (s *Store) Data() domain.AccountData {
	if s.data == nil {
		return domain.AccountData{}
	}
	return *s.data
}

// Config returns a copy of the active weights.
func (s *Store) Config() domain.ScoreConfig { return s.cfg.Clone() }

// SetConfig replaces the weights, e.g. from a saved state file.
func (s *Store) SetConfig(cfg domain.ScoreConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("score config: %w", err)
	}
	s.cfg = cfg.Clone()
	if s.cfg.Characters == nil {
		s.cfg.Characters = map[string]domain.WeightMap{}
	}
	s.invalidate()
	return nil
}

func (s *Store) SetCharacterWeight(charKey string, stat domain.Stat, value float64) error {
	w := domain.WeightMap{stat: value}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%s: %w", charKey, err)
	}
	if s.cfg.Characters == nil {
		s.cfg.Characters = map[string]domain.WeightMap{}
	}
	if s.cfg.Characters[charKey] == nil {
		s.cfg.Characters[charKey] = domain.WeightMap{}
	}
	s.cfg.Characters[charKey][stat] = value
	s.invalidate()
	return nil
}

func (s *Store) SetGlobalWeight(key string, value float64) error {
	if err := s.cfg.Global.Set(key, value); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ResetConfig restores global and per-character weights to the defaults.
func (s *Store) ResetConfig() {
	s.cfg = s.defaults.Clone()
	s.invalidate()
}

func (s *Store) ResetGlobal() {
	s.cfg.Global = s.defaults.Global
	s.invalidate()
}

func (s *Store) ResetCharacterWeights() {
	s.cfg.Characters = s.defaults.Clone().Characters
	s.invalidate()
}

// Stale reports whether the next Scores call recomputes.
func (s *Store) Stale() bool { return s.stale }

func (s *Store) invalidate() {
	s.stale = true
}

// Scores returns per-character results keyed by character key, recomputing after any change.
// The returned map is shared and must not be modified.
func (s *Store) Scores() map[string]score.CharacterResult {
	if !s.stale && s.scores != nil {
		return s.scores
	}
	data := s.Data()
	s.scores = make(map[string]score.CharacterResult, len(data.Characters))
	for _, c := range data.Characters {
		s.scores[c.Key] = score.Character(c, s.cfg)
	}
	s.stale = false
	log.Debug().Int("characters", len(s.scores)).Msg("Account scores recomputed")
	return s.scores
}

func (s *Store) CharacterScore(charKey string) (score.CharacterResult, bool) {
	r, ok := s.Scores()[charKey]
	return r, ok
}

// ArtifactScore scores one artifact with a character's weights.
func (s *Store) ArtifactScore(charKey string, a domain.Artifact) score.ArtifactResult {
	return score.Artifact(a, s.cfg.Weights(charKey), s.cfg.Global)
}
