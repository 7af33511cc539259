package app

import (
	"fmt"
	"io"
	"time"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/account"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/catalog"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/config"
	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/good"
	"github.com/rs/zerolog/log"
)

// session is what every command works with: loaded config, catalog, persisted state and the
// account store.
type session struct {
	root  string
	cfg   *config.AppConfig
	cat   *catalog.Catalog
	state config.State
	store *account.Store
	out   io.Writer
	now   func() time.Time
}

func newSession(appRoot string, cfg *config.AppConfig, out io.Writer, now func() time.Time) (*session, error) {
	cat, err := catalog.Load(resolve(appRoot, cfg.Paths.Catalog))
	if err != nil {
		return nil, err
	}
	defaults := cat.DefaultScoreConfig()
	st, err := config.LoadState(resolve(appRoot, cfg.Paths.State), defaults)
	if err != nil {
		return nil, err
	}
	store := account.New(defaults)
	if err := store.SetConfig(st.Weights); err != nil {
		return nil, err
	}
	return &session{root: appRoot, cfg: cfg, cat: cat, state: st, store: store, out: out, now: now}, nil
}

func (s *session) path(p string) string { return resolve(s.root, p) }

// importGOOD loads a GOOD file into the store. An empty path falls back to paths.good.
func (s *session) importGOOD(path string) error {
	if path == "" {
		path = s.cfg.Paths.Good
	}
	d, err := good.ReadFile(s.path(path))
	if err != nil {
		return err
	}
	acc, warns := good.Convert(d, s.cat)
	for _, w := range warns {
		fmt.Fprintf(s.out, "WARN: %s\n", w)
	}
	s.store.Replace(acc)
	log.Info().Int("characters", len(acc.Characters)).Int("artifacts", len(acc.AllArtifacts())).
		Int("warnings", len(warns)).Msg("Import GOOD loaded")
	return nil
}

// saveState persists the store's weights together with the rest of the state.
func (s *session) saveState() error {
	s.state.Weights = s.store.Config()
	if err := config.SaveState(s.path(s.cfg.Paths.State), s.state); err != nil {
		return err
	}
	log.Debug().Str("path", s.path(s.cfg.Paths.State)).Msg("State saved")
	return nil
}

func (s *session) outDir() string { return s.path(s.cfg.Paths.OutDir) }
