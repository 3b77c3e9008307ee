package app

import (
	"fmt"

	"go.uber.org/zap"

	"mc-lattice/internal/core"
	"mc-lattice/internal/playbook"
	"mc-lattice/internal/sims/lattice"
)

// BuildState creates the lattice described by c. An INI file, when given,
// replaces the registered scenario defaults; overrides are applied last.
func BuildState(c *Config, overrides map[string]string, log *zap.Logger) (*lattice.State, error) {
	var st *lattice.State
	if c.ConfigFile != "" {
		cfg, err := lattice.ReadConfigFile(c.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.ConfigFile, err)
		}
		if cfg, err = cfg.With(overrides); err != nil {
			return nil, err
		}
		if st, err = lattice.NewWithConfig(cfg, lattice.WithLogger(log)); err != nil {
			return nil, err
		}
	} else {
		sim, err := core.New(c.Sim, overrides)
		if err != nil {
			return nil, err
		}
		var ok bool
		if st, ok = sim.(*lattice.State); !ok {
			return nil, fmt.Errorf("scenario %q is not a lattice", c.Sim)
		}
		st.SetLogger(log)
	}

	if c.Seed != 0 {
		st.Reset(c.Seed)
	}
	if c.Playbook != "" {
		pb, err := playbook.Load(c.Playbook)
		if err != nil {
			return nil, err
		}
		for _, step := range pb.Steps() {
			log.Debug("playbook command", zap.Int("after", step.After), zap.String("command", step.Command))
		}
		st.SetPlaybook(pb)
	}
	return st, nil
}
