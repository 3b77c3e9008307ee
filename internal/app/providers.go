package app

import (
	"github.com/google/uuid"
	"github.com/google/wire"
	"go.uber.org/zap"

	"mc-lattice/internal/logging"
	"mc-lattice/internal/sims/lattice"
)

// Overrides holds -set key=value pairs applied on top of the scenario.
type Overrides map[string]string

// Run is a ready-to-step lattice together with its logger.
type Run struct {
	Log   *zap.Logger
	State *lattice.State
}

// ProviderSet builds a Run from a Config and its overrides.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideState,
	wire.Struct(new(Run), "*"),
)

// ProvideLogger builds the run logger tagged with a fresh run id. The
// cleanup flushes it.
func ProvideLogger(c *Config) (*zap.Logger, func(), error) {
	l, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	l = l.With(zap.String("run", uuid.NewString()))
	return l, func() { _ = l.Sync() }, nil
}

// ProvideState builds the lattice selected by c with the overrides applied.
func ProvideState(c *Config, o Overrides, log *zap.Logger) (*lattice.State, error) {
	return BuildState(c, o, log)
}
