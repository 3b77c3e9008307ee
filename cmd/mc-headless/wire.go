//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"

	"mc-lattice/internal/app"
)

func initializeRun(c *app.Config, o app.Overrides) (*app.Run, func(), error) {
	wire.Build(app.ProviderSet)
	return nil, nil, nil
}
