//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"mc-lattice/internal/app"
	"mc-lattice/internal/logging"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var overrides kvList
	flag.Var(&overrides, "set", "lattice override in key=value form (repeatable)")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run", uuid.NewString()))

	set := map[string]string{"paused": "true"}
	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			logger.Fatal("bad override, want key=value", zap.String("set", kv))
		}
		set[k] = v
	}

	st, err := app.BuildState(cfg, set, logger)
	if err != nil {
		logger.Fatal("failed to build lattice", zap.Error(err))
	}

	game := app.New(st, cfg, logger)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("mc-lattice - " + st.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop", zap.Error(err))
	}
}
