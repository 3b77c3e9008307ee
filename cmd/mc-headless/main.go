// Command mc-headless runs a lattice without a window and logs population
// statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"mc-lattice/internal/app"
	"mc-lattice/internal/stream"
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
	flag.StringVar(&cfg.Sim, "sim", cfg.Sim, "scenario to run")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed (0 keeps the configured seed)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "INI run configuration")
	flag.StringVar(&cfg.Playbook, "playbook", "", "playbook file (.txt or .yaml)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	steps := flag.Int("steps", 1000, "steps to run")
	every := flag.Int("every", 100, "log statistics every n steps (0 disables)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console or json")
	untilEmpty := flag.Bool("until-empty", false, "stop early once the population reaches zero")
	serve := flag.String("serve", "", "stream statistics to websocket subscribers at this address (path /ws)")
	var overrides kvList
	flag.Var(&overrides, "set", "lattice override in key=value form (repeatable)")
	flag.Parse()

	set := app.Overrides{}
	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "bad -set %q, want key=value\n", kv)
			os.Exit(2)
		}
		set[k] = v
	}

	run, cleanup, err := initializeRun(cfg, set)
	if err != nil {
		log.Fatalf("failed to build lattice: %v", err)
	}
	defer cleanup()
	logger, st := run.Log, run.State
	st.SetPaused(false)

	var hub *stream.Hub
	if *serve != "" {
		hub = stream.NewHub(logger)
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: *serve, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("stats server", zap.Error(err))
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		logger.Info("streaming statistics", zap.String("addr", *serve))
	}
	publish := func() {
		if hub == nil {
			return
		}
		if err := hub.Broadcast(stream.FrameOf(st)); err != nil {
			logger.Warn("broadcast failed", zap.Error(err))
		}
	}

	logger.Info("starting",
		zap.String("sim", st.Name()),
		zap.Int("particles", st.Population()),
		zap.Stringer("boundary", st.BoundaryCondition()),
		zap.Int("steps", *steps),
	)

	for i := 0; i < *steps; i++ {
		st.Tic(false)
		if st.Paused() {
			break
		}
		if *every > 0 && st.Steps()%*every == 0 {
			t := st.Tallies()
			logger.Info("stats",
				zap.Int("step", st.Steps()),
				zap.Int("population", st.Population()),
				zap.Int("generations", len(st.GenerationBorn())),
				zap.Float64("mean_distance", st.MeanDistanceToCollision()),
				zap.Int("scatter", t.Scatter),
				zap.Int("capture", t.Capture),
				zap.Int("fission", t.Fission),
				zap.Int("leak", t.Leak),
			)
			publish()
		}
		if *untilEmpty && st.Population() == 0 {
			break
		}
	}

	publish()
	t := st.Tallies()
	logger.Info("finished",
		zap.Int("step", st.Steps()),
		zap.Int("population", st.Population()),
		zap.Ints("generation_born", st.GenerationBorn()),
		zap.Ints("spectrum", st.Spectrum()),
		zap.Int("scatter", t.Scatter),
		zap.Int("capture", t.Capture),
		zap.Int("fission", t.Fission),
		zap.Int("leak", t.Leak),
		zap.String("fingerprint", fmt.Sprintf("%016x", st.Fingerprint())),
	)
}
