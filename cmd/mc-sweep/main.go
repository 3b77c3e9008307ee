// Command mc-sweep runs independent lattice simulations over a grid of seeds,
// boundary conditions and layouts and prints a summary table. The lattice
// flags (-pins-x, -radius, -particles and so on) set the base configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mc-lattice/internal/logging"
	"mc-lattice/internal/sims/lattice"
)

type scenario struct {
	layout   string
	boundary lattice.BoundaryCondition
	seed     int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s/%s/seed=%d", s.layout, s.boundary, s.seed)
}

type result struct {
	scenario    scenario
	steps       int
	population  int
	peak        int
	generations int
	extinctAt   int
	tallies     lattice.Tallies
	fingerprint uint64
	history     []int
	historyRes  int
}

func main() {
	base := lattice.DefaultConfig()
	base.Seed = 1
	base.Params.ResetParticles = 500
	base.Params.BaseSpeed = 1
	base.Bind(flag.CommandLine)
	steps := flag.Int("steps", 2000, "steps to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent simulations")
	seeds := flag.Int("seeds", 4, "seeds per layout and boundary condition, counting up from -seed")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	plot := flag.String("plot", "", "save a population history figure to this file (needs python and matplotlib)")
	flag.Parse()

	logger, err := logging.New(*level, "console")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("sweep", uuid.NewString()))

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	jobs, err := scenarios(base, explicit, *seeds)
	if err != nil {
		logger.Fatal("bad sweep", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping", zap.Int("scenarios", len(jobs)), zap.Int("workers", *workers), zap.Int("steps", *steps))
	start := time.Now()

	results := make([]result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*workers, 1))
	for i, job := range jobs {
		g.Go(func() error {
			res, err := runScenario(ctx, scenarioConfig(base, explicit, job), job, *steps)
			if err != nil {
				return fmt.Errorf("%s: %w", job, err)
			}
			results[i] = res
			logger.Debug("scenario done", zap.Stringer("scenario", job), zap.Int("population", res.population))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("sweep failed", zap.Error(err))
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].scenario, results[j].scenario
		if a.layout != b.layout {
			return a.layout < b.layout
		}
		if a.boundary != b.boundary {
			return a.boundary < b.boundary
		}
		return a.seed < b.seed
	})

	fmt.Printf("%-12s %-10s %6s %7s %6s %6s %5s %8s %8s %8s %8s %8s  %s\n",
		"layout", "boundary", "seed", "steps", "pop", "peak", "gens", "scatter", "capture", "fission", "leak", "extinct", "digest")
	for _, r := range results {
		extinct := "-"
		if r.extinctAt >= 0 {
			extinct = fmt.Sprint(r.extinctAt)
		}
		fmt.Printf("%-12s %-10s %6d %7d %6d %6d %5d %8d %8d %8d %8d %8s  %016x\n",
			r.scenario.layout, r.scenario.boundary, r.scenario.seed, r.steps, r.population, r.peak,
			r.generations, r.tallies.Scatter, r.tallies.Capture, r.tallies.Fission, r.tallies.Leak, extinct, r.fingerprint)
	}
	logger.Info("sweep finished", zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)))

	if *plot != "" {
		plotHistories(results, *plot)
		logger.Info("wrote figure", zap.String("file", *plot))
	}
}

// scenarios expands the sweep grid. Both layouts and both boundary
// conditions are swept unless -layout or -boundary was given explicitly.
func scenarios(base lattice.Config, explicit map[string]bool, seeds int) ([]scenario, error) {
	layouts := []string{lattice.LayoutAssembly, lattice.LayoutSinglePin}
	if explicit["layout"] {
		layouts = []string{base.Layout}
	}
	boundaries := []lattice.BoundaryCondition{lattice.Vacuum, lattice.Reflective}
	if explicit["boundary"] {
		bc, err := lattice.ParseBoundaryCondition(base.Boundary)
		if err != nil {
			return nil, err
		}
		boundaries = []lattice.BoundaryCondition{bc}
	}
	var jobs []scenario
	for _, layout := range layouts {
		for _, bc := range boundaries {
			for i := 0; i < seeds; i++ {
				jobs = append(jobs, scenario{layout: layout, boundary: bc, seed: base.Seed + int64(i)})
			}
		}
	}
	return jobs, nil
}

// scenarioConfig derives one scenario's lattice from the flag-bound base.
// The single pin keeps its own radius unless -radius was given.
func scenarioConfig(base lattice.Config, explicit map[string]bool, sc scenario) lattice.Config {
	cfg := base
	cfg.Layout = sc.layout
	if sc.layout == lattice.LayoutSinglePin && !explicit["radius"] {
		cfg.PinRadius = lattice.SinglePinConfig().PinRadius
	}
	cfg.Seed = sc.seed
	cfg.Boundary = sc.boundary.String()
	return cfg
}

func runScenario(ctx context.Context, cfg lattice.Config, sc scenario, steps int) (result, error) {
	st, err := lattice.NewWithConfig(cfg)
	if err != nil {
		return result{}, err
	}

	res := result{scenario: sc, peak: st.Population(), extinctAt: -1}
	for i := 0; i < steps; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}
		st.Step()
		res.peak = max(res.peak, st.Population())
		if st.Population() == 0 {
			res.extinctAt = st.Steps()
			break
		}
	}
	res.steps = st.Steps()
	res.population = st.Population()
	res.generations = len(st.GenerationBorn())
	res.tallies = st.Tallies()
	res.fingerprint = st.Fingerprint()
	res.history = append([]int(nil), st.PopulationHistory()...)
	res.historyRes = st.HistoryResolution()
	return res, nil
}
