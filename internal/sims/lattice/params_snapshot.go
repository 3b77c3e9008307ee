package lattice

import "mc-lattice/internal/core"

// Parameters reports configuration and run statistics for the HUD.
func (s *State) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	p := cfg.Params
	t := s.tallies
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.StringParam("layout", "Layout", cfg.Layout),
				core.StringParam("library", "Library", s.lib.Name()),
				core.IntParam("pins_x", "Pins X", cfg.PinsX),
				core.IntParam("pins_y", "Pins Y", cfg.PinsY),
				core.FloatParam("pin_radius", "Pin radius", cfg.PinRadius),
				core.StringParam("boundary", "Boundary", s.bc.String()),
				core.StringParam("pin_type", "Cycle-all pin", s.pinType.String()),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				core.FloatParam("base_speed", "Base speed", p.BaseSpeed),
				core.FloatParam("step_duration", "Step duration", p.StepDuration),
				core.IntParam("source_group", "Source group", p.SourceGroup),
				core.IntParam("fission_group", "Fission group", p.FissionGroup),
				core.IntParam("reset_particles", "Reset particles", p.ResetParticles),
				core.IntParam("max_steps", "Max steps", p.MaxSteps),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("step", "Step", s.step),
				core.IntParam("population", "Population", len(s.particles)),
				core.IntParam("generations", "Generations", len(s.born)),
				core.FloatParam("mean_distance", "Mean dist. to collision", s.MeanDistanceToCollision()),
				core.IntParam("history_resolution", "History resolution", s.historyRes),
				core.BoolParam("paused", "Paused", s.paused),
			},
		},
		{
			Name: "Tallies",
			Params: []core.Parameter{
				core.IntParam("scatter", "Scatter", t.Scatter),
				core.IntParam("capture", "Capture", t.Capture),
				core.IntParam("fission", "Fission", t.Fission),
				core.IntParam("leak", "Leak", t.Leak),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (s *State) ParameterControls() []core.ParameterControl {
	lastGroup := float64(s.lib.Groups() - 1)
	return []core.ParameterControl{
		{Key: "base_speed", Label: "Base speed", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.01, Max: 10, HasMin: true, HasMax: true},
		{Key: "step_duration", Label: "Step duration", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 10, HasMin: true, HasMax: true},
		{Key: "source_group", Label: "Source group", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: lastGroup, HasMin: true, HasMax: true},
		{Key: "fission_group", Label: "Fission group", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: lastGroup, HasMin: true, HasMax: true},
		{Key: "reset_particles", Label: "Reset particles", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 5000, HasMin: true, HasMax: true},
		{Key: "max_steps", Label: "Max steps", Type: core.ParamTypeInt, Step: 100, Min: 0, HasMin: true},
	}
}
