package lattice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"mc-lattice/internal/core"
	"mc-lattice/internal/playbook"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

func newState(t *testing.T, cfg Config) *State {
	t.Helper()
	s, err := NewWithConfig(cfg)
	require.NoError(t, err)
	return s
}

func sum(vals []int) int {
	n := 0
	for _, v := range vals {
		n += v
	}
	return n
}

func TestResetSpawnsParticles(t *testing.T) {
	s := newState(t, DefaultConfig())
	assert.Equal(t, 10, s.Population())
	assert.Equal(t, []int{10}, s.GenerationBorn())
	assert.Equal(t, []int{10}, s.GenerationPopulation())
	assert.Equal(t, core.Bounds{W: 17, H: 17}, s.Bounds())
	for _, p := range s.Particles() {
		assert.Equal(t, geom.V(8.5, 8.5), p.Location)
		assert.Equal(t, 6, p.Group)
		assert.NotNil(t, p.Material)
	}
}

func TestNewWithConfigErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Library = "nope"
	_, err := NewWithConfig(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Fuel = "Plutonium"
	_, err = NewWithConfig(cfg)
	assert.ErrorIs(t, err, xs.ErrUnknownMaterial)

	cfg = DefaultConfig()
	cfg.Params.SourceGroup = 7
	_, err = NewWithConfig(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNonFissileFuelWarns(t *testing.T) {
	zc, logs := observer.New(zap.WarnLevel)
	cfg := DefaultConfig()
	cfg.Fuel = "Moderator"
	_, err := NewWithConfig(cfg, WithLogger(zap.New(zc)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("fuel material has no fission cross section").Len())

	zc, logs = observer.New(zap.WarnLevel)
	_, err = NewWithConfig(DefaultConfig(), WithLogger(zap.New(zc)))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestPopulationInvariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.ResetParticles = 200
	s := newState(t, cfg)
	for i := 0; i < 200; i++ {
		s.Step()
		require.Equal(t, s.Population(), sum(s.GenerationPopulation()), "step %d", i)
		require.Equal(t, s.Population(), sum(s.Spectrum()))
	}
	assert.Equal(t, 200, s.Steps())
	assert.Positive(t, s.Tallies().Total())
}

func TestDeterministicForSeed(t *testing.T) {
	run := func(seed int64) uint64 {
		cfg := DefaultConfig()
		cfg.Seed = seed
		cfg.Params.ResetParticles = 50
		s := newState(t, cfg)
		for i := 0; i < 100; i++ {
			s.Step()
		}
		return s.Fingerprint()
	}
	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))
}

func TestResetReseeds(t *testing.T) {
	s := newState(t, DefaultConfig())
	for i := 0; i < 20; i++ {
		s.Step()
	}
	first := s.Fingerprint()
	s.Reset(0)
	for i := 0; i < 20; i++ {
		s.Step()
	}
	assert.Equal(t, first, s.Fingerprint())
}

func TestHardResetStartsFreshHistory(t *testing.T) {
	s := newState(t, DefaultConfig())
	for i := 0; i < 20; i++ {
		s.Step()
	}
	first := s.Fingerprint()
	s.HardReset()
	assert.Zero(t, s.Steps())
	for i := 0; i < 20; i++ {
		s.Step()
	}
	assert.NotEqual(t, first, s.Fingerprint())
}

func TestVacuumPopulationDiesOut(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Params.ResetParticles = 0
	cfg.Params.BaseSpeed = 5
	s := newState(t, cfg)
	s.AddParticles(geom.V(5, 5), 1500)
	require.Equal(t, 1500, s.Population())

	for i := 0; i < 20000 && s.Population() > 0; i++ {
		s.Step()
	}
	assert.Zero(t, s.Population())
	tallies := s.Tallies()
	assert.Positive(t, tallies.Leak)
	assert.Positive(t, tallies.Capture)
	assert.Equal(t, tallies.Leak+tallies.Capture+tallies.Fission, sum(s.GenerationBorn()))
}

func TestToggleBoundaryMidRun(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Params.ResetParticles = 0
	cfg.Params.BaseSpeed = 5
	s := newState(t, cfg)
	s.AddParticles(geom.V(5, 5), 1500)

	for i := 0; i < 5; i++ {
		s.Step()
	}
	leaks := s.Tallies().Leak
	steps := s.Steps()

	s.ToggleBoundaryCondition()
	require.Equal(t, Reflective, s.BoundaryCondition())
	// The population carries over.
	assert.Equal(t, steps, s.Steps())
	assert.Positive(t, s.Population())

	for i := 0; i < 300; i++ {
		s.Step()
		for _, p := range s.Particles() {
			require.True(t, s.Mesh().Contains(p.Location))
		}
	}
	assert.Equal(t, leaks, s.Tallies().Leak)
	assert.Equal(t, steps+300, s.Steps())
}

func TestHistoryHalvesResolution(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Boundary = Reflective.String()
	cfg.Params.MaxHistory = 4
	s := newState(t, cfg)
	for i := 0; i < 10; i++ {
		s.Step()
	}
	assert.Equal(t, 4, s.HistoryResolution())
	assert.Len(t, s.PopulationHistory(), 3)
}

func TestTicHonorsPauseAndStepLimit(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Paused = true
	cfg.Params.MaxSteps = 3
	s := newState(t, cfg)

	s.Tic(false)
	assert.Equal(t, 0, s.Steps())
	s.Tic(true)
	assert.Equal(t, 1, s.Steps())

	s.TogglePause()
	for i := 0; i < 5; i++ {
		s.Tic(false)
	}
	assert.Equal(t, 3, s.Steps())
	assert.True(t, s.Paused())
}

func TestContinuousSource(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Params.ResetParticles = 0
	s := newState(t, cfg)

	s.SetSource(geom.V(5, 5))
	s.Step()
	s.Step()
	assert.Equal(t, 2, s.GenerationBorn()[0])
	loc, ok := s.Source()
	assert.True(t, ok)
	assert.Equal(t, geom.V(5, 5), loc)

	s.ClearSource()
	s.Step()
	assert.Equal(t, 2, s.GenerationBorn()[0])
}

func TestSinglePinCenterDistance(t *testing.T) {
	s := newState(t, SinglePinConfig())
	regions := s.Mesh().Regions()
	require.Len(t, regions, 1)
	d := regions[0].Shape.DistanceToSurface(geom.V(0, 0), geom.Direction(0.5), false)
	assert.Equal(t, 1.0, d)
	assert.Equal(t, "UO2", s.Mesh().MaterialAt(geom.V(0.1, 0.1)).Name)
	assert.Equal(t, "Moderator", s.Mesh().MaterialAt(geom.V(5, 5)).Name)
}

func TestCycleShapeAt(t *testing.T) {
	s := newState(t, SinglePinConfig())
	at := geom.V(0.5, 0.5)

	pin, ok := s.PinTypeAt(at)
	require.True(t, ok)
	assert.Equal(t, core.PinFuel, pin)

	want := []core.PinType{core.PinModerator, core.PinControl, core.PinVoid, core.PinFuel}
	for _, w := range want {
		s.CycleShapeAt(at)
		pin, _ = s.PinTypeAt(at)
		assert.Equal(t, w, pin)
	}

	// Outside every shape nothing changes.
	s.CycleShapeAt(geom.V(5, 5))
	_, bg := s.Mesh().Background()
	assert.Equal(t, "Moderator", bg.Name)
}

func TestSetMaterialAtResamples(t *testing.T) {
	cfg := SinglePinConfig()
	cfg.Params.ResetParticles = 200
	s := newState(t, cfg)

	s.SetMaterialAt(geom.V(5, 5), core.PinVoid)
	_, bg := s.Mesh().Background()
	assert.Equal(t, "Void", bg.Name)

	// Flights in the near-vacuum background are far longer than the domain.
	long := 0
	for _, p := range s.Particles() {
		if p.Distance > 20 {
			long++
		}
	}
	assert.Greater(t, long, 180)
}

func TestCycleAll(t *testing.T) {
	s := newState(t, DefaultConfig())
	s.CycleAll()
	for _, r := range s.Mesh().Regions() {
		pin, ok := s.PinTypeOf(r.Material)
		require.True(t, ok)
		assert.Equal(t, core.PinModerator, pin)
	}
	s.CycleAll()
	pin, _ := s.PinTypeAt(geom.V(0.5, 0.5))
	assert.Equal(t, core.PinControl, pin)
}

func TestControlAliasClassifiesAsControl(t *testing.T) {
	s := newState(t, DefaultConfig())
	pin, ok := s.PinTypeOf(s.Library().MustByName("Black"))
	require.True(t, ok)
	assert.Equal(t, core.PinControl, pin)
}

func TestPlaybookDrivesState(t *testing.T) {
	pb, err := playbook.Parse(strings.NewReader("0 add_particles 5 5 3\n2 toggle_boundary\n0 halt\n"))
	require.NoError(t, err)

	cfg := SinglePinConfig()
	cfg.Params.ResetParticles = 0
	s := newState(t, cfg)
	s.SetPlaybook(pb)
	assert.Equal(t, 0, s.TicsToNextCommand())

	s.Step()
	assert.Equal(t, 3, s.GenerationBorn()[0])
	s.Step()
	assert.Equal(t, Vacuum, s.BoundaryCondition())
	s.Step()
	assert.Equal(t, Reflective, s.BoundaryCondition())
	assert.Equal(t, playbook.Never, s.TicsToNextCommand())

	s.HardReset()
	assert.Equal(t, 0, s.TicsToNextCommand())
}

func TestParametersSnapshot(t *testing.T) {
	s := newState(t, DefaultConfig())
	snap := s.Parameters()
	p, ok := snap.Lookup("population")
	require.True(t, ok)
	assert.Equal(t, "10", p.Value)
	p, ok = snap.Lookup("boundary")
	require.True(t, ok)
	assert.Equal(t, "vacuum", p.Value)
}

func TestSetParameters(t *testing.T) {
	s := newState(t, DefaultConfig())
	assert.True(t, s.SetFloatParameter("base_speed", 100))
	assert.Equal(t, 10.0, s.Config().Params.BaseSpeed)
	assert.True(t, s.SetIntParameter("source_group", 9))
	assert.Equal(t, 6, s.Config().Params.SourceGroup)
	assert.False(t, s.SetFloatParameter("source_group", 1))
	assert.False(t, s.SetIntParameter("nope", 1))
}

func TestRegisteredScenarios(t *testing.T) {
	sim, err := core.New(LayoutSinglePin, map[string]string{"seed": "7"})
	require.NoError(t, err)
	assert.Equal(t, LayoutSinglePin, sim.Name())
	assert.Equal(t, core.Bounds{W: 10, H: 10}, sim.Bounds())

	_, err = core.New(LayoutAssembly, map[string]string{"pin_radius": "0.6"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
