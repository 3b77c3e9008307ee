// Package lattice implements the Monte Carlo neutron transport stepper for a
// 2D pin lattice.
package lattice

import (
	"fmt"

	"go.uber.org/zap"

	"mc-lattice/internal/core"
	"mc-lattice/internal/logging"
	"mc-lattice/internal/playbook"
	"mc-lattice/internal/transport"
	pcore "mc-lattice/pkg/core"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// State owns the particle population and advances it one step at a time.
type State struct {
	cfg Config
	log *zap.Logger

	lib     *xs.Library
	palette map[core.PinType]pin
	mesh    *transport.Mesh
	rng     *pcore.RNG

	particles []transport.Particle
	// spawned collects fission children during the interaction pass.
	spawned []transport.Particle
	queue   []int

	born  []int
	alive []int

	history    []int
	historyRes int
	step       int
	tallies    Tallies

	bc            BoundaryCondition
	paused        bool
	hasSource     bool
	source        geom.Vec2
	pinType       core.PinType
	showWaypoints bool

	playbook     *playbook.Playbook
	sinceCommand int
	nextCommand  int
}

// Option customizes a State.
type Option func(*State)

// WithLogger routes state changes to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.log = logging.OrNop(l) }
}

// WithPlaybook attaches a command schedule before the first reset.
func WithPlaybook(p *playbook.Playbook) Option {
	return func(s *State) { s.playbook = p }
}

// New returns the default assembly.
func New() *State {
	s, err := NewWithConfig(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfig builds the geometry described by cfg and performs a hard
// reset. Unknown libraries or material names are reported as errors.
func NewWithConfig(cfg Config, opts ...Option) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lib, err := xs.Lookup(cfg.Library)
	if err != nil {
		return nil, err
	}
	tables, err := cfg.materialTables()
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if _, err := lib.LoadTable(t.name, t.path); err != nil {
			return nil, err
		}
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	if cfg.Params.SourceGroup >= lib.Groups() || cfg.Params.FissionGroup >= lib.Groups() {
		return nil, fmt.Errorf("%w: library %s has %d energy groups", ErrInvalidConfig, lib.Name(), lib.Groups())
	}
	palette, err := buildPalette(lib, cfg)
	if err != nil {
		return nil, err
	}
	mesh, err := buildMesh(lib, cfg, palette)
	if err != nil {
		return nil, err
	}
	bc, err := ParseBoundaryCondition(cfg.Boundary)
	if err != nil {
		return nil, err
	}

	s := &State{
		cfg:         cfg,
		log:         zap.NewNop(),
		lib:         lib,
		palette:     palette,
		mesh:        mesh,
		rng:         pcore.NewRNG(cfg.Seed),
		bc:          bc,
		paused:      cfg.Paused,
		nextCommand: playbook.Never,
	}
	for _, opt := range opts {
		opt(s)
	}
	if fuel := palette[core.PinFuel].material; !fuel.Fissile() {
		s.log.Warn("fuel material has no fission cross section", zap.String("material", fuel.Name))
	}
	s.HardReset()
	return s, nil
}

// Name returns the layout identifier.
func (s *State) Name() string { return s.cfg.Layout }

// Bounds reports the domain size.
func (s *State) Bounds() core.Bounds {
	return core.Bounds{W: s.mesh.Width(), H: s.mesh.Height()}
}

// Config returns the active configuration.
func (s *State) Config() Config { return s.cfg }

// Reset reseeds the generator and performs a hard reset. A zero seed reuses
// the configured one.
func (s *State) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.rng = pcore.NewRNG(effective)
	s.HardReset()
}

// HardReset clears the population and rewinds the playbook.
func (s *State) HardReset() {
	s.SoftReset()
	s.sinceCommand = 0
	s.nextCommand = playbook.Never
	if s.playbook != nil {
		s.playbook.Reset()
		s.nextCommand = s.playbook.TicsToNext()
	}
}

// SoftReset clears the population, statistics and history, then spawns the
// configured number of source particles. Playbook progress is kept.
func (s *State) SoftReset() {
	clear(s.particles)
	s.particles = s.particles[:0]
	s.spawned = s.spawned[:0]
	s.queue = s.queue[:0]
	s.born = append(s.born[:0], 0)
	s.alive = append(s.alive[:0], 0)
	s.history = s.history[:0]
	s.historyRes = 1
	s.step = 0
	s.tallies = Tallies{}
	s.mesh.ResetStats()

	s.AddParticles(s.resetLocation(), s.cfg.Params.ResetParticles)
	s.log.Debug("reset", zap.Int("particles", len(s.particles)), zap.Stringer("boundary", s.bc))
}

func (s *State) resetLocation() geom.Vec2 {
	loc := geom.V(s.cfg.ResetX, s.cfg.ResetY)
	if loc.X < 0 {
		loc.X = s.mesh.Width() / 2
	}
	if loc.Y < 0 {
		loc.Y = s.mesh.Height() / 2
	}
	return loc
}

// Tic advances one step unless paused. force steps a paused simulation once.
func (s *State) Tic(force bool) {
	if s.paused && !force {
		return
	}
	if limit := s.cfg.Params.MaxSteps; limit > 0 && s.step >= limit {
		if !s.paused {
			s.paused = true
			s.log.Info("step limit reached, pausing", zap.Int("steps", s.step))
		}
		return
	}
	s.Step()
}

// Step runs one discrete time step regardless of the pause state.
func (s *State) Step() {
	s.runPlaybook()

	if s.hasSource {
		s.AddParticles(s.source, 1)
	}

	p := s.cfg.Params
	s.queue = s.queue[:0]
	for i := range s.particles {
		pt := &s.particles[i]
		due := pt.Advance(p.StepDuration, p.BaseSpeed)
		if !s.mesh.Contains(pt.Location) {
			switch s.bc {
			case Vacuum:
				pt.Alive = false
				s.alive[pt.Generation]--
				s.tallies.Leak++
			case Reflective:
				s.reflect(pt)
				s.mesh.Transport(pt, s.rng)
			}
			continue
		}
		if due {
			s.queue = append(s.queue, i)
		}
	}

	for _, i := range s.queue {
		s.interact(i)
	}
	s.particles = append(s.particles, s.spawned...)
	clear(s.spawned)
	s.spawned = s.spawned[:0]

	s.compact()
	s.recordHistory()
	s.step++
	s.checkPopulation()
}

func (s *State) runPlaybook() {
	if s.playbook == nil || s.nextCommand == playbook.Never {
		return
	}
	if s.sinceCommand >= s.nextCommand {
		s.log.Debug("executing playbook", zap.Int("step", s.step))
		s.nextCommand = s.playbook.ExecuteNext(s)
		s.sinceCommand = 0
		if s.nextCommand == playbook.Never {
			s.log.Info("playbook finished", zap.Int("step", s.step))
			return
		}
	}
	s.sinceCommand++
}

// reflect clamps each offending coordinate to the domain edge and mirrors the
// matching direction component.
func (s *State) reflect(p *transport.Particle) {
	w, h := s.mesh.Width(), s.mesh.Height()
	if p.Location.X < 0 {
		p.Location.X = 0
		p.Direction.X = -p.Direction.X
	}
	if p.Location.X > w {
		p.Location.X = w
		p.Direction.X = -p.Direction.X
	}
	if p.Location.Y < 0 {
		p.Location.Y = 0
		p.Direction.Y = -p.Direction.Y
	}
	if p.Location.Y > h {
		p.Location.Y = h
		p.Direction.Y = -p.Direction.Y
	}
}

// interact samples and applies the collision outcome of particle i. Children
// go to the spawned buffer so the population is not grown mid-pass.
func (s *State) interact(i int) {
	p := &s.particles[i]
	mat := p.Material
	r := s.rng.Float64()

	switch mat.Interaction[p.Group].Sample(r) {
	case xs.Capture:
		s.tallies.Capture++
		p.Alive = false
		s.alive[p.Generation]--
	case xs.Scatter:
		s.tallies.Scatter++
		angle := s.rng.Angle()
		p.Group = mat.Outscatter[p.Group].Sample(s.rng.Float64())
		p.Direction = geom.Direction(angle)
		s.mesh.Transport(p, s.rng)
	case xs.Fission:
		s.tallies.Fission++
		p.Alive = false
		s.alive[p.Generation]--

		nu := 2
		if s.rng.Float64() > 0.5 {
			nu = 3
		}
		gen := p.Generation + 1
		s.growGenerations(gen)
		loc := p.Location
		for k := 0; k < nu; k++ {
			child := transport.NewParticle(loc, geom.Direction(s.rng.Angle()))
			child.Group = s.cfg.Params.FissionGroup
			child.Generation = gen
			child.Material = mat
			s.mesh.Transport(&child, s.rng)
			s.spawned = append(s.spawned, child)
			s.born[gen]++
			s.alive[gen]++
		}
	default:
		panic(fmt.Sprintf("lattice: unclassified interaction for %s group %d (r=%g)", mat.Name, p.Group, r))
	}
}

func (s *State) growGenerations(gen int) {
	for len(s.born) <= gen {
		s.born = append(s.born, 0)
		s.alive = append(s.alive, 0)
	}
}

// compact drops dead particles in one pass, keeping the survivors in order.
func (s *State) compact() {
	n := 0
	for i := range s.particles {
		if s.particles[i].Alive {
			s.particles[n] = s.particles[i]
			n++
		}
	}
	clear(s.particles[n:])
	s.particles = s.particles[:n]
}

// recordHistory samples the population every historyRes steps. A full log
// keeps every other sample and doubles the interval.
func (s *State) recordHistory() {
	if s.step%s.historyRes != 0 {
		return
	}
	s.history = append(s.history, len(s.particles))
	if len(s.history) < s.cfg.Params.MaxHistory {
		return
	}
	kept := s.history[:0]
	for i := 0; i < len(s.history); i += 2 {
		kept = append(kept, s.history[i])
	}
	s.history = kept
	s.historyRes *= 2
}

func (s *State) checkPopulation() {
	sum := 0
	for _, n := range s.alive {
		sum += n
	}
	if sum != len(s.particles) {
		panic(fmt.Sprintf("lattice: generation population %d does not match %d tracked particles", sum, len(s.particles)))
	}
}

// Resample re-transports every particle from its current location, used
// after the geometry changes.
func (s *State) Resample() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Material = s.mesh.MaterialAt(p.Location)
		s.mesh.Transport(p, s.rng)
	}
}
