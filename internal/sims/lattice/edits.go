package lattice

import (
	"go.uber.org/zap"

	"mc-lattice/internal/core"
	"mc-lattice/internal/logging"
	"mc-lattice/internal/playbook"
	"mc-lattice/internal/transport"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// newParticle creates a source particle at loc with an isotropic direction
// and transports it to its first collision site.
func (s *State) newParticle(loc geom.Vec2) transport.Particle {
	p := transport.NewParticle(loc, geom.Direction(s.rng.Angle()))
	p.Group = s.cfg.Params.SourceGroup
	p.Material = s.mesh.MaterialAt(loc)
	s.mesh.Transport(&p, s.rng)
	return p
}

// AddParticles spawns n generation-zero particles at loc.
func (s *State) AddParticles(loc geom.Vec2, n int) {
	for i := 0; i < n; i++ {
		s.particles = append(s.particles, s.newParticle(loc))
		s.born[0]++
		s.alive[0]++
	}
}

// SetLogger routes state changes to l.
func (s *State) SetLogger(l *zap.Logger) { s.log = logging.OrNop(l) }

// SetPlaybook attaches p (nil detaches) and performs a hard reset.
func (s *State) SetPlaybook(p *playbook.Playbook) {
	s.playbook = p
	if p != nil {
		s.log.Info("playbook attached", zap.Int("commands", p.Len()))
	}
	s.HardReset()
}

// ToggleBoundaryCondition switches between vacuum and reflective edges. The
// population is left untouched.
func (s *State) ToggleBoundaryCondition() {
	s.SetBoundaryCondition(s.bc.Next())
}

// SetBoundaryCondition selects the edge treatment for subsequent steps.
func (s *State) SetBoundaryCondition(bc BoundaryCondition) {
	s.bc = bc
	s.log.Info("boundary condition", zap.Stringer("mode", bc))
}

// TogglePause flips between paused and running.
func (s *State) TogglePause() {
	s.paused = !s.paused
	s.log.Info("pause", zap.Bool("paused", s.paused))
}

// SetPaused sets the pause state directly.
func (s *State) SetPaused(paused bool) { s.paused = paused }

// ToggleWaypoints flips waypoint display.
func (s *State) ToggleWaypoints() { s.showWaypoints = !s.showWaypoints }

// SetSource emits one particle at loc every step until cleared.
func (s *State) SetSource(loc geom.Vec2) {
	s.source = loc
	s.hasSource = true
}

// ClearSource stops continuous emission.
func (s *State) ClearSource() { s.hasSource = false }

// PinTypeOf classifies m by material identity.
func (s *State) PinTypeOf(m *xs.Material) (core.PinType, bool) {
	if m == nil {
		return 0, false
	}
	for _, t := range core.PinTypes() {
		if s.palette[t].material.ID == m.ID {
			return t, true
		}
	}
	return 0, false
}

// PinTypeAt classifies the region under loc. It reports false outside every
// shape.
func (s *State) PinTypeAt(loc geom.Vec2) (core.PinType, bool) {
	idx, ok := s.mesh.FindRegion(loc)
	if !ok {
		return 0, false
	}
	return s.PinTypeOf(s.mesh.Regions()[idx].Material)
}

// SetMaterialAt assigns pin type t to the shape under loc, or to the
// background when loc is outside every shape, and resamples all particles.
func (s *State) SetMaterialAt(loc geom.Vec2, t core.PinType) {
	p, ok := s.palette[t]
	if !ok {
		return
	}
	s.mesh.SetColorMaterialAt(loc, p.color, p.material)
	s.Resample()
}

// CycleShapeAt moves the shape under loc to the next pin type. Points outside
// every shape are ignored.
func (s *State) CycleShapeAt(loc geom.Vec2) {
	idx, ok := s.mesh.FindRegion(loc)
	if !ok {
		return
	}
	cur, known := s.PinTypeOf(s.mesh.Regions()[idx].Material)
	next := core.PinFuel
	if known {
		next = cur.Next()
	}
	s.log.Debug("cycle pin", zap.Stringer("at", loc), zap.Stringer("to", next))
	s.SetMaterialAt(loc, next)
}

// CycleAll advances the shared pin type and assigns it to every shape.
func (s *State) CycleAll() {
	s.pinType = s.pinType.Next()
	p := s.palette[s.pinType]
	s.mesh.SetColorMaterialAll(p.color, p.material)
	s.log.Debug("cycle all pins", zap.Stringer("to", s.pinType))
	s.Resample()
}

// SetFloatParameter updates a float tunable. Out of range values are clamped.
func (s *State) SetFloatParameter(key string, value float64) bool {
	for _, c := range s.ParameterControls() {
		if c.Key != key || c.Type != core.ParamTypeFloat {
			continue
		}
		value = clampControl(c, value)
		switch key {
		case "base_speed":
			s.cfg.Params.BaseSpeed = value
		case "step_duration":
			s.cfg.Params.StepDuration = value
		default:
			return false
		}
		return true
	}
	return false
}

// SetIntParameter updates an integer tunable. Out of range values are clamped.
func (s *State) SetIntParameter(key string, value int) bool {
	for _, c := range s.ParameterControls() {
		if c.Key != key || c.Type != core.ParamTypeInt {
			continue
		}
		value = int(clampControl(c, float64(value)))
		switch key {
		case "source_group":
			s.cfg.Params.SourceGroup = value
		case "fission_group":
			s.cfg.Params.FissionGroup = value
		case "reset_particles":
			s.cfg.Params.ResetParticles = value
		case "max_steps":
			s.cfg.Params.MaxSteps = value
		default:
			return false
		}
		return true
	}
	return false
}

func clampControl(c core.ParameterControl, v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}
