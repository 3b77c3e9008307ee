package transport

import (
	"math"

	"mc-lattice/pkg/core"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// MaxWaypoints bounds the diagnostic trail kept per particle.
const MaxWaypoints = 64

// Particle is the mutable transport state of one neutron.
type Particle struct {
	Location  geom.Vec2
	Direction geom.Vec2
	// Distance is the remaining flight distance to the next collision site.
	Distance   float64
	Group      int
	Generation int
	Waypoints  []geom.Vec2
	Material   *xs.Material
	Alive      bool
}

// NewParticle creates a live particle at loc heading along dir.
func NewParticle(loc, dir geom.Vec2) Particle {
	return Particle{Location: loc, Direction: dir, Distance: 1, Alive: true}
}

// Advance moves the particle for dt time units at a speed that falls off with
// energy group index. It reports whether the collision site was reached.
func (p *Particle) Advance(dt, baseSpeed float64) bool {
	delta := baseSpeed / float64(p.Group+1) * dt
	done := false
	if delta >= p.Distance {
		delta = p.Distance
		done = true
	}
	p.Distance -= delta
	p.Location = p.Location.Add(p.Direction.Scale(delta))
	return done
}

// SampleDistance draws a free-flight distance in the current material.
func (p *Particle) SampleDistance(rng *core.RNG) float64 {
	if p.Material == nil {
		panic("transport: particle has no material")
	}
	p.Distance = -math.Log(rng.OpenFloat64()) / p.Material.Total[p.Group]
	return p.Distance
}

func (p *Particle) addWaypoint(v geom.Vec2) {
	if len(p.Waypoints) >= MaxWaypoints {
		copy(p.Waypoints, p.Waypoints[1:])
		p.Waypoints = p.Waypoints[:len(p.Waypoints)-1]
	}
	p.Waypoints = append(p.Waypoints, v)
}
