package lattice

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"mc-lattice/internal/playbook"
	"mc-lattice/internal/transport"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// Particles exposes the live population. Callers must not modify it.
func (s *State) Particles() []transport.Particle { return s.particles }

// Population returns the number of tracked particles.
func (s *State) Population() int { return len(s.particles) }

// GenerationBorn returns how many particles were born into each generation.
func (s *State) GenerationBorn() []int { return s.born }

// GenerationPopulation returns the live count per generation.
func (s *State) GenerationPopulation() []int { return s.alive }

// Tallies returns the interaction counters.
func (s *State) Tallies() Tallies { return s.tallies }

// Spectrum histograms the live particles by energy group.
func (s *State) Spectrum() []int {
	out := make([]int, s.lib.Groups())
	for i := range s.particles {
		out[s.particles[i].Group]++
	}
	return out
}

// PopulationHistory returns the sampled population log, one entry every
// HistoryResolution steps.
func (s *State) PopulationHistory() []int { return s.history }

// HistoryResolution is the number of steps between history samples.
func (s *State) HistoryResolution() int { return s.historyRes }

// MeanDistanceToCollision reports the average sampled flight length.
func (s *State) MeanDistanceToCollision() float64 { return s.mesh.MeanDistanceToCollision() }

// Mesh exposes the geometry for drawing.
func (s *State) Mesh() *transport.Mesh { return s.mesh }

// Library returns the cross-section library in use.
func (s *State) Library() *xs.Library { return s.lib }

// BoundaryCondition returns the active edge treatment.
func (s *State) BoundaryCondition() BoundaryCondition { return s.bc }

// Source returns the continuous source location, if one is set.
func (s *State) Source() (geom.Vec2, bool) { return s.source, s.hasSource }

// Paused reports whether Tic is currently a no-op.
func (s *State) Paused() bool { return s.paused }

// Steps returns the number of steps since the last reset.
func (s *State) Steps() int { return s.step }

// ShowWaypoints reports whether particle trails should be drawn.
func (s *State) ShowWaypoints() bool { return s.showWaypoints }

// TicsToNextCommand returns the steps until the playbook acts again, or
// playbook.Never.
func (s *State) TicsToNextCommand() int {
	if s.playbook == nil || s.nextCommand == playbook.Never {
		return playbook.Never
	}
	return max(s.nextCommand-s.sinceCommand, 0)
}

// Fingerprint digests the population history, tallies and particle states.
// Two runs with the same seed and inputs produce the same value.
func (s *State) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		d.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}

	putInt(s.step)
	putInt(s.historyRes)
	for _, n := range s.history {
		putInt(n)
	}
	putInt(s.tallies.Scatter)
	putInt(s.tallies.Capture)
	putInt(s.tallies.Fission)
	putInt(s.tallies.Leak)
	for i := range s.particles {
		p := &s.particles[i]
		putFloat(p.Location.X)
		putFloat(p.Location.Y)
		putFloat(p.Distance)
		putInt(p.Group)
		putInt(p.Generation)
	}
	return d.Sum64()
}
