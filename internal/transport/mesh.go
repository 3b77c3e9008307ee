package transport

import (
	"image/color"
	"math"

	"mc-lattice/pkg/core"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"
)

// Overshoot pushes a particle just past a crossed surface so roundoff cannot
// leave it sitting on the boundary.
const Overshoot = 1.0001

// Region pairs a shape with the material that fills it.
type Region struct {
	Shape    geom.Shape
	Material *xs.Material
}

// Mesh is a flat set of non-overlapping regions inside a width×height
// rectangle. Points outside every region see the background material.
type Mesh struct {
	width, height float64

	regions []Region

	background      *xs.Material
	backgroundColor color.RGBA

	totalDistance float64
	collisions    int
}

// NewMesh creates an empty mesh.
func NewMesh(width, height float64, background *xs.Material, bg color.RGBA) *Mesh {
	return &Mesh{width: width, height: height, background: background, backgroundColor: bg}
}

// AddShape appends a region. Shapes must not overlap.
func (m *Mesh) AddShape(s geom.Shape, mat *xs.Material) {
	m.regions = append(m.regions, Region{Shape: s, Material: mat})
}

// Width returns the domain width.
func (m *Mesh) Width() float64 { return m.width }

// Height returns the domain height.
func (m *Mesh) Height() float64 { return m.height }

// Regions exposes the region list for drawing. Callers must not modify it.
func (m *Mesh) Regions() []Region { return m.regions }

// Background returns the material and color used outside every region.
func (m *Mesh) Background() (color.RGBA, *xs.Material) {
	return m.backgroundColor, m.background
}

// Contains reports whether p lies in the closed domain rectangle.
func (m *Mesh) Contains(p geom.Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= m.width && p.Y <= m.height
}

// FindRegion returns the index of the first region containing p.
func (m *Mesh) FindRegion(p geom.Vec2) (int, bool) {
	for i := range m.regions {
		if m.regions[i].Shape.PointInside(p) {
			return i, true
		}
	}
	return -1, false
}

// MaterialAt returns the material at p.
func (m *Mesh) MaterialAt(p geom.Vec2) *xs.Material {
	if i, ok := m.FindRegion(p); ok {
		return m.regions[i].Material
	}
	return m.background
}

// ColorMaterialAt returns the display color and material at p. The boolean is
// false when p is in the background.
func (m *Mesh) ColorMaterialAt(p geom.Vec2) (color.RGBA, *xs.Material, bool) {
	i, ok := m.FindRegion(p)
	if !ok {
		return m.backgroundColor, m.background, false
	}
	return m.regions[i].Shape.Color(), m.regions[i].Material, true
}

// SetColorMaterialAt reassigns the region under p. Outside every region it
// edits the background instead.
func (m *Mesh) SetColorMaterialAt(p geom.Vec2, c color.RGBA, mat *xs.Material) {
	i, ok := m.FindRegion(p)
	if !ok {
		m.backgroundColor = c
		m.background = mat
		return
	}
	m.regions[i].Shape.SetColor(c)
	m.regions[i].Material = mat
}

// SetColorMaterialAll reassigns every region.
func (m *Mesh) SetColorMaterialAll(c color.RGBA, mat *xs.Material) {
	for i := range m.regions {
		m.regions[i].Shape.SetColor(c)
		m.regions[i].Material = mat
	}
}

// MeanDistanceToCollision averages the flight distances of every Transport
// call since the last ResetStats.
func (m *Mesh) MeanDistanceToCollision() float64 {
	if m.collisions == 0 {
		return 0
	}
	return m.totalDistance / float64(m.collisions)
}

// ResetStats clears the mean distance accumulators.
func (m *Mesh) ResetStats() {
	m.totalDistance = 0
	m.collisions = 0
}

// Transport flies p from its current location to its next collision site,
// crossing as many region boundaries as needed. On return p.Distance holds
// the flight distance and p.Material the material at the collision site.
//
// Each crossing toggles between the crossed region and the background, so a
// particle that starts on a surface and heads inward is inside that region
// from its first step.
func (m *Mesh) Transport(p *Particle, rng *core.RNG) {
	if p.Material == nil {
		p.Material = m.MaterialAt(p.Location)
	}
	distance := 0.0
	loc := p.Location
	current, _ := m.FindRegion(loc)
	coincident := -1
	if current < 0 {
		if i, ok := m.surfaceAt(loc); ok {
			coincident = i
			// inward rays see the far root from a coincident start
			if !math.IsInf(m.regions[i].Shape.DistanceToSurface(loc, p.Direction, true), 1) {
				current = i
				p.Material = m.regions[i].Material
			}
		}
	}

	for m.Contains(loc) {
		dc := p.SampleDistance(rng)

		ds := geom.NoIntersection
		surface := -1
		for i := range m.regions {
			d := m.regions[i].Shape.DistanceToSurface(loc, p.Direction, coincident == i)
			if d < ds {
				ds = d
				surface = i
			}
		}

		if dc < ds {
			distance += dc
			break
		}

		loc = loc.Add(p.Direction.Scale(ds * Overshoot))
		p.addWaypoint(loc)
		distance += ds
		coincident = surface

		if current == surface {
			current = -1
			p.Material = m.background
		} else {
			current = surface
			p.Material = m.regions[surface].Material
		}
	}

	m.totalDistance += distance
	m.collisions++

	p.Distance = distance
	p.addWaypoint(p.Location.Add(p.Direction.Scale(distance)))
}

// surfaceAt returns the first region whose surface passes through p.
func (m *Mesh) surfaceAt(p geom.Vec2) (int, bool) {
	for i := range m.regions {
		if m.regions[i].Shape.OnSurface(p) {
			return i, true
		}
	}
	return -1, false
}
