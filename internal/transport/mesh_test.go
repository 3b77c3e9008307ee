package transport

import (
	"image/color"
	"math"
	"testing"

	"mc-lattice/pkg/core"
	"mc-lattice/pkg/geom"
	"mc-lattice/pkg/xs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thinMaterial(t *testing.T, name string) *xs.Material {
	t.Helper()
	one := []float64{0}
	m, err := xs.NewMaterial(name, []float64{1e-12}, one, one, one, [][]float64{{0}})
	require.NoError(t, err)
	return m
}

func TestTransportThroughSingleShapeEndsInBackground(t *testing.T) {
	bg := thinMaterial(t, "bg")
	pin := thinMaterial(t, "pin")

	mesh := NewMesh(10, 10, bg, color.RGBA{})
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(5, 5), 1), pin)

	p := NewParticle(geom.V(1, 5), geom.V(1, 0))
	p.Material = mesh.MaterialAt(p.Location)
	require.Same(t, bg, p.Material)

	mesh.Transport(&p, core.NewRNG(1))

	assert.Same(t, bg, p.Material)
	require.Len(t, p.Waypoints, 3)
	assert.InDelta(t, 4.0, p.Waypoints[0].X, 1e-3)
	assert.InDelta(t, 6.0, p.Waypoints[1].X, 1e-3)
	assert.Greater(t, p.Distance, 5.0)
}

func TestTransportStopsInsideShape(t *testing.T) {
	lib := xs.C5G7()
	mesh := NewMesh(10, 10, thinMaterial(t, "bg"), color.RGBA{})
	black := lib.MustByName("Black")
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(5, 5), 1), black)

	// Black is so dense that the collision happens right past the edge.
	p := NewParticle(geom.V(1, 5), geom.V(1, 0))
	mesh.Transport(&p, core.NewRNG(3))

	assert.Same(t, black, p.Material)
	assert.InDelta(t, 3.0, p.Distance, 1e-3)
}

func TestTransportStartingOnSurfaceInward(t *testing.T) {
	black := xs.C5G7().MustByName("Black")
	bg := thinMaterial(t, "bg")
	mesh := NewMesh(10, 10, bg, color.RGBA{})
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(5, 5), 1), black)

	for seed := int64(1); seed <= 50; seed++ {
		p := NewParticle(geom.V(4, 5), geom.V(1, 0))
		p.Material = mesh.MaterialAt(p.Location)
		require.Same(t, bg, p.Material, "edge points are outside")

		mesh.Transport(&p, core.NewRNG(seed))
		assert.Same(t, black, p.Material, "seed %d", seed)
		assert.Less(t, p.Distance, 0.5, "seed %d", seed)
	}
}

func TestTransportStartingOnSurfaceOutward(t *testing.T) {
	bg := thinMaterial(t, "bg")
	mesh := NewMesh(10, 10, bg, color.RGBA{})
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(5, 5), 1), xs.C5G7().MustByName("Black"))

	p := NewParticle(geom.V(4, 5), geom.V(-1, 0))
	mesh.Transport(&p, core.NewRNG(1))
	assert.Same(t, bg, p.Material)
	assert.Greater(t, p.Distance, 4.0)
}

func TestTransportCollisionBeforeSurface(t *testing.T) {
	lib := xs.C5G7()
	black := lib.MustByName("Black")
	mesh := NewMesh(10, 10, black, color.RGBA{})
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(5, 5), 1), lib.MustByName("UO2"))

	p := NewParticle(geom.V(1, 5), geom.V(1, 0))
	mesh.Transport(&p, core.NewRNG(9))

	assert.Same(t, black, p.Material)
	assert.Less(t, p.Distance, 1e-3)
	require.Len(t, p.Waypoints, 1)
	assert.Equal(t, 1, mesh.collisions)
}

func TestFindRegionAndMaterialAt(t *testing.T) {
	lib := xs.C5G7()
	mod := lib.MustByName("Moderator")
	uo2 := lib.MustByName("UO2")
	mesh := NewMesh(10, 10, mod, color.RGBA{B: 1})
	mesh.AddShape(geom.NewCircle(color.RGBA{R: 1}, geom.V(2, 2), 1), uo2)
	mesh.AddShape(geom.NewCircle(color.RGBA{G: 1}, geom.V(6, 6), 1), uo2)

	i, ok := mesh.FindRegion(geom.V(6.2, 6))
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = mesh.FindRegion(geom.V(4, 4))
	assert.False(t, ok)
	assert.Same(t, mod, mesh.MaterialAt(geom.V(4, 4)))
	assert.Same(t, uo2, mesh.MaterialAt(geom.V(2, 2)))

	c, m, inside := mesh.ColorMaterialAt(geom.V(2, 2))
	assert.True(t, inside)
	assert.Equal(t, uint8(1), c.R)
	assert.Same(t, uo2, m)

	c, m, inside = mesh.ColorMaterialAt(geom.V(9, 1))
	assert.False(t, inside)
	assert.Equal(t, uint8(1), c.B)
	assert.Same(t, mod, m)
}

func TestSetColorMaterial(t *testing.T) {
	lib := xs.C5G7()
	mod := lib.MustByName("Moderator")
	uo2 := lib.MustByName("UO2")
	black := lib.MustByName("Black")
	void := lib.MustByName("Void")

	mesh := NewMesh(10, 10, mod, color.RGBA{})
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(2, 2), 1), uo2)
	mesh.AddShape(geom.NewCircle(color.RGBA{}, geom.V(6, 6), 1), uo2)

	mesh.SetColorMaterialAt(geom.V(2, 2), color.RGBA{R: 9}, black)
	assert.Same(t, black, mesh.Regions()[0].Material)
	assert.Equal(t, uint8(9), mesh.Regions()[0].Shape.Color().R)
	assert.Same(t, uo2, mesh.Regions()[1].Material)

	mesh.SetColorMaterialAt(geom.V(9, 9), color.RGBA{G: 3}, void)
	c, m := mesh.Background()
	assert.Same(t, void, m)
	assert.Equal(t, uint8(3), c.G)

	mesh.SetColorMaterialAll(color.RGBA{B: 4}, mod)
	for _, r := range mesh.Regions() {
		assert.Same(t, mod, r.Material)
		assert.Equal(t, uint8(4), r.Shape.Color().B)
	}
}

func TestMeanDistanceToCollision(t *testing.T) {
	lib := xs.C5G7()
	mod := lib.MustByName("Moderator")
	mesh := NewMesh(1000, 1000, mod, color.RGBA{})
	assert.Equal(t, 0.0, mesh.MeanDistanceToCollision())

	rng := core.NewRNG(5)
	const n = 20000
	for i := 0; i < n; i++ {
		p := NewParticle(geom.V(500, 500), geom.Direction(rng.Angle()))
		p.Group = 6
		mesh.Transport(&p, rng)
	}
	want := 1 / mod.Total[6]
	assert.InEpsilon(t, want, mesh.MeanDistanceToCollision(), 0.05)

	mesh.ResetStats()
	assert.Equal(t, 0.0, mesh.MeanDistanceToCollision())
}

func TestParticleAdvance(t *testing.T) {
	p := NewParticle(geom.V(0, 0), geom.V(1, 0))
	p.Distance = 1
	p.Group = 1

	done := p.Advance(1, 1)
	assert.False(t, done)
	assert.InDelta(t, 0.5, p.Location.X, 1e-12)
	assert.InDelta(t, 0.5, p.Distance, 1e-12)

	done = p.Advance(1, 1)
	assert.True(t, done)
	assert.InDelta(t, 1.0, p.Location.X, 1e-12)
	assert.Equal(t, 0.0, p.Distance)
}

func TestSampleDistanceIsFinite(t *testing.T) {
	p := NewParticle(geom.V(0, 0), geom.V(1, 0))
	p.Material = xs.C5G7().MustByName("Void")
	rng := core.NewRNG(11)
	for i := 0; i < 1000; i++ {
		d := p.SampleDistance(rng)
		require.False(t, math.IsInf(d, 0))
		require.GreaterOrEqual(t, d, 0.0)
	}

	p.Material = nil
	assert.Panics(t, func() { p.SampleDistance(rng) })
}

func TestWaypointsBounded(t *testing.T) {
	p := NewParticle(geom.V(0, 0), geom.V(1, 0))
	for i := 0; i < MaxWaypoints+10; i++ {
		p.addWaypoint(geom.V(float64(i), 0))
	}
	require.Len(t, p.Waypoints, MaxWaypoints)
	assert.Equal(t, float64(10), p.Waypoints[0].X)
}
