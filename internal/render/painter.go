//go:build ebiten

package render

import (
	"image/color"

	"mc-lattice/internal/transport"
	"mc-lattice/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Scene is the read-only state a LatticePainter draws.
type Scene interface {
	Mesh() *transport.Mesh
	Particles() []transport.Particle
	ShowWaypoints() bool
	Source() (geom.Vec2, bool)
}

// LatticePainter draws the mesh and particle population into a view.
type LatticePainter struct {
	view View

	particleRadius float32
	outline        color.RGBA
	sourceColor    color.RGBA
}

// NewLatticePainter returns a painter for v.
func NewLatticePainter(v View) *LatticePainter {
	return &LatticePainter{
		view:           v,
		particleRadius: 2,
		outline:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		sourceColor:    color.RGBA{G: 255, B: 120, A: 255},
	}
}

// View returns the active world to screen mapping.
func (lp *LatticePainter) View() View { return lp.view }

// SetView replaces the world to screen mapping.
func (lp *LatticePainter) SetView(v View) { lp.view = v }

// Draw paints the background, shapes, particles and, when reflective is set,
// the domain outline.
func (lp *LatticePainter) Draw(dst *ebiten.Image, s Scene, reflective bool) {
	mesh := s.Mesh()
	v := lp.view

	bg, _ := mesh.Background()
	x0, y0 := v.ToScreen(geom.V(0, mesh.Height()))
	w, h := v.Length(mesh.Width()), v.Length(mesh.Height())
	vector.DrawFilledRect(dst, x0, y0, w, h, bg, false)

	for _, r := range mesh.Regions() {
		switch sh := r.Shape.(type) {
		case *geom.Circle:
			cx, cy := v.ToScreen(sh.Center)
			vector.DrawFilledCircle(dst, cx, cy, v.Length(sh.R), sh.Color(), true)
		case *geom.Box:
			bx, by := v.ToScreen(geom.V(sh.Min.X, sh.Max.Y))
			bw, bh := sh.Size()
			vector.DrawFilledRect(dst, bx, by, v.Length(bw), v.Length(bh), sh.Color(), false)
		}
	}

	if reflective {
		vector.StrokeRect(dst, x0, y0, w, h, 2, lp.outline, false)
	}

	showTrails := s.ShowWaypoints()
	for _, p := range s.Particles() {
		if showTrails {
			for _, wp := range p.Waypoints {
				wx, wy := v.ToScreen(wp)
				vector.DrawFilledCircle(dst, wx, wy, lp.particleRadius, WaypointColor, false)
			}
		}
		px, py := v.ToScreen(p.Location)
		vector.DrawFilledCircle(dst, px, py, lp.particleRadius, GenerationColor(p.Generation), false)
	}

	if src, ok := s.Source(); ok {
		sx, sy := v.ToScreen(src)
		vector.StrokeCircle(dst, sx, sy, 6, 2, lp.sourceColor, true)
	}
}

// DrawBars fills each rectangle with col.
func DrawBars(dst *ebiten.Image, bars []Rect, col color.Color) {
	for _, b := range bars {
		if b.H <= 0 {
			continue
		}
		vector.DrawFilledRect(dst, b.X, b.Y, b.W, b.H, col, false)
	}
}

// DrawPolyline strokes consecutive points.
func DrawPolyline(dst *ebiten.Image, pts []Point, width float32, col color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(dst, a.X, a.Y, b.X, b.Y, width, col, true)
	}
}
