package render

import "mc-lattice/pkg/geom"

// View maps world coordinates (y up) onto a pixel rectangle (y down) so the
// whole domain plus a margin fits the smaller screen dimension.
type View struct {
	worldW, worldH float64
	margin         float64
	screenW        int
	screenH        int
	scale          float64
}

// NewView fits a worldW x worldH domain into screenW x screenH pixels.
func NewView(worldW, worldH, margin float64, screenW, screenH int) View {
	v := View{worldW: worldW, worldH: worldH, margin: margin, screenW: screenW, screenH: screenH}
	sx := float64(screenW) / (worldW + 2*margin)
	sy := float64(screenH) / (worldH + 2*margin)
	v.scale = min(sx, sy)
	if v.scale <= 0 {
		v.scale = 1
	}
	return v
}

// Scale returns pixels per world unit.
func (v View) Scale() float64 { return v.scale }

// ScreenSize returns the pixel rectangle the view was built for.
func (v View) ScreenSize() (int, int) { return v.screenW, v.screenH }

// ToScreen converts a world point to pixel coordinates.
func (v View) ToScreen(p geom.Vec2) (float32, float32) {
	x := (p.X + v.margin) * v.scale
	y := float64(v.screenH) - (p.Y+v.margin)*v.scale
	return float32(x), float32(y)
}

// ToWorld converts a pixel position to world coordinates.
func (v View) ToWorld(x, y int) geom.Vec2 {
	return geom.V(
		float64(x)/v.scale-v.margin,
		float64(v.screenH-y)/v.scale-v.margin,
	)
}

// Length converts a world distance to pixels.
func (v View) Length(d float64) float32 { return float32(d * v.scale) }

// InWorld reports whether pixel (x, y) falls inside the domain rectangle.
func (v View) InWorld(x, y int) bool {
	p := v.ToWorld(x, y)
	return p.X >= 0 && p.X <= v.worldW && p.Y >= 0 && p.Y <= v.worldH
}
