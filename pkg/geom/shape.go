package geom

import (
	"image/color"
	"math"
)

// NoIntersection is returned by DistanceToSurface when the ray never reaches
// the surface.
var NoIntersection = math.Inf(1)

// Shape is a closed region of the plane that particles can enter and leave.
type Shape interface {
	// PointInside reports whether p lies strictly inside the shape.
	PointInside(p Vec2) bool
	// DistanceToSurface returns the distance along dir from p to the shape's
	// surface, or NoIntersection. coincident marks p as lying on this shape's
	// own surface so the origin root is skipped.
	DistanceToSurface(p, dir Vec2, coincident bool) float64
	// OnSurface reports whether p lies on the shape's surface, within
	// roundoff.
	OnSurface(p Vec2) bool

	Color() color.RGBA
	SetColor(c color.RGBA)
}

// paint holds the display color. Transport never reads it.
type paint struct {
	color color.RGBA
}

func (p *paint) Color() color.RGBA     { return p.color }
func (p *paint) SetColor(c color.RGBA) { p.color = c }

// Circle is a disc with a center and radius.
type Circle struct {
	paint
	Center Vec2
	R      float64
}

// NewCircle creates a circle.
func NewCircle(c color.RGBA, center Vec2, r float64) *Circle {
	return &Circle{paint: paint{color: c}, Center: center, R: r}
}

// PointInside uses a strict inequality so points on the edge are outside.
func (c *Circle) PointInside(p Vec2) bool {
	return p.Sub(c.Center).Norm2() < c.R*c.R
}

// surfaceTolerance is the relative slack OnSurface allows on r^2.
const surfaceTolerance = 1e-9

// OnSurface tests |p-c|^2 against r^2 with a relative tolerance.
func (c *Circle) OnSurface(p Vec2) bool {
	r2 := c.R * c.R
	return math.Abs(p.Sub(c.Center).Norm2()-r2) <= surfaceTolerance*r2
}

// DistanceToSurface solves |p + t*dir - center| = r for the forward root.
func (c *Circle) DistanceToSurface(p, dir Vec2, coincident bool) float64 {
	x := p.Sub(c.Center)
	k := x.Dot(dir)
	cc := x.Norm2() - c.R*c.R
	det := k*k - cc

	if det < 0 {
		return NoIntersection
	}

	if coincident {
		// Leaving tangentially or outward; the near root is p itself.
		if k >= 0 {
			return NoIntersection
		}
		return -k + math.Sqrt(det)
	}

	if cc < 0 {
		return -k + math.Sqrt(det)
	}
	d := -k - math.Sqrt(det)
	if d >= 0 {
		return d
	}
	return NoIntersection
}

// Box is an axis-aligned rectangle.
type Box struct {
	paint
	Min, Max Vec2
}

// NewBox creates a box spanning the two corners in any order.
func NewBox(c color.RGBA, p1, p2 Vec2) *Box {
	return &Box{
		paint: paint{color: c},
		Min:   Vec2{math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)},
		Max:   Vec2{math.Max(p1.X, p2.X), math.Max(p1.Y, p2.Y)},
	}
}

// PointInside is a strict bounds test.
func (b *Box) PointInside(p Vec2) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y
}

// DistanceToSurface is not used for transport; the domain edge is handled by
// the stepper.
func (b *Box) DistanceToSurface(Vec2, Vec2, bool) float64 {
	return NoIntersection
}

// OnSurface is always false: boxes have no transport surface.
func (b *Box) OnSurface(Vec2) bool { return false }

// Size returns the width and height.
func (b *Box) Size() (float64, float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}
