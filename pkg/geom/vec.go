package geom

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector used for positions and unit directions.
type Vec2 struct {
	X, Y float64
}

// V creates a new Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Direction returns the unit vector (sin a, cos a). All isotropic sampling in
// the simulator uses this convention.
func Direction(angle float64) Vec2 {
	return Vec2{X: math.Sin(angle), Y: math.Cos(angle)}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Norm2 returns the squared length.
func (a Vec2) Norm2() float64 { return a.X*a.X + a.Y*a.Y }

// Norm returns the Euclidean length.
func (a Vec2) Norm() float64 { return math.Sqrt(a.Norm2()) }

func (a Vec2) String() string { return fmt.Sprintf("(%g, %g)", a.X, a.Y) }
