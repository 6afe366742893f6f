// Package geometry provides the 2-D vector math and rotation transforms used
// to resolve port positions and ray directions in world space.
package geometry

import "math"

// Vec2 is a 2-D vector or point.
type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2      { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2      { return Vec2{v.X - w.X, v.Y - w.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(w Vec2) float64   { return v.X*w.X + v.Y*w.Y }

// Cross returns the z component of the 3-D cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Reflect mirrors v about the surface normal n: r = v - 2(v·n)n.
// n must be unit length.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Rotate rotates v counterclockwise by the given angle in radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// IsZero reports whether v is too short to define a direction.
func (v Vec2) IsZero() bool {
	return v.Length() < 1e-12
}
