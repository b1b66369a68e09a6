// Package math provides the small vector type shared by the curve code and
// the renderers.
package math

import "math"

// Vec2 is a 2D vector, also used as a point.
type Vec2 struct {
	X, Y float32
}

// V2 returns the vector (x, y).
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Lerp linearly interpolates between v and other, computed as
// (1-t)*v + t*other. t is not clamped.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*v.X + t*other.X,
		Y: u*v.Y + t*other.Y,
	}
}

// IsNaN reports whether either component is NaN.
func (v Vec2) IsNaN() bool {
	return v.X != v.X || v.Y != v.Y
}
