package vmath

import "math"

// Vec2 is a float64 2D vector in logical surface units
type Vec2 struct {
	X, Y float64
}

// V2 constructs a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// MagSq returns the squared magnitude, avoids the sqrt for comparisons
func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Mag returns the Euclidean magnitude
func (v Vec2) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Dist returns the Euclidean distance between a and b
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Mag()
}

// Normalize returns the unit vector, zero-safe
// ok is false for the zero vector, direction is undefined there
func (v Vec2) Normalize() (n Vec2, ok bool) {
	mag := v.Mag()
	if mag == 0 {
		return Vec2{}, false
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}, true
}

// IsFinite reports whether neither component is NaN or Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Clamp limits f to [lo, hi]
func Clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
