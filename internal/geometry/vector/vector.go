// Package vector provides 3D vector operations
package vector

import (
	"fmt"
	"math"
)

// New creates a new 3D vector with the given components
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3 represents a 3-component real-valued vector. The zero value is the
// zero vector. Vec3 is a value type: derived vectors are independent copies
// and no operation mutates its receiver or argument.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales a vector by a scalar
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Magnitude returns the vector's Euclidean norm
func (v Vec3) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// MagnitudeSquared returns the squared norm, avoiding the sqrt
func (v Vec3) MagnitudeSquared() float64 { return v.Dot(v) }

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of two vectors (right-handed)
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself rather than failing.
func (v Vec3) Normalize() Vec3 {
	m := v.Magnitude()
	if m == 0 {
		return Vec3{}
	}
	return v.Mul(1 / m)
}

// AngleBetween returns the angle between two vectors in radians, in [0, pi].
// The angle to or from a zero vector is 0.
func (v Vec3) AngleBetween(o Vec3) float64 {
	mm := v.Magnitude() * o.Magnitude()
	if mm == 0 {
		return 0
	}
	// clamp against rounding before acos
	c := v.Dot(o) / mm
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// ApproxEqual reports whether each component of v is within eps of o
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
