package transform

import (
	"fmt"

	"vectorlab/internal/geometry/vector"
)

// Scale multiplies every component by a constant factor.
type Scale struct {
	K float64
}

func (s Scale) Apply(v vector.Vec3) (vector.Vec3, string) {
	return v.Mul(s.K), ""
}

// Translate shifts the vector by a constant offset.
type Translate struct {
	Offset vector.Vec3
}

func (t Translate) Apply(v vector.Vec3) (vector.Vec3, string) {
	return v.Add(t.Offset), ""
}

// Normalize rescales the vector to unit magnitude. The zero vector passes
// through unchanged.
type Normalize struct{}

func (Normalize) Apply(v vector.Vec3) (vector.Vec3, string) {
	return v.Normalize(), ""
}

// Reflect mirrors the vector about the plane with the given normal.
// The normal is normalized before use, so any nonzero direction works.
type Reflect struct {
	Normal vector.Vec3
}

func (r Reflect) Apply(v vector.Vec3) (vector.Vec3, string) {
	n := r.Normal.Normalize()
	if n == (vector.Vec3{}) {
		return v, "reflect: zero normal, vector unchanged"
	}
	// R = V - 2 * dot(V, N) * N
	return v.Sub(n.Mul(2 * v.Dot(n))), ""
}

// ClampMagnitude caps the vector's magnitude at Max, preserving direction.
type ClampMagnitude struct {
	Max float64
}

func (c ClampMagnitude) Apply(v vector.Vec3) (vector.Vec3, string) {
	m := v.Magnitude()
	if m <= c.Max {
		return v, ""
	}
	clipped := v.Mul(c.Max / m)
	return clipped, fmt.Sprintf("clamp: magnitude %.3f clipped to %.3f", m, c.Max)
}
