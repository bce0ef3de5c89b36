package transform

import (
	"vectorlab/internal/geometry/vector"
)

// Transform is an interface for pure vector-to-vector operations.
// Each implementation derives a new vector from its input; inputs are
// never mutated.
type Transform interface {
	// Apply returns the transformed vector and an optional warning message
	// for lossy transforms (e.g. a clipped magnitude).
	Apply(v vector.Vec3) (vector.Vec3, string)
}

// Chain is a composite transform that applies multiple transforms in sequence.
type Chain struct {
	Steps []Transform
}

// Apply runs all transforms in the chain, in order. The output of one step
// becomes the input to the next. The last non-empty warning is returned.
func (c Chain) Apply(v vector.Vec3) (vector.Vec3, string) {
	var warning string
	for _, step := range c.Steps {
		next, w := step.Apply(v)
		if w != "" {
			warning = w
		}
		v = next
	}
	return v, warning
}

// NoOp is a transform that does nothing.
var NoOp Transform = noOpTransform{}

type noOpTransform struct{}

func (noOpTransform) Apply(v vector.Vec3) (vector.Vec3, string) { return v, "" }
