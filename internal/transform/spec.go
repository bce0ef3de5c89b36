package transform

import (
	"github.com/pkg/errors"

	"vectorlab/internal/geometry/vector"
)

// Spec is a JSON-friendly description of one transform step.
type Spec struct {
	Op     string      `json:"op"`
	K      float64     `json:"k,omitempty"`
	Offset vector.Vec3 `json:"offset,omitempty"`
	Normal vector.Vec3 `json:"normal,omitempty"`
	Max    float64     `json:"max,omitempty"`
}

// FromSpecs builds a Chain from an ordered list of step specs.
func FromSpecs(specs []Spec) (Chain, error) {
	steps := make([]Transform, 0, len(specs))
	for i, s := range specs {
		switch s.Op {
		case "scale":
			steps = append(steps, Scale{K: s.K})
		case "translate":
			steps = append(steps, Translate{Offset: s.Offset})
		case "normalize":
			steps = append(steps, Normalize{})
		case "reflect":
			if s.Normal == (vector.Vec3{}) {
				return Chain{}, errors.Errorf("step %d: reflect requires a nonzero normal", i)
			}
			steps = append(steps, Reflect{Normal: s.Normal})
		case "clamp":
			if s.Max < 0 {
				return Chain{}, errors.Errorf("step %d: clamp max must be non-negative", i)
			}
			steps = append(steps, ClampMagnitude{Max: s.Max})
		default:
			return Chain{}, errors.Errorf("step %d: unknown op %q", i, s.Op)
		}
	}
	return Chain{Steps: steps}, nil
}
