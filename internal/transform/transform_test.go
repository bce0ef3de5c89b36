package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vectorlab/internal/geometry/vector"
	"vectorlab/internal/transform"
)

func TestScaleAndTranslate(t *testing.T) {
	v := vector.New(1, -2, 3)

	got, warn := transform.Scale{K: 2}.Apply(v)
	require.Empty(t, warn)
	require.Equal(t, vector.New(2, -4, 6), got)

	got, warn = transform.Translate{Offset: vector.New(1, 1, 1)}.Apply(v)
	require.Empty(t, warn)
	require.Equal(t, vector.New(2, -1, 4), got)
}

func TestNormalizeStep(t *testing.T) {
	got, warn := transform.Normalize{}.Apply(vector.New(0, 3, 4))
	require.Empty(t, warn)
	require.InDelta(t, 1.0, got.Magnitude(), 1e-12)

	got, _ = transform.Normalize{}.Apply(vector.Vec3{})
	require.Equal(t, vector.Vec3{}, got)
}

func TestReflect(t *testing.T) {
	// reflect about the XY plane flips Z
	got, warn := transform.Reflect{Normal: vector.New(0, 0, 1)}.Apply(vector.New(1, 2, 3))
	require.Empty(t, warn)
	require.True(t, got.ApproxEqual(vector.New(1, 2, -3), 1e-12))

	// non-unit normals are normalized first
	got, _ = transform.Reflect{Normal: vector.New(0, 0, 10)}.Apply(vector.New(1, 2, 3))
	require.True(t, got.ApproxEqual(vector.New(1, 2, -3), 1e-12))

	// zero normal warns and passes through
	got, warn = transform.Reflect{}.Apply(vector.New(1, 2, 3))
	require.NotEmpty(t, warn)
	require.Equal(t, vector.New(1, 2, 3), got)
}

func TestClampMagnitude(t *testing.T) {
	got, warn := transform.ClampMagnitude{Max: 10}.Apply(vector.New(3, 4, 0))
	require.Empty(t, warn)
	require.Equal(t, vector.New(3, 4, 0), got)

	got, warn = transform.ClampMagnitude{Max: 1}.Apply(vector.New(3, 4, 0))
	require.NotEmpty(t, warn)
	require.InDelta(t, 1.0, got.Magnitude(), 1e-12)
	// direction preserved
	require.InDelta(t, 0.0, got.AngleBetween(vector.New(3, 4, 0)), 1e-9)
}

func TestChainOrderAndWarnings(t *testing.T) {
	chain := transform.Chain{Steps: []transform.Transform{
		transform.Translate{Offset: vector.New(1, 0, 0)},
		transform.Scale{K: 2},
		transform.ClampMagnitude{Max: 3},
	}}

	// (1,0,0) -> translate -> (2,0,0) -> scale -> (4,0,0) -> clamp -> (3,0,0)
	got, warn := chain.Apply(vector.New(1, 0, 0))
	require.NotEmpty(t, warn)
	require.True(t, got.ApproxEqual(vector.New(3, 0, 0), 1e-12))

	// empty chain is a no-op
	got, warn = transform.Chain{}.Apply(vector.New(5, 6, 7))
	require.Empty(t, warn)
	require.Equal(t, vector.New(5, 6, 7), got)
}

func TestNoOp(t *testing.T) {
	got, warn := transform.NoOp.Apply(vector.New(9, 9, 9))
	require.Empty(t, warn)
	require.Equal(t, vector.New(9, 9, 9), got)
}

func TestFromSpecs(t *testing.T) {
	chain, err := transform.FromSpecs([]transform.Spec{
		{Op: "scale", K: 3},
		{Op: "translate", Offset: vector.New(0, 1, 0)},
		{Op: "normalize"},
	})
	require.NoError(t, err)
	require.Len(t, chain.Steps, 3)

	got, _ := chain.Apply(vector.New(1, 0, 0))
	require.InDelta(t, 1.0, got.Magnitude(), 1e-12)
}

func TestFromSpecsRejectsInvalid(t *testing.T) {
	_, err := transform.FromSpecs([]transform.Spec{{Op: "rotate"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown op")

	_, err = transform.FromSpecs([]transform.Spec{{Op: "reflect"}})
	require.Error(t, err)

	_, err = transform.FromSpecs([]transform.Spec{{Op: "clamp", Max: -1}})
	require.Error(t, err)
}
