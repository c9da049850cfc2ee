package core

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerpScalarEndpoints(t *testing.T) {
	tests := []struct {
		start, end float64
	}{
		{0, 10},
		{-5, 5},
		{3, 3},
		{100, -100},
	}

	for _, tc := range tests {
		v, err := LerpScalar(tc.start, tc.end, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.start, v)

		v, err = LerpScalar(tc.start, tc.end, 1)
		require.NoError(t, err)
		assert.InDelta(t, tc.end, v, 1e-9)
	}
}

func TestLerpScalarMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for i := 0; i <= 100; i++ {
		v, err := LerpScalar(-20, 40, float64(i)/100)
		require.NoError(t, err)
		if v < prev {
			t.Fatalf("LerpScalar not monotonic at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestLerpScalarRejectsOutOfRange(t *testing.T) {
	for _, f := range []float64{-0.001, 1.001, 2, -1, math.NaN(), math.Inf(1)} {
		_, err := LerpScalar(0, 1, f)
		if !errors.Is(err, ErrBlendFactor) {
			t.Errorf("LerpScalar(0, 1, %v) error = %v, expected ErrBlendFactor", f, err)
		}
	}
}

func TestLerpVector(t *testing.T) {
	v, err := Lerp(Vec(0, 0), Vec(10, -20), 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v.X, 1e-9)
	assert.InDelta(t, -5, v.Y, 1e-9)

	_, err = Lerp(Vec(0, 0), Vec(1, 1), 1.5)
	assert.ErrorIs(t, err, ErrBlendFactor)

	start := Vec(3, 4)
	v, err = Lerp(start, Vec(1, 1), math.NaN())
	assert.ErrorIs(t, err, ErrBlendFactor)
	assert.Equal(t, start, v)
}

func TestVectorArithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(3, -4)

	assert.Equal(t, Vec(4, -2), a.Add(b))
	assert.Equal(t, Vec(-2, 6), a.Sub(b))
	assert.Equal(t, Vec(2, 4), a.Scale(2))
	// Operands are values and stay unchanged.
	assert.Equal(t, Vec(1, 2), a)
}

func TestNewBoundingBox(t *testing.T) {
	box, err := NewBoundingBox(50, 25)
	require.NoError(t, err)
	assert.Equal(t, 50.0, box.Width)
	assert.Equal(t, 25.0, box.Height)

	_, err = NewBoundingBox(0, 0)
	assert.NoError(t, err, "zero-size boxes are allowed")

	_, err = NewBoundingBox(-1, 10)
	assert.ErrorIs(t, err, ErrNegativeSize)
	_, err = NewBoundingBox(10, -1)
	assert.ErrorIs(t, err, ErrNegativeSize)
}

func TestBoundingBoxExtents(t *testing.T) {
	box := BoundingBox{Width: 150, Height: 50}
	e := box.Extents(Vec(100, -20))

	assert.Equal(t, Extents{Left: 25, Right: 175, Bottom: -45, Top: 5}, e)
	assert.Equal(t, 150.0, e.Width())
	assert.Equal(t, 50.0, e.Height())
}

func TestExtentsContains(t *testing.T) {
	e := Extents{Left: -10, Right: 10, Bottom: -5, Top: 5}

	tests := []struct {
		name     string
		p        Vector2
		expected bool
	}{
		{"center", Vec(0, 0), true},
		{"top-left corner", Vec(-10, 5), true},
		{"bottom-right corner", Vec(10, -5), true},
		{"outside left", Vec(-10.1, 0), false},
		{"outside top", Vec(0, 5.1), false},
		{"outside bottom", Vec(0, -6), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, e.Contains(tc.p))
		})
	}
}

func TestBoundingBoxMesh(t *testing.T) {
	box := BoundingBox{Width: 4, Height: 2}
	points := slices.Collect(box.Mesh(Vec(10, 20)))

	require.Len(t, points, 5)
	assert.Equal(t, []Vector2{
		{X: 12, Y: 21},
		{X: 12, Y: 19},
		{X: 8, Y: 19},
		{X: 8, Y: 21},
		{X: 12, Y: 21},
	}, points)
	assert.Equal(t, points[0], points[4], "mesh must close on its first corner")
}

func TestBoundingBoxMeshIsReusable(t *testing.T) {
	mesh := BoundingBox{Width: 2, Height: 2}.Mesh(Vec(0, 0))

	first := slices.Collect(mesh)
	second := slices.Collect(mesh)
	assert.Equal(t, first, second)

	// Early exit must stop the sequence cleanly.
	n := 0
	for range mesh {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Orange ")
	require.NoError(t, err)
	assert.Equal(t, ColorOrange, c)
	assert.Equal(t, "orange", c.String())

	_, err = ParseColor("magenta")
	assert.Error(t, err)
}
