// Package core provides fundamental types and utilities for the breakout simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrBlendFactor is returned when an interpolation factor is outside [0, 1].
	ErrBlendFactor = errors.New("core: blend factor outside [0, 1]")

	// ErrNegativeSize is returned when a bounding box is given a negative dimension.
	ErrNegativeSize = errors.New("core: negative box size")
)

// Vector2 is an immutable 2D vector in simulation units.
// The simulation space is centered on the arena with Y pointing up.
type Vector2 struct {
	X, Y float64
}

// Vec creates a vector from its components.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by a scalar.
func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

// LerpScalar returns start + t*(end-start).
// t must lie in [0, 1]; anything else (including NaN) is rejected, never clamped.
func LerpScalar(start, end, t float64) (float64, error) {
	if !(t >= 0 && t <= 1) {
		return start, fmt.Errorf("%w: %v", ErrBlendFactor, t)
	}
	return start + t*(end-start), nil
}

// Lerp interpolates component-wise between two vectors.
func Lerp(start, end Vector2, t float64) (Vector2, error) {
	if !(t >= 0 && t <= 1) {
		return start, fmt.Errorf("%w: %v", ErrBlendFactor, t)
	}
	return end.Sub(start).Scale(t).Add(start), nil
}

// Extents holds the edges of an axis-aligned box.
// Top is the larger Y value.
type Extents struct {
	Left, Right, Bottom, Top float64
}

// Contains returns true if p lies inside or on the edges.
func (e Extents) Contains(p Vector2) bool {
	return p.X >= e.Left && p.X <= e.Right && p.Y >= e.Bottom && p.Y <= e.Top
}

// Width returns Right - Left.
func (e Extents) Width() float64 {
	return e.Right - e.Left
}

// Height returns Top - Bottom.
func (e Extents) Height() float64 {
	return e.Top - e.Bottom
}

// BoundingBox is an axis-aligned box centered on its owner's position.
type BoundingBox struct {
	Width  float64
	Height float64
}

// NewBoundingBox creates a box, rejecting negative dimensions.
func NewBoundingBox(width, height float64) (BoundingBox, error) {
	if width < 0 || height < 0 {
		return BoundingBox{}, fmt.Errorf("%w: %vx%v", ErrNegativeSize, width, height)
	}
	return BoundingBox{Width: width, Height: height}, nil
}

// Extents returns the box edges when centered on the given position.
func (b BoundingBox) Extents(center Vector2) Extents {
	hw, hh := b.Width*0.5, b.Height*0.5
	return Extents{
		Left:   center.X - hw,
		Right:  center.X + hw,
		Bottom: center.Y - hh,
		Top:    center.Y + hh,
	}
}

// Mesh yields the box outline centered on the given position: the four
// corners in a fixed winding order followed by the first corner again.
// The sequence is lazy and can be ranged over any number of times.
func (b BoundingBox) Mesh(center Vector2) iter.Seq[Vector2] {
	hw, hh := b.Width*0.5, b.Height*0.5
	return func(yield func(Vector2) bool) {
		corners := [5]Vector2{
			{X: hw, Y: hh},
			{X: hw, Y: -hh},
			{X: -hw, Y: -hh},
			{X: -hw, Y: hh},
			{X: hw, Y: hh},
		}
		for _, c := range corners {
			if !yield(center.Add(c)) {
				return
			}
		}
	}
}

// Rect represents a rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
