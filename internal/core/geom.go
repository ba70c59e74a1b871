// Package core provides fundamental types and utilities for horde.
// It contains no external dependencies (especially no Bubble Tea) to keep
// the rule engine pure and testable.
package core

import "math"

// Point is an integer cell coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area of screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// FloorInt rounds toward negative infinity, so sub-cell offsets left of or
// above the origin land in the preceding cell.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
