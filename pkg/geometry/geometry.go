// pkg/geometry/geometry.go

// Package geometry provides the point, rectangle and displacement primitives
// shared by the drag engine and its substrates.
package geometry

import "math"

// Point represents an absolute position in page coordinates.
type Point struct {
	X, Y float64
}

// Add returns the point translated by the vector v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// To returns the displacement vector from p to other.
func (p Point) To(other Point) Vector {
	return Vector{DX: other.X - p.X, DY: other.Y - p.Y}
}

// Vector represents a 2D displacement. Leftward and upward displacements are
// negative, matching page-coordinate conventions.
type Vector struct {
	DX, DY float64
}

// Add returns the vector sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{DX: v.DX + other.DX, DY: v.DY + other.DY}
}

// MagSq calculates the squared magnitude (length) of the vector.
func (v Vector) MagSq() float64 {
	return v.DX*v.DX + v.DY*v.DY
}

// Mag calculates the magnitude (length) of the vector.
func (v Vector) Mag() float64 {
	// Use math.Hypot for numerical stability.
	return math.Hypot(v.DX, v.DY)
}

// Rect defines an axis-aligned bounding rectangle in page coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// TopLeft returns the top-left corner as a point.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether the point lies inside the rectangle. Points on the
// left/top edges are inside, points on the right/bottom edges are not, so
// adjacent rectangles never both claim a shared boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// ExpandedBy returns a new rectangle expanded by the edge sizes.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Edges holds one value per rectangle edge.
type Edges struct {
	Top, Right, Bottom, Left float64
}
