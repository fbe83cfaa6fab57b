// Package physics provides axis-aligned box geometry and broad-phase
// collision lookup for the playfield.
package physics

import "math"

// Rect is an axis-aligned bounding box. X, Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Moved returns the rectangle translated by dx, dy.
func (r Rect) Moved(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// CenteredAt returns a w×h rectangle whose center is cx, cy.
func CenteredAt(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// MidBottomAt returns a w×h rectangle whose bottom edge midpoint is x, y.
func MidBottomAt(x, y, w, h float64) Rect {
	return Rect{X: x - w/2, Y: y - h, W: w, H: h}
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge or corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Inside reports whether r lies entirely within bounds (edges inclusive).
func (r Rect) Inside(bounds Rect) bool {
	return r.X >= bounds.X && r.Right() <= bounds.Right() &&
		r.Y >= bounds.Y && r.Bottom() <= bounds.Bottom()
}

// ClampInto moves r the minimum distance needed to lie within bounds.
// A rectangle larger than bounds is aligned to the top-left corner.
func (r Rect) ClampInto(bounds Rect) Rect {
	r.X = math.Max(bounds.X, math.Min(r.X, bounds.Right()-r.W))
	r.Y = math.Max(bounds.Y, math.Min(r.Y, bounds.Bottom()-r.H))
	if r.W > bounds.W {
		r.X = bounds.X
	}
	if r.H > bounds.H {
		r.Y = bounds.Y
	}
	return r
}

// OutsideX reports whether r crosses the left or right edge of bounds.
// The test is half-open so a box resting exactly on an edge is inside.
func (r Rect) OutsideX(bounds Rect) bool {
	return r.X < bounds.X || r.Right() > bounds.Right()
}

// OutsideY is OutsideX for the top and bottom edges.
func (r Rect) OutsideY(bounds Rect) bool {
	return r.Y < bounds.Y || r.Bottom() > bounds.Bottom()
}
