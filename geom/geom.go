// Package geom provides the 2D value types used by layout arithmetic.
package geom

import "math"

// Vector2 is a point or displacement in screen coordinates.
type Vector2 struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	Origin Vector2
	Size   Size
}

// NewRect builds a Rect from raw coordinates.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Origin: Vector2{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.W }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.H }

// Equal reports whether r equals other exactly, the test the manager uses
// to detect a resize report that fills the whole screen.
func (r Rect) Equal(other Rect) bool {
	return r.Origin == other.Origin && r.Size == other.Size
}

// Contains reports whether other fits within s along both dimensions,
// i.e. a window reporting size other is plausible on a screen sized s.
func (s Size) Contains(other Size) bool {
	return other.W <= s.W && other.H <= s.H
}

// Round rounds a rectangle's origin and size to integer pixel boundaries,
// preserving the invariant that adjacent children's edges still meet: the
// caller advances its cursor from the rounded MaxX/MaxY, not from the
// unrounded ratio, so rounding error never accumulates into a gap.
func (r Rect) Round() Rect {
	return Rect{
		Origin: Vector2{X: math.Round(r.Origin.X), Y: math.Round(r.Origin.Y)},
		Size:   Size{W: math.Round(r.Size.W), H: math.Round(r.Size.H)},
	}
}
