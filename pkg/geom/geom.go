// Package geom provides the integer point, range, size and rectangle types
// used to address regions of a tile grid.
package geom

import "fmt"

// Point is a grid coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Range is a one-dimensional interval [Origin, Origin+Size).
type Range struct {
	Origin int
	Size   int
}

// MakeRange returns the range starting at origin with the given size.
func MakeRange(origin, size int) Range {
	return Range{Origin: origin, Size: size}
}

// End returns one past the last location in the range.
func (r Range) End() int {
	return r.Origin + r.Size
}

// Intersects reports whether r and o share at least one location.
func (r Range) Intersects(o Range) bool {
	if r.Origin < o.Origin {
		return r.End() > o.Origin
	}
	return o.End() > r.Origin
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return r.Origin <= o.Origin && r.End() >= o.End()
}

// ContainsLocation reports whether x lies within r.
func (r Range) ContainsLocation(x int) bool {
	return r.Origin <= x && x < r.End()
}

// Size is a width and height pair.
type Size struct {
	Width  int
	Height int
}

// MakeSize returns a Size.
func MakeSize(w, h int) Size {
	return Size{Width: w, Height: h}
}

// Equal reports whether s and o have the same dimensions.
func (s Size) Equal(o Size) bool {
	return s.Width == o.Width && s.Height == o.Height
}
