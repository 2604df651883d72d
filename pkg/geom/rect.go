package geom

import "fmt"

// Rect is an axis-aligned rectangle. Its right and bottom edges are
// exclusive: a Rect at (0,0) of size 2x2 covers points (0,0) through (1,1).
type Rect struct {
	Origin Point
	Size   Size
}

// MakeRect returns the rectangle with origin (x, y) and size w x h.
func MakeRect(x, y, w, h int) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// RectFromPoints returns the smallest rectangle covering both points.
func RectFromPoints(a, b Point) Rect {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return MakeRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

func (r Rect) Width() int  { return r.Size.Width }
func (r Rect) Height() int { return r.Size.Height }

// MinX returns the left-most column.
func (r Rect) MinX() int { return r.Origin.X }

// MinY returns the top-most row.
func (r Rect) MinY() int { return r.Origin.Y }

// MaxX returns the right-most column covered by r.
func (r Rect) MaxX() int { return r.Origin.X + r.Size.Width - 1 }

// MaxY returns the bottom-most row covered by r.
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height - 1 }

func (r Rect) MidX() int { return r.Origin.X + r.Size.Width/2 }
func (r Rect) MidY() int { return r.Origin.Y + r.Size.Height/2 }

// Right returns one past the right-most column.
func (r Rect) Right() int { return r.Origin.X + r.Size.Width }

// Bottom returns one past the bottom-most row.
func (r Rect) Bottom() int { return r.Origin.Y + r.Size.Height }

// Area returns the number of cells covered, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Size.Width * r.Size.Height
}

// XRange returns the horizontal extent of r.
func (r Rect) XRange() Range { return Range{Origin: r.Origin.X, Size: r.Size.Width} }

// YRange returns the vertical extent of r.
func (r Rect) YRange() Range { return Range{Origin: r.Origin.Y, Size: r.Size.Height} }

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Origin: r.Origin.Add(dx, dy), Size: r.Size}
}

// ContainsPoint reports whether p lies inside r. The right and bottom
// edges are excluded.
func (r Rect) ContainsPoint(p Point) bool {
	return r.Origin.X <= p.X && r.Origin.Y <= p.Y && r.Right() > p.X && r.Bottom() > p.Y
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	x := min(r.Origin.X, o.Origin.X)
	y := min(r.Origin.Y, o.Origin.Y)
	return MakeRect(x, y, max(r.Right(), o.Right())-x, max(r.Bottom(), o.Bottom())-y)
}

// Intersection returns the overlap of r and o. The result is empty (but not
// necessarily zero) when they do not overlap.
func (r Rect) Intersection(o Rect) Rect {
	x := max(r.Origin.X, o.Origin.X)
	y := max(r.Origin.Y, o.Origin.Y)
	return MakeRect(x, y, min(r.Right(), o.Right())-x, min(r.Bottom(), o.Bottom())-y)
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.XRange().Intersects(o.XRange()) && r.YRange().Intersects(o.YRange())
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return r.XRange().Contains(o.XRange()) && r.YRange().Contains(o.YRange())
}

// Equal reports whether r and o have the same origin and size.
func (r Rect) Equal(o Rect) bool {
	return r.Origin.Equal(o.Origin) && r.Size.Equal(o.Size)
}

// Empty reports whether r has a non-positive width or height.
func (r Rect) Empty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Inset shrinks r by dx on the left and right and dy on the top and bottom.
// Negative deltas grow it.
func (r Rect) Inset(dx, dy int) Rect {
	return MakeRect(r.Origin.X+dx, r.Origin.Y+dy, r.Size.Width-dx*2, r.Size.Height-dy*2)
}

// Points calls fn for every point in r, row by row.
func (r Rect) Points(fn func(p Point)) {
	for y := r.Origin.Y; y < r.Bottom(); y++ {
		for x := r.Origin.X; x < r.Right(); x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}
