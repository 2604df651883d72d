package geom

// Quadrant indexes the rectangles returned by Split.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// Split divides r at (x, y) into top-left, top-right, bottom-left and
// bottom-right parts. Parts may be empty when the point lies on an edge.
func (r Rect) Split(x, y int) [4]Rect {
	return [4]Rect{
		TopLeft:     MakeRect(r.Origin.X, r.Origin.Y, x-r.Origin.X, y-r.Origin.Y),
		TopRight:    MakeRect(x, r.Origin.Y, r.Right()-x, y-r.Origin.Y),
		BottomLeft:  MakeRect(r.Origin.X, y, x-r.Origin.X, r.Bottom()-y),
		BottomRight: MakeRect(x, y, r.Right()-x, r.Bottom()-y),
	}
}

// Subtract removes o from r and returns up to four disjoint rectangles whose
// union is r minus the overlap. Unused slots hold the zero Rect.
//
// The decomposition depends on which corners of o, grown by one cell, fall
// inside r: one corner means o clips a corner of r, two adjacent corners
// mean o bites into one side, four mean o is an island inside r, and none
// means o either covers r, crosses it as a band, or misses it entirely.
func (r Rect) Subtract(o Rect) [4]Rect {
	minx, miny := o.Origin.X, o.Origin.Y
	maxx, maxy := o.Right(), o.Bottom()
	right, bottom := r.Right(), r.Bottom()
	x, y := r.Origin.X, r.Origin.Y
	w, h := r.Size.Width, r.Size.Height

	tl := r.ContainsPoint(Pt(minx-1, miny-1))
	bl := r.ContainsPoint(Pt(minx-1, maxy))
	tr := r.ContainsPoint(Pt(maxx, miny-1))
	br := r.ContainsPoint(Pt(maxx, maxy))

	var out [4]Rect
	switch {
	// one corner inside
	case tl && !bl && !tr && !br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(x, miny, minx-x, bottom-miny)
	case !tl && bl && !tr && !br:
		out[0] = MakeRect(x, y, minx-x, h)
		out[1] = MakeRect(minx, maxy, right-minx, bottom-maxy)
	case !tl && !bl && tr && !br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(maxx, miny, right-maxx, bottom-miny)
	case !tl && !bl && !tr && br:
		out[0] = MakeRect(maxx, y, right-maxx, h)
		out[1] = MakeRect(x, maxy, maxx-x, bottom-maxy)

	// two corners inside: o bites into one side
	case tl && !bl && tr && !br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(x, miny, minx-x, bottom-miny)
		out[2] = MakeRect(maxx, miny, right-maxx, bottom-miny)
	case !tl && !bl && tr && br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(maxx, miny, right-maxx, bottom-miny)
		out[2] = MakeRect(x, maxy, maxx-x, bottom-maxy)
	case !tl && bl && !tr && br:
		out[0] = MakeRect(x, y, minx-x, h)
		out[1] = MakeRect(maxx, y, right-maxx, h)
		out[2] = MakeRect(minx, maxy, maxx-minx, bottom-maxy)
	case tl && bl && !tr && !br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(x, miny, minx-x, bottom-miny)
		out[2] = MakeRect(minx, maxy, right-minx, bottom-maxy)

	// all four: pinwheel around the hole
	case tl && bl && tr && br:
		out[0] = MakeRect(x, y, maxx-x, miny-y)
		out[1] = MakeRect(x, miny, minx-x, bottom-miny)
		out[2] = MakeRect(minx, maxy, right-minx, bottom-maxy)
		out[3] = MakeRect(maxx, y, right-maxx, maxy-y)

	// none: a frame of top and bottom strips with side pieces in between
	case !tl && !bl && !tr && !br:
		out[0] = MakeRect(x, y, w, miny-y)
		out[1] = MakeRect(x, miny, minx-x, maxy-miny)
		out[2] = MakeRect(x, maxy, w, bottom-maxy)
		out[3] = MakeRect(maxx, miny, right-maxx, maxy-miny)
	}

	for i := range out {
		out[i] = clip(out[i], r)
	}
	return out
}

// SubtractAll is Subtract with the empty slots dropped.
func (r Rect) SubtractAll(o Rect) []Rect {
	parts := r.Subtract(o)
	out := make([]Rect, 0, len(parts))
	for _, p := range parts {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// clip bounds part to r and normalizes empty results to the zero Rect.
func clip(part, r Rect) Rect {
	if part.Empty() {
		return Rect{}
	}
	part = part.Intersection(r)
	if part.Empty() {
		return Rect{}
	}
	return part
}
