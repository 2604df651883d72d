package bmap

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// TileRect is a rectangular block of tiles in map coordinates, stored row by
// row. Token cells are transparent: SetTileRect leaves the map alone there.
type TileRect struct {
	Rect  geom.Rect
	Tiles []tiles.Tile
}

// NewTileRect returns a block covering r with every cell set to fill.
func NewTileRect(r geom.Rect, fill tiles.Tile) *TileRect {
	n := 0
	if !r.Empty() {
		n = r.Area()
	}
	tr := &TileRect{Rect: r, Tiles: make([]tiles.Tile, n)}
	for i := range tr.Tiles {
		tr.Tiles[i] = fill
	}
	return tr
}

// Crop returns the part of tr covered by r. Cells of r outside tr are Token.
func (tr *TileRect) Crop(r geom.Rect) *TileRect {
	out := NewTileRect(r, tiles.Token)
	r.Intersection(tr.Rect).Points(func(p geom.Point) {
		out.Set(p, tr.At(p))
	})
	return out
}

func (tr *TileRect) index(p geom.Point) (int, bool) {
	if !tr.Rect.ContainsPoint(p) {
		return 0, false
	}
	return (p.Y-tr.Rect.MinY())*tr.Rect.Width() + p.X - tr.Rect.MinX(), true
}

// At returns the tile at p, or Token when p is outside the block.
func (tr *TileRect) At(p geom.Point) tiles.Tile {
	if i, ok := tr.index(p); ok {
		return tr.Tiles[i]
	}
	return tiles.Token
}

// Set writes t at p; points outside the block are ignored.
func (tr *TileRect) Set(p geom.Point, t tiles.Tile) {
	if i, ok := tr.index(p); ok {
		tr.Tiles[i] = t
	}
}

// SetOrigin moves the block without changing its tiles.
func (tr *TileRect) SetOrigin(p geom.Point) {
	tr.Rect.Origin = p
}

// Offset moves the block by (dx, dy).
func (tr *TileRect) Offset(dx, dy int) {
	tr.Rect = tr.Rect.Offset(dx, dy)
}

// FloodFill replaces the 4-connected region of tiles equal to the one at p
// with t.
func (tr *TileRect) FloodFill(p geom.Point, t tiles.Tile) {
	old := tr.At(p)
	if old == t || old == tiles.Token {
		return
	}
	for _, q := range tr.mark(p) {
		tr.Set(q, t)
	}
}

// mark replaces the 4-connected region of tiles equal to the one at p with
// Token and returns its cells in visiting order. Callers must overwrite
// every returned cell.
func (tr *TileRect) mark(p geom.Point) []geom.Point {
	match := tr.At(p)
	if match == tiles.Token {
		return nil
	}

	cells := make([]geom.Point, 0)
	queue := []geom.Point{p}
	tr.Set(p, tiles.Token)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cells = append(cells, cur)

		for _, n := range [4]geom.Point{cur.Add(0, -1), cur.Add(1, 0), cur.Add(0, 1), cur.Add(-1, 0)} {
			if tr.At(n) == match {
				tr.Set(n, tiles.Token)
				queue = append(queue, n)
			}
		}
	}
	return cells
}

// RotateLeft turns the block a quarter turn anticlockwise about its origin.
func (tr *TileRect) RotateLeft() {
	w, h := tr.Rect.Width(), tr.Rect.Height()
	out := make([]tiles.Tile, len(tr.Tiles))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x, y) lands at (y, w-1-x) in an h-wide block.
			out[(w-1-x)*h+y] = tr.Tiles[y*w+x]
		}
	}
	tr.Tiles = out
	tr.Rect.Size = geom.MakeSize(h, w)
}

// RotateRight turns the block a quarter turn clockwise about its origin.
func (tr *TileRect) RotateRight() {
	w, h := tr.Rect.Width(), tr.Rect.Height()
	out := make([]tiles.Tile, len(tr.Tiles))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x, y) lands at (h-1-y, x).
			out[x*h+h-1-y] = tr.Tiles[y*w+x]
		}
	}
	tr.Tiles = out
	tr.Rect.Size = geom.MakeSize(h, w)
}

// FlipHorizontal mirrors the block left to right.
func (tr *TileRect) FlipHorizontal() {
	w, h := tr.Rect.Width(), tr.Rect.Height()
	for y := 0; y < h; y++ {
		row := tr.Tiles[y*w : (y+1)*w]
		for i, j := 0, w-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// FlipVertical mirrors the block top to bottom.
func (tr *TileRect) FlipVertical() {
	w, h := tr.Rect.Width(), tr.Rect.Height()
	for i, j := 0, h-1; i < j; i, j = i+1, j-1 {
		for x := 0; x < w; x++ {
			tr.Tiles[i*w+x], tr.Tiles[j*w+x] = tr.Tiles[j*w+x], tr.Tiles[i*w+x]
		}
	}
}

// DrawRectangle sets the outermost ring of cells to t.
func (tr *TileRect) DrawRectangle(t tiles.Tile) {
	r := tr.Rect
	if r.Empty() {
		return
	}
	for x := r.MinX(); x <= r.MaxX(); x++ {
		tr.Set(geom.Pt(x, r.MinY()), t)
		tr.Set(geom.Pt(x, r.MaxY()), t)
	}
	for y := r.MinY(); y <= r.MaxY(); y++ {
		tr.Set(geom.Pt(r.MinX(), y), t)
		tr.Set(geom.Pt(r.MaxX(), y), t)
	}
}

// DrawLine sets the cells on the line from one point to another to t.
// Parts of the line outside the block are dropped.
func (tr *TileRect) DrawLine(t tiles.Tile, from, to geom.Point) {
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	p := from
	e := dx + dy
	for {
		tr.Set(p, t)
		if p == to {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// DrawFilledEllipse sets every cell inside the ellipse inscribed in the
// block to t.
func (tr *TileRect) DrawFilledEllipse(t tiles.Tile) {
	tr.Rect.Points(func(p geom.Point) {
		if tr.inEllipse(p) {
			tr.Set(p, t)
		}
	})
}

// DrawEllipse sets the edge cells of the inscribed ellipse to t.
func (tr *TileRect) DrawEllipse(t tiles.Tile) {
	var edge []geom.Point
	tr.Rect.Points(func(p geom.Point) {
		if !tr.inEllipse(p) {
			return
		}
		for _, n := range [4]geom.Point{p.Add(0, -1), p.Add(1, 0), p.Add(0, 1), p.Add(-1, 0)} {
			if !tr.inEllipse(n) {
				edge = append(edge, p)
				return
			}
		}
	})
	for _, p := range edge {
		tr.Set(p, t)
	}
}

// inEllipse tests the centre of cell p against the inscribed ellipse.
func (tr *TileRect) inEllipse(p geom.Point) bool {
	r := tr.Rect
	if !r.ContainsPoint(p) {
		return false
	}
	rx, ry := float64(r.Width())/2, float64(r.Height())/2
	nx := (float64(p.X-r.MinX()) + 0.5 - rx) / rx
	ny := (float64(p.Y-r.MinY()) + 0.5 - ry) / ry
	return nx*nx+ny*ny <= 1
}

// Text form: a "BMAPRECT x y w h" header, then one line per row with one
// character per tile: hex digits for 0-15, then s (sea), m (mined sea) and
// t (token).
const textHeader = "BMAPRECT"

var textDigits = [tiles.NumTiles]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f', 's', 'm', 't',
}

// MarshalText encodes tr in its clipboard form.
func (tr *TileRect) MarshalText() ([]byte, error) {
	r := tr.Rect
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %d %d %d\n", textHeader, r.MinX(), r.MinY(), r.Width(), r.Height())
	if r.Empty() {
		return buf.Bytes(), nil
	}
	for y := 0; y < r.Height(); y++ {
		for _, t := range tr.Tiles[y*r.Width() : (y+1)*r.Width()] {
			if !t.Valid() {
				return nil, fmt.Errorf("%w: %d at row %d", ErrInvalidTile, t, y)
			}
			buf.WriteByte(textDigits[t])
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText decodes the clipboard form written by MarshalText.
func (tr *TileRect) UnmarshalText(text []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(text))
	if !sc.Scan() {
		return fmt.Errorf("%w: empty tile rect", ErrCorruptFormat)
	}

	var x, y, w, h int
	var ident string
	if _, err := fmt.Sscanf(strings.TrimSpace(sc.Text()), "%s %d %d %d %d", &ident, &x, &y, &w, &h); err != nil {
		return fmt.Errorf("%w: tile rect header: %v", ErrCorruptFormat, err)
	}
	if ident != textHeader {
		return fmt.Errorf("%w: tile rect header %q", ErrCorruptFormat, ident)
	}
	if w < 0 || h < 0 || w > tiles.Width || h > tiles.Width {
		return fmt.Errorf("%w: tile rect size %dx%d", ErrCorruptFormat, w, h)
	}

	out := NewTileRect(geom.MakeRect(x, y, w, h), tiles.Token)
	for row := 0; row < h && w > 0; row++ {
		if !sc.Scan() {
			return fmt.Errorf("%w: tile rect has %d of %d rows", ErrCorruptFormat, row, h)
		}
		line := strings.TrimSpace(sc.Text())
		if len(line) != w {
			return fmt.Errorf("%w: tile rect row %d has %d tiles, want %d", ErrCorruptFormat, row, len(line), w)
		}
		for col := 0; col < w; col++ {
			t, ok := parseTextDigit(line[col])
			if !ok {
				return fmt.Errorf("%w: tile rect row %d: bad tile %q", ErrCorruptFormat, row, line[col])
			}
			out.Tiles[row*w+col] = t
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptFormat, err)
	}

	*tr = *out
	return nil
}

func parseTextDigit(c byte) (tiles.Tile, bool) {
	for t, d := range textDigits {
		if d == c {
			return tiles.Tile(t), true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
