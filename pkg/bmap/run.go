package bmap

import (
	"fmt"

	"bolo-mapkit/pkg/tiles"
)

// Token limits. A literal token (0-7) is followed by 1-8 tile nibbles; a
// repeat token (8-15) is followed by one tile repeated 2-9 times.
const (
	maxLiteral   = 8
	maxRepeat    = 9
	repeatOffset = 6
)

// Cursor is a scan position in a grid.
type Cursor struct {
	X int
	Y int
}

// RunScanner walks a grid row by row and encodes each span of non-default
// tiles as a run. Two scanners over the same grid produce the same runs.
type RunScanner struct {
	grid *tiles.Grid
	cur  Cursor
}

// NewRunScanner returns a scanner positioned at the top-left cell.
func NewRunScanner(g *tiles.Grid) *RunScanner {
	return &RunScanner{grid: g}
}

// Cursor returns the position the next search starts from.
func (s *RunScanner) Cursor() Cursor {
	return s.cur
}

// Next finds the next run, writes its packed tokens into payload and returns
// its header. Once the grid is exhausted it returns EndRun. payload must hold
// at least MaxRunPayload bytes to be safe for any row.
func (s *RunScanner) Next(payload []byte) (Run, error) {
	g := s.grid
	for s.cur.Y < tiles.Width {
		for s.cur.X < tiles.Width {
			if !g.IsDefault(s.cur.X, s.cur.Y) {
				return s.encode(payload)
			}
			s.cur.X++
		}
		s.cur.Y++
		s.cur.X = 0
	}
	return EndRun, nil
}

// encode packs the run starting at the cursor and leaves the cursor just
// past its last tile.
func (s *RunScanner) encode(payload []byte) (Run, error) {
	g := s.grid
	y := s.cur.Y
	row := &g[y]
	run := Run{Y: uint8(y), StartX: uint8(s.cur.X)}
	w := nibbleWriter{buf: payload}

	// EndX wraps to 0 at the right edge, so a run from column 0 must stop
	// one short of it to stay distinguishable from an empty run.
	limit := tiles.Width
	if s.cur.X == 0 {
		limit--
	}

	for x := s.cur.X; x < limit && !g.IsDefault(x, y); {
		var n int
		if x+1 < limit && row[x+1] == row[x] {
			n = 2
			for x+n < limit && n < maxRepeat && row[x+n] == row[x] {
				n++
			}
			w.put(uint8(n + repeatOffset))
			w.putTile(row[x], x, y)
		} else {
			n = 1
			for x+n < limit && n < maxLiteral && !g.IsDefault(x+n, y) &&
				(x+n+1 >= limit || row[x+n] != row[x+n+1]) {
				n++
			}
			w.put(uint8(n - 1))
			for i := 0; i < n; i++ {
				w.putTile(row[x+i], x+i, y)
			}
		}
		x += n
		s.cur.X = x
	}

	if w.err != nil {
		return Run{}, w.err
	}

	size := RunHeaderSize + (w.n+1)/2
	if size > 0xff {
		return Run{}, fmt.Errorf("%w: run at row %d needs %d bytes", ErrEncodingFailure, y, size)
	}
	run.Len = uint8(size)
	run.EndX = uint8(s.cur.X)
	if s.cur.X == tiles.Width {
		// A run ending on the last column stores 0 (256 mod 256).
		run.EndX = 0
	}
	return run, nil
}

// DecodeRun expands the tokens in payload into row run.Y of g, starting at
// run.StartX. payload must be exactly the run's payload bytes. Tokens that
// would write past run.EndX, need more bytes than the payload holds, or leave
// bytes unused are reported as ErrCorruptFormat.
func DecodeRun(run Run, payload []byte, g *tiles.Grid) error {
	y := int(run.Y)
	x := int(run.StartX)
	end := run.end()
	r := nibbleReader{buf: payload}

	for x < end {
		if !r.has(1) {
			return fmt.Errorf("%w: run at row %d: missing token at column %d", ErrCorruptFormat, y, x)
		}
		tok := int(r.next())

		switch {
		case tok < maxLiteral:
			n := tok + 1
			if !r.has(n) {
				return fmt.Errorf("%w: run at row %d: literal of %d tiles truncated", ErrCorruptFormat, y, n)
			}
			if x+n > end {
				return fmt.Errorf("%w: run at row %d: literal overruns column %d", ErrCorruptFormat, y, end)
			}
			for i := 0; i < n; i++ {
				g[y][x] = tiles.Tile(r.next())
				x++
			}
		default:
			n := tok - repeatOffset
			if !r.has(1) {
				return fmt.Errorf("%w: run at row %d: repeat tile truncated", ErrCorruptFormat, y)
			}
			if x+n > end {
				return fmt.Errorf("%w: run at row %d: repeat overruns column %d", ErrCorruptFormat, y, end)
			}
			t := tiles.Tile(r.next())
			for i := 0; i < n; i++ {
				g[y][x] = t
				x++
			}
		}
	}

	if used := (r.n + 1) / 2; used != len(payload) {
		return fmt.Errorf("%w: run at row %d: used %d of %d payload bytes", ErrCorruptFormat, y, used, len(payload))
	}
	return nil
}

// end returns EndX as a column bound; 0 after a non-zero start means the
// run reaches the right edge.
func (r Run) end() int {
	if r.EndX == 0 && r.StartX != 0 {
		return tiles.Width
	}
	return int(r.EndX)
}

// nibbleWriter packs 4-bit values high nibble first.
type nibbleWriter struct {
	buf []byte
	n   int
	err error
}

func (w *nibbleWriter) put(v uint8) {
	if w.err != nil {
		return
	}
	i := w.n / 2
	if i >= len(w.buf) {
		w.err = fmt.Errorf("%w: run payload exceeds %d bytes", ErrEncodingFailure, len(w.buf))
		return
	}
	if w.n%2 == 0 {
		w.buf[i] = v << 4
	} else {
		w.buf[i] |= v & 0x0f
	}
	w.n++
}

// putTile writes a tile, which must fit in a nibble. Sea and mined sea exist
// only as default tiles, and the flood-fill token never leaves memory.
func (w *nibbleWriter) putTile(t tiles.Tile, x, y int) {
	if t > 0x0f && w.err == nil {
		w.err = fmt.Errorf("%w: %v at (%d,%d) cannot be stored in a run", ErrEncodingFailure, t, x, y)
		return
	}
	w.put(uint8(t))
}

// nibbleReader unpacks 4-bit values high nibble first.
type nibbleReader struct {
	buf []byte
	n   int
}

// has reports whether k more nibbles are available.
func (r *nibbleReader) has(k int) bool {
	return (r.n+k+1)/2 <= len(r.buf)
}

func (r *nibbleReader) next() uint8 {
	b := r.buf[r.n/2]
	r.n++
	if r.n%2 == 1 {
		return b >> 4
	}
	return b & 0x0f
}
