package bmap

import (
	"errors"
	"testing"

	"bolo-mapkit/pkg/tiles"
)

func TestRunRepeatBoundaries(t *testing.T) {
	tests := []struct {
		n       int
		payload []byte
	}{
		{1, []byte{0x00}},
		{2, []byte{0x80}},
		{8, []byte{0xe0}},
		{9, []byte{0xf0}},
		{10, []byte{0xf0, 0x00}},
		{11, []byte{0xf0, 0x80}},
		{18, []byte{0xf0, 0xf0}},
	}

	for _, tt := range tests {
		g := defaultGrid()
		for x := 20; x < 20+tt.n; x++ {
			g[30][x] = tiles.Wall
		}

		run, payload := scanOne(t, g)
		if run.Y != 30 || run.StartX != 20 || int(run.EndX) != 20+tt.n {
			t.Errorf("n=%d: run = %+v", tt.n, run)
		}
		if string(payload) != string(tt.payload) {
			t.Errorf("n=%d: payload = %x, want %x", tt.n, payload, tt.payload)
		}
		if int(run.Len) != RunHeaderSize+len(tt.payload) {
			t.Errorf("n=%d: Len = %d", tt.n, run.Len)
		}
		assertRoundTrip(t, g)
	}
}

func TestRunLiteralBoundaries(t *testing.T) {
	alternate := func(n int) *tiles.Grid {
		g := defaultGrid()
		for i := 0; i < n; i++ {
			g[40][50+i] = tiles.River + tiles.Tile(i%2)
		}
		return g
	}

	// Eight dissimilar tiles fit one literal token.
	run, payload := scanOne(t, alternate(8))
	want := []byte{0x71, 0x21, 0x21, 0x21, 0x20}
	if string(payload) != string(want) {
		t.Errorf("payload = %x, want %x", payload, want)
	}
	if run.Len != 9 || run.EndX != 58 {
		t.Errorf("run = %+v", run)
	}

	// A ninth needs a second token.
	_, payload = scanOne(t, alternate(9))
	want = []byte{0x71, 0x21, 0x21, 0x21, 0x20, 0x10}
	if string(payload) != string(want) {
		t.Errorf("payload = %x, want %x", payload, want)
	}

	for _, n := range []int{1, 7, 8, 9, 16, 17} {
		assertRoundTrip(t, alternate(n))
	}
}

func TestRunLiteralThenRepeat(t *testing.T) {
	g := defaultGrid()
	for i, tile := range []tiles.Tile{tiles.River, tiles.Swamp, tiles.Wall, tiles.Wall, tiles.Wall} {
		g[60][100+i] = tile
	}

	run, payload := scanOne(t, g)
	want := []byte{0x11, 0x29, 0x00}
	if string(payload) != string(want) {
		t.Errorf("payload = %x, want %x", payload, want)
	}
	if run.Len != 7 || run.StartX != 100 || run.EndX != 105 {
		t.Errorf("run = %+v", run)
	}
	assertRoundTrip(t, g)
}

func TestRunsSplitAtDefaultTiles(t *testing.T) {
	g := defaultGrid()
	g[70][30] = tiles.Grass
	g[70][32] = tiles.Grass
	g[71][30] = tiles.Road

	s := NewRunScanner(g)
	var buf [MaxRunPayload]byte
	var got []Run
	for {
		run, err := s.Next(buf[:])
		if err != nil {
			t.Fatal(err)
		}
		if run.IsEnd() {
			break
		}
		got = append(got, run)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(got), got)
	}
	if got[0].StartX != 30 || got[0].EndX != 31 || got[1].StartX != 32 || got[2].Y != 71 {
		t.Errorf("runs = %+v", got)
	}
}

func TestRunAtRightEdge(t *testing.T) {
	g := defaultGrid()
	for x := 250; x < tiles.Width; x++ {
		g[100][x] = tiles.Wall
	}

	run, _ := scanOne(t, g)
	if run.StartX != 250 || run.EndX != 0 {
		t.Errorf("run = %+v, want end column stored as 0", run)
	}
	assertRoundTrip(t, g)
}

func TestFullRowSplitsBeforeLastColumn(t *testing.T) {
	g := defaultGrid()
	for x := 0; x < tiles.Width; x++ {
		g[5][x] = tiles.Tile(x % 3)
	}

	s := NewRunScanner(g)
	var buf [MaxRunPayload]byte
	first, err := s.Next(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Next(buf[:])
	if err != nil {
		t.Fatal(err)
	}

	if first.StartX != 0 || first.EndX != 255 {
		t.Errorf("first run = %+v", first)
	}
	if second.StartX != 255 || second.EndX != 0 {
		t.Errorf("second run = %+v", second)
	}
	assertRoundTrip(t, g)
}

func TestRunRejectsUnstorableTiles(t *testing.T) {
	for _, tile := range []tiles.Tile{tiles.Sea, tiles.Token} {
		g := defaultGrid()
		g[0][0] = tile

		var buf [MaxRunPayload]byte
		if _, err := NewRunScanner(g).Next(buf[:]); !errors.Is(err, ErrEncodingFailure) {
			t.Errorf("%v: expected ErrEncodingFailure, got %v", tile, err)
		}
	}
}

func TestDecodeRunValidation(t *testing.T) {
	tests := []struct {
		name    string
		run     Run
		payload []byte
		wantErr bool
	}{
		{"repeat of two", Run{Len: 5, Y: 20, StartX: 20, EndX: 22}, []byte{0x80}, false},
		{"literal of two", Run{Len: 6, Y: 20, StartX: 20, EndX: 22}, []byte{0x10, 0x20}, false},
		{"truncated literal", Run{Len: 5, Y: 20, StartX: 20, EndX: 22}, []byte{0x10}, true},
		{"repeat past end", Run{Len: 5, Y: 20, StartX: 20, EndX: 21}, []byte{0xf0}, true},
		{"literal past end", Run{Len: 6, Y: 20, StartX: 20, EndX: 21}, []byte{0x10, 0x20}, true},
		{"unused bytes", Run{Len: 6, Y: 20, StartX: 20, EndX: 22}, []byte{0x80, 0x00}, true},
		{"missing token", Run{Len: 4, Y: 20, StartX: 20, EndX: 22}, nil, true},
		{"empty run", Run{Len: 4, Y: 20, StartX: 20, EndX: 20}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := defaultGrid()
			err := DecodeRun(tt.run, tt.payload, g)
			if tt.wantErr {
				if !errors.Is(err, ErrCorruptFormat) {
					t.Errorf("expected ErrCorruptFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeRunWritesTiles(t *testing.T) {
	g := defaultGrid()
	if err := DecodeRun(Run{Len: 6, Y: 20, StartX: 20, EndX: 22}, []byte{0x15, 0x70}, g); err != nil {
		t.Fatal(err)
	}
	if g[20][20] != tiles.Forest || g[20][21] != tiles.Grass {
		t.Errorf("decoded %v %v", g[20][20], g[20][21])
	}
	if g[20][22] != tiles.Sea {
		t.Errorf("decoder wrote past the run: %v", g[20][22])
	}
}

// --- helpers ---

func defaultGrid() *tiles.Grid {
	g := new(tiles.Grid)
	g.Reset()
	return g
}

// scanOne returns the first run of g and a copy of its payload.
func scanOne(t *testing.T, g *tiles.Grid) (Run, []byte) {
	t.Helper()
	var buf [MaxRunPayload]byte
	run, err := NewRunScanner(g).Next(buf[:])
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if run.IsEnd() {
		t.Fatal("expected a run, got the terminator")
	}
	return run, append([]byte(nil), buf[:run.PayloadLen()]...)
}

// assertRoundTrip encodes every run of g and decodes them into a fresh grid.
func assertRoundTrip(t *testing.T, g *tiles.Grid) {
	t.Helper()
	out := defaultGrid()
	s := NewRunScanner(g)
	var buf [MaxRunPayload]byte
	for {
		run, err := s.Next(buf[:])
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if run.IsEnd() {
			break
		}
		if err := DecodeRun(run, buf[:run.PayloadLen()], out); err != nil {
			t.Fatalf("DecodeRun %+v: %v", run, err)
		}
	}
	if *out != *g {
		t.Error("grid changed after a run round trip")
	}
}
