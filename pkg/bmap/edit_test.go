package bmap

import (
	"errors"
	"testing"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

func TestCreateObjects(t *testing.T) {
	m := New()

	i, err := m.CreatePillAt(geom.Pt(20, 20))
	if err != nil || i != 0 {
		t.Fatalf("CreatePillAt = %d, %v", i, err)
	}
	if p := m.Pills.At(0); p.Owner != Neutral || p.Armour != MaxPillArmour || p.Speed != MaxPillSpeed {
		t.Errorf("pill = %+v", p)
	}
	if m.TileAt(20, 20) != tiles.Swamp {
		t.Errorf("tile under new pill = %v", m.TileAt(20, 20))
	}

	if _, err := m.CreateBaseAt(geom.Pt(30, 30)); err != nil {
		t.Fatal(err)
	}
	if b := m.Bases.At(0); b.Armour != MaxBaseArmour || b.Shells != MaxBaseShells || b.Mines != MaxBaseMines {
		t.Errorf("base = %+v", b)
	}

	if _, err := m.CreateStartAt(geom.Pt(40, 40), 20); err != nil {
		t.Fatal(err)
	}
	if s := m.Starts.At(0); s.Dir != 4 {
		t.Errorf("start dir = %d, want 4", s.Dir)
	}
}

func TestCreateObjectErrors(t *testing.T) {
	m := New()
	if _, err := m.CreatePillAt(geom.Pt(20, 20)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pill on border", second(m.CreatePillAt(geom.Pt(9, 20))), ErrOutOfBounds},
		{"pill off grid", second(m.CreatePillAt(geom.Pt(-1, 300))), ErrOutOfBounds},
		{"base on pill", second(m.CreateBaseAt(geom.Pt(20, 20))), ErrOccupied},
		{"start on pill", second(m.CreateStartAt(geom.Pt(20, 20), 0)), ErrOccupied},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.err, tt.want)
		}
	}

	for i := 1; i < MaxPills; i++ {
		if _, err := m.CreatePillAt(geom.Pt(20+i, 20)); err != nil {
			t.Fatalf("pill %d: %v", i, err)
		}
	}
	if _, err := m.CreatePillAt(geom.Pt(50, 50)); !errors.Is(err, ErrListFull) {
		t.Errorf("expected ErrListFull, got %v", err)
	}
}

func TestSetObjects(t *testing.T) {
	m := New()
	m.CreatePillAt(geom.Pt(20, 20))
	m.CreateBaseAt(geom.Pt(30, 30))

	p := m.Pills.At(0)
	p.Armour = 3
	if err := m.SetPill(0, p); err != nil {
		t.Errorf("SetPill in place: %v", err)
	}

	p.X, p.Y = 30, 30
	if err := m.SetPill(0, p); !errors.Is(err, ErrOccupied) {
		t.Errorf("SetPill onto base: %v", err)
	}

	p.X, p.Y, p.Owner, p.Speed = 50, 50, 77, 200
	if err := m.SetPill(0, p); err != nil {
		t.Fatal(err)
	}
	if got := m.Pills.At(0); got.Owner != Neutral || got.Speed != MaxPillSpeed || got.Armour != 3 {
		t.Errorf("pill = %+v", got)
	}
	if m.TileAt(50, 50) != tiles.Swamp {
		t.Error("moved pill did not retile its new cell")
	}

	if err := m.SetBase(3, Base{X: 60, Y: 60}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetBase(3): %v", err)
	}
	if err := m.RemoveStart(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveStart(0): %v", err)
	}
	if err := m.RemovePill(0); err != nil || m.Pills.Len() != 0 {
		t.Errorf("RemovePill: %v", err)
	}
}

func TestSetTile(t *testing.T) {
	m := New()
	m.CreatePillAt(geom.Pt(20, 20))

	if err := m.SetTile(geom.Pt(20, 20), tiles.Forest); err != nil {
		t.Fatal(err)
	}
	if m.TileAt(20, 20) != tiles.Grass {
		t.Errorf("tile under pill = %v, want grass", m.TileAt(20, 20))
	}

	if err := m.SetTile(geom.Pt(0, 0), tiles.Sea); err != nil {
		t.Fatal(err)
	}
	if m.TileAt(0, 0) != tiles.MinedSea {
		t.Errorf("sea on border stored as %v", m.TileAt(0, 0))
	}

	if err := m.SetTile(geom.Pt(300, 0), tiles.Wall); err != nil {
		t.Errorf("off-grid SetTile should be ignored, got %v", err)
	}
	if err := m.SetTile(geom.Pt(25, 25), tiles.Token); !errors.Is(err, ErrInvalidTile) {
		t.Errorf("SetTile(token) = %v", err)
	}
	if err := m.SetTile(geom.Pt(25, 25), tiles.Tile(40)); !errors.Is(err, ErrInvalidTile) {
		t.Errorf("SetTile(40) = %v", err)
	}
}

func TestTileRectCopyPaste(t *testing.T) {
	m := New()
	for x := 20; x < 25; x++ {
		m.Tiles[20][x] = tiles.Road
	}

	tr := m.TilesInRect(geom.MakeRect(19, 20, 7, 1))
	if tr.At(geom.Pt(19, 20)) != tiles.Sea || tr.At(geom.Pt(22, 20)) != tiles.Road {
		t.Errorf("copied tiles = %v", tr.Tiles)
	}

	tr.Set(geom.Pt(22, 20), tiles.Token)
	tr.Offset(0, 10)
	if err := m.SetTileRect(tr); err != nil {
		t.Fatal(err)
	}
	if m.TileAt(21, 30) != tiles.Road || m.TileAt(22, 30) != tiles.Sea {
		t.Error("paste did not skip token cells")
	}

	edge := m.TilesInRect(geom.MakeRect(-2, -2, 4, 4))
	if edge.At(geom.Pt(-1, -1)) != tiles.MinedSea {
		t.Errorf("off-grid cells should hold their default tile, got %v", edge.At(geom.Pt(-1, -1)))
	}
	edge.Tiles[0] = tiles.Wall
	if err := m.SetTileRect(edge); err != nil {
		t.Errorf("paste over the grid edge: %v", err)
	}
}

func TestSetTileRectRejectsInvalidTiles(t *testing.T) {
	m := New()
	before := m.Clone()

	tr := NewTileRect(geom.MakeRect(20, 20, 3, 2), tiles.Road)
	tr.Set(geom.Pt(22, 21), tiles.Tile(40))

	if err := m.SetTileRect(tr); !errors.Is(err, ErrInvalidTile) {
		t.Fatalf("SetTileRect = %v, want ErrInvalidTile", err)
	}
	if *m != *before {
		t.Error("a rejected paste wrote some of its tiles")
	}
}

func TestFloodRect(t *testing.T) {
	m := New()
	for x := 30; x <= 32; x++ {
		m.Tiles[40][x] = tiles.Wall
	}
	m.Tiles[41][32] = tiles.Wall

	tr := m.FloodRect(geom.Pt(31, 40))
	if !tr.Rect.Equal(geom.MakeRect(30, 40, 3, 2)) {
		t.Fatalf("Rect = %v", tr.Rect)
	}
	if tr.At(geom.Pt(32, 41)) != tiles.Wall || tr.At(geom.Pt(30, 41)) != tiles.Token {
		t.Errorf("tiles = %v", tr.Tiles)
	}
	if m.TileAt(31, 40) != tiles.Wall {
		t.Error("FloodRect modified the map")
	}
}

func TestDeleteObjectsInRect(t *testing.T) {
	m := New()
	m.CreatePillAt(geom.Pt(20, 20))
	m.CreatePillAt(geom.Pt(50, 50))
	m.CreateBaseAt(geom.Pt(21, 21))
	m.CreateStartAt(geom.Pt(22, 22), 0)

	if n := m.DeleteObjectsInRect(geom.MakeRect(20, 20, 3, 3)); n != 3 {
		t.Errorf("deleted %d, want 3", n)
	}
	if m.Pills.Len() != 1 || m.Bases.Len() != 0 || m.Starts.Len() != 0 {
		t.Error("wrong objects left")
	}
}

func TestOffsetObjectsInRect(t *testing.T) {
	m := New()
	m.CreatePillAt(geom.Pt(20, 20))
	m.CreatePillAt(geom.Pt(245, 20))
	m.CreateBaseAt(geom.Pt(21, 20))
	m.CreateStartAt(geom.Pt(100, 100), 0)

	removed := m.OffsetObjectsInRect(geom.MakeRect(0, 0, 256, 50), 1, 0)
	if removed != 1 {
		t.Errorf("removed %d, want 1", removed)
	}
	if got := m.Pills.All(); len(got) != 1 || got[0].X != 21 {
		t.Errorf("pills = %+v", got)
	}
	if b := m.Bases.At(0); b.X != 22 {
		t.Errorf("base = %+v", b)
	}
	if s := m.Starts.At(0); s.X != 100 {
		t.Error("start outside the rect moved")
	}
	if m.TileAt(22, 20) != tiles.Swamp {
		t.Error("moved base did not retile its new cell")
	}
}

func TestOffsetOntoStationaryObject(t *testing.T) {
	m := New()
	m.CreatePillAt(geom.Pt(20, 20))
	m.CreateBaseAt(geom.Pt(25, 20))

	if n := m.OffsetObjectsInRect(geom.MakeRect(20, 20, 1, 1), 5, 0); n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	if m.Pills.Len() != 0 || m.Bases.Len() != 1 {
		t.Error("the moving pill should be dropped, not the base")
	}
}

func TestRotateAndFlipObjects(t *testing.T) {
	r := geom.MakeRect(20, 20, 4, 2)

	m := New()
	m.CreateStartAt(geom.Pt(23, 20), 0)
	m.RotateObjectsLeft(r)
	if s := m.Starts.At(0); s.Point() != geom.Pt(20, 20) || s.Dir != 4 {
		t.Errorf("after RotateObjectsLeft: %+v", s)
	}

	m = New()
	m.CreateStartAt(geom.Pt(20, 20), 0)
	m.RotateObjectsRight(r)
	if s := m.Starts.At(0); s.Point() != geom.Pt(21, 20) || s.Dir != 12 {
		t.Errorf("after RotateObjectsRight: %+v", s)
	}

	m = New()
	m.CreatePillAt(geom.Pt(20, 21))
	m.FlipObjectsHorizontal(r)
	if p := m.Pills.At(0); p.Point() != geom.Pt(23, 21) {
		t.Errorf("after FlipObjectsHorizontal: %+v", p)
	}
	m.FlipObjectsVertical(r)
	if p := m.Pills.At(0); p.Point() != geom.Pt(23, 20) {
		t.Errorf("after FlipObjectsVertical: %+v", p)
	}
}

func TestRotateMatchesTileRect(t *testing.T) {
	r := geom.MakeRect(40, 40, 5, 3)
	m := New()
	m.CreatePillAt(geom.Pt(41, 42))

	tr := m.TilesInRect(r)
	tr.RotateLeft()
	m.RotateObjectsLeft(r)

	p := m.Pills.At(0).Point()
	if tr.At(p) != tiles.Swamp {
		t.Errorf("pill at %v is over %v in the rotated tiles", p, tr.At(p))
	}
}

// --- helpers ---

func second(_ int, err error) error { return err }
