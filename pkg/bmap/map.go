package bmap

import (
	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// Map is a decoded map file: its objects and its tile grid. The preamble is
// derived from the lists, so the counts can never disagree with them.
type Map struct {
	Pills  List[Pill]
	Bases  List[Base]
	Starts List[Start]
	Tiles  tiles.Grid
}

// New returns an empty map with every cell set to its default tile.
func New() *Map {
	m := &Map{}
	m.Tiles.Reset()
	return m
}

// Preamble returns the file header describing m.
func (m *Map) Preamble() Preamble {
	p := Preamble{
		Version:   CurrentVersion,
		NumPills:  uint8(m.Pills.Len()),
		NumBases:  uint8(m.Bases.Len()),
		NumStarts: uint8(m.Starts.Len()),
	}
	copy(p.Ident[:], Magic)
	return p
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	c := *m
	return &c
}

// TileAt returns the tile at (x, y), or the default tile for points off
// the grid.
func (m *Map) TileAt(x, y int) tiles.Tile {
	if t, ok := m.Tiles.At(x, y); ok {
		return t
	}
	return tiles.DefaultTile(x, y)
}

// ObjectKind names one of the three object lists.
type ObjectKind int

const (
	KindPill ObjectKind = iota
	KindBase
	KindStart
)

func (k ObjectKind) String() string {
	switch k {
	case KindPill:
		return "pill"
	case KindBase:
		return "base"
	case KindStart:
		return "start"
	default:
		return "unknown"
	}
}

// ObjectAt returns the kind and index of the object at p. Starts are checked
// first, then bases, then pills.
func (m *Map) ObjectAt(p geom.Point) (ObjectKind, int, bool) {
	if i := m.startAt(p); i >= 0 {
		return KindStart, i, true
	}
	if i := m.baseAt(p); i >= 0 {
		return KindBase, i, true
	}
	if i := m.pillAt(p); i >= 0 {
		return KindPill, i, true
	}
	return 0, -1, false
}

func (m *Map) pillAt(p geom.Point) int {
	for i := 0; i < m.Pills.Len(); i++ {
		if m.Pills.items[i].Point() == p {
			return i
		}
	}
	return -1
}

func (m *Map) baseAt(p geom.Point) int {
	for i := 0; i < m.Bases.Len(); i++ {
		if m.Bases.items[i].Point() == p {
			return i
		}
	}
	return -1
}

func (m *Map) startAt(p geom.Point) int {
	for i := 0; i < m.Starts.Len(); i++ {
		if m.Starts.items[i].Point() == p {
			return i
		}
	}
	return -1
}

// placementTile returns the tile the object at p forces onto its cell, and
// false when no object is there.
func (m *Map) placementTile(p geom.Point, t tiles.Tile) (tiles.Tile, bool) {
	kind, _, ok := m.ObjectAt(p)
	if !ok {
		return t, false
	}
	switch kind {
	case KindStart:
		return tiles.ForStart(t), true
	case KindBase:
		return tiles.ForBase(t), true
	default:
		return tiles.ForPillbox(t), true
	}
}
