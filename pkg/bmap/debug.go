package bmap

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// Legend maps each tile to the character Debug draws for it.
type Legend [tiles.NumTiles]rune

// DefaultLegend is the legend Debug uses.
var DefaultLegend = Legend{
	tiles.Wall:        '#',
	tiles.River:       '~',
	tiles.Swamp:       ',',
	tiles.Crater:      'o',
	tiles.Road:        '=',
	tiles.Forest:      'T',
	tiles.Rubble:      ';',
	tiles.Grass:       '.',
	tiles.DamagedWall: '%',
	tiles.Boat:        'b',
	tiles.MinedSwamp:  '"',
	tiles.MinedCrater: 'O',
	tiles.MinedRoad:   '+',
	tiles.MinedForest: 'Y',
	tiles.MinedRubble: ':',
	tiles.MinedGrass:  '*',
	tiles.Sea:         ' ',
	tiles.MinedSea:    '^',
	tiles.Token:       '?',
}

// With returns a copy of l with the characters in overrides, keyed by tile
// name, replacing its own.
func (l Legend) With(overrides map[string]string) (Legend, error) {
	for name, s := range overrides {
		t, err := tiles.ParseTile(name)
		if err != nil {
			return l, err
		}
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			return l, fmt.Errorf("legend for %s must be one character, got %q", name, s)
		}
		l[t] = r
	}
	return l, nil
}

// Debug returns a text dump of m: its header, objects and the sea region.
func (m *Map) Debug() string {
	var sb strings.Builder

	p := m.Preamble()
	sb.WriteString(fmt.Sprintf("Map: %s v%d\n", p.Ident[:], p.Version))
	sb.WriteString(fmt.Sprintf("Pills: %d  Bases: %d  Starts: %d\n\n", p.NumPills, p.NumBases, p.NumStarts))

	sb.WriteString("Pills:\n")
	for i, v := range m.Pills.All() {
		sb.WriteString(fmt.Sprintf("  %2d. (%3d,%3d) owner %s armour %2d speed %2d\n",
			i, v.X, v.Y, ownerName(v.Owner), v.Armour, v.Speed))
	}
	sb.WriteString("Bases:\n")
	for i, v := range m.Bases.All() {
		sb.WriteString(fmt.Sprintf("  %2d. (%3d,%3d) owner %s armour %2d shells %2d mines %2d\n",
			i, v.X, v.Y, ownerName(v.Owner), v.Armour, v.Shells, v.Mines))
	}
	sb.WriteString("Starts:\n")
	for i, v := range m.Starts.All() {
		sb.WriteString(fmt.Sprintf("  %2d. (%3d,%3d) dir %2d\n", i, v.X, v.Y, v.Dir))
	}

	sb.WriteString("\n")
	sb.WriteString(m.DebugRect(tiles.SeaRect, DefaultLegend))
	return sb.String()
}

// DebugRect draws the tiles in r, one character per cell, with pills,
// bases and starts drawn as P, B and S.
func (m *Map) DebugRect(r geom.Rect, legend Legend) string {
	var sb strings.Builder
	for y := r.MinY(); y <= r.MaxY(); y++ {
		for x := r.MinX(); x <= r.MaxX(); x++ {
			p := geom.Pt(x, y)
			if kind, _, ok := m.ObjectAt(p); ok {
				sb.WriteByte("PBS"[kind])
				continue
			}
			sb.WriteRune(legend[m.TileAt(x, y)])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func ownerName(o uint8) string {
	if o == Neutral {
		return "neutral"
	}
	return fmt.Sprintf("%d", o)
}

// Stats summarizes how a map encodes.
type Stats struct {
	Runs      int // runs before the terminator
	RunBytes  int // bytes of run data, terminator included
	Size      int // total file size
	TileCount [tiles.NumTiles]int
}

// Stats counts m's tiles and measures its encoding.
func (m *Map) Stats() (Stats, error) {
	var st Stats
	for y := range m.Tiles {
		for _, t := range m.Tiles[y] {
			if t.Valid() {
				st.TileCount[t]++
			}
		}
	}

	var scratch [MaxRunPayload]byte
	s := NewRunScanner(&m.Tiles)
	for {
		run, err := s.Next(scratch[:])
		if err != nil {
			return st, err
		}
		st.RunBytes += int(run.Len)
		if run.IsEnd() {
			break
		}
		st.Runs++
	}
	st.Size = m.Preamble().headerSize() + st.RunBytes
	return st, nil
}
