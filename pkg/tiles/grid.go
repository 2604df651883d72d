package tiles

import "bolo-mapkit/pkg/geom"

const (
	// Width is the side length of every map grid.
	Width = 256

	// MineBorder is the width of the permanently mined frame around the sea.
	MineBorder = 10

	// SeaMin and SeaMax bound the sea sub-region on both axes, inclusive.
	SeaMin = MineBorder
	SeaMax = Width - MineBorder - 1
)

var (
	// WorldRect covers the whole grid.
	WorldRect = geom.MakeRect(0, 0, Width, Width)

	// SeaRect is the region where objects may be placed.
	SeaRect = geom.MakeRect(MineBorder, MineBorder, Width-MineBorder*2, Width-MineBorder*2)
)

// Grid is a row-major 256x256 tile array, indexed [y][x].
type Grid [Width][Width]Tile

// DefaultTile returns the tile a cell holds when no run covers it: sea inside
// the sea sub-region and mined sea on the border.
func DefaultTile(x, y int) Tile {
	if y >= SeaMin && y <= SeaMax && x >= SeaMin && x <= SeaMax {
		return Sea
	}
	return MinedSea
}

// InWorld reports whether (x, y) addresses a grid cell.
func InWorld(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Width
}

// Reset fills every cell with its default tile.
func (g *Grid) Reset() {
	for y := range g {
		for x := range g[y] {
			g[y][x] = DefaultTile(x, y)
		}
	}
}

// At returns the tile at (x, y) and false when the point is off the grid.
func (g *Grid) At(x, y int) (Tile, bool) {
	if !InWorld(x, y) {
		return 0, false
	}
	return g[y][x], true
}

// Set writes t at (x, y); points off the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if InWorld(x, y) {
		g[y][x] = t
	}
}

// IsDefault reports whether the cell at (x, y) holds its default tile.
func (g *Grid) IsDefault(x, y int) bool {
	return g[y][x] == DefaultTile(x, y)
}
