// Package tiles defines the terrain tiles of a Bolo map, the fixed-size
// grid that holds them, and the predicates used to classify a cell.
package tiles

import "fmt"

// Tile identifies the terrain of one grid cell.
type Tile uint8

const (
	Wall        Tile = 0
	River       Tile = 1
	Swamp       Tile = 2
	Crater      Tile = 3
	Road        Tile = 4
	Forest      Tile = 5
	Rubble      Tile = 6
	Grass       Tile = 7
	DamagedWall Tile = 8
	Boat        Tile = 9

	MinedSwamp  Tile = 10
	MinedCrater Tile = 11
	MinedRoad   Tile = 12
	MinedForest Tile = 13
	MinedRubble Tile = 14
	MinedGrass  Tile = 15

	Sea      Tile = 16
	MinedSea Tile = 17

	// Token marks visited cells during a flood fill. It is never stored in
	// a saved map.
	Token Tile = 18
)

// NumTiles is the number of distinct tile values, Token included.
const NumTiles = 19

var tileNames = [NumTiles]string{
	Wall:        "wall",
	River:       "river",
	Swamp:       "swamp",
	Crater:      "crater",
	Road:        "road",
	Forest:      "forest",
	Rubble:      "rubble",
	Grass:       "grass",
	DamagedWall: "damaged-wall",
	Boat:        "boat",
	MinedSwamp:  "mined-swamp",
	MinedCrater: "mined-crater",
	MinedRoad:   "mined-road",
	MinedForest: "mined-forest",
	MinedRubble: "mined-rubble",
	MinedGrass:  "mined-grass",
	Sea:         "sea",
	MinedSea:    "mined-sea",
	Token:       "token",
}

// Valid reports whether t is a known tile value.
func (t Tile) Valid() bool {
	return t < NumTiles
}

func (t Tile) String() string {
	if t.Valid() {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// ParseTile converts a tile name back to its value.
func ParseTile(name string) (Tile, error) {
	for i, n := range tileNames {
		if n == name {
			return Tile(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile %q", name)
}

// Unmined returns the unmined counterpart of a mined terrain. Other tiles
// are returned unchanged.
func (t Tile) Unmined() Tile {
	switch t {
	case MinedSwamp:
		return Swamp
	case MinedCrater:
		return Crater
	case MinedRoad:
		return Road
	case MinedForest:
		return Forest
	case MinedRubble:
		return Rubble
	case MinedGrass:
		return Grass
	case MinedSea:
		return Sea
	default:
		return t
	}
}

// Mined returns the mined variant of a terrain, if it has one.
func (t Tile) Mined() (Tile, bool) {
	switch t {
	case Swamp:
		return MinedSwamp, true
	case Crater:
		return MinedCrater, true
	case Road:
		return MinedRoad, true
	case Forest:
		return MinedForest, true
	case Rubble:
		return MinedRubble, true
	case Grass:
		return MinedGrass, true
	case Sea:
		return MinedSea, true
	default:
		return t, false
	}
}

// IsMined reports whether t carries a mine.
func (t Tile) IsMined() bool {
	return t.Unmined() != t
}

// ForPillbox maps any tile to the nearest tile a pillbox may sit on.
// Water becomes swamp, walls become rubble, forest becomes grass, and other
// mined terrain loses its mine.
func ForPillbox(t Tile) Tile {
	switch t {
	case Sea, Boat, River, MinedSea:
		return Swamp
	case Wall, DamagedWall:
		return Rubble
	case Forest, MinedForest:
		return Grass
	case MinedSwamp:
		return Swamp
	case MinedCrater:
		return Crater
	case MinedRoad:
		return Road
	case MinedRubble:
		return Rubble
	case MinedGrass:
		return Grass
	default:
		return t
	}
}

// ForBase maps any tile to the nearest tile a base may sit on. Bases follow
// the same rule as pillboxes.
func ForBase(t Tile) Tile {
	return ForPillbox(t)
}

// ForStart returns the tile a spawn point sits on, which is always sea.
func ForStart(Tile) Tile {
	return Sea
}
