package tiles

// The predicates below are total: a coordinate off the grid satisfies every
// one of them, so cells along the edge see the boundary as matching terrain.

func (g *Grid) classify(x, y int, match func(Tile) bool) bool {
	t, ok := g.At(x, y)
	if !ok {
		return true
	}
	return match(t)
}

// IsForestLike reports forest, mined or not.
func (g *Grid) IsForestLike(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		return t == Forest || t == MinedForest
	})
}

// IsCraterLike reports craters and the water a crater joins up with.
func (g *Grid) IsCraterLike(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		switch t {
		case Crater, River, Sea, MinedCrater, MinedSea:
			return true
		}
		return false
	})
}

// IsRoadLike reports road, mined or not.
func (g *Grid) IsRoadLike(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		return t == Road || t == MinedRoad
	})
}

// IsWaterLikeToLand reports tiles that land terrain treats as a shoreline.
func (g *Grid) IsWaterLikeToLand(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		switch t {
		case River, Boat, Sea, MinedSea:
			return true
		}
		return false
	})
}

// IsWaterLikeToWater reports tiles that water terrain joins up with.
// Roads count since they bridge rivers.
func (g *Grid) IsWaterLikeToWater(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		switch t {
		case Road, River, Boat, Sea, Crater, MinedRoad, MinedSea, MinedCrater:
			return true
		}
		return false
	})
}

// IsWallLike reports walls and what is left of them.
func (g *Grid) IsWallLike(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		switch t {
		case Rubble, DamagedWall, Wall, MinedRubble:
			return true
		}
		return false
	})
}

// IsSeaLike reports deep sea, mined or not.
func (g *Grid) IsSeaLike(x, y int) bool {
	return g.classify(x, y, func(t Tile) bool {
		return t == Sea || t == MinedSea
	})
}

// IsMined reports any mined terrain.
func (g *Grid) IsMined(x, y int) bool {
	return g.classify(x, y, Tile.IsMined)
}
