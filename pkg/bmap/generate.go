package bmap

import (
	"math"
	"math/rand/v2"
	"time"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// GeneratorOptions controls procedural map generation.
type GeneratorOptions struct {
	Islands    int    // Island count: 1-12
	IslandSize int    // Target land cells per island: 50-4000
	Pills      int    // Pillboxes to place: 0-16
	Bases      int    // Refuelling bases to place: 0-16
	Starts     int    // Start positions to place: 0-16
	Seed       uint64 // 0 picks a seed from the clock
}

// DefaultGeneratorOptions returns a medium map with a few islands.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Islands:    3,
		IslandSize: 600,
		Pills:      8,
		Bases:      8,
		Starts:     8,
	}
}

// Generator grows random islands in the sea and scatters objects over them.
type Generator struct {
	options GeneratorOptions
	rng     *rand.Rand
	m       *Map
	land    geom.Rect // area islands may grow into, leaving open sea at the edge
	seeds   []geom.Point
}

// NewGenerator creates a generator. Out-of-range options are clamped.
func NewGenerator(opts GeneratorOptions) *Generator {
	opts.Islands = clamp(opts.Islands, 1, 12)
	opts.IslandSize = clamp(opts.IslandSize, 50, 4000)
	opts.Pills = clamp(opts.Pills, 0, MaxPills)
	opts.Bases = clamp(opts.Bases, 0, MaxBases)
	opts.Starts = clamp(opts.Starts, 0, MaxStarts)
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	return &Generator{
		options: opts,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed>>32|1)),
		land:    tiles.SeaRect.Inset(12, 12),
	}
}

// Options returns the options after clamping, including the seed used.
func (g *Generator) Options() GeneratorOptions {
	return g.options
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Generate builds the map. Objects that find no free cell are left out, so
// the lists may hold fewer than asked for on small islands.
func (g *Generator) Generate() *Map {
	g.m = New()
	g.seeds = g.placeSeeds(g.options.Islands)

	for _, seed := range g.seeds {
		// Vary each island by +-25%
		target := g.options.IslandSize*3/4 + g.rng.IntN(g.options.IslandSize/2+1)
		g.growIsland(seed, target)
	}
	g.fillLakes()
	g.decorate()

	g.placeObjects()
	return g.m
}

// placeSeeds spreads island centres out, relaxing the spacing whenever a
// seed cannot be placed.
func (g *Generator) placeSeeds(count int) []geom.Point {
	spacing := g.land.Width() / (count + 1)
	seeds := make([]geom.Point, 0, count)

	for len(seeds) < count {
		placed := false
		for attempt := 0; attempt < 100 && !placed; attempt++ {
			p := geom.Pt(
				g.land.MinX()+g.rng.IntN(g.land.Width()),
				g.land.MinY()+g.rng.IntN(g.land.Height()),
			)
			if g.farFrom(p, seeds, spacing) {
				seeds = append(seeds, p)
				placed = true
			}
		}
		if !placed {
			spacing = spacing * 3 / 4
		}
	}
	return seeds
}

func (g *Generator) farFrom(p geom.Point, others []geom.Point, dist int) bool {
	for _, o := range others {
		dx, dy := p.X-o.X, p.Y-o.Y
		if dx*dx+dy*dy < dist*dist {
			return false
		}
	}
	return true
}

// growIsland turns sea into grass outwards from seed until the island has
// target cells or runs out of room.
func (g *Generator) growIsland(seed geom.Point, target int) {
	frontier := []geom.Point{seed}
	inFrontier := map[geom.Point]bool{seed: true}

	for size := 0; size < target && len(frontier) > 0; {
		idx := g.pickGrowthCell(frontier)
		p := frontier[idx]
		frontier[idx] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if !g.m.Tiles.IsSeaLike(p.X, p.Y) {
			continue
		}
		g.m.Tiles.Set(p.X, p.Y, tiles.Grass)
		size++

		for _, d := range orthogonal {
			n := p.Add(d.X, d.Y)
			if g.land.ContainsPoint(n) && !inFrontier[n] && g.m.Tiles.IsSeaLike(n.X, n.Y) {
				inFrontier[n] = true
				frontier = append(frontier, n)
			}
		}
	}
}

// pickGrowthCell mixes random growth, which gives ragged coasts, with
// picking the frontier cell that touches the most land, which keeps the
// island compact.
func (g *Generator) pickGrowthCell(frontier []geom.Point) int {
	if g.rng.Float32() < 0.6 {
		return g.rng.IntN(len(frontier))
	}

	best, bestCount := 0, -1
	for i := 0; i < 8 && i < len(frontier); i++ {
		j := g.rng.IntN(len(frontier))
		if n := g.landNeighbours(frontier[j]); n > bestCount {
			best, bestCount = j, n
		}
	}
	return best
}

func (g *Generator) landNeighbours(p geom.Point) int {
	n := 0
	for _, d := range orthogonal {
		if !g.m.Tiles.IsSeaLike(p.X+d.X, p.Y+d.Y) {
			n++
		}
	}
	return n
}

// fillLakes turns sea cells enclosed on all four sides by land into grass.
func (g *Generator) fillLakes() {
	for changed := true; changed; {
		changed = false
		g.land.Points(func(p geom.Point) {
			if g.m.Tiles.IsSeaLike(p.X, p.Y) && g.landNeighbours(p) == 4 {
				g.m.Tiles.Set(p.X, p.Y, tiles.Grass)
				changed = true
			}
		})
	}
}

// decorate scatters forest, swamp and craters inland and gives the coast a
// ring of shallow water.
func (g *Generator) decorate() {
	var coast []geom.Point
	g.land.Points(func(p geom.Point) {
		if g.m.Tiles.IsSeaLike(p.X, p.Y) {
			return
		}
		if g.landNeighbours(p) < 4 {
			coast = append(coast, p)
			return
		}
		switch r := g.rng.Float32(); {
		case r < 0.25:
			g.m.Tiles.Set(p.X, p.Y, tiles.Forest)
		case r < 0.30:
			g.m.Tiles.Set(p.X, p.Y, tiles.Swamp)
		case r < 0.31:
			g.m.Tiles.Set(p.X, p.Y, tiles.Crater)
		}
	})
	for _, p := range coast {
		if g.rng.Float32() < 0.5 {
			g.m.Tiles.Set(p.X, p.Y, tiles.River)
		}
	}
}

// placeObjects puts pills and bases on inland cells and starts in open sea
// facing the nearest island.
func (g *Generator) placeObjects() {
	var inland, sea []geom.Point
	tiles.SeaRect.Points(func(p geom.Point) {
		switch {
		case g.m.Tiles.IsSeaLike(p.X, p.Y):
			if !g.land.ContainsPoint(p) {
				sea = append(sea, p)
			}
		case g.landNeighbours(p) == 4:
			inland = append(inland, p)
		}
	})
	g.rng.Shuffle(len(inland), func(i, j int) { inland[i], inland[j] = inland[j], inland[i] })
	g.rng.Shuffle(len(sea), func(i, j int) { sea[i], sea[j] = sea[j], sea[i] })

	take := func(cells *[]geom.Point) (geom.Point, bool) {
		for len(*cells) > 0 {
			p := (*cells)[0]
			*cells = (*cells)[1:]
			if _, _, used := g.m.ObjectAt(p); !used {
				return p, true
			}
		}
		return geom.Point{}, false
	}

	for i := 0; i < g.options.Bases; i++ {
		if p, ok := take(&inland); ok {
			g.m.CreateBaseAt(p)
		}
	}
	for i := 0; i < g.options.Pills; i++ {
		if p, ok := take(&inland); ok {
			g.m.CreatePillAt(p)
		}
	}
	for i := 0; i < g.options.Starts; i++ {
		if p, ok := take(&sea); ok {
			g.m.CreateStartAt(p, g.directionTo(p, g.nearestSeed(p)))
		}
	}
}

func (g *Generator) nearestSeed(p geom.Point) geom.Point {
	best, bestDist := g.seeds[0], math.MaxInt
	for _, s := range g.seeds {
		dx, dy := s.X-p.X, s.Y-p.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// directionTo returns the 16-point direction from p towards q, 0 being east
// and counting counter-clockwise.
func (g *Generator) directionTo(p, q geom.Point) uint8 {
	angle := math.Atan2(float64(p.Y-q.Y), float64(q.X-p.X))
	step := int(math.Round(angle / (2 * math.Pi / 16)))
	return uint8((step%16 + 16) % 16)
}
