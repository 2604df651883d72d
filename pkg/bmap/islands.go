package bmap

import (
	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// Island is a 4-connected region of non-sea cells.
type Island struct {
	Bounds geom.Rect
	Cells  int
	Pills  int
	Bases  int
}

// Islands finds every island on m, in scan order (top to bottom, then left
// to right by first cell).
func (m *Map) Islands() []Island {
	var visited [tiles.Width][tiles.Width]bool
	var out []Island

	for y := 0; y < tiles.Width; y++ {
		for x := 0; x < tiles.Width; x++ {
			if visited[y][x] || m.Tiles.IsSeaLike(x, y) {
				continue
			}
			cells := m.landFill(geom.Pt(x, y), &visited)

			isl := Island{Cells: len(cells)}
			minP, maxP := cells[0], cells[0]
			for _, c := range cells {
				minP.X, minP.Y = min(minP.X, c.X), min(minP.Y, c.Y)
				maxP.X, maxP.Y = max(maxP.X, c.X), max(maxP.Y, c.Y)
				switch kind, _, ok := m.ObjectAt(c); {
				case !ok:
				case kind == KindPill:
					isl.Pills++
				case kind == KindBase:
					isl.Bases++
				}
			}
			isl.Bounds = geom.RectFromPoints(minP, maxP)
			out = append(out, isl)
		}
	}
	return out
}

// landFill returns the land cells connected to start, marking them visited.
func (m *Map) landFill(start geom.Point, visited *[tiles.Width][tiles.Width]bool) []geom.Point {
	cells := make([]geom.Point, 0, 16)
	queue := []geom.Point{start}
	visited[start.Y][start.X] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cells = append(cells, p)

		for _, d := range orthogonal {
			n := p.Add(d.X, d.Y)
			if !tiles.InWorld(n.X, n.Y) || visited[n.Y][n.X] || m.Tiles.IsSeaLike(n.X, n.Y) {
				continue
			}
			visited[n.Y][n.X] = true
			queue = append(queue, n)
		}
	}
	return cells
}

var orthogonal = [4]geom.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
