package bmap

import (
	"fmt"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// CreatePillAt adds a neutral pillbox with full armour and the slowest
// reload at p and returns its index.
func (m *Map) CreatePillAt(p geom.Point) (int, error) {
	if !inSea(p) {
		return -1, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	i := m.Pills.Len()
	v := Pill{X: uint8(p.X), Y: uint8(p.Y), Owner: Neutral, Armour: MaxPillArmour, Speed: MaxPillSpeed}
	if err := m.InsertPill(i, v); err != nil {
		return -1, err
	}
	return i, nil
}

// CreateBaseAt adds a neutral, fully stocked base at p and returns its index.
func (m *Map) CreateBaseAt(p geom.Point) (int, error) {
	if !inSea(p) {
		return -1, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	i := m.Bases.Len()
	v := Base{X: uint8(p.X), Y: uint8(p.Y), Owner: Neutral, Armour: MaxBaseArmour, Shells: MaxBaseShells, Mines: MaxBaseMines}
	if err := m.InsertBase(i, v); err != nil {
		return -1, err
	}
	return i, nil
}

// CreateStartAt adds a start facing dir at p and returns its index.
func (m *Map) CreateStartAt(p geom.Point, dir uint8) (int, error) {
	if !inSea(p) {
		return -1, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	i := m.Starts.Len()
	if err := m.InsertStart(i, Start{X: uint8(p.X), Y: uint8(p.Y), Dir: dir}); err != nil {
		return -1, err
	}
	return i, nil
}

// InsertPill places v at list index i. Attributes out of range are clamped.
func (m *Map) InsertPill(i int, v Pill) error {
	if err := m.checkPlacement(v.Point(), KindPill, -1); err != nil {
		return err
	}
	if err := m.Pills.Insert(i, clampPill(v)); err != nil {
		return err
	}
	m.retile(v.Point(), tiles.ForPillbox, func(string) {})
	return nil
}

// InsertBase places v at list index i.
func (m *Map) InsertBase(i int, v Base) error {
	if err := m.checkPlacement(v.Point(), KindBase, -1); err != nil {
		return err
	}
	if err := m.Bases.Insert(i, clampBase(v)); err != nil {
		return err
	}
	m.retile(v.Point(), tiles.ForBase, func(string) {})
	return nil
}

// InsertStart places v at list index i.
func (m *Map) InsertStart(i int, v Start) error {
	if err := m.checkPlacement(v.Point(), KindStart, -1); err != nil {
		return err
	}
	v.Dir %= NumDirections
	if err := m.Starts.Insert(i, v); err != nil {
		return err
	}
	m.retile(v.Point(), tiles.ForStart, func(string) {})
	return nil
}

// RemovePill deletes the pillbox at index i. The tile it sat on is kept.
func (m *Map) RemovePill(i int) error { return m.Pills.Remove(i) }

// RemoveBase deletes the base at index i.
func (m *Map) RemoveBase(i int) error { return m.Bases.Remove(i) }

// RemoveStart deletes the start at index i.
func (m *Map) RemoveStart(i int) error { return m.Starts.Remove(i) }

// SetPill replaces the pillbox at index i, which may move it.
func (m *Map) SetPill(i int, v Pill) error {
	if i < 0 || i >= m.Pills.Len() {
		return fmt.Errorf("%w: pill %d", ErrIndexOutOfRange, i)
	}
	if err := m.checkPlacement(v.Point(), KindPill, i); err != nil {
		return err
	}
	m.Pills.items[i] = clampPill(v)
	m.retile(v.Point(), tiles.ForPillbox, func(string) {})
	return nil
}

// SetBase replaces the base at index i.
func (m *Map) SetBase(i int, v Base) error {
	if i < 0 || i >= m.Bases.Len() {
		return fmt.Errorf("%w: base %d", ErrIndexOutOfRange, i)
	}
	if err := m.checkPlacement(v.Point(), KindBase, i); err != nil {
		return err
	}
	m.Bases.items[i] = clampBase(v)
	m.retile(v.Point(), tiles.ForBase, func(string) {})
	return nil
}

// SetStart replaces the start at index i.
func (m *Map) SetStart(i int, v Start) error {
	if i < 0 || i >= m.Starts.Len() {
		return fmt.Errorf("%w: start %d", ErrIndexOutOfRange, i)
	}
	if err := m.checkPlacement(v.Point(), KindStart, i); err != nil {
		return err
	}
	v.Dir %= NumDirections
	m.Starts.items[i] = v
	m.retile(v.Point(), tiles.ForStart, func(string) {})
	return nil
}

// checkPlacement reports whether an object of kind may sit at p. self is the
// object's own index when it is being moved, or -1.
func (m *Map) checkPlacement(p geom.Point, kind ObjectKind, self int) error {
	if !inSea(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if k, i, ok := m.ObjectAt(p); ok && !(k == kind && i == self) {
		return fmt.Errorf("%w: %s %d at %v", ErrOccupied, k, i, p)
	}
	return nil
}

func clampPill(v Pill) Pill {
	if !validOwner(v.Owner) {
		v.Owner = Neutral
	}
	v.Armour = min(v.Armour, MaxPillArmour)
	v.Speed = min(v.Speed, MaxPillSpeed)
	return v
}

func clampBase(v Base) Base {
	if !validOwner(v.Owner) {
		v.Owner = Neutral
	}
	v.Armour = min(v.Armour, MaxBaseArmour)
	v.Shells = min(v.Shells, MaxBaseShells)
	v.Mines = min(v.Mines, MaxBaseMines)
	return v
}

// SetTile writes t at p. Points off the grid are ignored. Sea and mined sea
// are stored as the cell's default tile, and a cell under an object gets
// the object's placement tile instead of t.
func (m *Map) SetTile(p geom.Point, t tiles.Tile) error {
	if t == tiles.Token || !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidTile, t)
	}
	if !tiles.InWorld(p.X, p.Y) {
		return nil
	}
	if t == tiles.Sea || t == tiles.MinedSea {
		t = tiles.DefaultTile(p.X, p.Y)
	}
	if pt, ok := m.placementTile(p, t); ok {
		t = pt
	}
	m.Tiles[p.Y][p.X] = t
	return nil
}

// TilesInRect copies the tiles covered by r. Cells off the grid hold their
// default tile.
func (m *Map) TilesInRect(r geom.Rect) *TileRect {
	tr := NewTileRect(r, tiles.Sea)
	r.Points(func(p geom.Point) {
		tr.Set(p, m.TileAt(p.X, p.Y))
	})
	return tr
}

// SetTileRect writes every tile of tr into the map with SetTile's rules.
// Token cells and cells off the grid are skipped. If any written cell holds
// an invalid tile the map is left unchanged.
func (m *Map) SetTileRect(tr *TileRect) error {
	clip := tr.Rect.Intersection(tiles.WorldRect)
	if clip.Empty() {
		return nil
	}

	var err error
	clip.Points(func(p geom.Point) {
		if t := tr.At(p); err == nil && t != tiles.Token && !t.Valid() {
			err = fmt.Errorf("%w: %d at %v", ErrInvalidTile, t, p)
		}
	})
	if err != nil {
		return err
	}

	clip.Points(func(p geom.Point) {
		if t := tr.At(p); t != tiles.Token {
			m.SetTile(p, t)
		}
	})
	return nil
}

// FloodRect returns the smallest tile rectangle holding the 4-connected
// region of like tiles around p, with cells outside the region set to Token.
func (m *Map) FloodRect(p geom.Point) *TileRect {
	world := m.TilesInRect(tiles.WorldRect)
	match := world.At(p)
	cells := world.mark(p)
	if len(cells) == 0 {
		return NewTileRect(geom.Rect{}, tiles.Token)
	}

	bounds := geom.MakeRect(p.X, p.Y, 1, 1)
	for _, q := range cells {
		bounds = bounds.Union(geom.MakeRect(q.X, q.Y, 1, 1))
	}
	out := NewTileRect(bounds, tiles.Token)
	for _, q := range cells {
		out.Set(q, match)
	}
	return out
}

// DeleteObjectsInRect removes every object inside r and returns how many
// were removed.
func (m *Map) DeleteObjectsInRect(r geom.Rect) int {
	n := m.Pills.RemoveFunc(func(v Pill) bool { return r.ContainsPoint(v.Point()) })
	n += m.Bases.RemoveFunc(func(v Base) bool { return r.ContainsPoint(v.Point()) })
	n += m.Starts.RemoveFunc(func(v Start) bool { return r.ContainsPoint(v.Point()) })
	return n
}

// OffsetObjectsInRect moves every object inside r by (dx, dy). Objects that
// land outside the sea or on an object that did not move are removed; the
// number removed is returned.
func (m *Map) OffsetObjectsInRect(r geom.Rect, dx, dy int) int {
	return m.transformObjectsInRect(r, func(p geom.Point) geom.Point { return p.Add(dx, dy) }, nil)
}

// FlipObjectsHorizontal mirrors the objects inside r left to right.
func (m *Map) FlipObjectsHorizontal(r geom.Rect) int {
	return m.transformObjectsInRect(r, func(p geom.Point) geom.Point {
		return geom.Pt(r.MinX()+r.MaxX()-p.X, p.Y)
	}, func(d uint8) uint8 { return (NumDirections/2 + NumDirections - d) % NumDirections })
}

// FlipObjectsVertical mirrors the objects inside r top to bottom.
func (m *Map) FlipObjectsVertical(r geom.Rect) int {
	return m.transformObjectsInRect(r, func(p geom.Point) geom.Point {
		return geom.Pt(p.X, r.MinY()+r.MaxY()-p.Y)
	}, func(d uint8) uint8 { return (NumDirections - d) % NumDirections })
}

// RotateObjectsLeft turns the objects inside r a quarter turn
// anticlockwise, keeping r's origin, to match TileRect.RotateLeft.
func (m *Map) RotateObjectsLeft(r geom.Rect) int {
	return m.transformObjectsInRect(r, func(p geom.Point) geom.Point {
		lx, ly := p.X-r.MinX(), p.Y-r.MinY()
		return geom.Pt(r.MinX()+ly, r.MinY()+r.Width()-1-lx)
	}, func(d uint8) uint8 { return (d + NumDirections/4) % NumDirections })
}

// RotateObjectsRight turns the objects inside r a quarter turn clockwise,
// keeping r's origin, to match TileRect.RotateRight.
func (m *Map) RotateObjectsRight(r geom.Rect) int {
	return m.transformObjectsInRect(r, func(p geom.Point) geom.Point {
		lx, ly := p.X-r.MinX(), p.Y-r.MinY()
		return geom.Pt(r.MinX()+r.Height()-1-ly, r.MinY()+lx)
	}, func(d uint8) uint8 { return (d + NumDirections - NumDirections/4) % NumDirections })
}

// transformObjectsInRect moves each object inside r to move(p) and turns
// starts with turn, if set. move must not send two points to the same cell.
func (m *Map) transformObjectsInRect(r geom.Rect, move func(geom.Point) geom.Point, turn func(uint8) uint8) int {
	var moved [3][MaxObjects]bool
	var dest [3][MaxObjects]geom.Point

	for i := 0; i < m.Pills.Len(); i++ {
		if p := m.Pills.items[i].Point(); r.ContainsPoint(p) {
			moved[KindPill][i], dest[KindPill][i] = true, move(p)
		}
	}
	for i := 0; i < m.Bases.Len(); i++ {
		if p := m.Bases.items[i].Point(); r.ContainsPoint(p) {
			moved[KindBase][i], dest[KindBase][i] = true, move(p)
		}
	}
	for i := 0; i < m.Starts.Len(); i++ {
		if p := m.Starts.items[i].Point(); r.ContainsPoint(p) {
			moved[KindStart][i], dest[KindStart][i] = true, move(p)
		}
	}

	// A destination is blocked by any object that stays where it is.
	blocked := func(p geom.Point) bool {
		for i := 0; i < m.Pills.Len(); i++ {
			if !moved[KindPill][i] && m.Pills.items[i].Point() == p {
				return true
			}
		}
		for i := 0; i < m.Bases.Len(); i++ {
			if !moved[KindBase][i] && m.Bases.items[i].Point() == p {
				return true
			}
		}
		for i := 0; i < m.Starts.Len(); i++ {
			if !moved[KindStart][i] && m.Starts.items[i].Point() == p {
				return true
			}
		}
		return false
	}
	var drop [3][MaxObjects]bool
	for k := range moved {
		for i, ok := range moved[k] {
			if ok && (!inSea(dest[k][i]) || blocked(dest[k][i])) {
				drop[k][i] = true
			}
		}
	}

	for i := 0; i < m.Pills.Len(); i++ {
		if moved[KindPill][i] && !drop[KindPill][i] {
			p := dest[KindPill][i]
			m.Pills.items[i].X, m.Pills.items[i].Y = uint8(p.X), uint8(p.Y)
		}
	}
	for i := 0; i < m.Bases.Len(); i++ {
		if moved[KindBase][i] && !drop[KindBase][i] {
			p := dest[KindBase][i]
			m.Bases.items[i].X, m.Bases.items[i].Y = uint8(p.X), uint8(p.Y)
		}
	}
	for i := 0; i < m.Starts.Len(); i++ {
		if moved[KindStart][i] && !drop[KindStart][i] {
			p := dest[KindStart][i]
			s := &m.Starts.items[i]
			s.X, s.Y = uint8(p.X), uint8(p.Y)
			if turn != nil {
				s.Dir = turn(s.Dir % NumDirections)
			}
		}
	}

	removed := 0
	for k := KindStart; k >= KindPill; k-- {
		for i := MaxObjects - 1; i >= 0; i-- {
			if !drop[k][i] {
				continue
			}
			switch k {
			case KindPill:
				m.Pills.Remove(i)
			case KindBase:
				m.Bases.Remove(i)
			case KindStart:
				m.Starts.Remove(i)
			}
			removed++
		}
	}

	// Lists are compacted now, so retile by position rather than index.
	for k := range moved {
		for i, ok := range moved[k] {
			if ok && !drop[k][i] {
				p := dest[k][i]
				m.SetAppropriateTilesForObjectsInRect(geom.MakeRect(p.X, p.Y, 1, 1))
			}
		}
	}
	return removed
}

// SetAppropriateTilesForObjectsInRect rewrites the tile under every object
// inside r with its placement tile.
func (m *Map) SetAppropriateTilesForObjectsInRect(r geom.Rect) {
	none := func(string) {}
	for i := 0; i < m.Pills.Len(); i++ {
		if p := m.Pills.items[i].Point(); r.ContainsPoint(p) {
			m.retile(p, tiles.ForPillbox, none)
		}
	}
	for i := 0; i < m.Bases.Len(); i++ {
		if p := m.Bases.items[i].Point(); r.ContainsPoint(p) {
			m.retile(p, tiles.ForBase, none)
		}
	}
	for i := 0; i < m.Starts.Len(); i++ {
		if p := m.Starts.items[i].Point(); r.ContainsPoint(p) {
			m.retile(p, tiles.ForStart, none)
		}
	}
}
