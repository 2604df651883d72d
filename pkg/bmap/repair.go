package bmap

import (
	"fmt"
	"strings"

	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

// RepairAction is one kind of change made by Repair.
type RepairAction int

const (
	RemovedOffSea RepairAction = iota
	RemovedUnderBase
	RemovedUnderStart
	RemovedDuplicate
	OwnerNeutralized
	Clamped
	DirectionWrapped
	Retiled
)

var actionNames = map[RepairAction]string{
	RemovedOffSea:     "removed outside the sea",
	RemovedUnderBase:  "removed under a base",
	RemovedUnderStart: "removed under a start",
	RemovedDuplicate:  "removed as a duplicate",
	OwnerNeutralized:  "owner set to neutral",
	Clamped:           "clamped",
	DirectionWrapped:  "direction wrapped",
	Retiled:           "tile replaced",
}

func (a RepairAction) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Repair records one change made while sanitizing a map.
type Repair struct {
	Kind   ObjectKind
	Index  int // list index when the change was made
	At     geom.Point
	Action RepairAction
	Detail string
}

func (r Repair) String() string {
	s := fmt.Sprintf("%s %d at %v: %s", r.Kind, r.Index, r.At, r.Action)
	if r.Detail != "" {
		s += " (" + r.Detail + ")"
	}
	return s
}

// RepairReport lists the changes made by one repair pass, in order.
type RepairReport []Repair

// Removed returns the number of objects deleted.
func (r RepairReport) Removed() int {
	n := 0
	for _, rep := range r {
		switch rep.Action {
		case RemovedOffSea, RemovedUnderBase, RemovedUnderStart, RemovedDuplicate:
			n++
		}
	}
	return n
}

// Count returns the number of changes of the given action.
func (r RepairReport) Count(a RepairAction) int {
	n := 0
	for _, rep := range r {
		if rep.Action == a {
			n++
		}
	}
	return n
}

func (r RepairReport) String() string {
	var sb strings.Builder
	for _, rep := range r {
		sb.WriteString(rep.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Repair sanitizes m in place: pills first, then bases, then starts.
// Objects outside the sea are removed, as are pills sharing a cell with a
// base or start, bases sharing a cell with a start, and any object sharing a
// cell with an earlier object of its own kind. Invalid owners become
// Neutral, attributes are clamped to their maxima, start directions wrap to
// 0-15, and the tile under every surviving object is replaced with one it may
// sit on. Repairing a repaired map changes nothing.
func (m *Map) Repair() RepairReport {
	var rep RepairReport
	m.repairPills(&rep)
	m.repairBases(&rep)
	m.repairStarts(&rep)
	return rep
}

func (m *Map) repairPills(rep *RepairReport) {
	for i := 0; i < m.Pills.Len(); {
		p := m.Pills.items[i]
		at := p.Point()
		note := func(a RepairAction, detail string) {
			*rep = append(*rep, Repair{Kind: KindPill, Index: i, At: at, Action: a, Detail: detail})
		}

		switch {
		case !inSea(at):
			note(RemovedOffSea, "")
			m.Pills.Remove(i)
			continue
		case m.pillAt(at) < i:
			note(RemovedDuplicate, "")
			m.Pills.Remove(i)
			continue
		case m.baseAt(at) >= 0:
			note(RemovedUnderBase, "")
			m.Pills.Remove(i)
			continue
		case m.startAt(at) >= 0:
			note(RemovedUnderStart, "")
			m.Pills.Remove(i)
			continue
		}

		if !validOwner(p.Owner) {
			note(OwnerNeutralized, fmt.Sprintf("was %d", p.Owner))
			p.Owner = Neutral
		}
		if p.Armour > MaxPillArmour {
			note(Clamped, fmt.Sprintf("armour %d -> %d", p.Armour, MaxPillArmour))
			p.Armour = MaxPillArmour
		}
		if p.Speed > MaxPillSpeed {
			note(Clamped, fmt.Sprintf("speed %d -> %d", p.Speed, MaxPillSpeed))
			p.Speed = MaxPillSpeed
		}
		m.Pills.items[i] = p
		m.retile(at, tiles.ForPillbox, func(d string) { note(Retiled, d) })
		i++
	}
}

func (m *Map) repairBases(rep *RepairReport) {
	for i := 0; i < m.Bases.Len(); {
		b := m.Bases.items[i]
		at := b.Point()
		note := func(a RepairAction, detail string) {
			*rep = append(*rep, Repair{Kind: KindBase, Index: i, At: at, Action: a, Detail: detail})
		}

		switch {
		case !inSea(at):
			note(RemovedOffSea, "")
			m.Bases.Remove(i)
			continue
		case m.baseAt(at) < i:
			note(RemovedDuplicate, "")
			m.Bases.Remove(i)
			continue
		case m.startAt(at) >= 0:
			note(RemovedUnderStart, "")
			m.Bases.Remove(i)
			continue
		}

		if !validOwner(b.Owner) {
			note(OwnerNeutralized, fmt.Sprintf("was %d", b.Owner))
			b.Owner = Neutral
		}
		if b.Armour > MaxBaseArmour {
			note(Clamped, fmt.Sprintf("armour %d -> %d", b.Armour, MaxBaseArmour))
			b.Armour = MaxBaseArmour
		}
		if b.Shells > MaxBaseShells {
			note(Clamped, fmt.Sprintf("shells %d -> %d", b.Shells, MaxBaseShells))
			b.Shells = MaxBaseShells
		}
		if b.Mines > MaxBaseMines {
			note(Clamped, fmt.Sprintf("mines %d -> %d", b.Mines, MaxBaseMines))
			b.Mines = MaxBaseMines
		}
		m.Bases.items[i] = b
		m.retile(at, tiles.ForBase, func(d string) { note(Retiled, d) })
		i++
	}
}

func (m *Map) repairStarts(rep *RepairReport) {
	for i := 0; i < m.Starts.Len(); {
		s := m.Starts.items[i]
		at := s.Point()
		note := func(a RepairAction, detail string) {
			*rep = append(*rep, Repair{Kind: KindStart, Index: i, At: at, Action: a, Detail: detail})
		}

		switch {
		case !inSea(at):
			note(RemovedOffSea, "")
			m.Starts.Remove(i)
			continue
		case m.startAt(at) < i:
			note(RemovedDuplicate, "")
			m.Starts.Remove(i)
			continue
		}

		if s.Dir >= NumDirections {
			note(DirectionWrapped, fmt.Sprintf("%d -> %d", s.Dir, s.Dir%NumDirections))
			s.Dir %= NumDirections
		}
		m.Starts.items[i] = s
		m.retile(at, tiles.ForStart, func(d string) { note(Retiled, d) })
		i++
	}
}

// retile applies rule to the tile at p and calls note if it changed.
func (m *Map) retile(p geom.Point, rule func(tiles.Tile) tiles.Tile, note func(string)) {
	old := m.Tiles[p.Y][p.X]
	if t := rule(old); t != old {
		m.Tiles[p.Y][p.X] = t
		note(fmt.Sprintf("%v -> %v", old, t))
	}
}
