package bmap

import (
	"testing"

	"bolo-mapkit/pkg/tiles"
)

func TestRepairRemovesObjectsOffSea(t *testing.T) {
	m := New()
	m.Pills.Append(Pill{X: 5, Y: 20, Owner: Neutral})
	m.Pills.Append(Pill{X: 20, Y: 20, Owner: Neutral})
	m.Pills.Append(Pill{X: 246, Y: 20, Owner: Neutral})
	m.Pills.Append(Pill{X: 30, Y: 245, Owner: Neutral})
	m.Bases.Append(Base{X: 20, Y: 9, Owner: Neutral})
	m.Starts.Append(Start{X: 255, Y: 255})
	m.Starts.Append(Start{X: 10, Y: 10})

	report := m.Repair()

	pills := m.Pills.All()
	if len(pills) != 2 || pills[0].X != 20 || pills[1].X != 30 {
		t.Errorf("pills = %+v", pills)
	}
	if m.Bases.Len() != 0 {
		t.Errorf("bases = %+v", m.Bases.All())
	}
	if starts := m.Starts.All(); len(starts) != 1 || starts[0].X != 10 {
		t.Errorf("starts = %+v", starts)
	}
	if got := report.Count(RemovedOffSea); got != 4 {
		t.Errorf("RemovedOffSea = %d, want 4\n%s", got, report)
	}
	if report.Removed() != 4 {
		t.Errorf("Removed = %d", report.Removed())
	}
}

func TestRepairResolvesSharedCells(t *testing.T) {
	m := New()
	m.Pills.Append(Pill{X: 20, Y: 20, Owner: Neutral})
	m.Pills.Append(Pill{X: 30, Y: 30, Owner: Neutral})
	m.Pills.Append(Pill{X: 40, Y: 40, Owner: Neutral})
	m.Bases.Append(Base{X: 20, Y: 20, Owner: Neutral})
	m.Bases.Append(Base{X: 50, Y: 50, Owner: Neutral})
	m.Starts.Append(Start{X: 30, Y: 30})
	m.Starts.Append(Start{X: 50, Y: 50})

	report := m.Repair()

	if pills := m.Pills.All(); len(pills) != 1 || pills[0].X != 40 {
		t.Errorf("pills = %+v", pills)
	}
	if bases := m.Bases.All(); len(bases) != 1 || bases[0].X != 20 {
		t.Errorf("bases = %+v", bases)
	}
	if m.Starts.Len() != 2 {
		t.Errorf("starts should never be removed for sharing a cell, got %d", m.Starts.Len())
	}
	if report.Count(RemovedUnderBase) != 1 || report.Count(RemovedUnderStart) != 2 {
		t.Errorf("unexpected report:\n%s", report)
	}
}

func TestRepairRemovesDuplicates(t *testing.T) {
	m := New()
	m.Pills.Append(Pill{X: 40, Y: 40, Owner: Neutral, Armour: 1})
	m.Pills.Append(Pill{X: 40, Y: 40, Owner: Neutral, Armour: 2})
	m.Bases.Append(Base{X: 50, Y: 50, Owner: Neutral, Armour: 1})
	m.Bases.Append(Base{X: 51, Y: 50, Owner: Neutral})
	m.Bases.Append(Base{X: 50, Y: 50, Owner: Neutral, Armour: 2})
	m.Starts.Append(Start{X: 60, Y: 60, Dir: 0})
	m.Starts.Append(Start{X: 60, Y: 60, Dir: 4})

	report := m.Repair()

	if pills := m.Pills.All(); len(pills) != 1 || pills[0].Armour != 1 {
		t.Errorf("pills = %+v", pills)
	}
	if bases := m.Bases.All(); len(bases) != 2 || bases[0].Armour != 1 || bases[1].X != 51 {
		t.Errorf("bases = %+v", bases)
	}
	if starts := m.Starts.All(); len(starts) != 1 || starts[0].Dir != 0 {
		t.Errorf("starts = %+v", starts)
	}
	if got := report.Count(RemovedDuplicate); got != 3 {
		t.Errorf("RemovedDuplicate = %d, want 3\n%s", got, report)
	}
	if report.Removed() != 3 {
		t.Errorf("Removed = %d", report.Removed())
	}
	if again := m.Repair(); len(again) != 0 {
		t.Errorf("second repair changed the map:\n%s", again)
	}
}

func TestRepairOwnersAndClamps(t *testing.T) {
	m := New()
	m.Pills.Append(Pill{X: 20, Y: 20, Owner: 15, Armour: 15, Speed: 50})
	m.Pills.Append(Pill{X: 21, Y: 20, Owner: 16, Armour: 16, Speed: 51})
	m.Pills.Append(Pill{X: 22, Y: 20, Owner: Neutral, Armour: 0, Speed: 0})
	m.Bases.Append(Base{X: 20, Y: 30, Owner: 0, Armour: 90, Shells: 90, Mines: 90})
	m.Bases.Append(Base{X: 21, Y: 30, Owner: 200, Armour: 91, Shells: 255, Mines: 91})
	m.Starts.Append(Start{X: 20, Y: 40, Dir: 15})
	m.Starts.Append(Start{X: 21, Y: 40, Dir: 17})

	m.Repair()

	tests := []struct {
		name      string
		got, want uint8
	}{
		{"pill 0 owner", m.Pills.At(0).Owner, 15},
		{"pill 0 armour", m.Pills.At(0).Armour, 15},
		{"pill 0 speed", m.Pills.At(0).Speed, 50},
		{"pill 1 owner", m.Pills.At(1).Owner, Neutral},
		{"pill 1 armour", m.Pills.At(1).Armour, MaxPillArmour},
		{"pill 1 speed", m.Pills.At(1).Speed, MaxPillSpeed},
		{"pill 2 owner", m.Pills.At(2).Owner, Neutral},
		{"pill 2 armour", m.Pills.At(2).Armour, 0},
		{"base 0 owner", m.Bases.At(0).Owner, 0},
		{"base 0 armour", m.Bases.At(0).Armour, 90},
		{"base 1 owner", m.Bases.At(1).Owner, Neutral},
		{"base 1 armour", m.Bases.At(1).Armour, MaxBaseArmour},
		{"base 1 shells", m.Bases.At(1).Shells, MaxBaseShells},
		{"base 1 mines", m.Bases.At(1).Mines, MaxBaseMines},
		{"start 0 dir", m.Starts.At(0).Dir, 15},
		{"start 1 dir", m.Starts.At(1).Dir, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestRepairRetilesUnderObjects(t *testing.T) {
	m := New()
	m.Tiles[20][20] = tiles.Forest
	m.Tiles[20][21] = tiles.MinedRoad
	m.Tiles[30][30] = tiles.Wall
	m.Tiles[40][40] = tiles.Wall
	m.Pills.Append(Pill{X: 20, Y: 20, Owner: Neutral})
	m.Pills.Append(Pill{X: 21, Y: 20, Owner: Neutral})
	m.Bases.Append(Base{X: 30, Y: 30, Owner: Neutral})
	m.Starts.Append(Start{X: 40, Y: 40})

	m.Repair()

	tests := []struct {
		x, y int
		want tiles.Tile
	}{
		{20, 20, tiles.Grass},
		{21, 20, tiles.Road},
		{30, 30, tiles.Rubble},
		{40, 40, tiles.Sea},
	}
	for _, tt := range tests {
		if got := m.TileAt(tt.x, tt.y); got != tt.want {
			t.Errorf("tile at (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	m := New()
	m.Tiles[20][20] = tiles.River
	m.Pills.Append(Pill{X: 20, Y: 20, Owner: 99, Armour: 99, Speed: 99})
	m.Pills.Append(Pill{X: 2, Y: 2})
	m.Bases.Append(Base{X: 25, Y: 25, Owner: 17, Mines: 200})
	m.Starts.Append(Start{X: 25, Y: 25, Dir: 40})

	if first := m.Repair(); len(first) == 0 {
		t.Fatal("expected the first pass to repair something")
	}
	before := *m
	if second := m.Repair(); len(second) != 0 {
		t.Errorf("second pass changed:\n%s", second)
	}
	if *m != before {
		t.Error("second pass modified the map")
	}
}

func TestRepairReportString(t *testing.T) {
	m := New()
	m.Pills.Append(Pill{X: 1, Y: 1})
	report := m.Repair()

	want := "pill 0 at (1,1): removed outside the sea\n"
	if report.String() != want {
		t.Errorf("String = %q, want %q", report.String(), want)
	}
}
