// Package bmap reads and writes Bolo map files and keeps the map they
// describe consistent.
//
// A map file is a 12-byte preamble, the pillbox, base and start records it
// counts, and a sequence of runs: each run is one horizontal span of tiles
// that differ from their position's default tile, packed as 4-bit tokens.
// Loading a file repairs whatever it can (objects off the sea, clashing
// objects, out-of-range attributes) and fails only when the bytes cannot be
// parsed at all.
package bmap

import (
	"bolo-mapkit/pkg/geom"
	"bolo-mapkit/pkg/tiles"
)

const (
	// Magic is the identifier every map file starts with.
	Magic = "BMAPBOLO"

	// CurrentVersion is the only format version this package reads.
	CurrentVersion = 1

	MaxPlayers = 16
	MaxPills   = 16
	MaxBases   = 16
	MaxStarts  = 16

	MaxPillArmour = 15
	MaxPillSpeed  = 50

	MaxBaseArmour = 90
	MaxBaseShells = 90
	MaxBaseMines  = 90

	// Neutral is the owner of an object no player holds.
	Neutral = 0xff

	// NumDirections is the number of compass points a start can face.
	NumDirections = 16
)

// Record sizes on disk.
const (
	PreambleSize  = 12
	PillSize      = 5
	BaseSize      = 6
	StartSize     = 3
	RunHeaderSize = 4

	// MaxRunPayload is the most payload a run's one-byte length can describe.
	MaxRunPayload = 0xff - RunHeaderSize
)

// Preamble is the fixed header of a map file.
type Preamble struct {
	Ident     [8]byte
	Version   uint8
	NumPills  uint8
	NumBases  uint8
	NumStarts uint8
}

// headerSize returns the bytes taken by the preamble and the object records
// it declares.
func (p Preamble) headerSize() int {
	return PreambleSize + int(p.NumPills)*PillSize + int(p.NumBases)*BaseSize + int(p.NumStarts)*StartSize
}

func (p *Preamble) unmarshal(b []byte) {
	copy(p.Ident[:], b[0:8])
	p.Version = b[8]
	p.NumPills = b[9]
	p.NumBases = b[10]
	p.NumStarts = b[11]
}

func (p Preamble) marshal(b []byte) {
	copy(b[0:8], p.Ident[:])
	b[8] = p.Version
	b[9] = p.NumPills
	b[10] = p.NumBases
	b[11] = p.NumStarts
}

// Pill is a pillbox (gun emplacement).
type Pill struct {
	X      uint8
	Y      uint8
	Owner  uint8 // player index, or Neutral
	Armour uint8 // 0 (dead) to MaxPillArmour
	Speed  uint8 // reload time in 20ms ticks; lower starts it angry
}

// Point returns the pillbox position.
func (p Pill) Point() geom.Point { return geom.Pt(int(p.X), int(p.Y)) }

func (p *Pill) unmarshal(b []byte) {
	p.X, p.Y, p.Owner, p.Armour, p.Speed = b[0], b[1], b[2], b[3], b[4]
}

func (p Pill) marshal(b []byte) {
	b[0], b[1], b[2], b[3], b[4] = p.X, p.Y, p.Owner, p.Armour, p.Speed
}

// Base is a refuelling base.
type Base struct {
	X      uint8
	Y      uint8
	Owner  uint8
	Armour uint8
	Shells uint8
	Mines  uint8
}

// Point returns the base position.
func (b Base) Point() geom.Point { return geom.Pt(int(b.X), int(b.Y)) }

func (b *Base) unmarshal(buf []byte) {
	b.X, b.Y, b.Owner, b.Armour, b.Shells, b.Mines = buf[0], buf[1], buf[2], buf[3], buf[4], buf[5]
}

func (b Base) marshal(buf []byte) {
	buf[0], buf[1], buf[2], buf[3], buf[4], buf[5] = b.X, b.Y, b.Owner, b.Armour, b.Shells, b.Mines
}

// Start is a player spawn point.
type Start struct {
	X   uint8
	Y   uint8
	Dir uint8 // direction towards land, 0-15
}

// Point returns the start position.
func (s Start) Point() geom.Point { return geom.Pt(int(s.X), int(s.Y)) }

func (s *Start) unmarshal(b []byte) {
	s.X, s.Y, s.Dir = b[0], b[1], b[2]
}

func (s Start) marshal(b []byte) {
	b[0], b[1], b[2] = s.X, s.Y, s.Dir
}

// Run is the header of one encoded span of tiles on a single row.
type Run struct {
	Len    uint8 // header plus payload bytes
	Y      uint8
	StartX uint8
	EndX   uint8 // one past the last tile
}

// EndRun terminates the run sequence.
var EndRun = Run{Len: RunHeaderSize, Y: 0xff, StartX: 0xff, EndX: 0xff}

// IsEnd reports whether r is the terminating run.
func (r Run) IsEnd() bool {
	return r == EndRun
}

// PayloadLen returns the number of payload bytes following the header.
func (r Run) PayloadLen() int {
	return int(r.Len) - RunHeaderSize
}

func (r *Run) unmarshal(b []byte) {
	r.Len, r.Y, r.StartX, r.EndX = b[0], b[1], b[2], b[3]
}

func (r Run) marshal(b []byte) {
	b[0], b[1], b[2], b[3] = r.Len, r.Y, r.StartX, r.EndX
}

// validOwner reports whether owner is a player index or Neutral.
func validOwner(owner uint8) bool {
	return owner == Neutral || owner < MaxPlayers
}

// inSea reports whether p is a legal object position.
func inSea(p geom.Point) bool {
	return tiles.SeaRect.ContainsPoint(p)
}
