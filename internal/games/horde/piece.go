// Package horde implements the zombie falling-block rule engine: pieces shaped
// like zombies, the occupancy grid, the wave director and the game controller
// that ties them to the platform.
package horde

import (
	"sync/atomic"

	"github.com/vovakirdan/horde/internal/core"
)

// CellSize is the width of one grid cell in world units.
const CellSize = 32

// Archetype is the kind of zombie a piece represents.
type Archetype int

const (
	Basic Archetype = iota
	Runner
	Tank
	Crawler
	Bomber
)

// Archetypes lists every archetype in declaration order.
var Archetypes = []Archetype{Basic, Runner, Tank, Crawler, Bomber}

func (a Archetype) String() string {
	switch a {
	case Basic:
		return "basic"
	case Runner:
		return "runner"
	case Tank:
		return "tank"
	case Crawler:
		return "crawler"
	case Bomber:
		return "bomber"
	default:
		return "unknown"
	}
}

// PartKind is the body part a cell of a piece depicts.
type PartKind int

const (
	Head PartKind = iota
	Torso
	Arm
	Leg
)

func (k PartKind) String() string {
	switch k {
	case Head:
		return "head"
	case Torso:
		return "torso"
	case Arm:
		return "arm"
	default:
		return "leg"
	}
}

// BodyPart is one cell of a piece in piece-local coordinates.
// Offsets are fractional after rotation about a non-integer centroid.
type BodyPart struct {
	DX, DY float64
	Kind   PartKind
	Color  core.Color
}

// ShapeFor returns a fresh copy of the unrotated layout of an archetype.
// Unknown archetypes get the basic layout.
func ShapeFor(a Archetype) []BodyPart {
	switch a {
	case Runner:
		return []BodyPart{
			{0, 0, Head, core.ColorBrown},
			{1, 0, Torso, core.ColorDarkRed},
			{2, 0, Leg, core.ColorDarkRed},
			{3, 0, Leg, core.ColorDarkRed},
		}
	case Tank:
		return []BodyPart{
			{0, 0, Head, core.ColorGreen},
			{1, 0, Head, core.ColorGreen},
			{0, 1, Torso, core.ColorBrown},
			{1, 1, Torso, core.ColorBrown},
		}
	case Crawler:
		return []BodyPart{
			{0, 0, Head, core.ColorYellow},
			{1, 0, Arm, core.ColorBrown},
			{2, 0, Torso, core.ColorDarkRed},
			{0, 1, Leg, core.ColorDarkRed},
		}
	case Bomber:
		return []BodyPart{
			{0, 0, Head, core.ColorBrightRed},
			{0, 1, Torso, core.ColorRed},
		}
	default:
		return []BodyPart{
			{0, 0, Head, core.ColorBrown},
			{0, 1, Torso, core.ColorDarkRed},
			{-1, 1, Arm, core.ColorBrown},
			{1, 1, Arm, core.ColorBrown},
			{0, 2, Leg, core.ColorDarkRed},
		}
	}
}

// Piece is a falling zombie: a set of body parts with a world position.
type Piece struct {
	ID        uint64
	Archetype Archetype
	Parts     []BodyPart
	X, Y      float64 // world position
	Rotation  int     // degrees, one of 0, 90, 180, 270
	Physics   Physics

	key uint64 // grid bookkeeping identity, distinct for every *Piece
}

var pieceKeys atomic.Uint64

// cellKey returns the identity grids count cells under. ID is chosen by
// the caller and may repeat; the key never does.
func (p *Piece) cellKey() uint64 {
	if p.key == 0 {
		p.key = pieceKeys.Add(1)
	}
	return p.key
}

// NewPiece creates an unrotated piece at the world origin.
func NewPiece(id uint64, a Archetype) *Piece {
	return &Piece{
		ID:        id,
		Archetype: a,
		Parts:     ShapeFor(a),
		Physics:   NewPhysics(),
	}
}

// Rotate turns the piece 90 degrees clockwise about the centroid of its parts.
func (p *Piece) Rotate() {
	if len(p.Parts) == 0 {
		return
	}
	var cx, cy float64
	for _, part := range p.Parts {
		cx += part.DX
		cy += part.DY
	}
	n := float64(len(p.Parts))
	cx /= n
	cy /= n

	for i := range p.Parts {
		relX := p.Parts[i].DX - cx
		relY := p.Parts[i].DY - cy
		p.Parts[i].DX = cx - relY
		p.Parts[i].DY = cy + relX
	}
	p.Rotation = (p.Rotation + 90) % 360
}

// LocalCells returns the integer cell offsets of the parts relative to the
// piece origin. Grid placement adds these to the target cell.
func (p *Piece) LocalCells() []core.Point {
	cells := make([]core.Point, len(p.Parts))
	for i, part := range p.Parts {
		cells[i] = core.Point{X: core.FloorInt(part.DX), Y: core.FloorInt(part.DY)}
	}
	return cells
}

// GridPositions returns the absolute cells covered by the piece at its
// current world position.
func (p *Piece) GridPositions() []core.Point {
	cells := make([]core.Point, len(p.Parts))
	for i, part := range p.Parts {
		cells[i] = core.Point{
			X: core.FloorInt((p.X + part.DX*CellSize) / CellSize),
			Y: core.FloorInt((p.Y + part.DY*CellSize) / CellSize),
		}
	}
	return cells
}

// SetPosition moves the piece to a world position.
func (p *Piece) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// MoveToCell positions the piece origin on the given grid cell.
func (p *Piece) MoveToCell(gx, gy int) {
	p.SetPosition(float64(gx*CellSize), float64(gy*CellSize))
}

// Cell returns the grid cell holding the piece origin.
func (p *Piece) Cell() core.Point {
	return core.Point{X: core.FloorInt(p.X / CellSize), Y: core.FloorInt(p.Y / CellSize)}
}

// Threat is the number of survivors lost when the piece lands.
func (p *Piece) Threat() int {
	switch p.Archetype {
	case Runner, Bomber:
		return 2
	case Tank:
		return 3
	default:
		return 1
	}
}

// Ability describes the archetype's special behavior for the HUD.
func (p *Piece) Ability() string {
	switch p.Archetype {
	case Runner:
		return "Falls 2x faster"
	case Tank:
		return "Blocks line clears temporarily"
	case Crawler:
		return "Can shift one cell after landing"
	case Bomber:
		return "Explodes and clears surrounding cells"
	default:
		return "Standard zombie behavior"
	}
}

// Clone returns a deep copy of the piece, including its rotation and physics.
func (p *Piece) Clone() *Piece {
	c := *p
	c.key = 0
	c.Parts = make([]BodyPart, len(p.Parts))
	copy(c.Parts, p.Parts)
	return &c
}
