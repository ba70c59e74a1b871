package horde

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Default playfield size.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// DangerRows is the number of top rows that end the game when occupied.
const DangerRows = 2

// FilledCell is one occupied cell in a read-only grid view.
type FilledCell struct {
	X, Y      int
	Archetype Archetype
	PieceID   uint64
}

// footprint counts how many cells of a piece are still on the grid.
type footprint struct {
	piece *Piece
	cells int
}

// Grid is the occupancy matrix. Each cell references the piece that
// filled it, or nil.
type Grid struct {
	width  int
	height int
	cells  [][]*Piece

	live        *intmap.Map[uint64, *footprint]
	subscribers []func(LineClearEvent)
}

// NewGrid creates an empty grid. Non-positive sizes fall back to 10x20.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	g := &Grid{
		width:  width,
		height: height,
		live:   intmap.New[uint64, *footprint](64),
	}
	g.cells = make([][]*Piece, height)
	for y := range g.cells {
		g.cells[y] = make([]*Piece, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the piece at (x, y), or nil for empty and out-of-bounds cells.
func (g *Grid) Cell(x, y int) *Piece {
	if !g.inBounds(x, y) {
		return nil
	}
	return g.cells[y][x]
}

// PieceCount returns the number of distinct pieces with cells on the grid.
func (g *Grid) PieceCount() int {
	return g.live.Len()
}

// Subscribe registers fn to receive every LineClearEvent.
func (g *Grid) Subscribe(fn func(LineClearEvent)) {
	g.subscribers = append(g.subscribers, fn)
}

// CanPlacePiece reports whether every cell of p, offset by (gx, gy), is in
// bounds and empty.
func (g *Grid) CanPlacePiece(p *Piece, gx, gy int) bool {
	for _, c := range p.LocalCells() {
		x, y := gx+c.X, gy+c.Y
		if !g.inBounds(x, y) || g.cells[y][x] != nil {
			return false
		}
	}
	return true
}

// PlacePiece writes p into the grid at (gx, gy) and returns the number of
// cells written. Cells falling outside the grid are skipped; callers check
// CanPlacePiece first.
func (g *Grid) PlacePiece(p *Piece, gx, gy int) int {
	written := 0
	for _, c := range p.LocalCells() {
		x, y := gx+c.X, gy+c.Y
		if !g.inBounds(x, y) {
			continue
		}
		prev := g.cells[y][x]
		if prev == p {
			continue
		}
		if prev != nil {
			g.release(prev)
		}
		g.cells[y][x] = p
		g.retain(p)
		written++
	}
	return written
}

func (g *Grid) retain(p *Piece) {
	if fp, ok := g.live.Get(p.cellKey()); ok {
		fp.cells++
		return
	}
	g.live.Put(p.cellKey(), &footprint{piece: p, cells: 1})
}

// release drops one cell of p and reports whether p left the grid.
func (g *Grid) release(p *Piece) bool {
	fp, ok := g.live.Get(p.cellKey())
	if !ok {
		return false
	}
	fp.cells--
	if fp.cells > 0 {
		return false
	}
	g.live.Del(p.cellKey())
	return true
}

// CheckCompleteLines returns the indices of full rows in ascending order.
func (g *Grid) CheckCompleteLines() []int {
	var rows []int
	for y := 0; y < g.height; y++ {
		full := true
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == nil {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// LineScore is the points awarded for clearing row: rows nearer the
// bottom are worth more.
func (g *Grid) LineScore(row int) int {
	return 100 * (g.height - row) / g.height
}

// ClearLines removes the given rows and returns the summed line score.
// Rows are processed bottom-most first; each clear pulls every row above it
// down by one, and the indices of rows still pending are adjusted so they
// keep naming the rows the caller passed. Duplicates and out-of-range rows
// are ignored. The input slice is not modified.
func (g *Grid) ClearLines(rows []int) int {
	rows = g.normalizeRows(rows)
	if len(rows) == 0 {
		return 0
	}

	ev := LineClearEvent{
		Rows:   rows,
		Scores: make([]int, 0, len(rows)),
	}
	for i, row := range rows {
		score := g.LineScore(row)
		ev.Scores = append(ev.Scores, score)
		ev.Total += score
		// i rows below this one are already gone, so its content moved down by i.
		ev.Destroyed = append(ev.Destroyed, g.clearRow(row+i)...)
	}

	for _, fn := range g.subscribers {
		fn(ev)
	}
	return ev.Total
}

func (g *Grid) normalizeRows(rows []int) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if r >= 0 && r < g.height && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// clearRow empties a row, shifts the rows above it down and empties row 0.
func (g *Grid) clearRow(row int) []*Piece {
	var destroyed []*Piece
	for x := 0; x < g.width; x++ {
		if p := g.cells[row][x]; p != nil {
			g.cells[row][x] = nil
			if g.release(p) {
				destroyed = append(destroyed, p)
			}
		}
	}
	for y := row; y > 0; y-- {
		copy(g.cells[y], g.cells[y-1])
	}
	clear(g.cells[0])
	return destroyed
}

// ClearArea empties every in-bounds cell within radius of (cx, cy),
// Chebyshev distance, and returns the number of cells removed. No gravity
// is applied.
func (g *Grid) ClearArea(cx, cy, radius int) int {
	removed := 0
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !g.inBounds(x, y) || g.cells[y][x] == nil {
				continue
			}
			g.release(g.cells[y][x])
			g.cells[y][x] = nil
			removed++
		}
	}
	return removed
}

// DropDistance returns how many rows p can still fall from (gx, gy),
// probing one row at a time.
func (g *Grid) DropDistance(p *Piece, gx, gy int) int {
	d := 0
	for g.CanPlacePiece(p, gx, gy+d+1) {
		d++
	}
	return d
}

// IsGameOver reports whether any cell of the danger zone is occupied.
func (g *Grid) IsGameOver() bool {
	for y := 0; y < min(DangerRows, g.height); y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != nil {
				return true
			}
		}
	}
	return false
}

// FilledCells lists occupied cells row by row.
func (g *Grid) FilledCells() []FilledCell {
	var out []FilledCell
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if p := g.cells[y][x]; p != nil {
				out = append(out, FilledCell{X: x, Y: y, Archetype: p.Archetype, PieceID: p.ID})
			}
		}
	}
	return out
}

// HeightMap returns, per column, height minus the row of the lowest
// occupied cell, or 0 for an empty column.
func (g *Grid) HeightMap() []int {
	heights := make([]int, g.width)
	for x := 0; x < g.width; x++ {
		for y := g.height - 1; y >= 0; y-- {
			if g.cells[y][x] != nil {
				heights[x] = g.height - y
				break
			}
		}
	}
	return heights
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for y := range g.cells {
		clear(g.cells[y])
	}
	g.live.Clear()
}
