package horde

import "strings"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Score        int
	Lines        int
	Level        int
	Survivors    int
	Placed       int
	Explosions   int
	Wave         int
	Spawned      int
	Remaining    int
	Director     string
	DropInterval int
	Current      string // archetype of the falling piece, empty if none
	CurX, CurY   int
	Rotation     int
	Next         string
	Queued       int
	Board        []string // one string per row, '.' empty, archetype initial otherwise
	GameOver     bool
	Paused       bool
}

var archetypeRunes = map[Archetype]byte{
	Basic:   'B',
	Runner:  'R',
	Tank:    'T',
	Crawler: 'C',
	Bomber:  'X',
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        g.score,
		Lines:        g.lines,
		Level:        g.level,
		Survivors:    g.survivors,
		Placed:       g.placed,
		Explosions:   g.explosions,
		Wave:         g.director.CurrentWave(),
		Spawned:      g.director.ZombiesSpawned(),
		Remaining:    g.director.ZombiesRemaining(),
		Director:     g.director.State().String(),
		DropInterval: g.dropInterval,
		CurX:         g.curX,
		CurY:         g.curY,
		Queued:       len(g.queue),
		Board:        BoardRows(g.grid),
		GameOver:     g.gameOver,
		Paused:       g.paused,
	}
	if g.current != nil {
		s.Current = g.current.Archetype.String()
		s.Rotation = g.current.Rotation
	}
	if g.next != nil {
		s.Next = g.next.Archetype.String()
	}
	return s
}

// BoardRows renders grid occupancy as text, one string per row.
func BoardRows(g *Grid) []string {
	rows := make([]string, g.Height())
	var sb strings.Builder
	for y := range rows {
		sb.Reset()
		for x := 0; x < g.Width(); x++ {
			if p := g.Cell(x, y); p != nil {
				sb.WriteByte(archetypeRunes[p.Archetype])
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
