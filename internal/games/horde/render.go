package horde

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/horde/internal/core"
)

const hudWidth = 26

var partGlyphs = map[PartKind]string{
	Head:  "@@",
	Torso: "##",
	Arm:   "==",
	Leg:   "||",
}

var archetypeColors = map[Archetype]core.Color{
	Basic:   core.ColorBrown,
	Runner:  core.ColorDarkRed,
	Tank:    core.ColorGreen,
	Crawler: core.ColorYellow,
	Bomber:  core.ColorBrightRed,
}

// layout places the board on screen.
type layout struct {
	ox, oy int // top-left corner of the board frame
}

func (l layout) cell(x, y int) (int, int) {
	return l.ox + 1 + x*2, l.oy + 1 + y
}

func (g *Game) layout(w, h int) (layout, bool) {
	boardW := g.grid.Width()*2 + 2
	boardH := g.grid.Height() + 2
	if w < boardW || h < boardH+1 {
		return layout{}, false
	}
	total := boardW
	if w >= boardW+hudWidth {
		total += hudWidth
	}
	return layout{ox: (w - total) / 2, oy: 1}, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	l, ok := g.layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue")
		return
	}

	dst.DrawTextCentered(0, g.Title())
	g.renderBoard(dst, l)
	g.renderHUD(dst, l)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, l, "THE HORDE WINS", "R to restart, Q to quit")
	case g.paused:
		g.renderOverlay(dst, l, "PAUSED", "P to resume")
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	w, h := g.grid.Width(), g.grid.Height()
	dst.DrawBox(core.NewRect(l.ox, l.oy, w*2+2, h+2), core.ColorGray)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := l.cell(x, y)
			p := g.grid.Cell(x, y)
			switch {
			case p != nil:
				dst.DrawTextColored(sx, sy, "▓▓", archetypeColors[p.Archetype])
			case y < DangerRows:
				dst.DrawTextColored(sx, sy, "--", core.ColorDarkRed)
			default:
				dst.DrawTextColored(sx, sy, " .", core.ColorGray)
			}
		}
	}

	for _, d := range g.debris {
		for _, c := range d.piece.GridPositions() {
			if c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h && g.grid.Cell(c.X, c.Y) == nil {
				sx, sy := l.cell(c.X, c.Y)
				dst.DrawTextColored(sx, sy, "''", core.ColorDarkRed)
			}
		}
	}

	if g.current == nil || g.gameOver {
		return
	}

	drop := g.grid.DropDistance(g.current, g.curX, g.curY)
	if drop > 0 {
		for _, c := range g.current.LocalCells() {
			x, y := g.curX+c.X, g.curY+c.Y+drop
			if x >= 0 && x < w && y >= 0 && y < h {
				sx, sy := l.cell(x, y)
				dst.DrawTextColored(sx, sy, "::", core.ColorGray)
			}
		}
	}

	for i, c := range g.current.GridPositions() {
		if c.X < 0 || c.X >= w || c.Y < 0 || c.Y >= h {
			continue
		}
		part := g.current.Parts[i]
		sx, sy := l.cell(c.X, c.Y)
		dst.DrawTextColored(sx, sy, partGlyphs[part.Kind], part.Color)
	}
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	x := l.ox + g.grid.Width()*2 + 4
	if x+hudWidth-2 > dst.Width() {
		return
	}
	y := l.oy

	line := func(label string, value any, c core.Color) {
		dst.DrawText(x, y, label)
		dst.DrawTextColored(x+11, y, fmt.Sprint(value), c)
		y++
	}

	line("CORPSES", g.score, core.ColorBrightYellow)
	line("CLEARED", g.lines, core.ColorBrightWhite)
	line("LEVEL", g.level, core.ColorBrightWhite)
	if g.mode == ModeHorde {
		c := core.ColorBrightGreen
		if g.survivors <= 20 {
			c = core.ColorBrightRed
		}
		line("SURVIVORS", g.survivors, c)
	}
	y++
	dst.DrawTextColored(x, y, fmt.Sprintf("WAVE %d: %d LEFT", g.director.CurrentWave(), g.director.ZombiesRemaining()), core.ColorRed)
	y++
	dst.DrawText(x, y, progressBar(g.director.WaveProgress(), hudWidth-4))
	y += 2

	dst.DrawText(x, y, "NEXT")
	y++
	if g.next != nil {
		y = g.renderPreview(dst, x, y, g.next)
	}
	y++

	if g.current != nil && g.mode == ModeHorde {
		dst.DrawTextColored(x, y, strings.ToUpper(g.current.Archetype.String()), archetypeColors[g.current.Archetype])
		y++
		dst.DrawTextColored(x, y, g.current.Ability(), core.ColorGray)
		y += 2
	}

	if g.bannerTicks > 0 && g.banner != "" {
		dst.DrawTextColored(x, y, g.banner, core.ColorBrightMagenta)
	}

	help := []string{"←/→ move  ↑ rotate", "↓ soft  space drop", "p pause  q quit"}
	for i, s := range help {
		dst.DrawTextColored(x, l.oy+g.grid.Height()+1-len(help)+i, s, core.ColorGray)
	}
}

// renderPreview draws a piece at (x, y) and returns the first free row below it.
func (g *Game) renderPreview(dst *core.Screen, x, y int, p *Piece) int {
	cells := p.LocalCells()
	minX, minY, maxY := 0, 0, 0
	for i, c := range cells {
		if i == 0 || c.X < minX {
			minX = c.X
		}
		if i == 0 || c.Y < minY {
			minY = c.Y
		}
		if i == 0 || c.Y > maxY {
			maxY = c.Y
		}
	}
	for i, c := range cells {
		part := p.Parts[i]
		dst.DrawTextColored(x+(c.X-minX)*2, y+c.Y-minY, partGlyphs[part.Kind], part.Color)
	}
	return y + maxY - minY + 1
}

func (g *Game) renderOverlay(dst *core.Screen, l layout, title, hint string) {
	boardW := g.grid.Width()*2 + 2
	y := l.oy + g.grid.Height()/2
	w := max(len(title), len([]rune(hint))) + 4
	x := l.ox + (boardW-w)/2
	dst.DrawBox(core.NewRect(x, y-1, w, 4), core.ColorBrightRed)
	for i := 1; i < w-1; i++ {
		dst.SetColored(x+i, y, ' ', core.ColorDefault)
		dst.SetColored(x+i, y+1, ' ', core.ColorDefault)
	}
	dst.DrawTextColored(x+(w-len(title))/2, y, title, core.ColorBrightRed)
	dst.DrawText(x+(w-len([]rune(hint)))/2, y+1, hint)
}

func progressBar(frac float64, width int) string {
	frac = max(0, min(1, frac))
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
