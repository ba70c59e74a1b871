package horde

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
)

// Mode selects the rule set.
type Mode string

const (
	// ModeHorde plays with survivors, threat and zombie abilities.
	ModeHorde Mode = "horde"
	// ModeClassic keeps only the grid and the waves.
	ModeClassic Mode = "horde_classic"
)

const (
	bannerTicks = 120
	debrisTTLMs = 1500
)

// debris is the remains of a zombie whose last cell was cleared.
type debris struct {
	piece *Piece
	ttl   float64
}

// Game is the horde controller: it owns the grid and the director, moves
// the falling piece and keeps the score.
type Game struct {
	mode     Mode
	cfg      config.HordeConfig
	fixedCfg *config.HordeConfig

	rng      *rand.Rand
	grid     *Grid
	director *WaveDirector

	tick   uint64
	tickMs float64

	current    *Piece
	curX, curY int
	next       *Piece
	queue      []*Piece // formation members waiting to fall

	score      int
	lines      int
	level      int
	survivors  int
	placed     int
	explosions int

	dropInterval int
	dropTimer    float64
	moveCooldown float64
	softDropLeft float64

	debris      []debris
	banner      string
	bannerTicks int

	gameOver bool
	paused   bool

	screenW int
	screenH int
}

// Package-level variables for config/difficulty, set by the CLI.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a game with the full horde rules.
func New() *Game {
	return &Game{mode: ModeHorde}
}

// NewClassic creates a game without survivors or abilities.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration files.
func NewWithConfig(mode Mode, cfg config.HordeConfig) *Game {
	cfg.Normalize()
	return &Game{mode: mode, fixedCfg: &cfg}
}

func init() {
	registry.Register(string(ModeHorde), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Horde (Classic)"
	}
	return "Horde"
}

func (g *Game) loadConfig() config.HordeConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}
	cfg, err := config.LoadHorde(configPath)
	if err != nil {
		cfg = config.DefaultHordeConfig()
	}
	if difficultyPreset != "" {
		config.ApplyHordePreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	return cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickMs = cfg.TickMillis()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.grid = NewGrid(g.cfg.Grid.Width, g.cfg.Grid.Height)
	g.grid.Subscribe(g.onLineClear)
	g.director = NewWaveDirector(g.rng)
	g.director.Subscribe(g.onDirectorEvent)

	g.tick = 0
	g.current, g.next, g.queue = nil, nil, nil
	g.score = 0
	g.lines = 0
	g.level = 1
	g.survivors = g.cfg.Survivors.Start
	g.placed = 0
	g.explosions = 0
	g.dropInterval = g.cfg.Drop.BaseMs
	g.dropTimer = 0
	g.moveCooldown = 0
	g.softDropLeft = 0
	g.debris = nil
	g.gameOver = false
	g.paused = false
	g.setBanner("WAVE 1 INCOMING")

	g.spawnPiece()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate(),
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.togglePause()
	}

	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.tickMs
	g.director.Update(dt)
	g.handleInput(input, dt)
	if !g.gameOver {
		g.updateFallingPiece(dt)
	}
	g.updateDebris(dt)

	if g.bannerTicks > 0 {
		g.bannerTicks--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) tickRate() int {
	if g.tickMs <= 0 {
		return 60
	}
	return int(1000/g.tickMs + 0.5)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.director.Pause()
	} else {
		g.director.Resume()
	}
}

func (g *Game) handleInput(input core.InputFrame, dt float64) {
	if g.current == nil {
		return
	}

	g.moveCooldown -= dt
	if g.moveCooldown <= 0 {
		g.moveCooldown = 0
		switch {
		case input.Has(core.ActionLeft):
			g.shift(-1)
		case input.Has(core.ActionRight):
			g.shift(1)
		}
	}

	if input.Has(core.ActionRotate) {
		g.rotate()
	}

	if input.Has(core.ActionSoftDrop) {
		g.softDropLeft = float64(g.cfg.Drop.SoftDropHoldMs)
	}

	if input.Has(core.ActionHardDrop) {
		g.hardDrop()
	}
}

func (g *Game) shift(dx int) {
	if g.grid.CanPlacePiece(g.current, g.curX+dx, g.curY) {
		g.curX += dx
		g.current.MoveToCell(g.curX, g.curY)
		g.moveCooldown = float64(g.cfg.Input.MoveDelayMs)
	}
}

// rotate turns the falling piece, trying a one-cell kick to either side
// when the rotated shape does not fit in place.
func (g *Game) rotate() {
	p := g.current
	p.Rotate()
	if g.grid.CanPlacePiece(p, g.curX, g.curY) {
		return
	}
	for kick := -1; kick <= 1; kick++ {
		if g.grid.CanPlacePiece(p, g.curX+kick, g.curY) {
			g.curX += kick
			p.MoveToCell(g.curX, g.curY)
			return
		}
	}
	for range 3 {
		p.Rotate()
	}
}

func (g *Game) hardDrop() {
	d := g.grid.DropDistance(g.current, g.curX, g.curY)
	if d > 0 {
		g.curY += d
		g.current.MoveToCell(g.curX, g.curY)
		g.score += d * g.cfg.Scoring.HardDropPerCell
	}
	g.landPiece()
}

func (g *Game) updateFallingPiece(dt float64) {
	if g.current == nil {
		return
	}

	interval := float64(g.dropInterval)
	if g.softDropLeft > 0 {
		interval = g.cfg.Drop.SoftDropInterval(g.dropInterval)
		g.softDropLeft -= dt
	}

	g.dropTimer += dt
	if g.dropTimer >= interval {
		g.dropTimer = 0
		g.dropPiece()
	}
}

func (g *Game) dropPiece() {
	if g.grid.CanPlacePiece(g.current, g.curX, g.curY+1) {
		g.curY++
		g.current.MoveToCell(g.curX, g.curY)
		return
	}
	g.landPiece()
}

// landPiece commits the falling piece to the grid and resolves its
// consequences in order: ability, line clears, placement score, threat.
func (g *Game) landPiece() {
	p := g.current
	g.grid.PlacePiece(p, g.curX, g.curY)
	g.placed++

	if g.mode == ModeHorde {
		g.applyAbility(p)
	}

	if rows := g.grid.CheckCompleteLines(); len(rows) > 0 {
		g.clearLines(rows)
	}

	g.score += g.cfg.Scoring.Placement
	if g.mode == ModeHorde {
		g.survivors -= p.Threat()
	}

	g.current = nil
	g.dropTimer = 0
	g.softDropLeft = 0

	if (g.mode == ModeHorde && g.survivors <= 0) || g.grid.IsGameOver() {
		g.endGame()
		return
	}
	g.spawnPiece()
}

func (g *Game) applyAbility(p *Piece) {
	if p.Archetype != Bomber {
		return
	}
	g.grid.ClearArea(g.curX, g.curY, 1)
	g.score += g.cfg.Scoring.ExplosionBonus
	g.explosions++
	g.setBanner("BOOM")
}

func (g *Game) clearLines(rows []int) {
	g.score += g.grid.ClearLines(rows)
	g.lines += len(rows)
	if g.mode == ModeHorde {
		g.saveSurvivors(len(rows) * g.cfg.Survivors.LineBonus)
	}

	if g.lines >= g.level*10 {
		g.level++
		g.director.StartNextWave()
	}
}

func (g *Game) saveSurvivors(n int) {
	g.survivors = min(g.cfg.Survivors.Max, g.survivors+n)
}

func (g *Game) spawnPiece() {
	if g.next == nil {
		g.next = g.pullPiece()
	}
	g.current = g.next
	g.next = g.pullPiece()

	g.curX = g.grid.Width() / 2
	g.curY = 0
	g.current.MoveToCell(g.curX, g.curY)

	if !g.grid.CanPlacePiece(g.current, g.curX, g.curY) {
		g.endGame()
	}
}

func (g *Game) pullPiece() *Piece {
	if len(g.queue) > 0 {
		p := g.queue[0]
		g.queue = g.queue[1:]
		return p
	}
	return g.director.CreateRandomZombie()
}

func (g *Game) endGame() {
	g.gameOver = true
	g.director.Stop()
}

func (g *Game) onDirectorEvent(ev Event) {
	switch e := ev.(type) {
	case WaveCompleteEvent:
		g.score += g.cfg.Scoring.WaveBonusPerWave * e.WaveNumber
		if g.mode == ModeHorde {
			g.saveSurvivors(g.cfg.Survivors.WaveBonus)
		}
		g.level = max(g.level, e.WaveNumber+1)
		g.setBanner(fmt.Sprintf("WAVE %d SURVIVED", e.WaveNumber))
	case WaveStartedEvent:
		g.dropInterval = g.cfg.Drop.DropInterval(e.WaveNumber)
		if g.mode == ModeHorde {
			g.queue = append(g.queue, g.director.SpawnFormation()...)
		}
		g.setBanner(fmt.Sprintf("WAVE %d INCOMING", e.WaveNumber))
	}
}

// onLineClear turns zombies whose last cell was cleared into debris.
func (g *Game) onLineClear(ev LineClearEvent) {
	for i, p := range ev.Destroyed {
		d := p.Clone()
		d.Physics.Velocity = Vec2{X: float64(i%3-1) * 40, Y: -90}
		d.Physics.AngularVelocity = 180
		g.debris = append(g.debris, debris{piece: d, ttl: debrisTTLMs})
	}
	if len(ev.Rows) > 1 {
		g.setBanner(fmt.Sprintf("%d LINES", len(ev.Rows)))
	}
}

func (g *Game) updateDebris(dt float64) {
	kept := g.debris[:0]
	for _, d := range g.debris {
		d.piece.ApplyRagdoll(dt / 1000)
		d.ttl -= dt
		if d.ttl > 0 {
			kept = append(kept, d)
		}
	}
	g.debris = kept
}

func (g *Game) setBanner(text string) {
	g.banner = text
	g.bannerTicks = bannerTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Record returns the run summary handed to persistence.
func (g *Game) Record() core.ScoreRecord {
	return core.ScoreRecord{
		Score:     g.score,
		Lines:     g.lines,
		Level:     g.level,
		Survivors: g.survivors,
	}
}

// Grid exposes the playfield for read-only inspection.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Director exposes the wave director for read-only inspection.
func (g *Game) Director() *WaveDirector {
	return g.director
}

// Config returns the tuning the current run was reset with.
func (g *Game) Config() config.HordeConfig {
	return g.cfg
}

// Mode returns the rule set.
func (g *Game) Mode() Mode {
	return g.mode
}
