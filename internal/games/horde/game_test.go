package horde

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
)

func newTestGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultHordeConfig())
	g.Reset(core.RuntimeConfig{Seed: 42, ScreenW: 80, ScreenH: 30, TickRate: 60})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// scriptedInput is a fixed, busy input pattern used to drive long runs.
func scriptedInput(tick int) core.InputFrame {
	switch {
	case tick%45 == 0:
		return frame(core.ActionHardDrop)
	case tick%13 == 0:
		return frame(core.ActionLeft)
	case tick%17 == 0:
		return frame(core.ActionRight)
	case tick%29 == 0:
		return frame(core.ActionRotate)
	case tick%7 == 0:
		return frame(core.ActionSoftDrop)
	}
	return frame()
}

func TestGameIDsAndTitles(t *testing.T) {
	assert.Equal(t, "horde", New().ID())
	assert.Equal(t, "horde_classic", NewClassic().ID())
	assert.Equal(t, "Horde", New().Title())
	assert.Equal(t, "Horde (Classic)", NewClassic().Title())

	for _, id := range []string{"horde", "horde_classic"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestGameDeterminism(t *testing.T) {
	for _, mode := range []Mode{ModeHorde, ModeClassic} {
		t.Run(string(mode), func(t *testing.T) {
			g1 := newTestGame(t, mode)
			g2 := newTestGame(t, mode)

			for i := 1; i <= 3000; i++ {
				g1.Step(scriptedInput(i))
				g2.Step(scriptedInput(i))
			}

			assert.Equal(t, g1.Snapshot(), g2.Snapshot())
			assert.Positive(t, g1.Snapshot().Placed)
		})
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	s := g.Snapshot()

	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 100, s.Survivors)
	assert.Equal(t, 1, s.Wave)
	assert.Equal(t, 500, s.DropInterval)
	assert.Equal(t, "basic", s.Current, "wave 1 only spawns basic zombies")
	assert.Equal(t, "basic", s.Next)
	assert.Equal(t, 5, s.CurX)
	assert.Equal(t, 0, s.CurY)
	assert.False(t, s.GameOver)
	assert.Len(t, s.Board, 20)
}

func TestHardDropScoring(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	first := g.current

	g.Step(frame(core.ActionHardDrop))

	// 17 rows * 2 points + 10 for the placement.
	assert.Equal(t, 44, g.score)
	assert.Equal(t, 99, g.survivors)
	assert.Equal(t, 1, g.placed)
	assert.Same(t, first, g.grid.Cell(5, 19), "leg on the floor")
	assert.NotSame(t, first, g.current)
	assert.Equal(t, 0, g.curY)
}

func TestLineClearRewards(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.survivors = 90
	fillRow(g.grid, 19, 1000, 5)

	g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 1, g.lines)
	// hard drop 34 + line 5 + placement 10
	assert.Equal(t, 49, g.score)
	// +5 for the line, -1 threat
	assert.Equal(t, 94, g.survivors)
	assert.Len(t, g.debris, 9, "each cleared single-cell zombie becomes debris")
	assert.Empty(t, g.grid.CheckCompleteLines())
}

func TestSurvivorsCapped(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	fillRow(g.grid, 19, 1000, 5)

	g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 99, g.survivors, "line bonus is capped before the threat is paid")
}

func TestLevelUpStartsNextWave(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.lines = 9
	fillRow(g.grid, 19, 1000, 5)

	g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 10, g.lines)
	assert.Equal(t, 2, g.level)
	assert.Equal(t, 2, g.director.CurrentWave())
	assert.Equal(t, 460, g.dropInterval)
	assert.Positive(t, g.director.ZombiesSpawned(), "a formation marched in")
	assert.Equal(t, g.director.ZombiesSpawned()-1, len(g.queue), "one formation member is already next")
}

func TestClassicModeIgnoresSurvivorsAndAbilities(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	g.current = NewPiece(999, Bomber)
	g.current.MoveToCell(g.curX, g.curY)
	g.grid.PlacePiece(dot(1000), 4, 19)

	g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 100, g.survivors)
	assert.Equal(t, 0, g.explosions)
	assert.NotNil(t, g.grid.Cell(4, 19), "no explosion in classic mode")

	g.lines = 9
	fillRow(g.grid, 19, 2000, 4, 5)
	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, 2, g.director.CurrentWave())
	assert.Empty(t, g.queue, "no formations in classic mode")
}

func TestBomberExplodes(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.current = NewPiece(999, Bomber)
	g.current.MoveToCell(g.curX, g.curY)
	g.grid.PlacePiece(dot(1000), 4, 19)
	g.grid.PlacePiece(dot(1001), 6, 19)
	g.grid.PlacePiece(dot(1002), 8, 19)

	g.Step(frame(core.ActionHardDrop))

	// 18 rows * 2 + explosion 50 + placement 10
	assert.Equal(t, 96, g.score)
	assert.Equal(t, 1, g.explosions)
	assert.Equal(t, 98, g.survivors)
	assert.Nil(t, g.grid.Cell(4, 19))
	assert.Nil(t, g.grid.Cell(5, 19), "the bomber takes itself out")
	assert.Nil(t, g.grid.Cell(6, 19))
	assert.NotNil(t, g.grid.Cell(8, 19))
}

func TestMoveDelay(t *testing.T) {
	g := newTestGame(t, ModeHorde)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 4, g.curX)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 4, g.curX, "second move inside the delay is dropped")

	for range 10 {
		g.Step(frame())
	}
	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 3, g.curX)
}

func TestWallsBlockMovement(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	for range 20 {
		g.Step(frame(core.ActionLeft))
		for range 7 {
			g.Step(frame())
		}
	}
	assert.Equal(t, 1, g.curX, "basic arm rests on the left wall")
}

func TestRotateRevertsWhenBlocked(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	runner := NewPiece(999, Runner)
	g.current = runner
	runner.MoveToCell(g.curX, g.curY)

	g.Step(frame(core.ActionRotate))

	assert.Equal(t, 0, runner.Rotation, "vertical runner does not fit on row 0")
	assert.Equal(t, ShapeFor(Runner), runner.Parts)
	assert.Equal(t, 5, g.curX)
}

func TestRotateWallKick(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	runner := NewPiece(999, Runner)
	runner.Rotate()
	g.current = runner
	g.curX, g.curY = 7, 5
	runner.MoveToCell(7, 5)

	g.Step(frame(core.ActionRotate))

	assert.Equal(t, 180, runner.Rotation)
	assert.Equal(t, 6, g.curX, "kicked one column away from the right wall")
	assert.True(t, g.grid.CanPlacePiece(runner, g.curX, g.curY))
}

func TestGravityAndSoftDrop(t *testing.T) {
	g := newTestGame(t, ModeHorde)

	for range 29 {
		g.Step(frame())
	}
	assert.Equal(t, 0, g.curY, "500ms not yet elapsed")
	g.Step(frame())
	g.Step(frame())
	assert.Equal(t, 1, g.curY)

	g.Step(frame(core.ActionSoftDrop))
	for range 3 {
		g.Step(frame())
	}
	assert.Equal(t, 2, g.curY, "soft drop falls every 62.5ms")
}

func TestWaveCompleteBonus(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.survivors = 50

	g.director.Update(1e6)

	assert.Equal(t, 500, g.score)
	assert.Equal(t, 60, g.survivors)
	assert.Equal(t, 2, g.level)
	assert.Equal(t, 1, g.director.CurrentWave(), "next wave waits for line clears")
	assert.Contains(t, g.banner, "SURVIVED")
}

func TestPause(t *testing.T) {
	g := newTestGame(t, ModeHorde)

	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)
	assert.Equal(t, StatePaused, g.director.State())

	for range 200 {
		g.Step(frame(core.ActionHardDrop))
	}
	assert.Equal(t, 0, g.curY)
	assert.Equal(t, 0, g.score)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
	assert.Equal(t, StateSpawning, g.director.State())
}

func TestGameOverBySurvivors(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.survivors = 1

	g.Step(frame(core.ActionHardDrop))

	assert.True(t, g.State().GameOver)
	assert.Equal(t, StateStopped, g.director.State())
	assert.Equal(t, core.ScoreRecord{Score: 44, Lines: 0, Level: 1, Survivors: 0}, g.Record())

	before := g.Snapshot()
	g.Step(frame(core.ActionLeft))
	assert.Equal(t, before.CurX, g.Snapshot().CurX, "no input after game over")

	g.Step(frame(core.ActionRestart))
	assert.False(t, g.State().GameOver)
	assert.Equal(t, 0, g.score)
	assert.Equal(t, 100, g.survivors)
}

func TestGameOverByDangerZone(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	for y := 3; y < 20; y++ {
		g.grid.PlacePiece(dot(uint64(1000+y)), 5, y)
	}

	g.Step(frame(core.ActionHardDrop))

	assert.True(t, g.State().GameOver)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeHorde)
	g.Step(frame())

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Horde", "CORPSES", "SURVIVORS", "WAVE 1: 6 LEFT", "NEXT", "@@"} {
		assert.Contains(t, out, want)
	}

	g.survivors = 1
	g.Step(frame(core.ActionHardDrop))
	g.Render(screen)
	assert.Contains(t, screen.String(), "THE HORDE WINS")
}

func TestRenderClassicHidesSurvivors(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	screen := core.NewScreen(80, 30)
	g.Render(screen)
	assert.NotContains(t, screen.String(), "SURVIVORS")
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(ModeHorde, config.DefaultHordeConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 8, TickRate: 60})

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "Window too small"))
}

func TestBoardRowsMatchesGrid(t *testing.T) {
	g := NewGrid(4, 2)
	g.PlacePiece(NewPiece(1, Bomber), 1, 0)
	g.PlacePiece(dot(2), 3, 1)

	assert.Equal(t, []string{".X..", ".X.B"}, BoardRows(g))
}
