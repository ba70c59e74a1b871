package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/games/horde"
	"github.com/vovakirdan/horde/internal/replay"
	"github.com/vovakirdan/horde/internal/storage"
)

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

// fragileGame ends on the first landing: one survivor, threat 1.
func fragileGame() *horde.Game {
	cfg := config.DefaultHordeConfig()
	cfg.Survivors.Start = 1
	return horde.NewWithConfig(horde.ModeHorde, cfg)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 3}
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m, TickMsg{Gen: m.tickGen})
}

func TestGameOverSavesRunAndReplay(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	recordPath := filepath.Join(dir, "run.jsonl.zst")
	m := NewGameModel(fragileGame(), testRuntime(), Options{Store: store, RecordPath: recordPath})
	m.Start()

	m = send(t, m, space)
	m = tick(t, m)

	if !m.gameState.GameOver {
		t.Fatal("expected game over after the first landing")
	}

	runs, err := store.TopRuns("horde", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	want := core.ScoreRecord{Score: 44, Lines: 0, Level: 1, Survivors: 0}
	if len(runs) != 1 || runs[0].Record != want {
		t.Fatalf("stored runs = %+v, expected one run %+v", runs, want)
	}

	// more ticks while the game is over must not store the run twice
	m = tick(t, m)
	runs, _ = store.TopRuns("horde", 10)
	if len(runs) != 1 {
		t.Errorf("stored %d runs, expected 1", len(runs))
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Fatal("expected quit")
	}

	rp, err := replay.Load(recordPath)
	if err != nil {
		t.Fatalf("replay.Load() failed: %v", err)
	}
	if rp.End.Ticks != 2 {
		t.Errorf("End.Ticks = %d, expected 2", rp.End.Ticks)
	}
	if _, err := rp.Verify(); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}

func TestStaleTicksAreIgnored(t *testing.T) {
	g := fragileGame()
	m := NewGameModel(g, testRuntime(), Options{})
	m.Start()

	m = send(t, m, TickMsg{Gen: m.tickGen + 1})
	if got := g.Snapshot().Tick; got != 0 {
		t.Errorf("Tick after stale message = %d, expected 0", got)
	}

	m = tick(t, m)
	if got := g.Snapshot().Tick; got != 1 {
		t.Errorf("Tick = %d, expected 1", got)
	}
}

func TestRestartAllowsNextRunToSave(t *testing.T) {
	m := NewGameModel(fragileGame(), testRuntime(), Options{})
	m.Start()

	m = send(t, m, space)
	m = tick(t, m)
	if !m.gameState.GameOver || !m.scoreSaved {
		t.Fatalf("state = %+v saved=%v, expected a saved game over", m.gameState, m.scoreSaved)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = tick(t, m)
	if m.gameState.GameOver || m.scoreSaved {
		t.Errorf("after restart state = %+v saved=%v", m.gameState, m.scoreSaved)
	}
	if m.gameState.Score != 0 {
		t.Errorf("Score after restart = %d, expected 0", m.gameState.Score)
	}
}

func TestBackOnlyWhenOverOrPaused(t *testing.T) {
	m := NewGameModel(fragileGame(), testRuntime(), Options{})
	m.Start()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Back during play should be ignored")
	}

	m.inputFrame.Clear()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("expected pause")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Back while paused should return to the menu")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := fragileGame()
	m := NewGameModel(g, testRuntime(), Options{})
	m.Start()
	m = tick(t, m)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := g.Snapshot().Tick; got != 1 {
		t.Errorf("Tick after resize = %d, expected the run to continue", got)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "CORPSES") {
		t.Error("View() missing HUD after resize")
	}
}

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(testRuntime(), Options{})

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scoreboard", m.screen)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	if got := m.gameModel.game.ID(); got != "horde" {
		t.Errorf("selected mode = %q, expected %q", got, "horde")
	}

	m = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting {
		t.Error("q in game should end the session")
	}
}
