package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/games/horde"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/replay"
	"github.com/vovakirdan/horde/internal/scoreapi"
	"github.com/vovakirdan/horde/internal/storage"
)

const postTimeout = 5 * time.Second

// Options carries the optional services a game session reports to.
type Options struct {
	Store       *storage.Store
	ScoreClient *scoreapi.Client
	// RecordPath, when set, records the session's input to a replay file.
	RecordPath string
	Logger     *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// scorePostedMsg reports the outcome of a score submission.
type scorePostedMsg struct {
	entry scoreapi.Entry
	err   error
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	log        *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	recorder   *replay.Recorder
	tickGen    uint64
	quitting   bool
	backToMenu bool
	exitOnBack bool // no menu to return to
	scoreSaved bool // Whether the run has been saved for the current game over
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		log:        opts.logger(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		tickGen:    nextTickGen(),
	}
}

// Start resets the game and opens the replay file if one was requested.
// It must run before the program starts: Init has a value receiver and
// cannot keep the recorder.
func (m *GameModel) Start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()

	if m.opts.RecordPath == "" {
		return
	}
	hg, ok := m.game.(*horde.Game)
	if !ok {
		m.log.Warn("Recording not supported for mode", "mode", m.game.ID())
		return
	}
	rec, err := replay.Create(m.opts.RecordPath, replay.HeaderFor(hg, m.config))
	if err != nil {
		m.log.Warn("Cannot record replay", "err", err)
		return
	}
	m.recorder = rec
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board is laid out against the screen buffer on every frame,
		// so a resize never restarts the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()

	case scorePostedMsg:
		if msg.err != nil {
			m.log.Warn("Score post failed", "err", msg.err)
		} else {
			m.log.Info("Score posted", "id", msg.entry.ID, "score", msg.entry.Score)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}

	// B or Esc leaves to the menu once the run is over or paused
	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		m.finish()
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	// Restart input is consumed by the game itself, which reseeds from its
	// own generator so that recordings stay reproducible.
	if m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart) {
		m.scoreSaved = false
	}

	result := m.game.Step(m.inputFrame)
	if m.recorder != nil {
		if err := m.recorder.Tick(m.inputFrame); err != nil {
			m.log.Warn("Replay write failed, recording stopped", "err", err)
			m.recorder = nil
		}
	}
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.tickGen)}
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		if cmd := m.saveRun(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// saveRun stores the finished run and returns the command that posts it
// to the score server, if one is configured.
func (m GameModel) saveRun() tea.Cmd {
	rec := registry.RecordOf(m.game)
	if rec.Score <= 0 {
		return nil
	}

	if m.opts.Store != nil {
		if _, err := m.opts.Store.SaveRun(m.game.ID(), rec); err != nil {
			m.log.Warn("Cannot save run", "err", err)
		}
	}

	client := m.opts.ScoreClient
	if client == nil {
		return nil
	}
	sub := scoreapi.Submission{Mode: m.game.ID(), ScoreRecord: rec}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
		defer cancel()
		e, err := client.Post(ctx, sub)
		return scorePostedMsg{entry: e, err: err}
	}
}

// finish closes the replay file.
func (m *GameModel) finish() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Close(registry.RecordOf(m.game)); err != nil {
		m.log.Warn("Cannot close replay", "err", err)
	} else {
		m.log.Info("Replay saved", "path", m.opts.RecordPath, "ticks", m.recorder.Ticks())
	}
	m.recorder = nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".horde", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.exitOnBack = true
	model.Start()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		// ctrl+c from outside the key handler still leaves a usable file
		gm.finish()
	}
	return err
}
