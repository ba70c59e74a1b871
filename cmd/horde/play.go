package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/games/horde"
	"github.com/vovakirdan/horde/internal/platform/tui"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/scoreapi"
	"github.com/vovakirdan/horde/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagRecord     string
	flagScoreURL   string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: horde).

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate
  Down, S          - Soft drop
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower drops, full survivors
  normal - Config values, drop speeds up every wave
  hard   - Faster drops that speed up sooner, 60% survivors
  fixed  - Drop speed never changes

Examples:
  horde play
  horde play horde_classic
  horde play --difficulty hard --seed 42
  horde play --config ./my-horde.yaml
  horde play --record ./runs/today.jsonl.zst
  horde play --score-url http://localhost:8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom horde config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", string(horde.ModeHorde), "Mode to play (see 'horde list')")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the run's input to this replay file")
	playCmd.Flags().StringVar(&flagScoreURL, "score-url", "", "Post finished runs to this score server")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; failures only disable persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// applyGameFlags hands --config and --difficulty to the horde package.
func applyGameFlags() {
	if flagDifficulty != "" && !config.IsValidPreset(flagDifficulty) {
		fail("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadHorde(flagConfig); err != nil {
			fail("%v", err)
		}
	}
	horde.SetConfigPath(flagConfig)
	horde.SetDifficultyPreset(flagDifficulty)
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := flagMode
	if len(args) == 1 {
		mode = args[0]
	}

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'horde list' to see available modes.")
		os.Exit(1)
	}
	applyGameFlags()

	game, err := registry.Create(mode)
	if err != nil {
		fail("creating game: %v", err)
	}

	opts := tui.Options{RecordPath: flagRecord}
	if flagScoreURL != "" {
		opts.ScoreClient = scoreapi.NewClient(flagScoreURL)
	}
	opts.Store = openStore()

	runErr := tui.Run(game, terminalConfig(), opts)

	// Close store before potential exit
	if opts.Store != nil {
		opts.Store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
	if flagRecord != "" {
		fmt.Printf("Replay written to %s\n", flagRecord)
	}
}
