// horde is a terminal zombie Tetris: stack falling zombies, clear rows and
// keep the survivors alive through escalating waves.
//
// Usage:
//
//	horde list              - List available modes
//	horde play [mode]       - Play a mode (default: horde)
//	horde menu              - Start menu to pick modes interactively
//	horde scores [mode]     - Show high scores for a mode
//	horde serve             - Start the SSH server and/or score API
//	horde replay <file>     - Play back and verify a recorded run
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.horde/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the horde modes
	_ "github.com/vovakirdan/horde/internal/games/horde"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "horde",
	Short: "Horde - zombie Tetris in your terminal",
	Long: `Horde is a falling-block puzzle where every block is a zombie.
Zombies arrive in waves, each one a little faster and stranger than the
last. Fill rows to clear them; every zombie that lands costs survivors.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View high scores
  serve    - Start the SSH server and/or the HTTP score API
  replay   - Verify a recorded run

Examples:
  horde play
  horde play horde_classic --difficulty hard
  horde play --record ./runs/best.jsonl.zst
  horde serve --ssh :2222 --http :8080
  horde replay ./runs/best.jsonl.zst`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.horde/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds a stderr logger honouring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fail prints the error the way every command does and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
