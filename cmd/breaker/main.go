// breaker is a brick breaker game for the terminal.
//
// Usage:
//
//	breaker                  - Play a game (same as "breaker play")
//	breaker play             - Play a game
//	breaker serve            - Start SSH server for remote play
//	breaker scores           - Show the leaderboard and game history
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.breaker/scores.db)
//	--config <path>       - Use a custom YAML or TOML config
//	--difficulty <name>   - Apply a preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/leaderboard"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Brick Breaker - Clear the wall in your terminal",
	Long: `Brick Breaker is a terminal take on the classic paddle and ball game.
Bounce the ball off the paddle to break every brick; let it fall past
the paddle and the game is over.

Available commands:
  play     - Play a game (default)
  serve    - Start SSH server for remote play
  scores   - View the leaderboard and game history

Examples:
  breaker
  breaker play --difficulty hard
  breaker serve --ssh :2222
  breaker scores`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaker/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadGameConfig loads the config and applies the difficulty preset.
func loadGameConfig() (config.BreakerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.BreakerConfig{}, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return config.BreakerConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			return config.BreakerConfig{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the command logger. When --log-file is set it wins over
// fallback. The returned close func is never nil.
func newLogger(fallback io.Writer, opts log.Options) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	opts.Level = level

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	return log.NewWithOptions(w, opts), closeFn, nil
}

// newBoard builds the leaderboard on top of the store and loads it. A nil
// store keeps the board in memory.
func newBoard(cfg config.BreakerConfig, store *storage.Store, logger *log.Logger) *leaderboard.Board {
	var kv leaderboard.KV
	if store != nil {
		kv = store
	}
	lb := cfg.Leaderboard
	board := leaderboard.New(kv, lb.Key, lb.MaxSize, leaderboard.WithLogger(logger))
	board.Load()
	return board
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
