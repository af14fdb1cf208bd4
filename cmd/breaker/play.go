package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/platform/tui"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of brick breaker.

Controls:
  Left/A, Right/D  - Move paddle
  Mouse            - Paddle follows the pointer
  N/R              - New game
  L                - Toggle leaderboard
  Ctrl+S           - Save screenshot
  Q/Ctrl+C         - Quit

When a game ends you are asked for a name for the leaderboard.
Press Esc to skip.

Difficulty options (a menu asks when --difficulty is not given):
  easy   - Wide paddle, slow ball
  normal - Default settings
  hard   - Narrow paddle, fast ball

Examples:
  breaker play
  breaker play --difficulty easy
  breaker play --config ./my-breaker.toml
  breaker play --seed 42 --log-file /tmp/breaker.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	// The alternate screen owns the terminal; logs go to a file or nowhere.
	logger, closeLog, err := newLogger(io.Discard, log.Options{ReportTimestamp: true})
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Without --difficulty, let the player pick one.
	if flagDifficulty == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		preset, ok, menuErr := tui.RunDifficultyMenu(width, height)
		if menuErr != nil {
			closeLog()
			fail("%v", menuErr)
		}
		if !ok {
			return
		}
		if presetErr := config.ApplyPreset(&cfg, preset); presetErr != nil {
			closeLog()
			fail("%v", presetErr)
		}
		logger.Debug("difficulty selected", "preset", preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Board:  newBoard(cfg, store, logger),
		Logger: logger,
	}
	if store != nil {
		opts.History = store
	}

	logger.Debug("starting game", "seed", flagSeed, "fps", flagFPS, "size", fmt.Sprintf("%dx%d", width, height))
	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fail("%v", runErr)
	}
}
