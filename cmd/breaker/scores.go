package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brick-breaker/internal/platform/tui"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

const recentGames = 10

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and game history",
	Long: `Display the leaderboard, overall statistics and the most recent games.

Examples:
  breaker scores
  breaker scores --db ./scores.db
  breaker scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Erase the leaderboard and game history")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr, log.Options{})
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	board := newBoard(cfg, store, logger)

	if flagClear {
		if err := board.Clear(); err != nil {
			logger.Error("clearing leaderboard", "err", err)
		}
		if err := store.ClearGames(); err != nil {
			logger.Error("clearing game history", "err", err)
		}
		fmt.Println("Leaderboard and game history cleared.")
		return
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("could not read game stats", "err", err)
		stats = nil
	}
	recent, err := store.RecentGames(recentGames)
	if err != nil {
		logger.Warn("could not read recent games", "err", err)
	}

	fmt.Print(tui.RenderScores(board.Entries(), cfg.Leaderboard.MaxSize, stats, recent))

	if len(board.Entries()) == 0 {
		fmt.Println()
		fmt.Println("Play 'breaker play' to set the first high score!")
	}
}
