// Package tui runs the brick breaker inside Bubble Tea, locally or over SSH.
// It owns the frame loop, input mapping, the name prompt and the leaderboard
// panel; the simulation itself lives in package breakout.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-breaker/internal/breakout"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after a
// frame interval. The model schedules the next one only while the game runs.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// promptMsg opens the name prompt for a finished game.
// gen identifies the game so a prompt for an abandoned game is dropped.
type promptMsg struct {
	task breakout.GameOver
	gen  int
}

// promptCmd delivers the prompt after the task's delay, leaving the end
// overlay on screen in the meantime.
func promptCmd(task breakout.GameOver, gen int) tea.Cmd {
	return tea.Tick(task.Delay, func(time.Time) tea.Msg {
		return promptMsg{task: task, gen: gen}
	})
}
