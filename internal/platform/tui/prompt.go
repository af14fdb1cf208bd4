package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/breakout"
)

const nameLimit = 20

var highScoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

var promptBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("212")).
	Padding(1, 2)

// NamePrompt is the modal asking for a leaderboard name.
type NamePrompt struct {
	input     textinput.Model
	task      breakout.GameOver
	highScore bool
	open      bool
}

// NewNamePrompt creates a closed prompt.
func NewNamePrompt() NamePrompt {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = nameLimit
	ti.Width = nameLimit
	return NamePrompt{input: ti}
}

// Open shows the prompt for a finished game and focuses the input.
// highScore marks a score that makes it onto the leaderboard.
func (p *NamePrompt) Open(task breakout.GameOver, highScore bool) tea.Cmd {
	p.task = task
	p.highScore = highScore
	p.open = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Close hides the prompt.
func (p *NamePrompt) Close() {
	p.open = false
	p.input.Blur()
}

// IsOpen reports whether the prompt is showing.
func (p NamePrompt) IsOpen() bool { return p.open }

// Task returns the game the prompt was opened for.
func (p NamePrompt) Task() breakout.GameOver { return p.task }

// HighScore reports whether the prompt was opened for a leaderboard score.
func (p NamePrompt) HighScore() bool { return p.highScore }

// Value returns the typed name.
func (p NamePrompt) Value() string { return p.input.Value() }

// Update forwards input to the text field.
func (p NamePrompt) Update(msg tea.Msg) (NamePrompt, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt box centered in a width x height area.
func (p NamePrompt) View(width, height int) string {
	title := hudStyle.Render(fmt.Sprintf("%s  Score: %d", p.task.Outcome.Message(), p.task.Score))
	ask := "Enter your name for the leaderboard:"
	if p.highScore {
		ask = highScoreStyle.Render("New high score!") + "\n" + ask
	}
	body := fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		title,
		ask,
		p.input.View(),
		helpStyle.Render("enter save • esc skip"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, promptBoxStyle.Render(body))
}
