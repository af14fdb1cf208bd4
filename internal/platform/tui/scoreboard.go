package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/leaderboard"
	"github.com/vovakirdan/brick-breaker/internal/storage"
)

// Scoreboard layout constants
const (
	panelWidth    = 30 // Width of the leaderboard side panel, border included
	minFieldWidth = 40 // Narrowest field that still leaves room for the panel
	nameColumnMax = 14
	rankColumnW   = 4
	scoreColumnW  = 6
)

var (
	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// newScoreTable creates the table used for leaderboard entries.
func newScoreTable(rows int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: rankColumnW},
		{Title: "Name", Width: nameColumnMax},
		{Title: "Score", Width: scoreColumnW},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(rows+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Nothing is selectable; keep every row plain.
	s.Selected = s.Cell
	t.SetStyles(s)

	return t
}

// scoreRows converts entries to table rows.
func scoreRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		name := e.Name
		if len([]rune(name)) > nameColumnMax {
			name = string([]rune(name)[:nameColumnMax-1]) + "…"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			name,
			fmt.Sprintf("%d", e.Score),
		}
	}
	return rows
}

// renderLeaderboard renders the leaderboard as a bordered panel.
func renderLeaderboard(entries []leaderboard.Entry, maxSize int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("LEADERBOARD"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(emptyStyle.Render("No scores yet.\nFinish a game to\nset one!"))
	} else {
		t := newScoreTable(maxSize)
		t.SetRows(scoreRows(entries))
		b.WriteString(t.View())
	}

	return panelStyle.Width(panelWidth - 2).Render(b.String())
}

// RenderScores renders the leaderboard and the game history summary for the
// scores command.
func RenderScores(entries []leaderboard.Entry, maxSize int, stats *storage.GameStats, recent []storage.GameRecord) string {
	var b strings.Builder
	b.WriteString(renderLeaderboard(entries, maxSize))
	b.WriteString("\n")

	if stats == nil {
		return b.String()
	}

	var s strings.Builder
	s.WriteString(panelTitleStyle.Render("HISTORY"))
	s.WriteString("\n\n")
	if stats.GamesCount == 0 {
		s.WriteString(emptyStyle.Render("No games played yet."))
	} else {
		fmt.Fprintf(&s, "Games played: %d\n", stats.GamesCount)
		fmt.Fprintf(&s, "Wins:         %d\n", stats.Wins)
		fmt.Fprintf(&s, "Best score:   %d\n", stats.HighScore)
		fmt.Fprintf(&s, "Average:      %.1f\n", stats.AvgScore)
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(&s, "Last played:  %s\n", stats.LastPlayed.Format("Jan 02 15:04"))
		}
		if len(recent) > 0 {
			s.WriteString("\n")
			for _, r := range recent {
				name := r.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(&s, "%-5s %3d  %s\n", r.Outcome, r.Score, name)
			}
		}
	}

	b.WriteString(panelStyle.Width(panelWidth - 2).Render(strings.TrimRight(s.String(), "\n")))
	b.WriteString("\n")
	return b.String()
}
