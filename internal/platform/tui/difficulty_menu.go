package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brick-breaker/internal/config"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "wide paddle, slow ball"},
	{config.DifficultyNormal, "Normal", "the classic"},
	{config.DifficultyHard, "Hard", "narrow paddle, fast ball"},
}

type menuKeys struct {
	Up, Down, Select, Quit key.Binding
}

var defaultMenuKeys = menuKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
	Select: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// DifficultyMenu lets the player pick a difficulty preset before a game.
type DifficultyMenu struct {
	cursor   int
	width    int
	height   int
	keys     menuKeys
	chosen   bool
	quitting bool
}

// NewDifficultyMenu creates the menu with Normal preselected.
func NewDifficultyMenu(width, height int) DifficultyMenu {
	return DifficultyMenu{
		cursor: 1,
		width:  width,
		height: height,
		keys:   defaultMenuKeys,
	}
}

// Init initializes the model.
func (m DifficultyMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(difficultyOptions)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the difficulty list.
func (m DifficultyMenu) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("B R I C K   B R E A K E R"))
	b.WriteString("\n\n")
	b.WriteString("Select difficulty:\n\n")

	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("  %-7s %s", opt.label, opt.hint)
		if i == m.cursor {
			b.WriteString(menuSelectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(menuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter select • q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Selected returns the chosen preset. ok is false until the player confirms.
func (m DifficultyMenu) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return difficultyOptions[m.cursor].preset, true
}

// RunDifficultyMenu shows the menu and returns the chosen preset. ok is false
// when the player quit instead.
func RunDifficultyMenu(width, height int) (config.DifficultyPreset, bool, error) {
	p := tea.NewProgram(NewDifficultyMenu(width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(DifficultyMenu)
	if !ok {
		return "", false, nil
	}
	preset, chosen := m.Selected()
	return preset, chosen, nil
}
