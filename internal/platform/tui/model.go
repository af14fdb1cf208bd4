package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/breakout"
	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/leaderboard"
)

// holdWindow is how long a key press keeps the paddle moving. Terminals send
// no key-up, so auto-repeat refreshes the hold while a key stays down.
const holdWindow = 150 * time.Millisecond

// History records finished games. *storage.Store implements it.
type History interface {
	RecordGame(outcome string, score int, name string) (int64, error)
}

// Options configures a game session.
type Options struct {
	Config  config.BreakerConfig
	Runtime core.RuntimeConfig
	Board   *leaderboard.Board
	History History // Optional
	Logger  *log.Logger

	// ScreenshotDir is where ctrl+s writes frames. Defaults to
	// ~/.breaker/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one brick breaker session.
type Model struct {
	game    *breakout.Game
	screen  *core.Screen
	canvas  *core.Canvas
	runtime core.RuntimeConfig
	board   *leaderboard.Board
	history History
	logger  *log.Logger

	keys   KeyMap
	help   help.Model
	held   *core.HeldKeys
	input  core.InputFrame
	prompt NamePrompt

	width, height int
	showBoard     bool
	quitting      bool
	screenshotDir string

	// ticking is true while a TickMsg is in flight, so a reset never starts
	// a second tick chain.
	ticking bool
	// gen counts games; a prompt scheduled for an older game is dropped.
	gen int
	// ended holds the finished game until it is written to history.
	ended *breakout.GameOver
}

// NewModel creates a session model. Init starts the tick loop.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	board := opts.Board
	if board == nil {
		lb := opts.Config.Leaderboard
		board = leaderboard.New(nil, lb.Key, lb.MaxSize, leaderboard.WithLogger(logger))
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".breaker", "screenshots")
	}

	holdTicks := int(math.Ceil(holdWindow.Seconds() * float64(rt.TickRate)))

	m := Model{
		game:          breakout.New(opts.Config, rt.Seed, logger),
		screen:        core.NewScreen(rt.ScreenW, rt.ScreenH),
		runtime:       rt,
		board:         board,
		history:       opts.History,
		logger:        logger,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		held:          core.NewHeldKeys(holdTicks),
		input:         core.NewInputFrame(),
		prompt:        NewNamePrompt(),
		width:         rt.ScreenW,
		height:        rt.ScreenH,
		screenshotDir: dir,
		ticking:       true, // Init starts the first chain
	}
	m.canvas = core.NewCanvas(m.screen, opts.Config.Canvas.Width, opts.Config.Canvas.Height)
	m.layout()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()

	case promptMsg:
		return m.handlePrompt(msg)
	}

	if m.prompt.IsOpen() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// layout sizes the field below the HUD and above the help line, leaving room
// for the leaderboard panel when it is shown.
func (m *Model) layout() {
	w, h := m.fieldSize()
	m.screen.Resize(w, h)
}

func (m Model) fieldSize() (int, int) {
	w := m.width
	if m.showBoard && m.width-panelWidth >= minFieldWidth {
		w = m.width - panelWidth
	}
	h := m.height - 2
	return max(w, 1), max(h, 1)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.prompt.IsOpen() {
		return m.handlePromptKey(msg)
	}

	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		return m.quit()
	case core.ActionLeft, core.ActionRight:
		m.held.Press(action)
	case core.ActionReset:
		return m.reset()
	case core.ActionToggleLeaderboard:
		m.showBoard = !m.showBoard
		m.layout()
	}

	return m, nil
}

// handlePromptKey routes keys to the open name prompt.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionConfirm:
		task := m.prompt.Task()
		name := strings.TrimSpace(m.prompt.Value())
		if _, err := task.Resolve(name, m.board); err != nil {
			m.logger.Warn("leaderboard entry not persisted", "name", name, "err", err)
		}
		m.prompt.Close()
		m.recordEnded(name)
		return m, nil

	case core.ActionBack:
		m.prompt.Close()
		m.recordEnded("")
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleMouse moves the paddle with the pointer while it is over the field.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompt.IsOpen() {
		return m, nil
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}

	// Row 0 is the HUD.
	row := msg.Y - 1
	if row < 0 || row >= m.screen.Height() || msg.X >= m.screen.Width() {
		return m, nil
	}
	m.input.Point(m.canvas.ToLogicalX(msg.X))
	return m, nil
}

// handleTick runs one simulation step and schedules the next tick only while
// the game keeps running.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticking = false
	if !m.game.Running() {
		return m, nil
	}

	m.held.Apply(&m.input)
	result := m.game.Step(m.input)
	m.input.Clear()

	var cmds []tea.Cmd
	if task, ok := m.game.TakeGameOver(); ok {
		m.ended = &task
		m.held.Reset()
		cmds = append(cmds, promptCmd(task, m.gen))
	}

	if result.Continue {
		m.ticking = true
		cmds = append(cmds, tickCmd(m.runtime.TickRate))
	}

	return m, tea.Batch(cmds...)
}

// handlePrompt opens the name prompt once the post-game delay has passed.
func (m Model) handlePrompt(msg promptMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.ended == nil {
		return m, nil
	}
	cmd := m.prompt.Open(msg.task, m.board.Qualifies(msg.task.Score))
	return m, cmd
}

// reset starts a new game. A finished game that was never named is recorded
// without a name first. The tick loop is re-armed only if it had stopped.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.recordEnded("")
	m.prompt.Close()
	m.held.Reset()
	m.input.Clear()

	m.game.Reset()
	m.gen++

	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.runtime.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.recordEnded("")
	m.prompt.Close()
	m.quitting = true
	return m, tea.Quit
}

// recordEnded writes the finished game to history once.
func (m *Model) recordEnded(name string) {
	if m.ended == nil {
		return
	}
	task := *m.ended
	m.ended = nil

	if m.history == nil {
		return
	}
	if _, err := m.history.RecordGame(task.Outcome.String(), task.Score, name); err != nil {
		m.logger.Warn("game history not saved", "err", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.game.Draw(m.canvas)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("breaker_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	fieldW, fieldH := m.fieldSize()
	entries := m.board.Entries()
	best := 0
	if len(entries) > 0 {
		best = entries[0].Score
	}

	var field string
	switch {
	case m.prompt.IsOpen():
		field = m.prompt.View(fieldW, fieldH)
	case m.showBoard && fieldW == m.width:
		// Too narrow for a side panel: show the board instead of the field.
		field = lipgloss.Place(fieldW, fieldH, lipgloss.Center, lipgloss.Center,
			renderLeaderboard(entries, m.game.Config().Leaderboard.MaxSize))
	default:
		m.game.Draw(m.canvas)
		field = RenderScreen(m.screen)
	}

	if m.showBoard && fieldW < m.width {
		field = lipgloss.JoinHorizontal(lipgloss.Top, field,
			renderLeaderboard(entries, m.game.Config().Leaderboard.MaxSize))
	}

	var b strings.Builder
	b.WriteString(renderHUD(m.game.Score(), m.game.BricksLeft(), best, m.width))
	b.WriteString("\n")
	b.WriteString(field)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
