package tui

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/core"
	"github.com/vovakirdan/brick-breaker/internal/leaderboard"
)

type gameRecord struct {
	outcome string
	score   int
	name    string
}

type fakeHistory struct {
	games []gameRecord
}

func (h *fakeHistory) RecordGame(outcome string, score int, name string) (int64, error) {
	h.games = append(h.games, gameRecord{outcome, score, name})
	return int64(len(h.games)), nil
}

type testSession struct {
	model   Model
	board   *leaderboard.Board
	history *fakeHistory
	dir     string
}

// newTestSession builds an 80x26 session whose ball launches straight up.
func newTestSession(t *testing.T) *testSession {
	t.Helper()
	cfg := config.DefaultBreakerConfig()
	cfg.Ball.InitialDX = 0

	logger := log.New(io.Discard)
	board := leaderboard.New(nil, cfg.Leaderboard.Key, cfg.Leaderboard.MaxSize, leaderboard.WithLogger(logger))
	history := &fakeHistory{}
	dir := t.TempDir()

	m := NewModel(Options{
		Config:        cfg,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 26, TickRate: 60, Seed: 1},
		Board:         board,
		History:       history,
		Logger:        logger,
		ScreenshotDir: dir,
	})
	return &testSession{model: m, board: board, history: history, dir: dir}
}

func (s *testSession) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := s.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	s.model = m
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// playToLoss moves the paddle out of the ball's path and ticks until the
// game stops scheduling itself.
func (s *testSession) playToLoss(t *testing.T) tea.Cmd {
	t.Helper()
	s.send(t, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})

	var last tea.Cmd
	for i := 0; i < 2000 && s.model.ticking; i++ {
		last = s.send(t, TickMsg{})
	}
	if s.model.ticking || s.model.game.Running() {
		t.Fatal("game did not end")
	}
	return last
}

func TestModelTickSchedulesWhileRunning(t *testing.T) {
	s := newTestSession(t)

	if s.model.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}
	cmd := s.send(t, TickMsg{})
	if cmd == nil || !s.model.ticking {
		t.Error("a running game should schedule the next tick")
	}
}

func TestModelStopsTickingAfterLoss(t *testing.T) {
	s := newTestSession(t)
	last := s.playToLoss(t)

	if last == nil {
		t.Error("the final tick should schedule the name prompt")
	}
	if s.model.ended == nil {
		t.Error("finished game should wait for the prompt")
	}
	if s.model.game.Outcome().String() != "lose" {
		t.Errorf("outcome = %v", s.model.game.Outcome())
	}

	// A stray tick does nothing and schedules nothing.
	if cmd := s.send(t, TickMsg{}); cmd != nil {
		t.Error("ended game should not schedule more ticks")
	}
}

func TestModelResetAfterLossRearmsTicks(t *testing.T) {
	s := newTestSession(t)
	s.playToLoss(t)

	cmd := s.send(t, runes("n"))

	if cmd == nil || !s.model.ticking {
		t.Fatal("reset after a loss should restart the tick loop")
	}
	if !s.model.game.Running() || s.model.game.Score() != 0 {
		t.Error("reset should start a fresh game")
	}
	if len(s.history.games) != 1 || s.history.games[0].outcome != "lose" || s.history.games[0].name != "" {
		t.Errorf("abandoned game should be recorded without a name: %+v", s.history.games)
	}
	if cmd := s.send(t, TickMsg{}); cmd == nil {
		t.Error("ticks should keep flowing after reset")
	}
}

func TestModelResetWhileRunningKeepsOneTickChain(t *testing.T) {
	s := newTestSession(t)
	s.send(t, TickMsg{})

	if cmd := s.send(t, runes("n")); cmd != nil {
		t.Error("reset while a tick is in flight should not start another chain")
	}
	if !s.model.ticking {
		t.Error("the existing chain should still be marked as running")
	}
	if len(s.history.games) != 0 {
		t.Error("resetting a running game records nothing")
	}
}

func TestModelNamePromptRecordsEntry(t *testing.T) {
	s := newTestSession(t)
	s.playToLoss(t)
	task := *s.model.ended
	score := task.Score

	s.send(t, promptMsg{task: task, gen: s.model.gen})
	if !s.model.prompt.IsOpen() {
		t.Fatal("prompt should open after the delay")
	}

	s.send(t, runes("ann"))
	s.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	if s.model.prompt.IsOpen() {
		t.Error("prompt should close after enter")
	}
	entries := s.board.Entries()
	if len(entries) != 1 || entries[0] != (leaderboard.Entry{Name: "ann", Score: score}) {
		t.Errorf("leaderboard = %+v", entries)
	}
	if len(s.history.games) != 1 || s.history.games[0].name != "ann" {
		t.Errorf("history = %+v", s.history.games)
	}
}

func TestModelNamePromptMarksHighScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   bool
	}{
		{"empty board", nil, true},
		{"full board of better scores", []int{90, 80, 70, 60, 50}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t)
			for i, score := range tc.scores {
				s.board.AddEntry(string(rune('a'+i)), score)
			}
			s.playToLoss(t)

			s.send(t, promptMsg{task: *s.model.ended, gen: s.model.gen})
			if got := s.model.prompt.HighScore(); got != tc.want {
				t.Errorf("HighScore() = %v, expected %v", got, tc.want)
			}
			if tc.want && !strings.Contains(s.model.View(), "New high score!") {
				t.Error("view should announce the high score")
			}
		})
	}
}

func TestModelNamePromptEscapeSkips(t *testing.T) {
	s := newTestSession(t)
	s.playToLoss(t)

	s.send(t, promptMsg{task: *s.model.ended, gen: s.model.gen})
	s.send(t, runes("bob"))
	s.send(t, tea.KeyMsg{Type: tea.KeyEsc})

	if len(s.board.Entries()) != 0 {
		t.Error("escape should not record a leaderboard entry")
	}
	if len(s.history.games) != 1 || s.history.games[0].name != "" {
		t.Errorf("history = %+v", s.history.games)
	}
}

func TestModelNamePromptBlankNameSkips(t *testing.T) {
	s := newTestSession(t)
	s.playToLoss(t)

	s.send(t, promptMsg{task: *s.model.ended, gen: s.model.gen})
	s.send(t, runes("   "))
	s.send(t, tea.KeyMsg{Type: tea.KeyEnter})

	if len(s.board.Entries()) != 0 {
		t.Error("a blank name should not be recorded")
	}
}

func TestModelStalePromptIgnored(t *testing.T) {
	s := newTestSession(t)
	s.playToLoss(t)
	task, gen := *s.model.ended, s.model.gen

	s.send(t, runes("n"))
	s.send(t, promptMsg{task: task, gen: gen})

	if s.model.prompt.IsOpen() {
		t.Error("a prompt for an abandoned game should not open")
	}
}

func TestModelKeyMovesPaddle(t *testing.T) {
	s := newTestSession(t)
	start := s.model.game.Paddle().X

	s.send(t, tea.KeyMsg{Type: tea.KeyRight})
	s.send(t, TickMsg{})

	if got := s.model.game.Paddle().X; got != start+8 {
		t.Errorf("paddle x = %v, expected %v", got, start+8)
	}
}

func TestModelMouseOutsideFieldIgnored(t *testing.T) {
	s := newTestSession(t)
	start := s.model.game.Paddle().X

	// Row 0 is the HUD
	s.send(t, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	s.send(t, TickMsg{})

	if got := s.model.game.Paddle().X; got != start {
		t.Errorf("pointer over the HUD moved the paddle to %v", got)
	}
}

func TestModelToggleLeaderboard(t *testing.T) {
	s := newTestSession(t)
	s.board.AddEntry("ann", 12)

	s.send(t, runes("l"))
	if !s.model.showBoard {
		t.Fatal("l should show the leaderboard")
	}
	if s.model.screen.Width() != 80-panelWidth {
		t.Errorf("field width = %d, expected %d", s.model.screen.Width(), 80-panelWidth)
	}
	view := s.model.View()
	if !strings.Contains(view, "LEADERBOARD") || !strings.Contains(view, "ann") {
		t.Error("view should include the leaderboard panel")
	}

	s.send(t, runes("l"))
	if s.model.showBoard || s.model.screen.Width() != 80 {
		t.Error("second press should hide the panel and restore the field")
	}
}

func TestModelViewShowsHUD(t *testing.T) {
	s := newTestSession(t)
	view := s.model.View()

	if !strings.Contains(view, "Score: 0") {
		t.Error("view should include the score")
	}
	if !strings.Contains(view, "Bricks: 45") {
		t.Error("view should include the brick count")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	s := newTestSession(t)
	s.send(t, TickMsg{})
	before := s.model.game.Ball()

	s.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	if s.model.screen.Width() != 120 || s.model.screen.Height() != 38 {
		t.Errorf("field = %dx%d, expected 120x38", s.model.screen.Width(), s.model.screen.Height())
	}
	if s.model.game.Ball() != before {
		t.Error("resizing should not reset the game")
	}
}

func TestModelScreenshot(t *testing.T) {
	s := newTestSession(t)
	s.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasPrefix(files[0].Name(), "breaker_") {
		t.Errorf("expected one screenshot, got %v", files)
	}
}

func TestModelQuit(t *testing.T) {
	s := newTestSession(t)
	cmd := s.send(t, runes("q"))

	if cmd == nil || !s.model.quitting {
		t.Error("q should quit")
	}
	if s.model.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runes("d"), core.ActionRight},
		{runes("n"), core.ActionReset},
		{runes("r"), core.ActionReset},
		{runes("l"), core.ActionToggleLeaderboard},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := km.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}
