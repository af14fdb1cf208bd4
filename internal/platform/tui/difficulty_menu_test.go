package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brick-breaker/internal/config"
)

func menuSend(t *testing.T, m DifficultyMenu, msg tea.Msg) (DifficultyMenu, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(DifficultyMenu)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestDifficultyMenuSelect(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want config.DifficultyPreset
	}{
		{"default", nil, config.DifficultyNormal},
		{"up", []tea.KeyMsg{{Type: tea.KeyUp}}, config.DifficultyEasy},
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}}, config.DifficultyHard},
		{"clamped top", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyUp}, {Type: tea.KeyUp}}, config.DifficultyEasy},
		{"clamped bottom", []tea.KeyMsg{runes("j"), runes("j"), runes("j")}, config.DifficultyHard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewDifficultyMenu(80, 24)
			for _, k := range tc.keys {
				m, _ = menuSend(t, m, k)
			}
			if _, ok := m.Selected(); ok {
				t.Fatal("nothing should be selected before enter")
			}

			m, cmd := menuSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Error("enter should quit the menu program")
			}
			got, ok := m.Selected()
			if !ok || got != tc.want {
				t.Errorf("Selected() = %q, %v, expected %q", got, ok, tc.want)
			}
		})
	}
}

func TestDifficultyMenuQuit(t *testing.T) {
	m := NewDifficultyMenu(80, 24)
	m, cmd := menuSend(t, m, runes("q"))

	if cmd == nil {
		t.Error("q should quit")
	}
	if _, ok := m.Selected(); ok {
		t.Error("quitting selects nothing")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
