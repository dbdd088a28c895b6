package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/kts/internal/testutil"
	"github.com/pablasso/kts/internal/tui/msgs"
)

func TestHomeModel_Shortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"s", msgs.StartInspectionMsg{}},
		{"l", msgs.GoToLogListMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewHomeModel(testutil.Squad(), true, 0)
			_, cmd := m.Update(key(tt.key))
			if got := message(t, cmd); got != tt.want {
				t.Errorf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestHomeModel_QuitKey(t *testing.T) {
	m := NewHomeModel(testutil.Squad(), true, 0)
	_, cmd := m.Update(key("q"))
	if _, ok := message(t, cmd).(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHomeModel_NavigateAndSelect(t *testing.T) {
	m := NewHomeModel(testutil.Squad(), true, 0)

	m, _ = m.Update(key("down"))
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor())
	}
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if m.Cursor() != 2 {
		t.Fatalf("expected cursor to stop at 2, got %d", m.Cursor())
	}
	m, _ = m.Update(key("k"))
	m, _ = m.Update(key("k"))
	m, _ = m.Update(key("up"))
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor to stop at 0, got %d", m.Cursor())
	}

	_, cmd := m.Update(key("enter"))
	if _, ok := message(t, cmd).(msgs.StartInspectionMsg); !ok {
		t.Error("enter on the first item should start an inspection")
	}
}

func TestHomeModel_WithoutSetupOnlyQuits(t *testing.T) {
	m := NewHomeModel(nil, false, 0)
	if m.SetupDone() {
		t.Fatal("expected setup to be incomplete")
	}

	if _, cmd := m.Update(key("s")); cmd != nil {
		t.Error("start should be disabled before setup")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should still quit")
	}

	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "kts setup") {
		t.Error("expected a hint to run kts setup")
	}
}

func TestHomeModel_View(t *testing.T) {
	m := NewHomeModel(testutil.Squad(), true, 3)
	if m.View() != "" {
		t.Error("expected empty view before the first size message")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.SetError("no items")
	view := m.View()
	for _, want := range []string{"Lag 1", "2 soldater", "3 inspeksjoner", "Start inspeksjon", "no items"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Errorf("expected view to fill 30 lines, got %d", lines)
	}
}

func TestHomeModel_ChoiceClearsError(t *testing.T) {
	m := NewHomeModel(testutil.Squad(), true, 0)
	m.SetError("boom")
	m, _ = m.Update(key("l"))
	if m.Error() != "" {
		t.Errorf("expected error to be cleared, got %q", m.Error())
	}
}
