package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/kts/internal/journal"
	"github.com/pablasso/kts/internal/kv"
	"github.com/pablasso/kts/internal/report"
	"github.com/pablasso/kts/internal/sessionlog"
	"github.com/pablasso/kts/internal/storage"
)

// key builds a key press the way bubbletea reports it.
func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newSessionLog(t *testing.T, store kv.Store) *sessionlog.Log {
	t.Helper()
	return sessionlog.New(storage.New(store, nil).Sessions(), nil)
}

// events returns the event names recorded in j.
func events(t *testing.T, j *journal.Journal) []string {
	t.Helper()
	all, err := j.Read()
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	var names []string
	for _, e := range all {
		names = append(names, e.Event)
	}
	return names
}

// stubCopy replaces the clipboard for the duration of the test and returns
// a pointer to the copied text.
func stubCopy(t *testing.T) *[]string {
	t.Helper()
	var copied []string
	orig := report.Copy
	report.Copy = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { report.Copy = orig })
	return &copied
}

// message runs cmd and returns its message, failing if there is none.
func message(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}
