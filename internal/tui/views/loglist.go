package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/sessionlog"
	"github.com/pablasso/kts/internal/tui/components"
	"github.com/pablasso/kts/internal/tui/msgs"
	"github.com/pablasso/kts/internal/tui/styles"
)

// SessionSummary is one row of the session log.
type SessionSummary struct {
	ID        string
	Date      string
	Time      string
	Timestamp int64
	SquadName string
	Soldiers  int
	Missing   int
}

// LogListModel lists stored sessions, newest first.
type LogListModel struct {
	sessions []SessionSummary
	cursor   int
	window   components.Window
	now      func() time.Time
	width    int
	height   int
}

// NewLogListModel builds the list from sessions as stored (newest first).
func NewLogListModel(sessions []checklist.Session) LogListModel {
	rows := make([]SessionSummary, len(sessions))
	for i, s := range sessions {
		rows[i] = SessionSummary{
			ID:        s.ID,
			Date:      s.Date,
			Time:      s.Time,
			Timestamp: s.Timestamp,
			SquadName: s.SquadName,
			Soldiers:  len(s.Soldiers),
			Missing:   sessionlog.MissingCount(s),
		}
	}
	return LogListModel{sessions: rows, now: time.Now}
}

// Init implements tea.Model.
func (m LogListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m LogListModel) Update(msg tea.Msg) (LogListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.sessions) {
				id := m.sessions[m.cursor].ID
				return m, func() tea.Msg { return msgs.OpenSessionMsg{SessionID: id} }
			}
		}
		m.window.Follow(m.cursor, len(m.sessions))
	}
	return m, nil
}

// View implements tea.Model.
func (m LogListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lines := []string{center(m.width, styles.TitleStyle.Render("Logg")), ""}
	if len(m.sessions) == 0 {
		lines = append(lines,
			center(m.width, "Ingen inspeksjoner ennå."),
			"",
			center(m.width, styles.SubtleStyle.Render("Trykk Esc for å gå tilbake.")))
		hints := []components.Hint{{Key: "Esc", Label: "Tilbake"}}
		return layout(m.width, m.height, strings.Join(lines, "\n"), components.NewStatusBar().Render(m.width, hints))
	}

	rows := make([]string, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = m.formatSessionLine(i, s)
	}
	lines = append(lines, center(m.width, m.window.Render(rows)))

	hints := []components.Hint{{Key: "↑↓", Label: "Naviger"}, {Key: "Enter", Label: "Åpne"}, {Key: "Esc", Label: "Tilbake"}}
	return layout(m.width, m.height, strings.Join(lines, "\n"), components.NewStatusBar().Render(m.width, hints))
}

func (m LogListModel) formatSessionLine(index int, s SessionSummary) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	missing := "alt OK"
	if s.Missing > 0 {
		missing = fmt.Sprintf("%d mangler", s.Missing)
	}
	age := humanize.RelTime(time.UnixMilli(s.Timestamp), m.now(), "ago", "from now")

	line := fmt.Sprintf("%s %-10s %-5s  %-16s %3d soldater  %-10s", indicator, s.Date, s.Time, s.SquadName, s.Soldiers, missing)
	switch {
	case index == m.cursor:
		line = styles.SelectedStyle.Render(line)
	case s.Missing == 0:
		line = styles.SubtleStyle.Render(line)
	}
	return line + "  " + styles.SubtleStyle.Render(age)
}

// SetSize updates the model dimensions.
func (m *LogListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.window.Height = max(height-6, 1)
	m.window.Follow(m.cursor, len(m.sessions))
}

// Sessions returns the listed rows.
func (m LogListModel) Sessions() []SessionSummary {
	return m.sessions
}

// Cursor returns the current cursor position.
func (m LogListModel) Cursor() int {
	return m.cursor
}
