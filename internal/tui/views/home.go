package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/tui/components"
	"github.com/pablasso/kts/internal/tui/msgs"
	"github.com/pablasso/kts/internal/tui/styles"
)

// MenuItem represents a menu option in the home view.
type MenuItem struct {
	Label       string
	Shortcut    string
	Description string
}

// HomeModel is the landing screen.
type HomeModel struct {
	items        []MenuItem
	cursor       int
	squad        *checklist.SquadSettings
	setupDone    bool
	sessionCount int
	width        int
	height       int
	errorMsg     string
}

// NewHomeModel creates the home view. Without a completed setup only quitting
// is possible.
func NewHomeModel(squad *checklist.SquadSettings, setupDone bool, sessionCount int) HomeModel {
	return HomeModel{
		items: []MenuItem{
			{Label: "Start inspeksjon", Shortcut: "s", Description: "Gå gjennom sjekklisten for hele laget"},
			{Label: "Logg", Shortcut: "l", Description: "Tidligere inspeksjoner"},
			{Label: "Avslutt", Shortcut: "q"},
		},
		squad:        squad,
		setupDone:    setupDone && squad != nil,
		sessionCount: sessionCount,
	}
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.setupDone {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			return m.choose(m.items[m.cursor].Shortcut)
		case "ctrl+c":
			return m, tea.Quit
		default:
			return m.choose(msg.String())
		}
	}
	return m, nil
}

func (m HomeModel) choose(shortcut string) (HomeModel, tea.Cmd) {
	switch shortcut {
	case "s":
		m.errorMsg = ""
		return m, func() tea.Msg { return msgs.StartInspectionMsg{} }
	case "l":
		m.errorMsg = ""
		return m, func() tea.Msg { return msgs.GoToLogListMsg{} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, center(m.width, styles.TitleStyle.Render("K T S")))
	lines = append(lines, center(m.width, styles.SubtleStyle.Render("Kontroll av utstyr")))

	var hints []components.Hint
	if m.setupDone {
		lines = append(lines, center(m.width, m.squadLine()), "")
		lines = append(lines, center(m.width, m.renderMenu()))
		hints = []components.Hint{{Key: "↑↓", Label: "Naviger"}, {Key: "Enter", Label: "Velg"}, {Key: "q", Label: "Avslutt"}}
	} else {
		lines = append(lines, "",
			center(m.width, styles.ErrorStyle.Render("Laget er ikke satt opp.")),
			center(m.width, styles.SubtleStyle.Render("Kjør 'kts setup' først for å registrere laget.")))
		hints = []components.Hint{{Key: "q", Label: "Avslutt"}}
	}
	if m.errorMsg != "" {
		lines = append(lines, "", center(m.width, styles.ErrorStyle.Render(m.errorMsg)))
	}

	return layout(m.width, m.height, strings.Join(lines, "\n"), components.NewStatusBar().Render(m.width, hints))
}

func (m HomeModel) squadLine() string {
	return fmt.Sprintf("%s • %d soldater • %d inspeksjoner",
		m.squad.SquadName, len(m.squad.Soldiers), m.sessionCount)
}

func (m HomeModel) renderMenu() string {
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		main := "[" + item.Shortcut + "] " + item.Label
		if i == m.cursor {
			main = styles.SelectedStyle.Render(main)
		} else {
			main = styles.SubtleStyle.Render(main)
		}
		if item.Description != "" {
			main += "  " + styles.SubtleStyle.Render(item.Description)
		}
		lines[i] = main
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the model dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetupDone reports whether the menu is active.
func (m HomeModel) SetupDone() bool {
	return m.setupDone
}

// Cursor returns the current cursor position.
func (m HomeModel) Cursor() int {
	return m.cursor
}

// SetError sets an error message to display until the next menu choice.
func (m *HomeModel) SetError(msg string) {
	m.errorMsg = msg
}

// Error returns the current error message.
func (m HomeModel) Error() string {
	return m.errorMsg
}

// center places s in the middle of a line of the given width.
func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// layout centers content vertically above the status bar, biased towards the
// top.
func layout(width, height int, content, statusBar string) string {
	available := height - 1
	contentHeight := lipgloss.Height(content)
	top := max((available-contentHeight)/3, 0)
	bottom := max(available-top-contentHeight, 0)

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(content)
	b.WriteString(strings.Repeat("\n", bottom+1))
	b.WriteString(statusBar)
	return b.String()
}
