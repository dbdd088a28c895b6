package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/journal"
	"github.com/pablasso/kts/internal/report"
	"github.com/pablasso/kts/internal/sessionlog"
	"github.com/pablasso/kts/internal/tui/components"
	"github.com/pablasso/kts/internal/tui/msgs"
	"github.com/pablasso/kts/internal/tui/styles"
)

// SessionStore reads and amends stored sessions.
type SessionStore interface {
	FindByID(ctx context.Context, id string) (checklist.Session, error)
	MarkResolved(ctx context.Context, sessionID, categoryID, itemID, soldierID string) (checklist.Session, error)
	UpdateItemDescription(ctx context.Context, sessionID, categoryID, itemID, soldierID, text string) (checklist.Session, error)
}

// missingRow is one missing item of one soldier.
type missingRow struct {
	soldier checklist.Soldier
	item    checklist.MissingItem
}

// LogDetailModel shows the missing items of a stored session and lets the
// user mark them OK or edit their descriptions.
type LogDetailModel struct {
	session    checklist.Session
	categories []checklist.Category
	store      SessionStore
	deps       Deps

	rows     []missingRow
	cursor   int
	edit     checklist.EditTarget
	input    textinput.Model
	window   components.Window
	errorMsg string
	notice   string
	width    int
	height   int
}

// NewLogDetailModel shows session with item names taken from categories.
func NewLogDetailModel(session checklist.Session, categories []checklist.Category, store SessionStore, deps Deps) LogDetailModel {
	ti := textinput.New()
	ti.Placeholder = "Beskrivelse"
	ti.CharLimit = 200
	ti.Width = 50

	m := LogDetailModel{
		categories: categories,
		store:      store,
		deps:       deps,
		edit:       checklist.NoTarget{},
		input:      ti,
	}
	m.setSession(session)
	return m
}

func (m *LogDetailModel) setSession(s checklist.Session) {
	m.session = s
	m.rows = nil
	for _, ss := range sessionlog.SessionMissingItems(s, m.categories) {
		for _, item := range ss.MissingItems {
			m.rows = append(m.rows, missingRow{soldier: ss.Soldier, item: item})
		}
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
}

// reload replaces the shown session with the stored one after a failed write.
func (m *LogDetailModel) reload() {
	s, err := m.store.FindByID(context.Background(), m.session.ID)
	if err != nil {
		m.deps.logger().Warn("failed to reload session", "session", m.session.ID, "error", err)
		return
	}
	m.setSession(s)
}

// Init implements tea.Model.
func (m LogDetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m LogDetailModel) Update(msg tea.Msg) (LogDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if checklist.Editing(m.edit) {
			return m.handleEditKeys(msg)
		}
		m.notice = ""
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return msgs.GoToLogListMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "o":
			m.resolve()
		case "d":
			if len(m.rows) > 0 {
				row := m.rows[m.cursor]
				m.edit = checklist.SoldierDescriptionTarget{
					SoldierID:  row.soldier.ID,
					CategoryID: row.item.CategoryID,
					ItemID:     row.item.ItemID,
				}
				m.input.SetValue(row.item.Description)
				m.input.CursorEnd()
				m.input.Focus()
				return m, textinput.Blink
			}
		case "c":
			if len(m.rows) > 0 {
				if err := report.Copy(report.Session(m.session, m.categories)); err != nil {
					m.errorMsg = err.Error()
				} else {
					m.notice = "Kopiert til utklippstavlen"
				}
			}
		}
		m.window.Follow(m.cursorLine(), len(m.lines()))
		return m, nil
	}

	if checklist.Editing(m.edit) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LogDetailModel) handleEditKeys(msg tea.KeyMsg) (LogDetailModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if t, ok := m.edit.(checklist.SoldierDescriptionTarget); ok {
			m.saveDescription(t, m.input.Value())
		}
		m.edit = checklist.NoTarget{}
		m.input.Blur()
		return m, nil
	case "esc":
		m.edit = checklist.NoTarget{}
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LogDetailModel) resolve() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	id := m.session.ID
	s, err := m.store.MarkResolved(context.Background(), id, row.item.CategoryID, row.item.ItemID, row.soldier.ID)
	if err != nil {
		m.fail("Kunne ikke oppdatere", err)
		return
	}
	m.errorMsg = ""
	m.setSession(s)
	m.notice = "Markert OK"
	m.deps.Record(func(j *journal.Journal) error {
		return j.ItemResolved(id, row.item.CategoryID, row.item.ItemID, row.soldier.ID)
	})
}

func (m *LogDetailModel) saveDescription(t checklist.SoldierDescriptionTarget, text string) {
	id := m.session.ID
	s, err := m.store.UpdateItemDescription(context.Background(), id, t.CategoryID, t.ItemID, t.SoldierID, text)
	if err != nil {
		m.fail("Kunne ikke lagre beskrivelsen", err)
		return
	}
	m.errorMsg = ""
	m.setSession(s)
	m.notice = "Beskrivelse lagret"
	m.deps.Record(func(j *journal.Journal) error {
		return j.DescriptionEdited(id, t.CategoryID, t.ItemID, t.SoldierID)
	})
}

func (m *LogDetailModel) fail(what string, err error) {
	m.errorMsg = fmt.Sprintf("%s: %v", what, err)
	m.deps.logger().Error("session update failed", "session", m.session.ID, "error", err)
	m.reload()
}

// lines renders the row list with a heading line before each soldier.
func (m LogDetailModel) lines() []string {
	var out []string
	for i, row := range m.rows {
		if i == 0 || m.rows[i-1].soldier.ID != row.soldier.ID {
			out = append(out, styles.SectionStyle.Render(row.soldier.Label()))
		}
		indicator := "○"
		if i == m.cursor {
			indicator = "●"
		}
		line := fmt.Sprintf("  %s %s %s", indicator, report.FailMarker, row.item.ItemName)
		if i == m.cursor {
			line = styles.SelectedStyle.Render(line)
		}
		if row.item.Description != "" {
			line += styles.SubtleStyle.Render(" - " + row.item.Description)
		}
		out = append(out, line)
	}
	return out
}

// cursorLine maps the cursor row to its line in lines().
func (m LogDetailModel) cursorLine() int {
	line := 0
	for i, row := range m.rows {
		if i == 0 || m.rows[i-1].soldier.ID != row.soldier.ID {
			line++
		}
		if i == m.cursor {
			return line
		}
		line++
	}
	return 0
}

// View implements tea.Model.
func (m LogDetailModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	s := m.session
	lines := []string{
		center(m.width, styles.TitleStyle.Render(s.SquadName)),
		center(m.width, styles.SubtleStyle.Render(fmt.Sprintf("%s %s • Varighet %s • %d soldater", s.Date, s.Time, s.Duration, len(s.Soldiers)))),
		"",
	}

	hints := []components.Hint{{Key: "Esc", Label: "Tilbake"}}
	if len(m.rows) == 0 {
		lines = append(lines, center(m.width, styles.SuccessStyle.Render("Ingen mangler.")))
	} else {
		lines = append(lines, center(m.width, m.window.Render(m.lines())))
		hints = []components.Hint{
			{Key: "↑↓", Label: "Naviger"}, {Key: "o", Label: "Marker OK"},
			{Key: "d", Label: "Beskrivelse"}, {Key: "c", Label: "Kopier"}, {Key: "Esc", Label: "Tilbake"},
		}
	}
	if checklist.Editing(m.edit) {
		lines = append(lines, "", center(m.width, m.input.View()))
		hints = []components.Hint{{Key: "Enter", Label: "Lagre"}, {Key: "Esc", Label: "Avbryt"}}
	}
	if m.errorMsg != "" {
		lines = append(lines, "", center(m.width, styles.ErrorStyle.Render(m.errorMsg)))
	}

	bar := components.StatusBar{Notice: m.notice}
	return layout(m.width, m.height, strings.Join(lines, "\n"), bar.Render(m.width, hints))
}

// SetSize updates the model dimensions.
func (m *LogDetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.window.Height = max(height-9, 1)
	m.window.Follow(m.cursorLine(), len(m.lines()))
}

// Session returns the shown session.
func (m LogDetailModel) Session() checklist.Session {
	return m.session
}

// RowCount returns the number of missing items shown.
func (m LogDetailModel) RowCount() int {
	return len(m.rows)
}

// Cursor returns the selected row.
func (m LogDetailModel) Cursor() int {
	return m.cursor
}

// Editing reports whether the description editor is open.
func (m LogDetailModel) Editing() bool {
	return checklist.Editing(m.edit)
}

// EditTarget returns what the description editor is changing.
func (m LogDetailModel) EditTarget() checklist.EditTarget {
	return m.edit
}

// Error returns the current error message.
func (m LogDetailModel) Error() string {
	return m.errorMsg
}

// Notice returns the current status bar notice.
func (m LogDetailModel) Notice() string {
	return m.notice
}
