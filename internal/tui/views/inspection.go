package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/inspection"
	"github.com/pablasso/kts/internal/journal"
	"github.com/pablasso/kts/internal/report"
	"github.com/pablasso/kts/internal/sessionlog"
	"github.com/pablasso/kts/internal/tui/components"
	"github.com/pablasso/kts/internal/tui/msgs"
	"github.com/pablasso/kts/internal/tui/styles"
)

// InspectionMode is the input mode of the inspection view.
type InspectionMode int

const (
	ModeNavigate InspectionMode = iota
	ModeConfirmExit
)

// Rows taken by everything but the soldier list on an item screen.
const itemChrome = 12

// InspectionModel drives an inspection.Engine from the keyboard.
type InspectionModel struct {
	engine   *inspection.Engine
	sessions inspection.Appender
	deps     Deps

	mode     InspectionMode
	edit     checklist.EditTarget
	cursor   int
	input    textinput.Model
	window   components.Window
	errorMsg string
	notice   string
	width    int
	height   int
}

// NewInspectionModel wraps a started engine. Finished sessions go to sessions.
func NewInspectionModel(engine *inspection.Engine, sessions inspection.Appender, deps Deps) InspectionModel {
	ti := textinput.New()
	ti.Placeholder = "Beskrivelse (valgfritt)"
	ti.CharLimit = 200
	ti.Width = 50

	return InspectionModel{
		engine:   engine,
		sessions: sessions,
		deps:     deps,
		edit:     checklist.NoTarget{},
		input:    ti,
	}
}

// Init implements tea.Model.
func (m InspectionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectionModel) Update(msg tea.Msg) (InspectionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if checklist.Editing(m.edit) {
			return m.handleEditKeys(msg)
		}
		if m.mode == ModeConfirmExit {
			return m.handleConfirmKeys(msg)
		}
		// The summary can only be saved or stepped back from.
		if msg.String() == "x" && m.engine.Screen() != inspection.ScreenSummary {
			m.mode = ModeConfirmExit
			return m, nil
		}
		m.notice = ""
		m.errorMsg = ""
		switch m.engine.Screen() {
		case inspection.ScreenCategory:
			return m.handleCategoryKeys(msg)
		case inspection.ScreenItem:
			return m.handleItemKeys(msg)
		case inspection.ScreenSummary:
			return m.handleSummaryKeys(msg)
		}
	}

	if checklist.Editing(m.edit) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m InspectionModel) handleCategoryKeys(msg tea.KeyMsg) (InspectionModel, tea.Cmd) {
	switch msg.String() {
	case "n", "right", "enter":
		m.move(m.engine.Next)
	case "p", "left":
		m.move(m.engine.Previous)
	}
	return m, nil
}

func (m InspectionModel) handleItemKeys(msg tea.KeyMsg) (InspectionModel, tea.Cmd) {
	roster := m.engine.Roster()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(roster)-1 {
			m.cursor++
		}
	case "f":
		m.setStatus(checklist.StatusFulfilled)
	case "m":
		m.setStatus(checklist.StatusMissing)
	case "u":
		m.setStatus(checklist.StatusUnchecked)
	case "d":
		st := m.engine.CurrentStatuses()[m.cursor]
		if st.Status != checklist.StatusMissing {
			return m, nil
		}
		item, _ := m.engine.CurrentItem()
		m.edit = checklist.SoldierDescriptionTarget{
			SoldierID:  st.SoldierID,
			CategoryID: m.engine.CurrentCategory().ID,
			ItemID:     item.ID,
		}
		m.input.SetValue(st.Description)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case "a":
		m.move(m.engine.AllOK)
	case "n", "right":
		m.move(m.engine.Next)
	case "p", "left":
		m.move(m.engine.Previous)
	}
	m.window.Follow(m.cursor, len(roster))
	return m, nil
}

func (m InspectionModel) handleSummaryKeys(msg tea.KeyMsg) (InspectionModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.finish()
	case "c":
		summary := m.engine.Summary()
		if summary.Clean() {
			return m, nil
		}
		if err := report.Copy(report.Summary(summary)); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.notice = "Kopiert til utklippstavlen"
	case "p", "left":
		m.move(m.engine.Previous)
	}
	return m, nil
}

func (m InspectionModel) handleEditKeys(msg tea.KeyMsg) (InspectionModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.saveDescription(m.input.Value()); err != nil {
			m.errorMsg = err.Error()
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

// saveDescription writes the edited text for the soldier and item the edit
// target points at. The target must still be the current item.
func (m InspectionModel) saveDescription(text string) error {
	t, ok := m.edit.(checklist.SoldierDescriptionTarget)
	if !ok {
		return nil
	}
	item, onItem := m.engine.CurrentItem()
	if !onItem || item.ID != t.ItemID || m.engine.CurrentCategory().ID != t.CategoryID {
		return inspection.ErrNoCurrentItem
	}
	return m.engine.SetDescription(t.SoldierID, text)
}

func (m InspectionModel) handleConfirmKeys(msg tea.KeyMsg) (InspectionModel, tea.Cmd) {
	switch msg.String() {
	case "y":
		if err := m.engine.Exit(); err != nil {
			m.mode = ModeNavigate
			m.errorMsg = err.Error()
			return m, nil
		}
		id := m.engine.ID()
		m.deps.Record(func(j *journal.Journal) error { return j.SessionExited(id) })
		m.deps.logger().Info("inspection exited", "session", id)
		return m, func() tea.Msg { return msgs.InspectionDoneMsg{SessionID: id} }
	case "n", "esc":
		m.mode = ModeNavigate
	}
	return m, nil
}

// finish saves the session. On failure the summary stays up so the user can
// retry.
func (m InspectionModel) finish() (InspectionModel, tea.Cmd) {
	session, err := m.engine.Finish(context.Background(), m.sessions)
	if err != nil {
		m.errorMsg = "Kunne ikke lagre: " + err.Error()
		m.deps.logger().Error("failed to save inspection", "session", m.engine.ID(), "error", err)
		return m, nil
	}

	missing := sessionlog.MissingCount(session)
	elapsed := time.Duration(session.EndTimestamp-session.StartTimestamp) * time.Millisecond
	m.deps.Record(func(j *journal.Journal) error { return j.SessionFinished(session.ID, missing, elapsed) })
	m.deps.logger().Info("inspection saved", "session", session.ID, "missing", missing)
	return m, func() tea.Msg { return msgs.InspectionDoneMsg{SessionID: session.ID, Saved: true} }
}

// move runs a navigation step and resets the soldier cursor.
func (m *InspectionModel) move(step func() error) {
	if err := step(); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.cursor = 0
	m.window.Offset = 0
}

func (m *InspectionModel) setStatus(status checklist.Status) {
	soldier := m.engine.Roster()[m.cursor]
	if err := m.engine.SetStatus(soldier.ID, status); err != nil {
		m.errorMsg = err.Error()
	}
}

// View implements tea.Model.
func (m InspectionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	var hints []components.Hint
	switch m.engine.Screen() {
	case inspection.ScreenCategory:
		body = m.renderCategory()
		hints = []components.Hint{{Key: "n/→", Label: "Neste"}, {Key: "p/←", Label: "Forrige"}, {Key: "x", Label: "Avslutt"}}
	case inspection.ScreenItem:
		body = m.renderItem()
		hints = []components.Hint{
			{Key: "f", Label: "OK"}, {Key: "m", Label: "Mangler"}, {Key: "u", Label: "Nullstill"},
			{Key: "d", Label: "Beskrivelse"}, {Key: "a", Label: "Alle OK"},
			{Key: "n/p", Label: "Neste/Forrige"}, {Key: "x", Label: "Avslutt"},
		}
	case inspection.ScreenSummary:
		body = m.renderSummary()
		hints = []components.Hint{{Key: "Enter", Label: "Lagre"}, {Key: "c", Label: "Kopier"}, {Key: "p", Label: "Tilbake"}}
	}

	switch {
	case checklist.Editing(m.edit):
		body += "\n\n" + center(m.width, m.input.View())
		hints = []components.Hint{{Key: "Enter", Label: "Lagre"}, {Key: "Esc", Label: "Avbryt"}}
	case m.mode == ModeConfirmExit:
		body += "\n\n" + center(m.width, styles.ErrorStyle.Render("Avslutte inspeksjonen? Ingenting blir lagret. (y/n)"))
		hints = []components.Hint{{Key: "y", Label: "Avslutt"}, {Key: "n", Label: "Fortsett"}}
	}
	if m.errorMsg != "" {
		body += "\n\n" + center(m.width, styles.ErrorStyle.Render(m.errorMsg))
	}

	header := []string{
		center(m.width, styles.TitleStyle.Render(m.engine.SquadName())),
		center(m.width, components.NewProgress(m.engine.Progress(), 30).View()),
		"",
	}
	bar := components.StatusBar{Notice: m.notice}
	return layout(m.width, m.height, strings.Join(header, "\n")+"\n"+body, bar.Render(m.width, hints))
}

func (m InspectionModel) renderCategory() string {
	cat, _ := m.engine.Position()
	category := m.engine.CurrentCategory()
	total := len(m.engine.Categories())
	lines := []string{
		center(m.width, styles.SubtleStyle.Render(fmt.Sprintf("Kategori %d av %d", cat+1, total))),
		"",
		center(m.width, styles.TitleStyle.Render(category.Name)),
		center(m.width, styles.SubtleStyle.Render(fmt.Sprintf("%d gjenstander", len(category.Items)))),
	}
	return strings.Join(lines, "\n")
}

func (m InspectionModel) renderItem() string {
	item, _ := m.engine.CurrentItem()
	statuses := m.engine.CurrentStatuses()
	roster := m.engine.Roster()

	rows := make([]string, len(roster))
	for i, soldier := range roster {
		rows[i] = m.formatSoldierLine(i, soldier, statuses[i])
	}

	lines := []string{
		center(m.width, styles.SectionStyle.Render(m.engine.CurrentCategory().Name)),
		center(m.width, styles.TitleStyle.Render(item.Name)),
		center(m.width, m.window.Render(rows)),
	}
	return strings.Join(lines, "\n")
}

func (m InspectionModel) formatSoldierLine(index int, soldier checklist.Soldier, st checklist.ItemStatus) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	var mark string
	switch st.Status {
	case checklist.StatusFulfilled:
		mark = styles.SuccessStyle.Render("✓")
	case checklist.StatusMissing:
		mark = styles.ErrorStyle.Render(report.FailMarker)
	default:
		mark = styles.SubtleStyle.Render("·")
	}

	label := fmt.Sprintf("%s %-30s", indicator, soldier.Label())
	if index == m.cursor {
		label = styles.SelectedStyle.Render(label)
	}
	line := label + " " + mark
	if st.Status == checklist.StatusMissing && st.Description != "" {
		line += "  " + styles.SubtleStyle.Render(st.Description)
	}
	return line
}

func (m InspectionModel) renderSummary() string {
	summary := m.engine.Summary()
	lines := []string{
		center(m.width, styles.SectionStyle.Render("Oppsummering")),
		center(m.width, styles.SubtleStyle.Render(fmt.Sprintf("%s %s • Varighet %s", summary.Date, summary.Time, summary.Duration))),
		"",
	}
	if summary.Clean() {
		lines = append(lines, center(m.width, styles.SuccessStyle.Render("Alle soldater har alt utstyr.")))
		return strings.Join(lines, "\n")
	}

	var rows []string
	for _, ss := range summary.SoldierSummaries {
		if len(ss.MissingItems) == 0 {
			continue
		}
		rows = append(rows, styles.SelectedStyle.Render(ss.Soldier.Label()))
		for _, item := range ss.MissingItems {
			row := fmt.Sprintf("  %s %s", styles.ErrorStyle.Render(report.FailMarker), item.ItemName)
			if item.Description != "" {
				row += styles.SubtleStyle.Render(" - " + item.Description)
			}
			rows = append(rows, row)
		}
	}
	w := components.Window{Height: m.window.Height}
	lines = append(lines, center(m.width, w.Render(rows)))
	return strings.Join(lines, "\n")
}

// SetSize updates the model dimensions.
func (m *InspectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.window.Height = max(height-itemChrome, 1)
	m.window.Follow(m.cursor, len(m.engine.Roster()))
}

// Engine returns the wrapped engine.
func (m InspectionModel) Engine() *inspection.Engine {
	return m.engine
}

// Mode returns the current input mode.
func (m InspectionModel) Mode() InspectionMode {
	return m.mode
}

// Editing reports whether the description editor is open.
func (m InspectionModel) Editing() bool {
	return checklist.Editing(m.edit)
}

// EditTarget returns what the description editor is changing.
func (m InspectionModel) EditTarget() checklist.EditTarget {
	return m.edit
}

// Cursor returns the selected soldier index.
func (m InspectionModel) Cursor() int {
	return m.cursor
}

// Error returns the current error message.
func (m InspectionModel) Error() string {
	return m.errorMsg
}

// Notice returns the current status bar notice.
func (m InspectionModel) Notice() string {
	return m.notice
}
