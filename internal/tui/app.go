// Package tui is the terminal UI: home menu, inspection run and session log.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/config"
	"github.com/pablasso/kts/internal/inspection"
	"github.com/pablasso/kts/internal/journal"
	"github.com/pablasso/kts/internal/tui/msgs"
	"github.com/pablasso/kts/internal/tui/styles"
	"github.com/pablasso/kts/internal/tui/views"
)

// Minimum terminal dimensions for the TUI.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewInspection
	ViewLogList
	ViewLogDetail
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	app         *config.App
	currentView View
	width       int
	height      int

	home       views.HomeModel
	inspection views.InspectionModel
	logList    views.LogListModel
	logDetail  views.LogDetailModel
}

// Run starts the TUI on an opened data directory.
func Run(app *config.App) error {
	p := tea.NewProgram(New(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// New creates the model on the home screen.
func New(app *config.App) Model {
	m := Model{app: app, currentView: ViewHome}
	m.home = m.newHome()
	return m
}

func (m Model) deps() views.Deps {
	return views.Deps{Journal: m.app.Journal, Logger: m.app.Logger.With("component", "tui")}
}

func (m Model) newHome() views.HomeModel {
	ctx := context.Background()
	st := m.app.Storage
	home := views.NewHomeModel(st.GetSquadSettings(ctx), st.IsSetupComplete(ctx), len(m.app.Sessions.All(ctx)))
	home.SetSize(m.width, m.height)
	return home
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		switch m.currentView {
		case ViewInspection:
			m.inspection.SetSize(msg.Width, msg.Height)
		case ViewLogList:
			m.logList.SetSize(msg.Width, msg.Height)
		case ViewLogDetail:
			m.logDetail.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case msgs.GoToHomeMsg, msgs.InspectionDoneMsg:
		m.home = m.newHome()
		m.currentView = ViewHome
		return m, nil

	case msgs.StartInspectionMsg:
		return m.startInspection()

	case msgs.GoToLogListMsg:
		m.logList = views.NewLogListModel(m.app.Sessions.All(context.Background()))
		m.logList.SetSize(m.width, m.height)
		m.currentView = ViewLogList
		return m, nil

	case msgs.OpenSessionMsg:
		return m.openSession(msg.SessionID)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewInspection:
		m.inspection, cmd = m.inspection.Update(msg)
	case ViewLogList:
		m.logList, cmd = m.logList.Update(msg)
	case ViewLogDetail:
		m.logDetail, cmd = m.logDetail.Update(msg)
	}
	return m, cmd
}

// startInspection snapshots the squad and checklist into a new engine. Item
// names on the summary follow the live checklist.
func (m Model) startInspection() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	st := m.app.Storage
	engine, err := inspection.New(st.GetChecklist(ctx), st.GetSquadSettings(ctx),
		inspection.WithNames(func() []checklist.Category { return st.GetChecklist(ctx) }))
	if err != nil {
		m.app.Logger.Warn("cannot start inspection", "error", err)
		m.home.SetError(err.Error())
		m.currentView = ViewHome
		return m, nil
	}

	deps := m.deps()
	deps.Record(func(j *journal.Journal) error {
		return j.SessionStarted(engine.ID(), engine.SquadName(), len(engine.Roster()), checklist.TotalItems(engine.Categories()))
	})
	m.inspection = views.NewInspectionModel(engine, m.app.Sessions, deps)
	m.inspection.SetSize(m.width, m.height)
	m.currentView = ViewInspection
	return m, nil
}

func (m Model) openSession(id string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	s, err := m.app.Sessions.FindByID(ctx, id)
	if err != nil {
		m.app.Logger.Warn("cannot open session", "session", id, "error", err)
		return m, nil
	}
	m.logDetail = views.NewLogDetailModel(s, m.app.Storage.GetChecklist(ctx), m.app.Sessions, m.deps())
	m.logDetail.SetSize(m.width, m.height)
	m.currentView = ViewLogDetail
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewInspection:
		return m.inspection.View()
	case ViewLogList:
		return m.logList.View()
	case ViewLogDetail:
		return m.logDetail.View()
	}
	return m.home.View()
}

func (m Model) renderTerminalTooSmall() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render("Terminal too small"),
		"",
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// CurrentView returns the active screen.
func (m Model) CurrentView() View {
	return m.currentView
}
