// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// StartInspectionMsg asks the app to start a new inspection run.
type StartInspectionMsg struct{}

// GoToLogListMsg signals transition to the session log list.
type GoToLogListMsg struct{}

// OpenSessionMsg opens the detail view of a stored session.
type OpenSessionMsg struct {
	SessionID string
}

// InspectionDoneMsg is sent when an inspection is saved or abandoned.
type InspectionDoneMsg struct {
	SessionID string
	Saved     bool
}
