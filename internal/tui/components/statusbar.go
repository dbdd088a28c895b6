package components

import (
	"strings"

	"github.com/pablasso/kts/internal/tui/styles"
)

// Hint is one key binding shown in the status bar.
type Hint struct {
	Key   string
	Label string
}

func (h Hint) String() string {
	return h.Key + " " + h.Label
}

// StatusBar renders a bottom help bar showing contextual key hints.
type StatusBar struct {
	// Notice is shown before the hints, e.g. "Kopiert".
	Notice string
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and hints.
// Hints are joined with " • ".
func (s StatusBar) Render(width int, hints []Hint) string {
	parts := make([]string, 0, len(hints)+1)
	if s.Notice != "" {
		parts = append(parts, styles.SelectedStyle.Render(s.Notice))
	}
	for _, h := range hints {
		parts = append(parts, h.String())
	}
	return styles.StatusBarStyle.Width(width).Render(strings.Join(parts, " • "))
}
