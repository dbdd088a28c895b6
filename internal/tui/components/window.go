package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/kts/internal/tui/styles"
)

// Window is the visible slice of a list that is taller than the screen. It
// keeps a cursor row in view and draws a one-column scrollbar.
type Window struct {
	Offset int
	Height int
}

// Follow scrolls just enough to make the cursor row visible.
func (w *Window) Follow(cursor, total int) {
	if w.Height <= 0 {
		w.Offset = 0
		return
	}
	if cursor < w.Offset {
		w.Offset = cursor
	}
	if cursor >= w.Offset+w.Height {
		w.Offset = cursor - w.Height + 1
	}
	maxOffset := max(total-w.Height, 0)
	w.Offset = min(max(w.Offset, 0), maxOffset)
}

// Range returns the half-open range of visible rows.
func (w Window) Range(total int) (int, int) {
	if w.Height <= 0 || total <= w.Height {
		return 0, total
	}
	start := min(w.Offset, total-w.Height)
	return start, start + w.Height
}

// Render draws the visible rows of lines with a scrollbar on the right.
func (w Window) Render(lines []string) string {
	start, end := w.Range(len(lines))
	body := strings.Join(lines[start:end], "\n")
	if w.Height <= 0 || len(lines) <= w.Height {
		return body
	}
	bar := styles.SubtleStyle.Render(scrollbar(w.Height, len(lines), start))
	return lipgloss.JoinHorizontal(lipgloss.Top, body, " ", bar)
}

// scrollbar renders a track (│) with a thumb (█) sized to the visible
// fraction and placed at the scroll position.
func scrollbar(viewHeight, contentHeight, offset int) string {
	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	maxOffset := contentHeight - viewHeight
	thumbTop := 0
	if maxOffset > 0 {
		thumbTop = offset * (viewHeight - thumbSize) / maxOffset
	}
	thumbTop = min(max(thumbTop, 0), viewHeight-thumbSize)

	rows := make([]string, viewHeight)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = "█"
		} else {
			rows[i] = "│"
		}
	}
	return strings.Join(rows, "\n")
}
