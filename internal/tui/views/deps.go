package views

import (
	"log/slog"

	"github.com/pablasso/kts/internal/journal"
)

// Deps are the collaborators shared by the views that write data.
type Deps struct {
	Journal *journal.Journal // optional
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// Record writes a journal event. Journal failures are logged and otherwise
// ignored.
func (d Deps) Record(fn func(*journal.Journal) error) {
	if d.Journal == nil {
		return
	}
	if err := fn(d.Journal); err != nil {
		d.logger().Warn("journal write failed", "path", d.Journal.Path(), "error", err)
	}
}
