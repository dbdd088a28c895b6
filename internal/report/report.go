// Package report renders inspection summaries as plain text for sharing.
package report

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/pablasso/kts/internal/checklist"
	"github.com/pablasso/kts/internal/sessionlog"
)

// FailMarker prefixes every missing item line.
const FailMarker = "✗"

// Summary renders a summary. Soldiers without missing items are left out.
func Summary(s checklist.Summary) string {
	var b strings.Builder
	b.WriteString("KTS Oppsummering\n")
	fmt.Fprintf(&b, "Lag: %s\n", s.SquadName)
	fmt.Fprintf(&b, "Dato: %s %s\n", s.Date, s.Time)
	fmt.Fprintf(&b, "Varighet: %s\n\n", s.Duration)

	for _, ss := range s.SoldierSummaries {
		if len(ss.MissingItems) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", ss.Soldier.Label())
		for _, item := range ss.MissingItems {
			fmt.Fprintf(&b, "  %s %s", FailMarker, item.ItemName)
			if item.Description != "" {
				fmt.Fprintf(&b, " - %s", item.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Session renders a stored session, naming items from categories. Items no
// longer in the checklist are left out.
func Session(s checklist.Session, categories []checklist.Category) string {
	return Summary(sessionlog.Summary(s, categories))
}

// Copy puts text on the system clipboard.
var Copy = func(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
