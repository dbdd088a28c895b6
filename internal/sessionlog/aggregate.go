package sessionlog

import "github.com/pablasso/kts/internal/checklist"

// MissingCount counts the missing statuses across a session.
func MissingCount(s checklist.Session) int {
	n := 0
	for _, d := range s.Data {
		for _, st := range d.Statuses {
			if st.Status == checklist.StatusMissing {
				n++
			}
		}
	}
	return n
}

// SoldierMissingItems lists one soldier's missing items, named from the
// given checklist. Items no longer in the checklist are skipped.
func SoldierMissingItems(s checklist.Session, soldierID string, categories []checklist.Category) []checklist.MissingItem {
	return checklist.MissingItemsFor(s.Data, soldierID, categories)
}

// SessionMissingItems returns a summary for each soldier in the session's
// roster that has at least one displayable missing item, in roster order.
func SessionMissingItems(s checklist.Session, categories []checklist.Category) []checklist.SoldierSummary {
	var out []checklist.SoldierSummary
	for _, sol := range s.Soldiers {
		items := SoldierMissingItems(s, sol.ID, categories)
		if len(items) == 0 {
			continue
		}
		out = append(out, checklist.SoldierSummary{Soldier: sol, MissingItems: items})
	}
	return out
}

// Summary rebuilds the end-of-run report of a stored session against the
// given checklist, listing every soldier in the roster snapshot.
func Summary(s checklist.Session, categories []checklist.Category) checklist.Summary {
	summaries := make([]checklist.SoldierSummary, len(s.Soldiers))
	for i, sol := range s.Soldiers {
		items := SoldierMissingItems(s, sol.ID, categories)
		if items == nil {
			items = []checklist.MissingItem{}
		}
		summaries[i] = checklist.SoldierSummary{Soldier: sol, MissingItems: items}
	}
	return checklist.Summary{
		ID:               s.ID,
		Date:             s.Date,
		Time:             s.Time,
		Timestamp:        s.Timestamp,
		Duration:         s.Duration,
		SquadName:        s.SquadName,
		SoldierSummaries: summaries,
	}
}
