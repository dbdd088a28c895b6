package checklist

// Status is the inspection result for one soldier and one item.
type Status string

// Status values
const (
	StatusUnchecked Status = "unchecked"
	StatusFulfilled Status = "fulfilled"
	StatusMissing   Status = "missing"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnchecked, StatusFulfilled, StatusMissing:
		return true
	}
	return false
}

// ItemStatus is one soldier's result for one item. Description only carries
// meaning when Status is missing, but it is kept across status changes.
type ItemStatus struct {
	SoldierID   string `json:"soldierId"`
	Status      Status `json:"status"`
	Description string `json:"description,omitempty"`
}

// SessionItemData holds the statuses of every soldier in the session's roster
// snapshot for one (category, item) pair.
type SessionItemData struct {
	CategoryID string       `json:"categoryId"`
	ItemID     string       `json:"itemId"`
	Statuses   []ItemStatus `json:"statuses"`
}

// StatusFor returns the status entry for a soldier and its index.
func (d SessionItemData) StatusFor(soldierID string) (ItemStatus, int) {
	for i, st := range d.Statuses {
		if st.SoldierID == soldierID {
			return st, i
		}
	}
	return ItemStatus{}, -1
}

// Session is a completed inspection run. Roster and item references are a
// snapshot from when the run happened; later edits to the live roster or
// checklist never change it. Timestamps are Unix milliseconds.
type Session struct {
	ID             string            `json:"id"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	Timestamp      int64             `json:"timestamp"`
	StartTimestamp int64             `json:"startTimestamp"`
	EndTimestamp   int64             `json:"endTimestamp"`
	Duration       string            `json:"duration"`
	SquadName      string            `json:"squadName"`
	Soldiers       []Soldier         `json:"soldiers"`
	Data           []SessionItemData `json:"data"`
}

// CloneData returns a deep copy of session item data.
func CloneData(data []SessionItemData) []SessionItemData {
	if data == nil {
		return nil
	}
	out := make([]SessionItemData, len(data))
	for i, d := range data {
		out[i] = SessionItemData{
			CategoryID: d.CategoryID,
			ItemID:     d.ItemID,
			Statuses:   append([]ItemStatus(nil), d.Statuses...),
		}
	}
	return out
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.Soldiers = append([]Soldier(nil), s.Soldiers...)
	out.Data = CloneData(s.Data)
	return out
}

// FindData returns the index of the entry for (categoryID, itemID), or -1.
func (s Session) FindData(categoryID, itemID string) int {
	for i, d := range s.Data {
		if d.CategoryID == categoryID && d.ItemID == itemID {
			return i
		}
	}
	return -1
}

// MissingItem is a display row for an item a soldier failed. The ids point
// back into the session data for corrections.
type MissingItem struct {
	CategoryID   string `json:"categoryId,omitempty"`
	ItemID       string `json:"itemId,omitempty"`
	CategoryName string `json:"categoryName"`
	ItemName     string `json:"itemName"`
	Description  string `json:"description,omitempty"`
}

// SoldierSummary lists one soldier's missing items.
type SoldierSummary struct {
	Soldier      Soldier       `json:"soldier"`
	MissingItems []MissingItem `json:"missingItems"`
}

// Summary is the end-of-run report shown before a session is saved.
type Summary struct {
	ID               string           `json:"id"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	Timestamp        int64            `json:"timestamp"`
	Duration         string           `json:"duration"`
	SquadName        string           `json:"squadName"`
	SoldierSummaries []SoldierSummary `json:"soldierSummaries"`
}

// Clean reports whether no soldier has a missing item.
func (s Summary) Clean() bool {
	for _, ss := range s.SoldierSummaries {
		if len(ss.MissingItems) > 0 {
			return false
		}
	}
	return true
}

// MissingItemsFor collects the missing items of one soldier in data, resolving
// display names against categories. Entries whose category or item no longer
// exists are skipped.
func MissingItemsFor(data []SessionItemData, soldierID string, categories []Category) []MissingItem {
	var items []MissingItem
	for _, d := range data {
		st, idx := d.StatusFor(soldierID)
		if idx < 0 || st.Status != StatusMissing {
			continue
		}
		c, it, ok := FindItem(categories, d.CategoryID, d.ItemID)
		if !ok {
			continue
		}
		items = append(items, MissingItem{
			CategoryID:   c.ID,
			ItemID:       it.ID,
			CategoryName: c.Name,
			ItemName:     it.Name,
			Description:  st.Description,
		})
	}
	return items
}
