package checklist

import "testing"

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusUnchecked, StatusFulfilled, StatusMissing} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("lost").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := Session{
		ID:       "session-1",
		Soldiers: []Soldier{{ID: "s1", Name: "A"}},
		Data: []SessionItemData{{CategoryID: "c1", ItemID: "i1", Statuses: []ItemStatus{
			{SoldierID: "s1", Status: StatusMissing, Description: "torn"},
		}}},
	}

	cp := s.Clone()
	cp.Data[0].Statuses[0].Status = StatusFulfilled
	cp.Soldiers[0].Name = "Z"

	if s.Data[0].Statuses[0].Status != StatusMissing {
		t.Error("status change leaked into original")
	}
	if s.Soldiers[0].Name != "A" {
		t.Error("soldier change leaked into original")
	}
}

func TestSession_FindData(t *testing.T) {
	s := Session{Data: []SessionItemData{
		{CategoryID: "c1", ItemID: "i1"},
		{CategoryID: "c1", ItemID: "i2"},
	}}
	if got := s.FindData("c1", "i2"); got != 1 {
		t.Errorf("FindData = %d, want 1", got)
	}
	if got := s.FindData("c2", "i2"); got != -1 {
		t.Errorf("FindData = %d, want -1", got)
	}
}

func TestSummary_Clean(t *testing.T) {
	s := Summary{SoldierSummaries: []SoldierSummary{{Soldier: Soldier{ID: "s1"}}}}
	if !s.Clean() {
		t.Error("summary without missing items should be clean")
	}
	s.SoldierSummaries = append(s.SoldierSummaries, SoldierSummary{
		Soldier:      Soldier{ID: "s2"},
		MissingItems: []MissingItem{{ItemName: "Boots"}},
	})
	if s.Clean() {
		t.Error("summary with a missing item should not be clean")
	}
}

func TestMissingItemsFor_SkipsOrphans(t *testing.T) {
	cats := sampleChecklist()
	data := []SessionItemData{
		{CategoryID: "c1", ItemID: "i1", Statuses: []ItemStatus{
			{SoldierID: "s1", Status: StatusMissing, Description: "torn"},
			{SoldierID: "s2", Status: StatusFulfilled},
		}},
		{CategoryID: "c1", ItemID: "deleted", Statuses: []ItemStatus{
			{SoldierID: "s1", Status: StatusMissing},
		}},
		{CategoryID: "c2", ItemID: "i3", Statuses: []ItemStatus{
			{SoldierID: "s1", Status: StatusUnchecked, Description: "stale"},
		}},
	}

	got := MissingItemsFor(data, "s1", cats)
	if len(got) != 1 {
		t.Fatalf("expected 1 missing item, got %d: %+v", len(got), got)
	}
	want := MissingItem{CategoryID: "c1", ItemID: "i1", CategoryName: "Personal Gear", ItemName: "Uniform", Description: "torn"}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}

	if got := MissingItemsFor(data, "s2", cats); len(got) != 0 {
		t.Errorf("s2 has no missing items, got %+v", got)
	}
}
