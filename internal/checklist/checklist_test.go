package checklist

import (
	"errors"
	"testing"
)

func sampleChecklist() []Category {
	return []Category{
		{ID: "c1", Name: "Personal Gear", Items: []Item{
			{ID: "i1", Name: "Uniform", CategoryID: "c1"},
			{ID: "i2", Name: "Boots", CategoryID: "c1"},
		}},
		{ID: "c2", Name: "Comms", Items: []Item{
			{ID: "i3", Name: "Radio", CategoryID: "c2"},
		}},
	}
}

func TestTotalItems(t *testing.T) {
	if got := TotalItems(sampleChecklist()); got != 3 {
		t.Errorf("TotalItems() = %d, want 3", got)
	}
	if got := TotalItems(nil); got != 0 {
		t.Errorf("TotalItems(nil) = %d, want 0", got)
	}
}

func TestClone_IsDeep(t *testing.T) {
	orig := sampleChecklist()
	cp := Clone(orig)
	cp[0].Name = "changed"
	cp[0].Items[0].Name = "changed"

	if orig[0].Name != "Personal Gear" {
		t.Errorf("category name leaked into original: %q", orig[0].Name)
	}
	if orig[0].Items[0].Name != "Uniform" {
		t.Errorf("item name leaked into original: %q", orig[0].Items[0].Name)
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a[0].Items = nil
	b := Default()

	if len(b) != 3 {
		t.Fatalf("expected 3 default categories, got %d", len(b))
	}
	if len(b[0].Items) != 4 {
		t.Errorf("default checklist was mutated through a previous copy")
	}
	if TotalItems(b) != 10 {
		t.Errorf("expected 10 default items, got %d", TotalItems(b))
	}
}

func TestFindItem(t *testing.T) {
	cats := sampleChecklist()

	c, it, ok := FindItem(cats, "c1", "i2")
	if !ok {
		t.Fatal("expected to find c1/i2")
	}
	if c.Name != "Personal Gear" || it.Name != "Boots" {
		t.Errorf("got %q/%q", c.Name, it.Name)
	}

	if _, _, ok := FindItem(cats, "c2", "i1"); ok {
		t.Error("item from another category must not resolve")
	}
	if _, _, ok := FindItem(cats, "missing", "i1"); ok {
		t.Error("unknown category must not resolve")
	}
}

func TestAddCategory(t *testing.T) {
	cats := sampleChecklist()

	out, c, err := AddCategory(cats, "  Weapons  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Weapons" {
		t.Errorf("expected trimmed name, got %q", c.Name)
	}
	if len(out) != 3 || out[2].ID != c.ID {
		t.Fatalf("category not appended: %+v", out)
	}
	if out[2].Items == nil {
		t.Error("new category should have an empty, non-nil item list")
	}
	if len(cats) != 2 {
		t.Error("input checklist was mutated")
	}

	if _, _, err := AddCategory(cats, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}
}

func TestRenameCategory(t *testing.T) {
	cats := sampleChecklist()

	out, err := RenameCategory(cats, "c2", "Communications")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1].Name != "Communications" {
		t.Errorf("got %q", out[1].Name)
	}
	if cats[1].Name != "Comms" {
		t.Error("input checklist was mutated")
	}

	if _, err := RenameCategory(cats, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := RenameCategory(cats, "c1", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	cats := sampleChecklist()

	out, err := DeleteCategory(cats, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "c2" {
		t.Errorf("unexpected result: %+v", out)
	}
	if _, err := DeleteCategory(cats, "c9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddRenameDeleteItem(t *testing.T) {
	cats := sampleChecklist()

	out, it, err := AddItem(cats, "c2", "Batteries")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if it.CategoryID != "c2" || it.Name != "Batteries" {
		t.Errorf("unexpected item: %+v", it)
	}
	if len(out[1].Items) != 2 || len(cats[1].Items) != 1 {
		t.Fatalf("item not appended to a copy")
	}

	out, err = RenameItem(out, "c2", it.ID, "Spare batteries")
	if err != nil {
		t.Fatalf("RenameItem: %v", err)
	}
	if out[1].Items[1].Name != "Spare batteries" {
		t.Errorf("rename not applied: %+v", out[1].Items)
	}

	out, err = DeleteItem(out, "c2", it.ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(out[1].Items) != 1 {
		t.Errorf("item not deleted: %+v", out[1].Items)
	}

	if _, _, err := AddItem(cats, "c9", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddItem unknown category: expected ErrNotFound, got %v", err)
	}
	if _, err := RenameItem(cats, "c1", "i9", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RenameItem unknown item: expected ErrNotFound, got %v", err)
	}
	if _, err := DeleteItem(cats, "c1", "i9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteItem unknown item: expected ErrNotFound, got %v", err)
	}
	if _, _, err := AddItem(cats, "c1", " "); !errors.Is(err, ErrValidation) {
		t.Errorf("AddItem blank name: expected ErrValidation, got %v", err)
	}
}

func TestRename_EditTarget(t *testing.T) {
	cats := sampleChecklist()

	out, err := Rename(cats, CategoryTarget{CategoryID: "c1"}, "Kit")
	if err != nil || out[0].Name != "Kit" {
		t.Errorf("category target: got %v, %+v", err, out)
	}

	out, err = Rename(cats, ItemTarget{CategoryID: "c1", ItemID: "i1"}, "Jacket")
	if err != nil || out[0].Items[0].Name != "Jacket" {
		t.Errorf("item target: got %v, %+v", err, out)
	}

	_, err = Rename(cats, SoldierDescriptionTarget{SoldierID: "s1", CategoryID: "c1", ItemID: "i1"}, "x")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("description target: expected ErrValidation, got %v", err)
	}
	_, err = Rename(cats, NoTarget{}, "x")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("no target: expected ErrValidation, got %v", err)
	}
}

func TestEditing(t *testing.T) {
	if Editing(nil) || Editing(NoTarget{}) {
		t.Error("nil and NoTarget are not active edits")
	}
	if !Editing(ItemTarget{CategoryID: "c1", ItemID: "i1"}) {
		t.Error("item target is an active edit")
	}
}
