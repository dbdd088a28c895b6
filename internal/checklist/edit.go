package checklist

// EditTarget names what an editor is currently changing. It replaces
// combinations of nullable fields with one explicit variant.
type EditTarget interface {
	editTarget()
}

// NoTarget means nothing is being edited.
type NoTarget struct{}

// CategoryTarget edits a category name.
type CategoryTarget struct {
	CategoryID string
}

// ItemTarget edits an item name.
type ItemTarget struct {
	CategoryID string
	ItemID     string
}

// SoldierDescriptionTarget edits the failure description one soldier has
// for one item.
type SoldierDescriptionTarget struct {
	SoldierID  string
	CategoryID string
	ItemID     string
}

func (NoTarget) editTarget()                 {}
func (CategoryTarget) editTarget()           {}
func (ItemTarget) editTarget()               {}
func (SoldierDescriptionTarget) editTarget() {}

// Rename applies a new name to the category or item the target points at.
// Description targets and NoTarget are not renameable.
func Rename(categories []Category, target EditTarget, name string) ([]Category, error) {
	switch t := target.(type) {
	case CategoryTarget:
		return RenameCategory(categories, t.CategoryID, name)
	case ItemTarget:
		return RenameItem(categories, t.CategoryID, t.ItemID, name)
	default:
		return nil, &ValidationError{Field: "target", Message: "only categories and items can be renamed"}
	}
}

// Editing reports whether target is an active edit.
func Editing(target EditTarget) bool {
	if target == nil {
		return false
	}
	_, none := target.(NoTarget)
	return !none
}
