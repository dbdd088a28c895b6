// Package checklist defines the KTS data model: the checklist definition,
// the squad roster, and the per-soldier status records a session collects.
package checklist

import (
	"strings"

	"github.com/pablasso/kts/internal/util"
)

// Item is a single inspectable piece of equipment.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

// Category groups items. Order of categories and of their items drives the
// inspection sequence.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// TotalItems returns the number of items across all categories.
func TotalItems(categories []Category) int {
	total := 0
	for _, c := range categories {
		total += len(c.Items)
	}
	return total
}

// Clone returns a deep copy of the checklist.
func Clone(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{ID: c.ID, Name: c.Name, Items: append([]Item(nil), c.Items...)}
		if out[i].Items == nil {
			out[i].Items = []Item{}
		}
	}
	return out
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindItem resolves an item reference against the checklist. It reports false
// when either the category or the item no longer exists.
func FindItem(categories []Category, categoryID, itemID string) (Category, Item, bool) {
	c, ok := FindCategory(categories, categoryID)
	if !ok {
		return Category{}, Item{}, false
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			return c, it, true
		}
	}
	return Category{}, Item{}, false
}

func categoryIndex(categories []Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: field, Message: "name is required"}
	}
	return name, nil
}

// AddCategory appends a new empty category and returns the updated checklist
// together with the created category.
func AddCategory(categories []Category, name string) ([]Category, Category, error) {
	name, err := requireName("category", name)
	if err != nil {
		return nil, Category{}, err
	}
	c := Category{ID: util.NewID("cat"), Name: name, Items: []Item{}}
	out := append(Clone(categories), c)
	return out, c, nil
}

// RenameCategory changes a category name. Item references in stored sessions
// use ids, so renaming never affects history.
func RenameCategory(categories []Category, id, name string) ([]Category, error) {
	name, err := requireName("category", name)
	if err != nil {
		return nil, err
	}
	out := Clone(categories)
	i := categoryIndex(out, id)
	if i < 0 {
		return nil, notFound("category", id)
	}
	out[i].Name = name
	return out, nil
}

// DeleteCategory removes a category and all of its items.
func DeleteCategory(categories []Category, id string) ([]Category, error) {
	if categoryIndex(categories, id) < 0 {
		return nil, notFound("category", id)
	}
	out := make([]Category, 0, len(categories))
	for _, c := range Clone(categories) {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out, nil
}

// AddItem appends a new item to a category.
func AddItem(categories []Category, categoryID, name string) ([]Category, Item, error) {
	name, err := requireName("item", name)
	if err != nil {
		return nil, Item{}, err
	}
	out := Clone(categories)
	i := categoryIndex(out, categoryID)
	if i < 0 {
		return nil, Item{}, notFound("category", categoryID)
	}
	it := Item{ID: util.NewID("item"), Name: name, CategoryID: categoryID}
	out[i].Items = append(out[i].Items, it)
	return out, it, nil
}

// RenameItem changes an item name.
func RenameItem(categories []Category, categoryID, itemID, name string) ([]Category, error) {
	name, err := requireName("item", name)
	if err != nil {
		return nil, err
	}
	out := Clone(categories)
	i := categoryIndex(out, categoryID)
	if i < 0 {
		return nil, notFound("category", categoryID)
	}
	for j := range out[i].Items {
		if out[i].Items[j].ID == itemID {
			out[i].Items[j].Name = name
			return out, nil
		}
	}
	return nil, notFound("item", itemID)
}

// DeleteItem removes an item. Stored sessions that reference it keep their
// data; display joins skip the orphaned entry.
func DeleteItem(categories []Category, categoryID, itemID string) ([]Category, error) {
	out := Clone(categories)
	i := categoryIndex(out, categoryID)
	if i < 0 {
		return nil, notFound("category", categoryID)
	}
	kept := make([]Item, 0, len(out[i].Items))
	found := false
	for _, it := range out[i].Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, notFound("item", itemID)
	}
	out[i].Items = kept
	return out, nil
}
