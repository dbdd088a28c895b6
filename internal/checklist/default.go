package checklist

var defaultChecklist = []Category{
	{
		ID:   "cat-1",
		Name: "Personlig Utstyr",
		Items: []Item{
			{ID: "item-1-1", Name: "Uniform", CategoryID: "cat-1"},
			{ID: "item-1-2", Name: "Støvler", CategoryID: "cat-1"},
			{ID: "item-1-3", Name: "Hjelm", CategoryID: "cat-1"},
			{ID: "item-1-4", Name: "Vest", CategoryID: "cat-1"},
		},
	},
	{
		ID:   "cat-2",
		Name: "Våpen og Ammunisjon",
		Items: []Item{
			{ID: "item-2-1", Name: "Gevær", CategoryID: "cat-2"},
			{ID: "item-2-2", Name: "Magasiner", CategoryID: "cat-2"},
			{ID: "item-2-3", Name: "Ammunisjon", CategoryID: "cat-2"},
		},
	},
	{
		ID:   "cat-3",
		Name: "Kommunikasjon",
		Items: []Item{
			{ID: "item-3-1", Name: "Radio", CategoryID: "cat-3"},
			{ID: "item-3-2", Name: "Batterier", CategoryID: "cat-3"},
			{ID: "item-3-3", Name: "Headset", CategoryID: "cat-3"},
		},
	},
}

// Default returns a fresh copy of the built-in checklist used when none has
// been stored yet.
func Default() []Category {
	return Clone(defaultChecklist)
}
