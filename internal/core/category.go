package core

// UncategorizedName is the display bucket for transactions whose
// category is missing or unknown.
const UncategorizedName = "Uncategorized"

// ResolveDisplay maps a leaf category id to its display category.
//
// A nil or unknown id lands in the Uncategorized bucket. When the
// category has a parent that exists in the index, the parent is the
// display category; otherwise the category itself is. The walk is
// exactly one hop — a grandparent is never reached, matching the
// one-level nesting the index honors.
func ResolveDisplay(categoryID *string, index CategoryIndex) DisplayCategory {
	if categoryID == nil {
		return DisplayCategory{Name: UncategorizedName}
	}
	cat, ok := index[*categoryID]
	if !ok {
		return DisplayCategory{Name: UncategorizedName}
	}
	if cat.ParentID != nil {
		if parent, ok := index[*cat.ParentID]; ok {
			cat = parent
		}
	}
	id := cat.ID
	return DisplayCategory{ID: &id, Name: cat.Name, Color: cat.Color}
}
