package combobox

import (
	"multicombo/internal/catalog"
	"multicombo/internal/normalize"
)

// ComputeVisible returns the ids of the options shown for search, in catalog
// order. Only list mode hides anything; an empty search shows everything.
func ComputeVisible(cat *catalog.Catalog, search string, mode Autocomplete) []string {
	if mode != AutocompleteList || normalize.String(search) == "" {
		return cat.IDs()
	}
	var ids []string
	for _, opt := range cat.All() {
		if normalize.Contains(opt.Label, search) {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// FirstMatch returns the first option in catalog order whose folded label
// contains the folded search text. Scanning stops at the first hit.
func FirstMatch(cat *catalog.Catalog, search string) (string, bool) {
	for _, opt := range cat.All() {
		if normalize.Contains(opt.Label, search) {
			return opt.ID, true
		}
	}
	return "", false
}

// ExactMatch returns the first option whose folded label equals the folded text.
func ExactMatch(cat *catalog.Catalog, text string) (string, bool) {
	for _, opt := range cat.All() {
		if normalize.Equal(opt.Label, text) {
			return opt.ID, true
		}
	}
	return "", false
}

// Next returns the visible option after current, wrapping to the first one.
// With no current option (or one that is not visible) it returns the first.
func Next(current string, visible []string) string {
	i := indexOf(visible, current)
	if i < 0 || i == len(visible)-1 {
		return First(visible)
	}
	return visible[i+1]
}

// Previous returns the visible option before current, wrapping to the last one.
func Previous(current string, visible []string) string {
	i := indexOf(visible, current)
	if i <= 0 {
		return Last(visible)
	}
	return visible[i-1]
}

// First returns the first visible option id, or "".
func First(visible []string) string {
	if len(visible) == 0 {
		return ""
	}
	return visible[0]
}

// Last returns the last visible option id, or "".
func Last(visible []string) string {
	if len(visible) == 0 {
		return ""
	}
	return visible[len(visible)-1]
}

func indexOf(ids []string, id string) int {
	if id == "" {
		return -1
	}
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendID(ids []string, id string) []string {
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}
