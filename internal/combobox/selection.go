package combobox

// Selection is the authoritative record of chosen option ids, in the order
// they were chosen. Values are never modified in place; every change returns
// a new Selection.
type Selection struct {
	multiple bool
	ids      []string
}

// NewSelection creates an empty selection for the given mode.
func NewSelection(multiple bool) Selection {
	return Selection{multiple: multiple}
}

// Toggle flips id. In multiple mode it is added or removed. In single mode
// toggling the sole selection clears it, anything else replaces the whole
// selection. The second result reports whether id is selected afterwards.
func (s Selection) Toggle(id string) (Selection, bool) {
	if s.Has(id) {
		return s.Remove(id), false
	}
	if !s.multiple {
		return Selection{multiple: false, ids: []string{id}}, true
	}
	return Selection{multiple: true, ids: appendID(s.ids, id)}, true
}

// Remove drops id from the selection.
func (s Selection) Remove(id string) Selection {
	if !s.Has(id) {
		return s
	}
	return Selection{multiple: s.multiple, ids: without(s.ids, id)}
}

// Clear empties the selection.
func (s Selection) Clear() Selection {
	return Selection{multiple: s.multiple}
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	return indexOf(s.ids, id) >= 0
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected options.
func (s Selection) Len() int {
	return len(s.ids)
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.ids) == 0
}

// Multiple reports whether the selection allows more than one option.
func (s Selection) Multiple() bool {
	return s.multiple
}

// ValueMissing is true iff the control is required and nothing is selected.
func (s Selection) ValueMissing(required bool) bool {
	return required && s.Empty()
}
