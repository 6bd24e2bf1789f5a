package combobox

import "strings"

// ValueMissingMessage is the validation message for a required, empty control.
const ValueMissingMessage = "A value is required"

// ControlValue is the value reported to the surrounding form. Single mode
// reports the selected label, multiple mode the selected ids.
type ControlValue struct {
	Multiple bool
	Label    string
	IDs      []string
}

// Empty reports whether nothing is selected.
func (v ControlValue) Empty() bool {
	return len(v.IDs) == 0
}

func (v ControlValue) String() string {
	if v.Multiple {
		return strings.Join(v.IDs, ",")
	}
	return v.Label
}

// FormPair is one submitted key/value pair.
type FormPair struct {
	Name  string
	Value string
}

// Validity mirrors the required constraint.
type Validity struct {
	ValueMissing bool
}

// Valid reports whether no constraint is violated.
func (v Validity) Valid() bool { return !v.ValueMissing }

// Message returns the user facing message, or "" when valid.
func (v Validity) Message() string {
	if v.ValueMissing {
		return ValueMissingMessage
	}
	return ""
}

// OptionView is a visible option decorated for the renderer.
type OptionView struct {
	ID       string
	Label    string
	Selected bool
	Current  bool
}

// Placement says where the list opens relative to the input.
type Placement int

const (
	PlaceBelow Placement = iota
	PlaceAbove
)

func (p Placement) String() string {
	if p == PlaceAbove {
		return "above"
	}
	return "below"
}

// PlacementFor opens the list above the input when the space below it is
// smaller than the list height.
func PlacementFor(spaceBelow, listHeight int) Placement {
	if spaceBelow < listHeight {
		return PlaceAbove
	}
	return PlaceBelow
}
