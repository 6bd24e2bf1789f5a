package combobox

// Key identifies the keys the controller reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyDown
	KeyUp
	KeyEnter
	KeyEscape
	KeyTab
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyBackspace
	KeyPrintable
)

var keyNames = map[Key]string{
	KeyOther:     "other",
	KeyDown:      "down",
	KeyUp:        "up",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyBackspace: "backspace",
	KeyPrintable: "printable",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a discrete user action fed to Controller.Handle.
type Event interface {
	isEvent()
}

// TextChanged carries the new content of the search input.
type TextChanged struct{ Text string }

// KeyPressed is a key pressed while the input has focus.
type KeyPressed struct {
	Key  Key
	Ctrl bool
}

// OptionClicked is a click on a list option.
type OptionClicked struct{ ID string }

// DeleteClicked is a click on the delete affordance.
type DeleteClicked struct{}

// TagButtonClicked is a click on the remove button of a tag.
type TagButtonClicked struct{ ID string }

// PointerUp is a pointer release, inside or outside the control.
type PointerUp struct{ Inside bool }

// InputClicked is a click on the search input.
type InputClicked struct{}

func (TextChanged) isEvent()      {}
func (KeyPressed) isEvent()       {}
func (OptionClicked) isEvent()    {}
func (DeleteClicked) isEvent()    {}
func (TagButtonClicked) isEvent() {}
func (PointerUp) isEvent()        {}
func (InputClicked) isEvent()     {}
