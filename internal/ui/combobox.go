package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"multicombo/internal/combobox"
)

const (
	defaultWidth      = 40
	defaultMaxVisible = 8
	minWidth          = 16
)

var inputTarget = combobox.Target{Kind: combobox.TargetInput}

// ComboBox renders a combobox.Controller and feeds it terminal input.
// Copies of a ComboBox share the same controller.
type ComboBox struct {
	// Configuration (set at creation)
	Width      int // Display width including the input border
	MaxVisible int // Max options shown before the list scrolls

	ctrl      *combobox.Controller
	keys      KeyMap
	textInput textinput.Model

	focused      bool
	touched      bool // validity is only shown once the user changed or left the control
	scrollOffset int  // first visible option row
	viewHeight   int  // terminal rows available to the control, 0 when unknown
	originX      int
	originY      int
}

// NewComboBox creates a ComboBox around ctrl.
func NewComboBox(ctrl *combobox.Controller) ComboBox {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Placeholder = ctrl.Config().Placeholder
	ti.SetValue(ctrl.State().Input())

	c := ComboBox{
		Width:      defaultWidth,
		MaxVisible: defaultMaxVisible,
		ctrl:       ctrl,
		keys:       DefaultKeyMap(),
		textInput:  ti,
	}
	c.textInput.Width = c.textWidth()
	return c
}

// WithWidth sets the display width.
func (c ComboBox) WithWidth(w int) ComboBox {
	if w < minWidth {
		w = minWidth
	}
	c.Width = w
	c.textInput.Width = c.textWidth()
	return c
}

// WithMaxVisible sets the maximum visible options.
func (c ComboBox) WithMaxVisible(n int) ComboBox {
	if n > 0 {
		c.MaxVisible = n
	}
	return c
}

// WithKeyMap replaces the default bindings.
func (c ComboBox) WithKeyMap(k KeyMap) ComboBox {
	c.keys = k
	return c
}

// textWidth leaves room for the border, padding, prompt, cursor and the
// delete affordance.
func (c ComboBox) textWidth() int {
	return c.Width - 4 - len(c.textInput.Prompt) - 3
}

// SetOrigin records where the control is drawn so mouse events can be
// translated into control coordinates.
func (c *ComboBox) SetOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// SetViewHeight records the terminal rows available from the top of the
// screen. It decides whether the list opens above or below the input.
func (c *ComboBox) SetViewHeight(h int) {
	c.viewHeight = h
}

// Controller returns the engine behind the view.
func (c ComboBox) Controller() *combobox.Controller {
	return c.ctrl
}

// Focus focuses the search input.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	return c.textInput.Focus()
}

// Blur removes focus and closes the list.
func (c *ComboBox) Blur() tea.Cmd {
	c.focused = false
	c.touched = true
	c.textInput.Blur()
	var cmd tea.Cmd
	*c, cmd = c.apply(c.ctrl.SetOpen(false))
	return cmd
}

// Focused returns whether the control has focus.
func (c ComboBox) Focused() bool {
	return c.focused
}

// Touched reports whether validity feedback is being shown.
func (c ComboBox) Touched() bool {
	return c.touched
}

// Init implements tea.Model.
func (c ComboBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		return c.handleKeyMsg(msg)
	case tea.MouseMsg:
		return c.handleMouseMsg(msg)
	case OptionsAddedMsg:
		return c.apply(c.ctrl.AddOptions(msg.Entries))
	}

	// Pass through other messages (cursor blink) to textinput
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return c, cmd
}

func (c ComboBox) handleKeyMsg(msg tea.KeyMsg) (ComboBox, tea.Cmd) {
	if key.Matches(msg, c.keys.Copy) {
		return c, copyCmd(c.ctrl.Value().String())
	}
	st := c.ctrl.State()
	if st.Disabled() {
		return c, nil
	}

	k, edits := c.keys.controlKey(msg)
	ctrl := isCtrl(msg)
	c, keyCmd := c.apply(c.ctrl.Dispatch(inputTarget, combobox.EventKeyDown,
		combobox.Payload{Key: k, Ctrl: ctrl}))
	if ctrl || !edits {
		return c, keyCmd
	}

	before := c.textInput.Value()
	var tiCmd tea.Cmd
	c.textInput, tiCmd = c.textInput.Update(msg)
	after := c.textInput.Value()
	if after == before {
		return c, tea.Batch(keyCmd, tiCmd)
	}
	c, textCmd := c.apply(c.ctrl.Dispatch(inputTarget, combobox.EventInput,
		combobox.Payload{Text: after}))
	return c, tea.Batch(keyCmd, tiCmd, textCmd)
}

func (c ComboBox) handleMouseMsg(msg tea.MouseMsg) (ComboBox, tea.Cmd) {
	_, lay := c.render()
	target, inside := lay.hit(msg.X-c.originX, msg.Y-c.originY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return c, nil
		}
		var focusCmd tea.Cmd
		if !c.focused {
			focusCmd = c.Focus()
		}
		if target.Kind == combobox.TargetHost {
			return c, focusCmd
		}
		var cmd tea.Cmd
		c, cmd = c.apply(c.ctrl.Dispatch(target, combobox.EventClick, combobox.Payload{}))
		return c, tea.Batch(focusCmd, cmd)

	case tea.MouseActionRelease:
		switch {
		case !inside:
			target = combobox.Target{Kind: combobox.TargetOutside}
			if c.ctrl.State().Open() {
				c.touched = true
			}
		case target.Kind != combobox.TargetOption:
			target = combobox.Target{Kind: combobox.TargetHost}
		}
		return c.apply(c.ctrl.Dispatch(target, combobox.EventPointerUp, combobox.Payload{}))
	}
	return c, nil
}

// apply brings the view in line with a transition result and turns its
// side effects into messages.
func (c ComboBox) apply(res combobox.Result) (ComboBox, tea.Cmd) {
	st := res.State
	if c.textInput.Value() != st.Input() {
		c.textInput.SetValue(st.Input())
		c.textInput.CursorEnd()
	}
	if res.SelectionChanged {
		c.touched = true
	}
	c.scrollToCurrent(st)

	cmds := resultCmds(res)
	if res.FocusInput && !c.focused {
		cmds = append(cmds, c.Focus())
	}
	return c, tea.Batch(cmds...)
}

// scrollToCurrent keeps the current option inside the visible window.
func (c *ComboBox) scrollToCurrent(st combobox.State) {
	visible := st.Visible()
	maxOffset := len(visible) - c.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.scrollOffset > maxOffset {
		c.scrollOffset = maxOffset
	}
	idx := -1
	for i, id := range visible {
		if id == st.Current() {
			idx = i
			break
		}
	}
	if idx < 0 {
		if !st.Open() {
			c.scrollOffset = 0
		}
		return
	}
	if idx < c.scrollOffset {
		c.scrollOffset = idx
	} else if idx >= c.scrollOffset+c.MaxVisible {
		c.scrollOffset = idx - c.MaxVisible + 1
	}
}

// Value returns the control value.
func (c ComboBox) Value() combobox.ControlValue {
	return c.ctrl.Value()
}

// InputValue returns the text in the search input.
func (c ComboBox) InputValue() string {
	return c.textInput.Value()
}
