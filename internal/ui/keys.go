package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"multicombo/internal/combobox"
)

// KeyMap defines all keyboard shortcuts for the control and its host.
// Each binding includes the actual keys and help text for display.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Control
	Enter     key.Binding
	Escape    key.Binding
	Tab       key.Binding
	Backspace key.Binding

	// Host shortcuts
	Copy   key.Binding
	Theme  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "Move through options (wraps)"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "Move through options (wraps)"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "Move the text cursor"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "Move the text cursor"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home/End", "Jump to start/end of text"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("Home/End", "Jump to start/end of text"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Toggle the current option"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close the list, or clear the text"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("⇥ (Tab)", "Close the list"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "Delete char"),
		),

		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy the value"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Cycle theme"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "Finish and print the value"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Cancel"),
		),
	}
}

// controlKey maps a terminal key onto the controller's key vocabulary.
// The boolean reports whether the key edits the search text.
func (k KeyMap) controlKey(msg tea.KeyMsg) (combobox.Key, bool) {
	switch {
	case key.Matches(msg, k.Down):
		return combobox.KeyDown, false
	case key.Matches(msg, k.Up):
		return combobox.KeyUp, false
	case key.Matches(msg, k.Enter):
		return combobox.KeyEnter, false
	case key.Matches(msg, k.Escape):
		return combobox.KeyEscape, false
	case key.Matches(msg, k.Tab):
		return combobox.KeyTab, false
	case key.Matches(msg, k.Left):
		return combobox.KeyLeft, true
	case key.Matches(msg, k.Right):
		return combobox.KeyRight, true
	case key.Matches(msg, k.Home):
		return combobox.KeyHome, true
	case key.Matches(msg, k.End):
		return combobox.KeyEnd, true
	case key.Matches(msg, k.Backspace):
		return combobox.KeyBackspace, true
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		return combobox.KeyPrintable, true
	case tea.KeyDelete:
		return combobox.KeyOther, true
	}
	return combobox.KeyOther, false
}

func isCtrl(msg tea.KeyMsg) bool {
	return strings.HasPrefix(msg.String(), "ctrl+")
}

// ShortHelp returns the one-line footer hint.
func (k KeyMap) ShortHelp() string {
	parts := make([]string, 0, 4)
	for _, b := range []key.Binding{k.Submit, k.Quit, k.Copy, k.Theme} {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, strings.ToLower(b.Help().Desc)))
	}
	return strings.Join(parts, " • ")
}

// Markdown renders the bindings as a markdown table. Bindings that share help
// text are listed once.
func (k KeyMap) Markdown() string {
	var b strings.Builder
	b.WriteString("# Keys\n\n| Key | Action |\n|---|---|\n")
	seen := make(map[string]bool)
	for _, binding := range []key.Binding{
		k.Up, k.Down, k.Enter, k.Escape, k.Tab, k.Left, k.Right, k.Home, k.End,
		k.Backspace, k.Copy, k.Theme, k.Submit, k.Quit,
	} {
		h := binding.Help()
		if seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\nMouse: click an option to toggle it, click a tag to remove it, " +
		"click × to clear the text, click the input to open or close the list.\n")
	return b.String()
}
