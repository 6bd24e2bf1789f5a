package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"multicombo/internal/combobox"
)

const inputHeight = 3 // rounded border around one text row

// layout records where each interactive part of the last render landed,
// relative to the control's origin.
type layout struct {
	width, height int

	tagsTop int
	tags    []chipBox

	inputTop int
	deleteX  int // -1 when the delete affordance is hidden

	listTop    int
	optionRows []string // option id per list row, "" for scroll hints

	placement combobox.Placement
}

// hit maps a cell onto the target under it. inside is false for cells
// outside the control.
func (l layout) hit(x, y int) (combobox.Target, bool) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return combobox.Target{Kind: combobox.TargetOutside}, false
	}
	for _, b := range l.tags {
		if b.contains(x, y-l.tagsTop) {
			return combobox.Target{Kind: combobox.TargetTag, ID: b.OptionID}, true
		}
	}
	if y >= l.inputTop && y < l.inputTop+inputHeight {
		if l.deleteX >= 0 && y == l.inputTop+1 && x == l.deleteX {
			return combobox.Target{Kind: combobox.TargetDelete}, true
		}
		return combobox.Target{Kind: combobox.TargetInput}, true
	}
	if row := y - l.listTop; row >= 0 && row < len(l.optionRows) && l.optionRows[row] != "" {
		return combobox.Target{Kind: combobox.TargetOption, ID: l.optionRows[row]}, true
	}
	return combobox.Target{Kind: combobox.TargetHost}, true
}

// View implements tea.Model.
func (c ComboBox) View() string {
	out, _ := c.render()
	return out
}

// render draws the control and reports its layout. Tags sit directly above
// the input; the list opens below unless there is not enough room.
func (c ComboBox) render() (string, layout) {
	st := c.ctrl.State()
	lay := layout{deleteX: -1}

	tagsBlock, boxes := renderTags(st.Tags().Tags(), c.Width, st.Disabled())
	inputBlock, deleteX := c.renderInput(st)
	var listBlock string
	if st.Open() {
		listBlock, lay.optionRows = c.renderList(st)
	}
	messages := c.renderMessages(st)

	lay.placement = combobox.PlacementFor(c.spaceBelow(tagsBlock), blockHeight(listBlock))

	var blocks []string
	row := 0
	add := func(block string) int {
		top := row
		if block != "" {
			blocks = append(blocks, block)
			row += blockHeight(block)
		}
		return top
	}
	if lay.placement == combobox.PlaceAbove {
		lay.listTop = add(listBlock)
	}
	lay.tagsTop = add(tagsBlock)
	lay.inputTop = add(inputBlock)
	if lay.placement == combobox.PlaceBelow {
		lay.listTop = add(listBlock)
	}
	add(messages)

	lay.tags = boxes
	lay.deleteX = deleteX
	lay.width = c.Width
	lay.height = row
	return strings.Join(blocks, "\n"), lay
}

func blockHeight(block string) int {
	if block == "" {
		return 0
	}
	return lipgloss.Height(block)
}

// spaceBelow is the number of rows left under the input. Without a known
// terminal height the list always opens below.
func (c ComboBox) spaceBelow(tagsBlock string) int {
	if c.viewHeight <= 0 {
		return int(^uint(0) >> 1)
	}
	return c.viewHeight - c.originY - blockHeight(tagsBlock) - inputHeight
}

// renderInput draws the bordered search input. The delete affordance takes
// the last content column while the input holds text.
func (c ComboBox) renderInput(st combobox.State) (string, int) {
	// c.Width is the desired VISUAL width including border
	// Border adds 2 chars outside Width, so use Width - 2 for lipgloss
	inner := c.Width - 4
	text := lipgloss.NewStyle().Width(inner - 1).MaxWidth(inner - 1).Render(c.textInput.View())

	deleteX := -1
	affordance := " "
	if st.DeleteVisible() && !st.Disabled() {
		affordance = styleComboBoxDelete().Render(tagRemove)
		deleteX = c.Width - 3
	}

	style := styleComboBoxInput()
	switch {
	case st.Disabled():
		style = style.Foreground(styleComboBoxHint().GetForeground())
	case c.focused:
		style = styleComboBoxInputFocused()
	}
	return style.Width(c.Width - 2).Render(text + affordance), deleteX
}

// renderList draws the visible options with scrolling.
func (c ComboBox) renderList(st combobox.State) (string, []string) {
	views := st.OptionViews()
	if len(views) == 0 {
		return "", nil
	}

	var lines, rows []string
	start := c.scrollOffset
	if start > len(views) {
		start = 0
	}
	end := start + c.MaxVisible
	if end > len(views) {
		end = len(views)
	}

	// Show scroll-up indicator if there are items above
	if start > 0 {
		lines = append(lines, styleComboBoxHint().Render("  ▲ more above"))
		rows = append(rows, "")
	}
	for _, v := range views[start:end] {
		lines = append(lines, c.renderOption(v))
		rows = append(rows, v.ID)
	}
	if end < len(views) {
		lines = append(lines, styleComboBoxHint().Render("  ▼ more below"))
		rows = append(rows, "")
	}
	return strings.Join(lines, "\n"), rows
}

// renderOption renders one row as "<cursor><check><label>".
func (c ComboBox) renderOption(v combobox.OptionView) string {
	cursor, check := "  ", "  "
	if v.Current {
		cursor = "▸ "
	}
	if v.Selected {
		check = "✓ "
	}
	label := ansi.Truncate(v.Label, c.Width-4, "…")
	if v.Current {
		return styleComboBoxHighlight().Width(c.Width).Render(cursor + check + label)
	}
	if v.Selected {
		return cursor + styleComboBoxCheck().Render(check) +
			styleComboBoxOption().Width(c.Width-4).Render(label)
	}
	return styleComboBoxOption().Width(c.Width).Render(cursor + check + label)
}

// renderMessages draws the no-match hint and the validity message.
func (c ComboBox) renderMessages(st combobox.State) string {
	var lines []string
	query := strings.TrimSpace(st.Input())
	if !st.Open() && query != "" && len(st.Visible()) == 0 &&
		st.Config().Autocomplete == combobox.AutocompleteList {
		hint := "No matches"
		if opt, ok := closestOption(st.Options(), query); ok {
			hint = fmt.Sprintf("No matches. Did you mean %q?", opt.Label)
		}
		lines = append(lines, styleComboBoxNoMatch().Render(wordwrap.String(hint, c.Width)))
	}
	if c.touched {
		if msg := st.Validity().Message(); msg != "" {
			lines = append(lines, styleValidity().Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}
