package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"multicombo/internal/combobox"
	"multicombo/internal/ui/theme"
)

// Chip visual states for pill rendering
type chipState int

const (
	chipStateNormal chipState = iota
	chipStateDisabled
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // Left half-circle (rounded left edge)
	pillRight = "\ue0b4" // Right half-circle (rounded right edge)
	tagRemove = "×"
)

// chipBox is the on-screen extent of one rendered tag, relative to the
// first row of the tag block.
type chipBox struct {
	OptionID string
	Row      int
	X0, X1   int // X1 exclusive
}

func (b chipBox) contains(x, row int) bool {
	return row == b.Row && x >= b.X0 && x < b.X1
}

// renderPillChip renders a tag as a pill-shaped chip with a remove button.
func renderPillChip(label string, state chipState) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateDisabled:
		bgColor = t.BorderNormal()
		fgColor = t.TextMuted()
	default:
		bgColor = t.Info()
		fgColor = t.Background()
	}

	// Left cap: foreground is the chip color (creates the curved colored edge)
	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelText := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor).
		Render(label + " " + tagRemove)

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}

// renderTags renders the tag row, wrapped to width, and reports where each
// pill landed so clicks can be routed back to the owning option.
func renderTags(tags []combobox.Tag, width int, disabled bool) (string, []chipBox) {
	if len(tags) == 0 {
		return "", nil
	}
	state := chipStateNormal
	if disabled {
		state = chipStateDisabled
	}
	rendered := make([]string, len(tags))
	for i, tag := range tags {
		rendered[i] = renderPillChip(tag.Label, state)
	}
	lines, boxes := wrapChips(rendered, width)
	for i := range boxes {
		boxes[i].OptionID = tags[i].OptionID
	}
	return strings.Join(lines, "\n"), boxes
}

// wrapChips lays chips out left to right, starting a new line when the next
// chip would overflow width. A chip wider than width gets a line to itself.
func wrapChips(renderedChips []string, width int) ([]string, []chipBox) {
	var lines []string
	var currentLine []string
	currentWidth := 0
	boxes := make([]chipBox, 0, len(renderedChips))

	for _, chip := range renderedChips {
		chipWidth := lipgloss.Width(chip)
		spaceNeeded := chipWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // +1 for space separator
		}

		if width > 0 && currentWidth+spaceNeeded > width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{chip}
			currentWidth = chipWidth
			boxes = append(boxes, chipBox{Row: len(lines), X0: 0, X1: chipWidth})
		} else {
			x0 := currentWidth + spaceNeeded - chipWidth
			currentLine = append(currentLine, chip)
			currentWidth += spaceNeeded
			boxes = append(boxes, chipBox{Row: len(lines), X0: x0, X1: x0 + chipWidth})
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return lines, boxes
}
