package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"multicombo/internal/catalog"
	"multicombo/internal/combobox"
)

func TestComboBoxViewClosed(t *testing.T) {
	cb := newTestBox(t, combobox.Config{}, fruitEntries())
	view := ansi.Strip(cb.View())

	if !strings.Contains(view, "Pick a fruit") {
		t.Errorf("expected placeholder in view, got:\n%s", view)
	}
	if strings.Contains(view, "Apple") {
		t.Errorf("expected closed view to hide options, got:\n%s", view)
	}
	if strings.Contains(view, tagRemove) {
		t.Error("expected no delete affordance for empty input")
	}
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w != cb.Width {
			t.Errorf("line %d: expected width %d, got %d: %q", i, cb.Width, w, line)
		}
	}
}

func TestComboBoxViewOpenList(t *testing.T) {
	entries := fruitEntries()
	entries[2].Selected = true
	cb := newTestBox(t, combobox.Config{Multiple: true}, entries)
	cb, _ = pressKey(cb, tea.KeyDown)

	lines := strings.Split(ansi.Strip(cb.View()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 3 input rows and 3 options, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[3], "▸ ") || !strings.Contains(lines[3], "Apple") {
		t.Errorf("expected current marker on Apple, got %q", lines[3])
	}
	if !strings.Contains(lines[5], "✓ Blueberry") {
		t.Errorf("expected check mark on Blueberry, got %q", lines[5])
	}
	if !strings.Contains(lines[1], tagRemove) {
		t.Errorf("expected delete affordance once the input has text, got %q", lines[1])
	}
}

func TestComboBoxViewTruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("Pomegranate ", 10)
	cb := newTestBox(t, combobox.Config{}, []catalog.Entry{{ID: "p", Label: long}})
	cb, _ = pressKey(cb, tea.KeyDown)

	lines := strings.Split(ansi.Strip(cb.View()), "\n")
	row := lines[len(lines)-1]
	if !strings.HasSuffix(strings.TrimRight(row, " "), "…") {
		t.Errorf("expected truncated label, got %q", row)
	}
	if lipgloss.Width(row) > cb.Width {
		t.Errorf("expected row to fit width %d, got %d", cb.Width, lipgloss.Width(row))
	}
}

func TestComboBoxViewTags(t *testing.T) {
	entries := fruitEntries()
	entries[0].Selected = true
	entries[1].Selected = true
	cb := newTestBox(t, combobox.Config{Multiple: true, Tags: true}, entries)

	lines := strings.Split(ansi.Strip(cb.View()), "\n")
	if !strings.Contains(lines[0], "Apple "+tagRemove) || !strings.Contains(lines[0], "Banana "+tagRemove) {
		t.Errorf("expected both tags on the first row, got %q", lines[0])
	}

	narrow := cb.WithWidth(minWidth)
	lines = strings.Split(ansi.Strip(narrow.View()), "\n")
	if !strings.Contains(lines[0], "Apple") || !strings.Contains(lines[1], "Banana") {
		t.Errorf("expected tags to wrap at width %d, got:\n%s", minWidth, strings.Join(lines, "\n"))
	}
}

func TestComboBoxPlacement(t *testing.T) {
	t.Run("BelowByDefault", func(t *testing.T) {
		cb := newTestBox(t, combobox.Config{Multiple: true}, fruitEntries())
		cb, _ = pressKey(cb, tea.KeyDown)
		_, lay := cb.render()
		if lay.placement != combobox.PlaceBelow || lay.listTop != 3 || lay.inputTop != 0 {
			t.Errorf("expected list below the input, got %+v", lay)
		}
	})

	t.Run("AboveWhenCramped", func(t *testing.T) {
		cb := newTestBox(t, combobox.Config{Multiple: true}, fruitEntries())
		cb.SetViewHeight(5)
		cb, _ = pressKey(cb, tea.KeyDown)
		_, lay := cb.render()
		if lay.placement != combobox.PlaceAbove {
			t.Fatalf("expected list above the input, got %s", lay.placement)
		}
		if lay.listTop != 0 || lay.inputTop != 3 {
			t.Errorf("expected list rows 0-2 and input at 3, got list %d input %d", lay.listTop, lay.inputTop)
		}
		lines := strings.Split(ansi.Strip(cb.View()), "\n")
		if !strings.Contains(lines[0], "Apple") {
			t.Errorf("expected first row to be an option, got %q", lines[0])
		}
		target, inside := lay.hit(3, 1)
		if !inside || target.Kind != combobox.TargetOption || target.ID != "2" {
			t.Errorf("expected row 1 to hit Banana, got %+v", target)
		}
	})
}

func TestComboBoxMessages(t *testing.T) {
	t.Run("NoMatchSuggestion", func(t *testing.T) {
		cb := newTestBox(t, combobox.Config{}, fruitEntries())
		cb, _ = typeText(cb, "bnn")
		if cb.Controller().State().Open() {
			t.Fatal("expected list to close with no matches")
		}
		view := ansi.Strip(cb.View())
		if !strings.Contains(view, `No matches. Did you mean "Banana"?`) {
			t.Errorf("expected fuzzy suggestion, got:\n%s", view)
		}
	})

	t.Run("NoMatchWithoutSuggestion", func(t *testing.T) {
		cb := newTestBox(t, combobox.Config{}, fruitEntries())
		cb, _ = typeText(cb, "xyz")
		view := ansi.Strip(cb.View())
		if !strings.Contains(view, "No matches") || strings.Contains(view, "Did you mean") {
			t.Errorf("expected bare no-match hint, got:\n%s", view)
		}
	})

	t.Run("ValidityAfterBlur", func(t *testing.T) {
		cb := newTestBox(t, combobox.Config{Required: true}, fruitEntries())
		if strings.Contains(ansi.Strip(cb.View()), combobox.ValueMissingMessage) {
			t.Error("expected no validity message before the control is touched")
		}
		cb.Blur()
		if !strings.Contains(ansi.Strip(cb.View()), combobox.ValueMissingMessage) {
			t.Error("expected validity message after blur")
		}
	})
}

func TestLayoutHit(t *testing.T) {
	lay := layout{
		width:      20,
		height:     8,
		tagsTop:    0,
		tags:       []chipBox{{OptionID: "a", Row: 0, X0: 0, X1: 6}},
		inputTop:   1,
		deleteX:    17,
		listTop:    4,
		optionRows: []string{"", "x", "y"},
	}

	tests := []struct {
		name   string
		x, y   int
		want   combobox.Target
		inside bool
	}{
		{"Tag", 3, 0, combobox.Target{Kind: combobox.TargetTag, ID: "a"}, true},
		{"BesideTag", 10, 0, combobox.Target{Kind: combobox.TargetHost}, true},
		{"InputBorder", 0, 1, combobox.Target{Kind: combobox.TargetInput}, true},
		{"Delete", 17, 2, combobox.Target{Kind: combobox.TargetDelete}, true},
		{"DeleteColumnOnBorder", 17, 3, combobox.Target{Kind: combobox.TargetInput}, true},
		{"ScrollHint", 2, 4, combobox.Target{Kind: combobox.TargetHost}, true},
		{"Option", 2, 5, combobox.Target{Kind: combobox.TargetOption, ID: "x"}, true},
		{"Below", 2, 8, combobox.Target{Kind: combobox.TargetOutside}, false},
		{"Right", 20, 2, combobox.Target{Kind: combobox.TargetOutside}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, inside := lay.hit(tt.x, tt.y)
			if got != tt.want || inside != tt.inside {
				t.Errorf("hit(%d,%d) = %+v,%t; want %+v,%t", tt.x, tt.y, got, inside, tt.want, tt.inside)
			}
		})
	}
}
