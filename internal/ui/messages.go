package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"multicombo/internal/catalog"
	"multicombo/internal/combobox"
	"multicombo/internal/source"
)

// ValueChangedMsg is sent after every selection change.
type ValueChangedMsg struct {
	Value    combobox.ControlValue
	Validity combobox.Validity
}

// TagAddedMsg is sent when a tag appears for a newly selected option.
type TagAddedMsg struct{ Tag combobox.Tag }

// TagRemovedMsg is sent when a tag disappears.
type TagRemovedMsg struct{ Tag combobox.Tag }

// OptionsAddedMsg carries catalog entries discovered at runtime.
type OptionsAddedMsg struct{ Entries []catalog.Entry }

// WatchErrorMsg reports a failure from the catalog watcher.
type WatchErrorMsg struct{ Err error }

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Text string
	Err  error
}

type statusClearMsg struct{ seq int }

// writeClipboard is a variable so tests can avoid the system clipboard.
var writeClipboard = clipboard.WriteAll

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: writeClipboard(text)}
	}
}

// CopyFormValue copies the form pairs as name=value lines.
func CopyFormValue(pairs []combobox.FormPair) error {
	return writeClipboard(FormatPairs(pairs))
}

// FormatPairs renders form pairs one per line as name=value.
func FormatPairs(pairs []combobox.FormPair) string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = p.Name + "=" + p.Value
	}
	return strings.Join(lines, "\n")
}

// WaitForAdditions blocks until the watcher produces new entries or an error.
// The host re-issues it after each message.
func WaitForAdditions(w *source.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case entries := <-w.Additions():
			return OptionsAddedMsg{Entries: entries}
		case err := <-w.Errors():
			return WatchErrorMsg{Err: err}
		}
	}
}

func scheduleStatusClear(seq int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// resultCmds turns a transition result into messages for the host.
func resultCmds(res combobox.Result) []tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range res.TagEvents {
		ev := ev
		if ev.Kind == combobox.TagAdded {
			cmds = append(cmds, func() tea.Msg { return TagAddedMsg{Tag: ev.Tag} })
		} else {
			cmds = append(cmds, func() tea.Msg { return TagRemovedMsg{Tag: ev.Tag} })
		}
	}
	if res.SelectionChanged {
		v, validity := res.State.Value(), res.State.Validity()
		cmds = append(cmds, func() tea.Msg { return ValueChangedMsg{Value: v, Validity: validity} })
	}
	return cmds
}
