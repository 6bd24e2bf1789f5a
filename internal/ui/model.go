package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"multicombo/internal/combobox"
	"multicombo/internal/config"
	"multicombo/internal/debug"
	"multicombo/internal/source"
	"multicombo/internal/ui/theme"
)

// Model is the top-level program: a title, the control and a footer.
type Model struct {
	box       ComboBox
	keys      KeyMap
	title     string
	watcher   *source.Watcher
	saveTheme func(string) error

	status     string
	statusWarn bool
	statusSeq  int

	submitted bool
	cancelled bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTitle sets the line drawn above the control.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// WithWatcher feeds runtime catalog additions into the control.
func WithWatcher(w *source.Watcher) ModelOption {
	return func(m *Model) { m.watcher = w }
}

// WithThemeSaver overrides how the chosen theme is persisted.
func WithThemeSaver(save func(string) error) ModelOption {
	return func(m *Model) { m.saveTheme = save }
}

// NewModel wraps box in a program model. The control starts focused.
func NewModel(box ComboBox, opts ...ModelOption) Model {
	m := Model{
		box:       box,
		keys:      DefaultKeyMap(),
		saveTheme: config.SaveTheme,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.box.Focus()
	m.box.SetOrigin(0, m.headerHeight())
	return m
}

func (m Model) headerHeight() int {
	if m.title == "" {
		return 0
	}
	return 1
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.box.Init(), WaitForAdditions(m.watcher))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.box.SetViewHeight(msg.Height - 1) // footer
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			name := theme.CycleTheme()
			if m.saveTheme != nil {
				if err := m.saveTheme(name); err != nil {
					debug.Logf("save theme %s: %v", name, err)
				}
			}
			return m.setStatus("Theme: "+name, false)
		}

	case OptionsAddedMsg:
		var cmd, statusCmd tea.Cmd
		m.box, cmd = m.box.Update(msg)
		debug.Logf("catalog watcher added %d option(s)", len(msg.Entries))
		m, statusCmd = m.setStatus(fmt.Sprintf("%d new option(s)", len(msg.Entries)), false)
		return m, tea.Batch(cmd, statusCmd, WaitForAdditions(m.watcher))

	case WatchErrorMsg:
		debug.Logf("catalog watcher: %v", msg.Err)
		var statusCmd tea.Cmd
		m, statusCmd = m.setStatus("Catalog reload failed: "+msg.Err.Error(), true)
		return m, tea.Batch(statusCmd, WaitForAdditions(m.watcher))

	case CopiedMsg:
		if msg.Err != nil {
			return m.setStatus("Copy failed: "+msg.Err.Error(), true)
		}
		return m.setStatus(fmt.Sprintf("Copied '%s' to clipboard.", msg.Text), false)

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case ValueChangedMsg:
		debug.Logf("value changed: %q missing=%t", msg.Value.String(), msg.Validity.ValueMissing)
		return m, nil

	case TagAddedMsg:
		debug.Logf("tag added: %s (%s), tags: %s", msg.Tag.Label, msg.Tag.OptionID, m.tagLabels())
		return m, nil

	case TagRemovedMsg:
		debug.Logf("tag removed: %s (%s), tags: %s", msg.Tag.Label, msg.Tag.OptionID, m.tagLabels())
		return m, nil
	}

	var cmd tea.Cmd
	m.box, cmd = m.box.Update(msg)
	return m, cmd
}

func (m Model) tagLabels() string {
	return strings.Join(m.box.Controller().State().Tags().Labels(), ", ")
}

func (m Model) setStatus(text string, warn bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusWarn = warn
	return m, scheduleStatusClear(m.statusSeq)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	var b strings.Builder
	if m.title != "" {
		b.WriteString(styleTitle().Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(m.box.View())
	b.WriteString("\n")
	switch {
	case m.status != "" && m.statusWarn:
		b.WriteString(styleWarning().Render(m.status))
	case m.status != "":
		b.WriteString(styleStatus().Render(m.status))
	default:
		b.WriteString(styleComboBoxHint().Render(m.keys.ShortHelp()))
	}
	return b.String()
}

// Submitted reports whether the user finished with the submit key.
func (m Model) Submitted() bool { return m.submitted }

// Cancelled reports whether the user quit without submitting.
func (m Model) Cancelled() bool { return m.cancelled }

// Controller returns the engine behind the control.
func (m Model) Controller() *combobox.Controller { return m.box.Controller() }

// ComboBox returns the embedded control.
func (m Model) ComboBox() ComboBox { return m.box }
