package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"multicombo/internal/combobox"
	"multicombo/internal/config"
	"multicombo/internal/debug"
	"multicombo/internal/source"
	"multicombo/internal/ui"
	"multicombo/internal/ui/theme"
)

// exitCancelled is the conventional status for an interrupted prompt.
const exitCancelled = 130

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(m tea.Model, out io.Writer) programRunner

// app holds what the commands share: resolved settings and the seams tests
// replace.
type app struct {
	settings config.Settings
	out      io.Writer
	errOut   io.Writer
	program  programFactory

	debug   bool
	copy    bool
	noColor bool
	title   string
}

func newApp() *app {
	return &app{
		out:    os.Stdout,
		errOut: os.Stderr,
		program: func(m tea.Model, out io.Writer) programRunner {
			return tea.NewProgram(m, tea.WithOutput(out), tea.WithMouseCellMotion())
		},
	}
}

// flagKeys maps flags onto the configuration keys they override.
var flagKeys = map[string]string{
	"catalog":      config.KeyCatalogPath,
	"sqlite":       config.KeyCatalogSQLite,
	"table":        config.KeyCatalogTable,
	"watch":        config.KeyCatalogWatch,
	"debounce":     config.KeyCatalogDebounce,
	"multiple":     config.KeyMultiple,
	"tags":         config.KeyTags,
	"autocomplete": config.KeyAutocomplete,
	"required":     config.KeyRequired,
	"disabled":     config.KeyDisabled,
	"placeholder":  config.KeyPlaceholder,
	"name":         config.KeyName,
	"theme":        config.KeyTheme,
	"width":        config.KeyWidth,
	"max-visible":  config.KeyMaxVisible,
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "multicombo",
		Short: "Pick one or more options from a searchable list",
		Long: `multicombo shows a searchable list of options loaded from a YAML/JSON
file or a SQLite table. Type to filter, use the arrows to move, Enter to
toggle. Ctrl+D prints the chosen values as name=value lines.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { debug.Close() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.String("catalog", "", "YAML/JSON catalog file (.db/.sqlite paths are opened as SQLite)")
	pf.String("sqlite", "", "SQLite catalog database")
	pf.String("table", source.DefaultTable, "SQLite table with id, label, selected columns")
	pf.Bool("multiple", false, "Allow more than one selection")
	pf.Bool("tags", false, "Show selections as removable tags (needs --multiple)")
	pf.String("autocomplete", "list", "Filtering while typing: list, inline or false")
	pf.Bool("required", false, "Fail when nothing is selected")
	pf.String("name", "value", "Field name printed with each value")
	pf.BoolVar(&a.debug, "debug", false, "Write a debug log to ~/"+debug.LogDirName+"/"+debug.LogFileName)

	f := root.Flags()
	f.Bool("watch", false, "Add options appended to the catalog file while running")
	f.Duration("debounce", source.DefaultDebounce, "Delay before reloading a changed catalog file")
	f.Bool("disabled", false, "Show the control read-only")
	f.String("placeholder", "", "Text shown while the input is empty")
	f.String("theme", "", "Colour theme ("+joinThemes()+")")
	f.Int("width", config.DefaultWidth, "Control width in cells")
	f.Int("max-visible", config.DefaultMaxVisible, "Options shown before the list scrolls")
	f.StringVar(&a.title, "title", "", "Line shown above the control")
	f.BoolVar(&a.copy, "copy", false, "Also copy the result to the clipboard")
	f.BoolVar(&a.noColor, "no-color", false, "Disable colours")

	root.AddCommand(newValidateCmd(a), newKeysCmd(a), newThemesCmd(a), newVersionCmd(a))
	return root
}

// setup loads layered configuration and applies the flags that were set.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := debug.Init(a.debug); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	if a.debug {
		if path, err := debug.Path(); err == nil {
			fmt.Fprintf(a.errOut, "Debug log: %s\n", path)
		}
	}
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	overrides := make(map[string]any)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	s, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.settings = s
	debug.Logf("settings: %+v", s)
	return nil
}

func (a *app) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if name := a.settings.Theme; name != "" && !theme.SetTheme(name) {
		debug.Logf("unknown theme %q, keeping %s", name, theme.CurrentName())
	}

	sess, err := openSession(ctx, a.settings)
	if err != nil {
		return err
	}
	box := ui.NewComboBox(sess.ctrl).
		WithWidth(a.settings.Width).
		WithMaxVisible(a.settings.MaxVisible)

	opts := []ui.ModelOption{ui.WithTitle(a.title)}
	if a.settings.CatalogWatch {
		w := source.NewWatcher(sess.src, sess.knownIDs(),
			source.WithDebounce(a.settings.CatalogDebounce))
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		opts = append(opts, ui.WithWatcher(w))
	}

	final, err := a.program(ui.NewModel(box, opts...), a.errOut).Run()
	if err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Cancelled() {
		return &exitError{code: exitCancelled}
	}
	return a.report(sess.ctrl)
}

// report prints the form pairs and enforces the required constraint.
func (a *app) report(ctrl *combobox.Controller) error {
	pairs := ctrl.FormValue()
	if len(pairs) > 0 {
		fmt.Fprintln(a.out, ui.FormatPairs(pairs))
	}
	if a.copy && len(pairs) > 0 {
		if err := ui.CopyFormValue(pairs); err != nil {
			fmt.Fprintf(a.errOut, "copy to clipboard: %v\n", err)
		}
	}
	if msg := ctrl.Validity().Message(); msg != "" {
		return &exitError{code: 1, err: errors.New(msg)}
	}
	return nil
}
