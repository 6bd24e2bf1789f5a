package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "multicombo/internal/errors"
	"multicombo/internal/ui/theme"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report authoring problems",
		Long: `validate loads the configured catalog exactly as the interactive control
would and lists every problem found: malformed entries, duplicate ids,
extra default selections and configuration errors. It exits non-zero when
anything was reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context(), a.settings)
			if sess.diag.Len() == 0 {
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%d option(s), no problems found.\n", len(sess.ctrl.State().Options()))
				return nil
			}
			fmt.Fprintln(a.out, renderDiagnostics(sess.diag.Entries()))
			fmt.Fprintln(a.out, summarize(sess))
			return &exitError{code: 1}
		},
	}
}

// summarize counts problems per code, e.g.
// "3 problem(s) found (duplicate_option_id ×2, missing_option_id), 4 option(s) loaded."
func summarize(sess *session) string {
	counts := make(map[apperrors.Code]int)
	var order []apperrors.Code
	for _, code := range sess.diag.Codes() {
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}
	parts := make([]string, len(order))
	for i, code := range order {
		parts[i] = string(code)
		if n := counts[code]; n > 1 {
			parts[i] += fmt.Sprintf(" ×%d", n)
		}
	}
	summary := fmt.Sprintf("%d problem(s) found (%s)", sess.diag.Len(), strings.Join(parts, ", "))
	if sess.ctrl != nil {
		summary += fmt.Sprintf(", %d option(s) loaded", len(sess.ctrl.State().Options()))
	}
	return summary + "."
}

// renderDiagnostics lays the recorded problems out as a borderless table.
func renderDiagnostics(errs []error) string {
	t := theme.Current()
	header := lipgloss.NewStyle().Bold(true).Foreground(t.Primary())
	code := lipgloss.NewStyle().Foreground(t.Warning())
	muted := lipgloss.NewStyle().Foreground(t.TextMuted())

	rows := make([][]string, len(errs))
	for i, err := range errs {
		effect := "fatal"
		if apperrors.IsAuthoring(err) {
			effect = "skipped"
		}
		rows[i] = []string{strconv.Itoa(i + 1), string(apperrors.CodeOf(err)), effect, err.Error()}
	}
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "CODE", "EFFECT", "MESSAGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header.PaddingRight(2)
			case col == 0:
				return muted.PaddingRight(2)
			case col == 1:
				return code.PaddingRight(2)
			case col == 2:
				return muted.PaddingRight(2)
			}
			return lipgloss.NewStyle()
		}).
		Rows(rows...).
		String()
}
