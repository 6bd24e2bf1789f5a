package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"multicombo/internal/ui/theme"
)

func joinThemes() string {
	return strings.Join(theme.Available(), ", ")
}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available colour themes",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			current := a.settings.Theme
			if !theme.Has(current) {
				current = theme.CurrentName()
			}
			for _, name := range theme.Available() {
				marker := "  "
				if name == current {
					marker = "* "
				}
				fmt.Fprintln(a.out, marker+name)
			}
		},
	}
}
