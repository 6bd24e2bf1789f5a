package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"multicombo/internal/ui"
)

func newKeysCmd(a *app) *cobra.Command {
	var style string
	var width int
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the key and mouse bindings",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			switch style {
			case "dark", "light", "plain", "notty":
			default:
				return fmt.Errorf("unknown style %q (want dark, light, plain or notty)", style)
			}
			fmt.Fprint(a.out, ui.RenderMarkdown(style, ui.DefaultKeyMap().Markdown(), width))
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "Glamour style: dark, light, plain or notty")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}
