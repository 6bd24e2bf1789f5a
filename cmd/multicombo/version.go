package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	// Version is overridden at build time via -ldflags.
	Version = "dev"
	// Build identifies the commit or build number when available.
	Build = ""
	// BuildTime records when the binary was built.
	BuildTime = ""
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "multicombo %s", Version)
	if Build != "" {
		fmt.Fprintf(w, " (%s)", Build)
	}
	if BuildTime != "" {
		fmt.Fprintf(w, " built %s", BuildTime)
	}
	fmt.Fprintln(w)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			printVersion(a.out)
		},
	}
}
