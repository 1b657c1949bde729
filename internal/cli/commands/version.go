package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display paws version and build information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "paws v%s\n", version)
			_, _ = fmt.Fprintf(w, "commit: %s\n", commit)
			_, _ = fmt.Fprintf(w, "built:  %s\n", buildDate)
			_, _ = fmt.Fprintln(w, "cPaws parser and tooling")
		},
	}
}
