// Package cli implements the chrono command line front-end.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the chrono root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chrono",
		Short:         "Convert temporal values between representations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(NewElapsedCommand())
	cmd.AddCommand(NewOffsetCommand())
	cmd.AddCommand(NewParseCommand())
	return cmd
}
