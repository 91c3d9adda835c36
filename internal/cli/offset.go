package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chronotool/chrono"
	"github.com/chronotool/chrono/parse"
)

// NewOffsetCommand creates the offset command, which formats a Unix epoch
// offset through a backend.
func NewOffsetCommand() *cobra.Command {
	var (
		backend   string
		unit      string
		layout    string
		precision int
	)
	cmd := &cobra.Command{
		Use:   "offset <value>",
		Short: "Format a Unix epoch offset as a timestamp string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid offset value %q: %w", args[0], err)
			}
			if !cmd.Flags().Changed("precision") {
				precision = chrono.PrecisionNative
			}
			reg := chrono.DefaultRegistry()
			out, err := parse.FormatOffset(reg, offset, precision, chrono.OriginUnix, layout, chrono.Unit(unit), backend)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", chrono.BackendClock, "parsing backend")
	cmd.Flags().StringVarP(&unit, "unit", "u", string(chrono.UnitSecond), "time unit the offset is expressed in")
	cmd.Flags().StringVarP(&layout, "layout", "l", parse.DefaultLayout, "output format pattern")
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "fractional second digits (omit to keep native precision)")
	return cmd
}
