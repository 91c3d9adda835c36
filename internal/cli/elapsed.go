package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chronotool/chrono"
	"github.com/chronotool/chrono/parse"
)

// NewElapsedCommand creates the elapsed command, which renders a seconds
// count from an arbitrary origin as an elapsed-time phrase.
func NewElapsedCommand() *cobra.Command {
	var precision int
	cmd := &cobra.Command{
		Use:   "elapsed <seconds>",
		Short: "Render elapsed seconds as days/hours/minutes/seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid seconds value %q: %w", args[0], err)
			}
			if !cmd.Flags().Changed("precision") {
				precision = chrono.PrecisionNative
			}
			reg := chrono.DefaultRegistry()
			out, err := parse.FormatOffset(reg, seconds, precision, chrono.OriginArbitrary, "", chrono.UnitSecond, chrono.BackendClock)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "fractional second digits (omit to keep native precision)")
	return cmd
}
