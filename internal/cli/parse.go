package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronotool/chrono"
	"github.com/chronotool/chrono/conv"
	"github.com/chronotool/chrono/parse"
)

// NewParseCommand creates the parse command, which parses a time string and
// reports it in a requested representation.
func NewParseCommand() *cobra.Command {
	var (
		backend string
		layout  string
		unit    string
		target  string
	)
	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a formatted time string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := chrono.DefaultRegistry()
			value, err := parse.ParseText(reg, args[0], layout, backend, chrono.Unit(unit))
			if err != nil {
				return err
			}
			if target == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", value)
				return nil
			}
			converter := conv.New(conv.Options{Registry: reg, Layout: layout, Unit: chrono.Unit(unit)})
			converted, err := converter.Convert(value, chrono.Kind(target))
			if err != nil {
				return err
			}
			if text, ok := converted.(chrono.Text); ok {
				fmt.Fprintln(cmd.OutOrStdout(), text.Value)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", converted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", chrono.BackendClock, "parsing backend")
	cmd.Flags().StringVarP(&layout, "layout", "l", parse.DefaultLayout, "format pattern of the input text")
	cmd.Flags().StringVarP(&unit, "unit", "u", string(chrono.UnitSecond), "time unit for unit-bearing backends")
	cmd.Flags().StringVarP(&target, "to", "t", "", "optional target kind to convert the parsed value to")
	return cmd
}
