package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cktools/tileinspect/internal/render"
)

// PrinterEntry is the JSON shape of one dispatch table row.
type PrinterEntry struct {
	Pattern string `json:"pattern"`
	Name    string `json:"name"`
}

// NewPrintersCommand creates the printers command.
func NewPrintersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printers",
		Short: "List the printer dispatch table",
		Long: `List the printer dispatch table in match order.

A value's full type string is matched against each pattern in turn;
the first hit picks the printer. More specific patterns sit earlier,
so wrapper types never lose to the types they contain.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrinters(rootOpts, cmd)
		},
	}

	return cmd
}

func runPrinters(opts *RootOptions, cmd *cobra.Command) error {
	entries := render.Default().Entries()

	if opts.Format == "json" {
		out := make([]PrinterEntry, len(entries))
		for i, e := range entries {
			out[i] = PrinterEntry{Pattern: e.Pattern, Name: e.Name}
		}
		return outputJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	for i, e := range entries {
		fmt.Fprintf(w, "%2d  %-45s %s\n", i, e.Pattern, e.Name)
	}
	return nil
}
