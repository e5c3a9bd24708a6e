package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cktools/tileinspect/internal/diagram"
	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/fixture"
)

// DiagramOptions holds flags for the diagram command.
type DiagramOptions struct {
	*RootOptions
	Title string
}

// DiagramResult is the JSON payload of one generated diagram.
type DiagramResult struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Mermaid string `json:"mermaid"`
}

// NewDiagramCommand creates the diagram command.
func NewDiagramCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiagramOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diagram <fixture.cue>",
		Short: "Draw a value's transform chain as a mermaid flowchart",
		Long: `Draw the dimension-flow diagram for a descriptor or adaptor fixture.

The transform chain is read from the fixture's type signature; the
output is a fenced mermaid flowchart from bottom dimensions through
each transform to the top dimensions.

Examples:
  tileinspect diagram fixtures/descriptor.cue
  tileinspect diagram fixtures/adaptor.cue --title "Block Distribution"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagram(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "Tensor Transform Flow", "diagram title")

	return cmd
}

func runDiagram(opts *DiagramOptions, path string, cmd *cobra.Command) error {
	v, err := fixture.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}

	d, err := extract.Chain(v)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to extract transform chain", err)
	}
	out := diagram.Build(d, opts.Title).Mermaid()

	if opts.Format == "json" {
		return outputJSON(cmd, DiagramResult{
			Type:    v.TypeString(),
			Title:   opts.Title,
			Mermaid: out,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
