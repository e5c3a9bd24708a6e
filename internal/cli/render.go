package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cktools/tileinspect/internal/fixture"
	"github.com/cktools/tileinspect/internal/render"
	"github.com/cktools/tileinspect/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Database string
}

// RenderResult is the JSON payload of one rendered fixture.
type RenderResult struct {
	Type   string `json:"type"`
	Output string `json:"output"`
	LogID  string `json:"log_id,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <fixture.cue>",
		Short: "Render a captured value through the printer table",
		Long: `Render a CUE fixture through the printer dispatch table.

The fixture's type string picks the printer; values whose type matches
no table entry fall back to a raw member dump. With --db, the rendered
output is recorded in the inspection log.

Examples:
  tileinspect render fixtures/descriptor.cue
  tileinspect render fixtures/descriptor.cue --db ./inspections.db
  tileinspect render fixtures/window.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the inspection in this SQLite database")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	v, err := fixture.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}

	output := render.Default().Render(v)
	result := RenderResult{Type: v.TypeString(), Output: output}

	if opts.Database != "" {
		id, err := recordInspection(opts.Database, "render", v.TypeString(), output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record inspection", err)
		}
		result.LogID = id
	}

	if opts.Format == "json" {
		return outputJSON(cmd, result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// recordInspection appends one rendered inspection to the log database.
func recordInspection(dbPath, command, typeStr, output string) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	rec, err := st.Record(context.Background(), command, typeStr, output)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
