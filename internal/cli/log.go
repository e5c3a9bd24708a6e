package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cktools/tileinspect/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// LogEntry is the JSON shape of one recorded inspection.
type LogEntry struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Command   string `json:"command"`
	Type      string `json:"type"`
	Output    string `json:"output"`
	CreatedAt string `json:"created_at"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recorded inspections",
		Long: `List inspections recorded by render --db, oldest first.

Examples:
  tileinspect log --db ./inspections.db
  tileinspect log --db ./inspections.db --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many entries (0 = all)")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	inspections, err := st.List(context.Background(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list inspections", err)
	}

	if opts.Format == "json" {
		out := make([]LogEntry, len(inspections))
		for i, rec := range inspections {
			out[i] = LogEntry{
				ID:        rec.ID,
				Seq:       rec.Seq,
				Command:   rec.Command,
				Type:      rec.TypeString,
				Output:    rec.Output,
				CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05.000Z"),
			}
		}
		return outputJSON(cmd, out)
	}

	w := cmd.OutOrStdout()
	if len(inspections) == 0 {
		fmt.Fprintln(w, "No inspections recorded.")
		return nil
	}
	for _, rec := range inspections {
		fmt.Fprintf(w, "[%d] %s %s %s\n", rec.Seq, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Command, rec.TypeString)
	}
	return nil
}
