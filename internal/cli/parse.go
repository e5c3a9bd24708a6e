package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cktools/tileinspect/internal/typetree"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
}

// TypeNode is the JSON shape of one parsed signature level.
type TypeNode struct {
	Name    string     `json:"name"`
	Generic bool       `json:"generic,omitempty"`
	Args    []TypeNode `json:"args,omitempty"`
}

// ParseResult holds the parse command's output.
type ParseResult struct {
	Input    string   `json:"input"`
	Complete bool     `json:"complete"`
	Root     TypeNode `json:"root"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <type-string>",
		Short: "Parse a type signature into its template tree",
		Long: `Parse a CK-Tile type signature and print its template argument tree.

Truncated signatures (an opening bracket the debugger cut off) still
parse best-effort and are flagged as incomplete.

Examples:
  tileinspect parse 'ck_tile::tuple<int, ck_tile::sequence<0, 1>>'
  tileinspect parse --format json 'ck_tile::constant<64>'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *ParseOptions, input string, cmd *cobra.Command) error {
	result, err := typetree.Parse(input)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to parse type signature", err)
	}

	if opts.Format == "json" {
		return outputJSON(cmd, ParseResult{
			Input:    input,
			Complete: result.Complete,
			Root:     typeNode(result.Root),
		})
	}

	w := cmd.OutOrStdout()
	if !result.Complete {
		fmt.Fprintln(w, "(signature truncated, tree is best-effort)")
	}
	writeTree(w, result.Root, 0)
	return nil
}

func typeNode(n *typetree.Node) TypeNode {
	out := TypeNode{Name: n.Name, Generic: n.Generic}
	for i := range n.Args {
		out.Args = append(out.Args, typeNode(&n.Args[i]))
	}
	return out
}

func writeTree(w interface{ Write([]byte) (int, error) }, n *typetree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case !n.Generic:
		fmt.Fprintf(w, "%s%s\n", indent, n.Name)
	case len(n.Args) == 0:
		fmt.Fprintf(w, "%s%s<>\n", indent, n.Name)
	default:
		fmt.Fprintf(w, "%s%s<\n", indent, n.Name)
		for i := range n.Args {
			writeTree(w, &n.Args[i], depth+1)
		}
		fmt.Fprintf(w, "%s>\n", indent)
	}
}
