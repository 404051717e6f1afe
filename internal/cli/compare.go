package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/diff"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a.sql> <b.sql>",
		Short: "Show the semantic and textual differences between two queries",
		Long: `Compare two SQL queries.

Both queries are parsed, normalized and broken into clauses. Each added or
removed column, table, join, predicate, ordering, limit and subquery is
reported as a notice. A unified diff of the two texts follows. Use "-" to
read one of the queries from stdin.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().Bool("normalize", true, "compare the normalized form of both queries")
	cmd.Flags().Bool("ignore-whitespace", true, "ignore indentation and blank lines in the text diff")
	cmd.Flags().Bool("semantic", true, "report clause-level differences")

	return cmd
}

func runCompare(opts *RootOptions, cmd *cobra.Command, pathA, pathB string) error {
	sqlA, err := readInput(cmd, pathA)
	if err != nil {
		return err
	}
	sqlB, err := readInput(cmd, pathB)
	if err != nil {
		return err
	}

	res := diff.Compare(sqlA, sqlB, opts.Config.DiffConfig())

	w := cmd.OutOrStdout()
	if ok, err := encode(w, opts.Config.Output, res); ok {
		return err
	}

	if len(res.Notices) == 0 && res.TextDiff == "" {
		successColor.Fprintln(w, "✓ Queries are identical")
		return nil
	}
	if len(res.Notices) == 0 && opts.Config.SemanticDiff {
		fmt.Fprintln(w, "No semantic differences")
	}
	for _, n := range res.Notices {
		writeNotice(w, n)
	}
	if res.TextDiff != "" {
		if len(res.Notices) > 0 || opts.Config.SemanticDiff {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, res.TextDiff)
	}
	return nil
}
