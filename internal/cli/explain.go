package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/parser"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "explain <file.sql>",
		Short:         "Print the parsed syntax tree of a query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			q, err := parser.Parse(sql, rootOpts.Config.ParsedDialect())
			if err != nil {
				return WrapExitError(ExitFailure, "parse failed", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), parser.Explain(q))
			return nil
		},
	}

	return cmd
}
