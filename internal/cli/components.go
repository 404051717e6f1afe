package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/extract"
)

// NewComponentsCommand creates the components command.
func NewComponentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "components <file.sql>",
		Short:         "Print the clause-level components of a query",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComponents(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runComponents(opts *RootOptions, cmd *cobra.Command, path string) error {
	sql, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	c, err := extract.FromSQL(sql, opts.Config.ParsedDialect())
	if err != nil {
		return WrapExitError(ExitFailure, "cannot extract components", err)
	}

	w := cmd.OutOrStdout()
	if ok, err := encode(w, opts.Config.Output, c); ok {
		return err
	}
	writeComponents(w, c)
	return nil
}

// writeComponents prints each non-empty clause as a heading followed by
// its entries.
func writeComponents(w io.Writer, c *extract.Components) {
	section := func(name string, values []string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(w, "%s:\n", name)
		for _, v := range values {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}

	joins := make([]string, len(c.Joins))
	for i, j := range c.Joins {
		joins[i] = j.Signature()
	}
	orderBy := make([]string, len(c.OrderBy))
	for i, o := range c.OrderBy {
		orderBy[i] = o.String()
	}
	subqueries := make([]string, len(c.Subqueries))
	for i, sq := range c.Subqueries {
		subqueries[i] = fmt.Sprintf("[%s] %s", sq.Location, strings.Join(strings.Fields(sq.Body), " "))
	}

	section("SELECT", c.Select)
	section("FROM", c.From)
	section("JOIN", joins)
	section("WHERE", c.Where)
	section("GROUP BY", c.GroupBy)
	section("HAVING", c.Having)
	section("ORDER BY", orderBy)
	if c.Limit != "" {
		section("LIMIT", []string{c.Limit})
	}
	if c.Offset != "" {
		section("OFFSET", []string{c.Offset})
	}
	section("SUBQUERIES", subqueries)
}
