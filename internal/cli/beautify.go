package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/validate"
)

// BeautifyResult holds the outcome of beautify.
type BeautifyResult struct {
	Valid  bool                       `json:"valid" yaml:"valid"`
	SQL    string                     `json:"sql" yaml:"sql"`
	Errors []validate.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewBeautifyCommand creates the beautify command.
func NewBeautifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beautify <file.sql>",
		Short: "Validate a query and print it with one clause per line",
		Long: `Beautify a SQL query.

The query is validated first. When it is valid it is printed with one
clause per line and indented clause bodies. Otherwise the validation
errors are printed and the command exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBeautify(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runBeautify(opts *RootOptions, cmd *cobra.Command, path string) error {
	sql, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	valid, out, errs := validate.ValidateAndBeautify(sql, opts.Config.ParsedDialect())
	result := BeautifyResult{Valid: valid, SQL: out, Errors: errs}

	w := cmd.OutOrStdout()
	if ok, err := encode(w, opts.Config.Output, result); ok && err != nil {
		return err
	} else if !ok {
		if valid {
			fmt.Fprintln(w, out)
		} else {
			errorColor.Fprintln(w, "✗ Cannot beautify an invalid query")
			writeValidationErrors(w, errs)
		}
	}

	if !valid {
		return NewExitError(ExitFailure, fmt.Sprintf("beautify failed with %d error(s)", len(errs)))
	}
	return nil
}
