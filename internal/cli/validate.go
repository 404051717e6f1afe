package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/validate"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid" yaml:"valid"`
	Errors []validate.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.sql>",
		Short: "Check a query for syntax errors and structural defects",
		Long: `Validate a SQL query.

Runs the strict parser, checks that re-serializing the parsed query keeps
every literal, and scans the text for unbalanced parentheses and quotes,
misspelled keywords, missing comparison operators, empty clauses and
unterminated CASE expressions. Exits with status 1 when the query is
invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	sql, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	valid, errs := validate.Validate(sql, opts.Config.ParsedDialect())
	result := ValidationResult{Valid: valid, Errors: errs}

	w := cmd.OutOrStdout()
	if ok, err := encode(w, opts.Config.Output, result); ok && err != nil {
		return err
	} else if !ok {
		if valid {
			successColor.Fprintln(w, "✓ Query is valid")
		} else {
			errorColor.Fprintln(w, "✗ Validation failed")
			writeValidationErrors(w, errs)
		}
	}

	if !valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}
	return nil
}
