package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sqlc-dev/querydiff/diff"
	"github.com/sqlc-dev/querydiff/validate"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The query is invalid or could not be processed
	ExitCommandError = 2 // Bad arguments, unreadable input or configuration
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

var (
	warnColor    = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// encode writes v in a structured format. It reports false for the text
// format, which each command renders itself.
func encode(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// writeNotice renders one notice, coloured by severity.
func writeNotice(w io.Writer, n diff.Notice) {
	c := infoColor
	if n.Severity == diff.SeverityWarn {
		c = warnColor
	}
	c.Fprintf(w, "%-4s ", n.Severity)
	fmt.Fprintln(w, n.String())
}

// writeValidationErrors renders validation findings one per line.
func writeValidationErrors(w io.Writer, errs []validate.ValidationError) {
	for _, e := range errs {
		errorColor.Fprint(w, "  ✗ ")
		fmt.Fprintf(w, "[%s] %s\n", e.Kind, e.Error())
	}
}
