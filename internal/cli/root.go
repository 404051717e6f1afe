// Package cli implements the querydiff command tree.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sqlc-dev/querydiff/internal/config"
)

// RootOptions holds global flags for all commands. Config is populated
// before any subcommand runs.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Output     string
	Dialect    string
	NoColor    bool

	Config *config.Config
}

// NewRootCommand creates the root command for the querydiff CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "querydiff",
		Short: "Semantic diff and validation for SQL queries",
		Long: `querydiff compares two SQL queries clause by clause and reports what
changed, and validates single queries for defects a lenient parser accepts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			cfg, err := config.Load(opts.ConfigPath, cmd.Flags())
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			if !cfg.Color {
				color.NoColor = true
			}
			opts.Config = cfg
			log.Debug().Str("dialect", cfg.Dialect).Str("output", cfg.Output).Msg("loaded configuration")
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default is ./.querydiff.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Dialect, "dialect", "auto", "SQL dialect (auto|mysql|clickhouse)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewBeautifyCommand(opts))
	cmd.AddCommand(NewComponentsCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))

	return cmd
}

// setupLogging installs a console logger on w. Library packages only log
// at debug level, so they stay quiet unless verbose is set.
func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// readInput reads a query from path, or from stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", WrapExitError(ExitCommandError, "cannot read "+path, errors.WithStack(err))
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
