// Command querydiff compares and validates SQL queries.
package main

import (
	"fmt"
	"os"

	"github.com/sqlc-dev/querydiff/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
