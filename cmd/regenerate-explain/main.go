package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/querydiff/parser"
)

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	create := flag.Bool("create", false, "Write explain.txt for tests that do not have one yet")
	dryRun := flag.Bool("dry-run", false, "Print trees without writing files")
	flag.Parse()

	testdataDir := "parser/testdata"

	if *testName != "" {
		if err := processTest(filepath.Join(testdataDir, *testName), true, *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		return
	}

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var errors []string
	var processed, skipped int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(testdataDir, entry.Name())
		if _, err := os.Stat(filepath.Join(testDir, "explain.txt")); err != nil && !*create {
			skipped++
			continue
		}
		if err := processTest(testDir, *create, *dryRun); err != nil {
			if _, ok := err.(*parser.Error); ok {
				skipped++
				continue
			}
			errors = append(errors, fmt.Sprintf("%s: %v", entry.Name(), err))
		} else {
			processed++
		}
	}

	fmt.Printf("\nProcessed: %d, Skipped: %d, Errors: %d\n", processed, skipped, len(errors))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

func processTest(testDir string, create, dryRun bool) error {
	queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return fmt.Errorf("reading query.sql: %w", err)
	}

	q, err := parser.Parse(string(queryBytes), parser.DialectAuto)
	if err != nil {
		return err
	}
	explain := parser.Explain(q)

	outputPath := filepath.Join(testDir, "explain.txt")
	existing, err := os.ReadFile(outputPath)
	switch {
	case err == nil && string(existing) == explain:
		fmt.Printf("%s: unchanged\n", filepath.Base(testDir))
		return nil
	case err != nil && !create:
		return fmt.Errorf("no explain.txt")
	}

	if dryRun {
		fmt.Printf("%s:\n%s\n", filepath.Base(testDir), indent(explain))
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(explain), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("%s -> %s\n", filepath.Base(testDir), filepath.Base(outputPath))
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
