// Command analyze runs the validator over parser/testdata and reports how
// each check behaves on accepted and rejected queries.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sqlc-dev/querydiff/parser"
	"github.com/sqlc-dev/querydiff/validate"
)

type testMetadata struct {
	Todo       bool `json:"todo,omitempty"`
	ParseError bool `json:"parse_error,omitempty"`
	Invalid    bool `json:"invalid,omitempty"`
}

type hits struct {
	valid   int
	invalid int
}

func main() {
	testdataDir := "parser/testdata"
	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Println("Error reading testdata:", err)
		os.Exit(1)
	}

	checks := make(map[string]*hits)
	var falsePositives, misses []string
	var total int

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testDir := filepath.Join(testdataDir, entry.Name())

		var metadata testMetadata
		if metadataBytes, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
			if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
				continue
			}
		}
		if metadata.Todo {
			continue
		}

		queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
		if err != nil {
			continue
		}
		total++

		ok, errs := validate.Validate(string(queryBytes), parser.DialectAuto)
		for _, e := range errs {
			name := checkName(e)
			if checks[name] == nil {
				checks[name] = &hits{}
			}
			if metadata.Invalid {
				checks[name].invalid++
			} else {
				checks[name].valid++
			}
		}

		switch {
		case !metadata.Invalid && !ok:
			falsePositives = append(falsePositives, fmt.Sprintf("%s: %s", entry.Name(), errs[0].Error()))
		case metadata.Invalid && ok:
			misses = append(misses, entry.Name())
		}
	}

	fmt.Printf("Analyzed %d tests\n\n", total)

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("=== Findings by check ===")
	fmt.Printf("%-45s %6s %8s\n", "check", "valid", "invalid")
	for _, name := range names {
		fmt.Printf("%-45s %6d %8d\n", name, checks[name].valid, checks[name].invalid)
	}

	if len(falsePositives) > 0 {
		fmt.Printf("\nFalse positives (%d):\n", len(falsePositives))
		for _, fp := range falsePositives {
			fmt.Printf("  %s\n", fp)
		}
	}
	if len(misses) > 0 {
		fmt.Printf("\nInvalid queries accepted (%d):\n", len(misses))
		for _, m := range misses {
			fmt.Printf("  %s\n", m)
		}
	}
	if len(falsePositives) > 0 || len(misses) > 0 {
		os.Exit(1)
	}
}

// checkName groups findings by kind and the first two words of their
// message, e.g. "STRUCTURAL_DEFECT Possible typo".
func checkName(e validate.ValidationError) string {
	words := strings.Fields(e.Message)
	if len(words) > 2 {
		words = words[:2]
	}
	return string(e.Kind) + " " + strings.TrimRight(strings.Join(words, " "), ":")
}
