package diff

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog/log"

	"github.com/sqlc-dev/querydiff/internal/normalize"
)

const (
	labelA       = "SQL A"
	labelB       = "SQL B"
	contextLines = 3
)

// Text returns a unified diff of a and b labelled SQL A and SQL B. With
// ignoreWhitespace set, lines are trimmed and blank lines dropped first.
// Identical inputs produce the empty string.
func Text(a, b string, ignoreWhitespace bool) string {
	linesA := normalize.Lines(a, ignoreWhitespace)
	linesB := normalize.Lines(b, ignoreWhitespace)
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminate(linesA),
		B:        terminate(linesB),
		FromFile: labelA,
		ToFile:   labelB,
		Context:  contextLines,
	})
	if err != nil {
		log.Debug().Err(err).Msg("unified diff failed")
		return ""
	}
	return out
}

// terminate appends the line break difflib expects at the end of every
// line.
func terminate(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
