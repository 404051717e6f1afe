// Package normalize provides text normalizations applied before SQL text is
// compared or measured.
package normalize

import (
	"regexp"
	"strings"

	"github.com/sqlc-dev/querydiff/lexer"
	"github.com/sqlc-dev/querydiff/token"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Whitespace collapses all whitespace sequences to a single space
// and trims leading/trailing whitespace.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// StripComments removes line and block comments. String literals that
// contain comment markers are left intact. Line breaks inside block comments
// are kept so that line numbers of the remaining text do not move.
func StripComments(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, item := range lexer.Tokenize(strings.NewReader(s)) {
		if item.Token != token.COMMENT {
			continue
		}
		sb.WriteString(s[last:item.Pos.Offset])
		sb.WriteString(strings.Repeat("\n", strings.Count(s[item.Pos.Offset:item.End], "\n")))
		last = item.End
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// Lines splits s into lines. When ignoreWhitespace is set, each line is
// trimmed and blank lines are dropped.
func Lines(s string, ignoreWhitespace bool) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if n := len(lines); lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if !ignoreWhitespace {
		return lines
	}
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
