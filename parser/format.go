package parser

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/querydiff/internal/format"
)

// FormatOptions controls Format.
type FormatOptions = format.Options

// Format returns the SQL text of a parsed query. ClickHouse statements are
// serialized by their own AST and ignore the layout options.
func Format(q *Query, opts FormatOptions) string {
	if q == nil {
		return ""
	}
	if q.Statement != nil {
		return format.Statement(q.Statement, opts)
	}
	parts := make([]string, 0, len(q.ClickHouse))
	for _, stmt := range q.ClickHouse {
		parts = append(parts, fmt.Sprint(stmt))
	}
	sep := "; "
	if opts.Pretty {
		sep = ";\n"
	}
	return strings.Join(parts, sep)
}

// Compact returns the query on a single line.
func Compact(q *Query) string {
	return Format(q, FormatOptions{})
}

// Pretty returns the query with one clause per line.
func Pretty(q *Query) string {
	return Format(q, FormatOptions{Pretty: true})
}

// Normalize returns the canonical pretty form used when comparing queries:
// one clause per line with lower-cased identifiers.
func Normalize(q *Query) string {
	return Format(q, FormatOptions{Pretty: true, NormalizeIdentifiers: true})
}
