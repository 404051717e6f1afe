package parser

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/querydiff/internal/explain"
)

// Explain returns the node tree of a parsed query. ClickHouse statements
// are listed by type with their serialized text.
func Explain(q *Query) string {
	if q == nil {
		return ""
	}
	if q.Statement != nil {
		return explain.Explain(q.Statement)
	}
	var sb strings.Builder
	for _, stmt := range q.ClickHouse {
		name := strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*parser.")
		fmt.Fprintf(&sb, "%s %s\n", name, fmt.Sprint(stmt))
	}
	return sb.String()
}
