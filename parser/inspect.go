package parser

import (
	"github.com/xwb1989/sqlparser"

	"github.com/sqlc-dev/querydiff/internal/astutil"
)

// Inspect traverses node in depth-first order. For every node it calls fn
// with the node and the chain of its ancestors, outermost first. If fn
// returns false, the children of that node are skipped. Absent optional
// clauses are not visited.
func Inspect(node sqlparser.SQLNode, fn func(node sqlparser.SQLNode, parents []sqlparser.SQLNode) bool) {
	inspect(node, nil, fn)
}

func inspect(node sqlparser.SQLNode, parents []sqlparser.SQLNode, fn func(sqlparser.SQLNode, []sqlparser.SQLNode) bool) {
	if astutil.IsNil(node) {
		return
	}
	if !fn(node, parents) {
		return
	}
	path := append(parents[:len(parents):len(parents)], node)
	for _, child := range astutil.Children(node) {
		inspect(child, path, fn)
	}
}
