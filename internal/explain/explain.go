// Package explain renders a parsed query as an indented node tree.
package explain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/sqlc-dev/querydiff/internal/astutil"
)

// Explain returns the node tree of stmt, one node per line, each level
// indented by one space.
func Explain(stmt sqlparser.Statement) string {
	var sb strings.Builder
	Node(&sb, stmt, 0)
	return sb.String()
}

// Node writes the tree rooted at node to sb.
func Node(sb *strings.Builder, node sqlparser.SQLNode, depth int) {
	if astutil.IsNil(node) {
		return
	}
	indent := strings.Repeat(" ", depth)
	name := astutil.TypeName(node)

	// Leaves carry their text on the same line.
	if text, ok := leafText(node); ok {
		if text == "" {
			return
		}
		fmt.Fprintf(sb, "%s%s %s\n", indent, name, text)
		return
	}

	children := visibleChildren(node)
	label := name
	if detail := detailText(node); detail != "" {
		label += " " + detail
	}
	if len(children) > 0 {
		fmt.Fprintf(sb, "%s%s (children %d)\n", indent, label, len(children))
	} else {
		fmt.Fprintf(sb, "%s%s\n", indent, label)
	}
	for _, child := range children {
		Node(sb, child, depth+1)
	}
}

// visibleChildren drops empty leaves and empty lists so that absent names
// and clauses do not show up as nodes.
func visibleChildren(node sqlparser.SQLNode) []sqlparser.SQLNode {
	var out []sqlparser.SQLNode
	for _, child := range astutil.Children(node) {
		if text, ok := leafText(child); ok && text == "" {
			continue
		}
		if v := reflect.ValueOf(child); v.Kind() == reflect.Slice && v.Len() == 0 {
			continue
		}
		out = append(out, child)
	}
	return out
}

func leafText(node sqlparser.SQLNode) (string, bool) {
	switch n := node.(type) {
	case *sqlparser.ColName, *sqlparser.SQLVal, *sqlparser.NullVal, sqlparser.BoolVal, sqlparser.ListArg:
		return sqlparser.String(n), true
	case sqlparser.TableName:
		return sqlparser.String(n), true
	case sqlparser.ColIdent:
		return sqlparser.String(n), true
	case sqlparser.TableIdent:
		return sqlparser.String(n), true
	case *sqlparser.StarExpr:
		return sqlparser.String(n), true
	}
	return "", false
}

func detailText(node sqlparser.SQLNode) string {
	switch n := node.(type) {
	case *sqlparser.Union:
		return n.Type
	case *sqlparser.JoinTableExpr:
		return n.Join
	case *sqlparser.Where:
		return n.Type
	case *sqlparser.ComparisonExpr:
		return n.Operator
	case *sqlparser.RangeCond:
		return n.Operator
	case *sqlparser.IsExpr:
		return n.Operator
	case *sqlparser.BinaryExpr:
		return n.Operator
	case *sqlparser.UnaryExpr:
		return strings.TrimSpace(n.Operator)
	case *sqlparser.FuncExpr:
		return n.Name.String()
	case *sqlparser.Order:
		return n.Direction
	case *sqlparser.IntervalExpr:
		return n.Unit
	case *sqlparser.Select:
		return strings.TrimSpace(n.Distinct)
	}
	return ""
}
