package extract

import (
	"fmt"
	"strings"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/pkg/errors"
)

// fromClickHouse extracts the components of a single ClickHouse SELECT.
// Set operations contribute the clauses of their first branch.
func fromClickHouse(stmts []aftership.Expr) (*Components, error) {
	if len(stmts) != 1 {
		return nil, errors.Wrapf(ErrUnsupportedStatement, "got %d statements", len(stmts))
	}
	sel, ok := stmts[0].(*aftership.SelectQuery)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedStatement, "got %s", describeClickHouse(stmts[0]))
	}

	c := &Components{}
	for _, item := range sel.SelectItems {
		c.Select = append(c.Select, item.String())
	}
	if sel.From != nil {
		collectSources(sel.From.Expr, c)
	}
	if sel.Where != nil {
		c.Where = splitClickHouse(sel.Where.Expr)
	}
	if sel.GroupBy != nil {
		if list, ok := sel.GroupBy.Expr.(*aftership.ColumnExprList); ok {
			for _, item := range list.Items {
				c.GroupBy = append(c.GroupBy, item.String())
			}
		} else if sel.GroupBy.Expr != nil {
			c.GroupBy = append(c.GroupBy, sel.GroupBy.Expr.String())
		}
	}
	if sel.Having != nil {
		c.Having = splitClickHouse(sel.Having.Expr)
	}
	if sel.OrderBy != nil {
		for _, item := range sel.OrderBy.Items {
			c.OrderBy = append(c.OrderBy, clickHouseOrderItem(item))
		}
	}
	if sel.Limit != nil {
		if sel.Limit.Limit != nil {
			c.Limit = sel.Limit.Limit.String()
		}
		if sel.Limit.Offset != nil {
			c.Offset = sel.Limit.Offset.String()
		}
	}

	c.Subqueries = clickHouseSubqueries(sel)
	return c, nil
}

func describeClickHouse(stmt aftership.Expr) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*parser.")
	return name + " statement"
}

// collectSources walks a FROM join tree. Tables reached through a comma
// are sources; tables introduced by a JOIN keyword become joins.
func collectSources(expr aftership.Expr, c *Components) {
	switch e := expr.(type) {
	case nil:
	case *aftership.JoinExpr:
		if len(e.Modifiers) == 0 {
			collectSources(e.Left, c)
			collectSources(e.Right, c)
			return
		}
		j := Join{Kind: clickHouseJoinKind(e.Modifiers), Table: e.Left.String()}
		switch constraint := e.Constraints.(type) {
		case *aftership.OnClause:
			j.On = constraint.On.String()
		case *aftership.UsingClause:
			for _, col := range constraint.Using.Items {
				j.Using = append(j.Using, col.String())
			}
		}
		c.Joins = append(c.Joins, j)
		collectSources(e.Right, c)
	default:
		c.From = append(c.From, e.String())
	}
}

// clickHouseJoinKind drops the JOIN and OUTER keywords. A bare JOIN and a
// CROSS JOIN are both INNER, matching the MySQL dialect.
func clickHouseJoinKind(modifiers []string) string {
	var words []string
	for _, m := range modifiers {
		switch m = strings.ToUpper(m); m {
		case "JOIN", "OUTER":
		default:
			words = append(words, m)
		}
	}
	kind := strings.Join(words, " ")
	if kind == "" || kind == "CROSS" {
		return "INNER"
	}
	return kind
}

func splitClickHouse(expr aftership.Expr) []string {
	if op, ok := expr.(*aftership.BinaryOperation); ok && strings.EqualFold(string(op.Operation), "AND") {
		return append(splitClickHouse(op.LeftExpr), splitClickHouse(op.RightExpr)...)
	}
	if expr == nil {
		return nil
	}
	return []string{expr.String()}
}

func clickHouseOrderItem(expr aftership.Expr) OrderItem {
	order, ok := expr.(*aftership.OrderExpr)
	if !ok {
		return OrderItem{Expr: expr.String(), Direction: "ASC"}
	}
	direction := strings.ToUpper(string(order.Direction))
	if direction == "" {
		direction = "ASC"
	}
	return OrderItem{Expr: order.Expr.String(), Direction: direction}
}

// subqueryCollector records every SubQuery it enters along with the stack
// of nodes above it.
type subqueryCollector struct {
	aftership.DefaultASTVisitor
	stack []aftership.Expr
	out   []Subquery
}

func (v *subqueryCollector) Enter(expr aftership.Expr) {
	if sq, ok := expr.(*aftership.SubQuery); ok && sq.Select != nil {
		v.out = append(v.out, Subquery{
			Location: classifyClickHouse(v.stack),
			Body:     sq.Select.String(),
		})
	}
	v.stack = append(v.stack, expr)
}

func (v *subqueryCollector) Leave(expr aftership.Expr) {
	v.stack = v.stack[:len(v.stack)-1]
}

func clickHouseSubqueries(sel *aftership.SelectQuery) []Subquery {
	v := &subqueryCollector{}
	if err := sel.Accept(v); err != nil {
		return nil
	}
	return v.out
}

// classifyClickHouse looks at the nearest ancestor that is not a list,
// alias or table wrapper, then falls back to whether the subquery sits in
// a select list.
func classifyClickHouse(parents []aftership.Expr) Location {
outer:
	for i := len(parents) - 1; i >= 0; i-- {
		switch p := parents[i].(type) {
		case *aftership.ColumnExprList, *aftership.ParamExprList, *aftership.AliasExpr,
			*aftership.TableExpr, *aftership.JoinTableExpr:
			continue
		case *aftership.BinaryOperation:
			if op := strings.ToUpper(string(p.Operation)); op == "IN" || strings.HasSuffix(op, " IN") {
				return LocationWhereIn
			}
		case *aftership.FunctionExpr:
			if p.Name != nil && strings.EqualFold(p.Name.Name, "EXISTS") {
				return LocationWhereExists
			}
		case *aftership.WhereClause, *aftership.PrewhereClause:
			return LocationWhere
		case *aftership.HavingClause:
			return LocationHaving
		case *aftership.FromClause:
			return LocationFrom
		case *aftership.JoinExpr:
			if len(p.Modifiers) > 0 {
				return LocationJoin
			}
			return LocationFrom
		}
		break outer
	}
	for _, ancestor := range parents {
		if _, ok := ancestor.(*aftership.SelectItem); ok {
			return LocationSelect
		}
	}
	return LocationUnknown
}
