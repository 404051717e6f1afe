package extract

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xwb1989/sqlparser"

	"github.com/sqlc-dev/querydiff/internal/format"
	"github.com/sqlc-dev/querydiff/parser"
)

// ErrUnsupportedStatement is returned for statements other than SELECT
// and UNION.
var ErrUnsupportedStatement = errors.New("only SELECT statements have components")

// FromSQL parses sql and extracts its components. Parse failures are
// returned unchanged as *parser.Error.
func FromSQL(sql string, dialect parser.Dialect) (*Components, error) {
	q, err := parser.Parse(sql, dialect)
	if err != nil {
		return nil, err
	}
	return FromQuery(q)
}

// FromQuery extracts the components of an already parsed query. Absent
// clauses leave the matching fields empty.
func FromQuery(q *parser.Query) (*Components, error) {
	if q.Statement == nil {
		c, err := fromClickHouse(q.ClickHouse)
		if err != nil {
			return nil, err
		}
		logComponents(c)
		return c, nil
	}
	stmt, ok := q.Statement.(sqlparser.SelectStatement)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedStatement, "got %s", describe(q.Statement))
	}
	sel := leftmostSelect(stmt)
	if sel == nil {
		return nil, errors.Wrapf(ErrUnsupportedStatement, "got %s", describe(q.Statement))
	}

	c := &Components{}
	for _, expr := range sel.SelectExprs {
		c.Select = append(c.Select, text(expr))
	}
	for _, expr := range sel.From {
		if source := text(leftmostTable(expr)); source != "dual" {
			c.From = append(c.From, source)
		}
		collectJoins(expr, &c.Joins)
	}
	if sel.Where != nil {
		c.Where = splitPredicates(sel.Where.Expr)
	}
	for _, expr := range sel.GroupBy {
		c.GroupBy = append(c.GroupBy, text(expr))
	}
	if sel.Having != nil {
		c.Having = splitPredicates(sel.Having.Expr)
	}

	orderBy, limit := sel.OrderBy, sel.Limit
	if u, ok := stmt.(*sqlparser.Union); ok {
		if len(u.OrderBy) > 0 {
			orderBy = u.OrderBy
		}
		if u.Limit != nil {
			limit = u.Limit
		}
	}
	for _, order := range orderBy {
		c.OrderBy = append(c.OrderBy, orderItem(order))
	}
	if limit != nil {
		c.Limit = text(limit.Rowcount)
		if limit.Offset != nil {
			c.Offset = text(limit.Offset)
		}
	}

	c.Subqueries = subqueries(stmt)
	logComponents(c)
	return c, nil
}

func logComponents(c *Components) {
	log.Debug().
		Int("select", len(c.Select)).
		Int("joins", len(c.Joins)).
		Int("where", len(c.Where)).
		Int("subqueries", len(c.Subqueries)).
		Msg("extracted components")
}

// text returns the compact serialization of node.
func text(node sqlparser.SQLNode) string {
	return format.Node(node, format.Options{})
}

func describe(stmt sqlparser.Statement) string {
	name := sqlparser.String(stmt)
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	return strings.ToUpper(name) + " statement"
}

func leftmostSelect(stmt sqlparser.SelectStatement) *sqlparser.Select {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return s
	case *sqlparser.Union:
		return leftmostSelect(s.Left)
	case *sqlparser.ParenSelect:
		return leftmostSelect(s.Select)
	}
	return nil
}

// leftmostTable returns the first table of a join tree.
func leftmostTable(expr sqlparser.TableExpr) sqlparser.TableExpr {
	switch t := expr.(type) {
	case *sqlparser.JoinTableExpr:
		return leftmostTable(t.LeftExpr)
	case *sqlparser.ParenTableExpr:
		if len(t.Exprs) > 0 {
			return leftmostTable(t.Exprs[0])
		}
	}
	return expr
}

// collectJoins appends the joins of a join tree in source order.
func collectJoins(expr sqlparser.TableExpr, joins *[]Join) {
	switch t := expr.(type) {
	case *sqlparser.JoinTableExpr:
		collectJoins(t.LeftExpr, joins)
		j := Join{
			Kind:  joinKind(t.Join),
			Table: text(leftmostTable(t.RightExpr)),
		}
		if t.Condition.On != nil {
			j.On = text(t.Condition.On)
		}
		for _, col := range t.Condition.Using {
			j.Using = append(j.Using, sqlparser.String(col))
		}
		*joins = append(*joins, j)
		collectJoins(t.RightExpr, joins)
	case *sqlparser.ParenTableExpr:
		for _, inner := range t.Exprs {
			collectJoins(inner, joins)
		}
	}
}

func joinKind(join string) string {
	switch join {
	case sqlparser.JoinStr:
		return "INNER"
	case sqlparser.StraightJoinStr:
		return "STRAIGHT"
	}
	return strings.ToUpper(strings.TrimSuffix(join, " join"))
}

// splitPredicates flattens a chain of AND operators into its operands. Any
// other node, including OR and parenthesized groups, is kept whole.
func splitPredicates(expr sqlparser.Expr) []string {
	if and, ok := expr.(*sqlparser.AndExpr); ok {
		return append(splitPredicates(and.Left), splitPredicates(and.Right)...)
	}
	if expr == nil {
		return nil
	}
	return []string{text(expr)}
}

func orderItem(order *sqlparser.Order) OrderItem {
	direction := strings.ToUpper(order.Direction)
	if direction == "" {
		direction = "ASC"
	}
	return OrderItem{Expr: text(order.Expr), Direction: direction}
}

// subqueries enumerates every nested subquery of stmt in depth-first order.
func subqueries(stmt sqlparser.SelectStatement) []Subquery {
	var out []Subquery
	parser.Inspect(stmt, func(node sqlparser.SQLNode, parents []sqlparser.SQLNode) bool {
		sq, ok := node.(*sqlparser.Subquery)
		if !ok {
			return true
		}
		out = append(out, Subquery{
			Location: classify(parents),
			Body:     text(sq.Select),
		})
		return true
	})
	return out
}

// classify determines the location of a subquery from its immediate
// parent, falling back to whether it sits inside a select list.
func classify(parents []sqlparser.SQLNode) Location {
	if len(parents) == 0 {
		return LocationUnknown
	}
	switch p := parents[len(parents)-1].(type) {
	case *sqlparser.ComparisonExpr:
		if p.Operator == sqlparser.InStr || p.Operator == sqlparser.NotInStr {
			return LocationWhereIn
		}
	case *sqlparser.ExistsExpr:
		return LocationWhereExists
	case *sqlparser.Where:
		if p.Type == sqlparser.HavingStr {
			return LocationHaving
		}
		return LocationWhere
	case *sqlparser.AliasedTableExpr:
		if len(parents) >= 2 {
			if j, ok := parents[len(parents)-2].(*sqlparser.JoinTableExpr); ok && j.RightExpr == sqlparser.TableExpr(p) {
				return LocationJoin
			}
		}
		return LocationFrom
	}
	for _, ancestor := range parents {
		if _, ok := ancestor.(sqlparser.SelectExprs); ok {
			return LocationSelect
		}
	}
	return LocationUnknown
}
