package format

import (
	"strings"

	"github.com/xwb1989/sqlparser"
)

func (f *formatter) selectStatement(stmt sqlparser.SelectStatement) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		f.formatSelect(s)
	case *sqlparser.Union:
		f.formatUnion(s)
	case *sqlparser.ParenSelect:
		f.sb.WriteString("(")
		f.selectStatement(s.Select)
		f.sb.WriteString(")")
	default:
		f.sb.WriteString(sqlparser.String(stmt))
	}
}

// formatSelect formats a SELECT query.
func (f *formatter) formatSelect(sel *sqlparser.Select) {
	if sel == nil {
		return
	}
	body := f.nested()

	f.sb.WriteString("SELECT")
	if sel.Cache != "" {
		f.sb.WriteString(" ")
		f.sb.WriteString(strings.ToUpper(strings.TrimSpace(sel.Cache)))
	}
	if sel.Distinct != "" {
		f.sb.WriteString(" DISTINCT")
	}
	if sel.Hints != "" {
		f.sb.WriteString(" ")
		f.sb.WriteString(strings.ToUpper(strings.TrimSpace(sel.Hints)))
	}
	for i, expr := range sel.SelectExprs {
		if i > 0 {
			f.sb.WriteString(",")
		}
		body.newline()
		body.selectExpr(expr)
	}

	if len(sel.From) > 0 {
		f.newline()
		f.sb.WriteString("FROM ")
		f.tableExprs(sel.From)
	}

	f.where(sel.Where)

	if len(sel.GroupBy) > 0 {
		f.newline()
		f.sb.WriteString("GROUP BY")
		for i, expr := range sel.GroupBy {
			if i > 0 {
				f.sb.WriteString(",")
			}
			body.newline()
			body.expr(expr)
		}
	}

	f.where(sel.Having)
	f.orderBy(sel.OrderBy)
	f.limit(sel.Limit)
	f.lock(sel.Lock)
}

// formatUnion formats a UNION of two select statements.
func (f *formatter) formatUnion(u *sqlparser.Union) {
	f.selectStatement(u.Left)
	f.newline()
	f.sb.WriteString(strings.ToUpper(u.Type))
	f.newline()
	f.selectStatement(u.Right)
	f.orderBy(u.OrderBy)
	f.limit(u.Limit)
	f.lock(u.Lock)
}

func (f *formatter) where(w *sqlparser.Where) {
	if w == nil || w.Expr == nil {
		return
	}
	f.newline()
	f.sb.WriteString(strings.ToUpper(w.Type))
	body := f.nested()
	body.newline()
	body.expr(w.Expr)
}

func (f *formatter) orderBy(orderBy sqlparser.OrderBy) {
	if len(orderBy) == 0 {
		return
	}
	body := f.nested()
	f.newline()
	f.sb.WriteString("ORDER BY")
	for i, order := range orderBy {
		if i > 0 {
			f.sb.WriteString(",")
		}
		body.newline()
		body.order(order)
	}
}

func (f *formatter) order(order *sqlparser.Order) {
	f.expr(order.Expr)
	if _, ok := order.Expr.(*sqlparser.NullVal); ok {
		return
	}
	direction := order.Direction
	if direction == "" {
		direction = sqlparser.AscScr
	}
	f.sb.WriteString(" ")
	f.sb.WriteString(strings.ToUpper(direction))
}

func (f *formatter) limit(limit *sqlparser.Limit) {
	if limit == nil {
		return
	}
	f.newline()
	f.sb.WriteString("LIMIT ")
	f.expr(limit.Rowcount)
	if limit.Offset != nil {
		f.newline()
		f.sb.WriteString("OFFSET ")
		f.expr(limit.Offset)
	}
}

func (f *formatter) lock(lock string) {
	if lock == "" {
		return
	}
	f.newline()
	f.sb.WriteString(strings.ToUpper(strings.TrimSpace(lock)))
}

// tableExprs formats a comma-separated FROM list.
func (f *formatter) tableExprs(exprs sqlparser.TableExprs) {
	for i, expr := range exprs {
		if i > 0 {
			f.sb.WriteString(", ")
		}
		f.tableExpr(expr)
	}
}

func (f *formatter) tableExpr(expr sqlparser.TableExpr) {
	switch t := expr.(type) {
	case *sqlparser.AliasedTableExpr:
		f.aliasedTableExpr(t)
	case *sqlparser.ParenTableExpr:
		f.sb.WriteString("(")
		f.tableExprs(t.Exprs)
		f.sb.WriteString(")")
	case *sqlparser.JoinTableExpr:
		f.joinTableExpr(t)
	default:
		f.sb.WriteString(sqlparser.String(expr))
	}
}

func (f *formatter) aliasedTableExpr(t *sqlparser.AliasedTableExpr) {
	switch e := t.Expr.(type) {
	case sqlparser.TableName:
		f.tableName(e)
	case *sqlparser.Subquery:
		f.subquery(e)
	default:
		f.sb.WriteString(sqlparser.String(t.Expr))
	}
	if len(t.Partitions) > 0 {
		f.sb.WriteString(strings.ToUpper(sqlparser.String(t.Partitions)))
	}
	if !t.As.IsEmpty() {
		f.sb.WriteString(" AS ")
		f.sb.WriteString(f.tableIdent(t.As))
	}
	if t.Hints != nil {
		f.sb.WriteString(sqlparser.String(t.Hints))
	}
}

func (f *formatter) joinTableExpr(j *sqlparser.JoinTableExpr) {
	f.tableExpr(j.LeftExpr)
	f.newline()
	f.sb.WriteString(JoinKeyword(j))
	f.sb.WriteString(" ")
	f.tableExpr(j.RightExpr)
	if j.Condition.On != nil {
		body := f.nested()
		body.newline()
		body.sb.WriteString("ON ")
		body.expr(j.Condition.On)
	}
	if len(j.Condition.Using) > 0 {
		f.sb.WriteString(" USING (")
		for i, col := range j.Condition.Using {
			if i > 0 {
				f.sb.WriteString(", ")
			}
			f.sb.WriteString(f.colIdent(col))
		}
		f.sb.WriteString(")")
	}
}

// JoinKeyword returns the upper-case join operator of j. Plain joins are
// written as INNER JOIN when they carry a condition and CROSS JOIN
// otherwise; the parser reads both back as the same plain join.
func JoinKeyword(j *sqlparser.JoinTableExpr) string {
	if j.Join == sqlparser.JoinStr {
		if j.Condition.On != nil || len(j.Condition.Using) > 0 {
			return "INNER JOIN"
		}
		return "CROSS JOIN"
	}
	return strings.ToUpper(j.Join)
}

// subquery formats a parenthesized select statement. In pretty mode the
// inner statement is indented one level below the current line.
func (f *formatter) subquery(sq *sqlparser.Subquery) {
	f.sb.WriteString("(")
	if f.opts.Pretty {
		inner := f.nested()
		inner.sb.WriteString("\n")
		inner.sb.WriteString(inner.indent)
		inner.selectStatement(sq.Select)
		f.newline()
	} else {
		f.selectStatement(sq.Select)
	}
	f.sb.WriteString(")")
}
