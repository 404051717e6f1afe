package format

import (
	"strings"

	"github.com/xwb1989/sqlparser"
)

func (f *formatter) selectExpr(expr sqlparser.SelectExpr) {
	switch e := expr.(type) {
	case *sqlparser.StarExpr:
		if !e.TableName.IsEmpty() {
			f.tableName(e.TableName)
			f.sb.WriteString(".")
		}
		f.sb.WriteString("*")
	case *sqlparser.AliasedExpr:
		f.expr(e.Expr)
		if !e.As.IsEmpty() {
			f.sb.WriteString(" AS ")
			f.sb.WriteString(f.colIdent(e.As))
		}
	default:
		f.sb.WriteString(sqlparser.String(expr))
	}
}

// expr formats an expression. Parenthesized groups are kept as written, so
// no precedence analysis is needed to reproduce the original tree.
func (f *formatter) expr(expr sqlparser.Expr) {
	switch e := expr.(type) {
	case nil:
		return
	case *sqlparser.AndExpr:
		f.binary(e.Left, "AND", e.Right)
	case *sqlparser.OrExpr:
		f.binary(e.Left, "OR", e.Right)
	case *sqlparser.NotExpr:
		f.sb.WriteString("NOT ")
		f.expr(e.Expr)
	case *sqlparser.ParenExpr:
		f.sb.WriteString("(")
		f.expr(e.Expr)
		f.sb.WriteString(")")
	case *sqlparser.ComparisonExpr:
		f.binary(e.Left, strings.ToUpper(e.Operator), e.Right)
		if e.Escape != nil {
			f.sb.WriteString(" ESCAPE ")
			f.expr(e.Escape)
		}
	case *sqlparser.RangeCond:
		f.expr(e.Left)
		f.sb.WriteString(" ")
		f.sb.WriteString(strings.ToUpper(e.Operator))
		f.sb.WriteString(" ")
		f.binary(e.From, "AND", e.To)
	case *sqlparser.IsExpr:
		f.expr(e.Expr)
		f.sb.WriteString(" ")
		f.sb.WriteString(strings.ToUpper(e.Operator))
	case *sqlparser.ExistsExpr:
		f.sb.WriteString("EXISTS ")
		f.subquery(e.Subquery)
	case *sqlparser.Subquery:
		f.subquery(e)
	case *sqlparser.ColName:
		f.colName(e)
	case *sqlparser.NullVal:
		f.sb.WriteString("NULL")
	case sqlparser.BoolVal:
		if e {
			f.sb.WriteString("TRUE")
		} else {
			f.sb.WriteString("FALSE")
		}
	case sqlparser.ValTuple:
		f.sb.WriteString("(")
		f.exprs(sqlparser.Exprs(e))
		f.sb.WriteString(")")
	case *sqlparser.BinaryExpr:
		f.binary(e.Left, strings.ToUpper(e.Operator), e.Right)
	case *sqlparser.UnaryExpr:
		f.sb.WriteString(strings.ToUpper(e.Operator))
		if _, ok := e.Expr.(*sqlparser.UnaryExpr); ok {
			f.sb.WriteString(" ")
		}
		f.expr(e.Expr)
	case *sqlparser.IntervalExpr:
		f.sb.WriteString("INTERVAL ")
		f.expr(e.Expr)
		f.sb.WriteString(" ")
		f.sb.WriteString(strings.ToUpper(e.Unit))
	case *sqlparser.FuncExpr:
		f.funcExpr(e)
	case *sqlparser.CaseExpr:
		f.caseExpr(e)
	default:
		// Literals, bind variables and the less common function forms.
		f.sb.WriteString(sqlparser.String(expr))
	}
}

func (f *formatter) binary(left sqlparser.Expr, op string, right sqlparser.Expr) {
	f.expr(left)
	f.sb.WriteString(" ")
	f.sb.WriteString(op)
	f.sb.WriteString(" ")
	f.expr(right)
}

func (f *formatter) exprs(exprs sqlparser.Exprs) {
	for i, expr := range exprs {
		if i > 0 {
			f.sb.WriteString(", ")
		}
		f.expr(expr)
	}
}

func (f *formatter) colName(col *sqlparser.ColName) {
	if !col.Qualifier.IsEmpty() {
		f.tableName(col.Qualifier)
		f.sb.WriteString(".")
	}
	f.sb.WriteString(f.colIdent(col.Name))
}

func (f *formatter) funcExpr(fn *sqlparser.FuncExpr) {
	if !fn.Qualifier.IsEmpty() {
		f.sb.WriteString(f.tableIdent(fn.Qualifier))
		f.sb.WriteString(".")
	}
	// Function names are never quoted, even when they collide with a
	// keyword.
	f.sb.WriteString(strings.ToUpper(fn.Name.String()))
	f.sb.WriteString("(")
	if fn.Distinct {
		f.sb.WriteString("DISTINCT ")
	}
	for i, arg := range fn.Exprs {
		if i > 0 {
			f.sb.WriteString(", ")
		}
		f.selectExpr(arg)
	}
	f.sb.WriteString(")")
}

func (f *formatter) caseExpr(c *sqlparser.CaseExpr) {
	f.sb.WriteString("CASE ")
	if c.Expr != nil {
		f.expr(c.Expr)
		f.sb.WriteString(" ")
	}
	for _, when := range c.Whens {
		f.sb.WriteString("WHEN ")
		f.expr(when.Cond)
		f.sb.WriteString(" THEN ")
		f.expr(when.Val)
		f.sb.WriteString(" ")
	}
	if c.Else != nil {
		f.sb.WriteString("ELSE ")
		f.expr(c.Else)
		f.sb.WriteString(" ")
	}
	f.sb.WriteString("END")
}
