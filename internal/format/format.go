// Package format provides SQL formatting for the MySQL-dialect AST.
//
// Keywords and function names are written in upper case. Identifiers and
// literals are written through the parser's own quoting rules so that every
// formatted statement parses back to an equivalent tree.
package format

import (
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Options controls the layout of formatted SQL.
type Options struct {
	// Pretty places each clause on its own line and indents clause bodies.
	Pretty bool
	// NormalizeIdentifiers lower-cases table, column and alias names.
	NormalizeIdentifiers bool
}

const indentUnit = "  "

type formatter struct {
	sb     *strings.Builder
	opts   Options
	indent string
}

// Statement returns the SQL text of stmt.
func Statement(stmt sqlparser.Statement, opts Options) string {
	var sb strings.Builder
	f := &formatter{sb: &sb, opts: opts}
	f.statement(stmt)
	return sb.String()
}

// Node returns the SQL text of a single node. Nodes without a dedicated
// layout fall back to the parser's own serialization.
func Node(node sqlparser.SQLNode, opts Options) string {
	var sb strings.Builder
	f := &formatter{sb: &sb, opts: opts}
	f.node(node)
	return sb.String()
}

func (f *formatter) nested() *formatter {
	return &formatter{sb: f.sb, opts: f.opts, indent: f.indent + indentUnit}
}

// newline starts a new line at the formatter's indentation in pretty mode,
// or writes a single space otherwise.
func (f *formatter) newline() {
	if f.opts.Pretty {
		f.sb.WriteString("\n")
		f.sb.WriteString(f.indent)
		return
	}
	f.sb.WriteString(" ")
}

func (f *formatter) statement(stmt sqlparser.Statement) {
	switch s := stmt.(type) {
	case sqlparser.SelectStatement:
		f.selectStatement(s)
	default:
		f.sb.WriteString(sqlparser.String(stmt))
	}
}

func (f *formatter) node(node sqlparser.SQLNode) {
	switch n := node.(type) {
	case sqlparser.SelectStatement:
		f.selectStatement(n)
	case sqlparser.Expr:
		f.expr(n)
	case sqlparser.SelectExpr:
		f.selectExpr(n)
	case sqlparser.TableExpr:
		f.tableExpr(n)
	case *sqlparser.Order:
		f.order(n)
	default:
		f.sb.WriteString(sqlparser.String(node))
	}
}

func (f *formatter) colIdent(id sqlparser.ColIdent) string {
	if f.opts.NormalizeIdentifiers {
		id = sqlparser.NewColIdent(strings.ToLower(id.String()))
	}
	return sqlparser.String(id)
}

func (f *formatter) tableIdent(id sqlparser.TableIdent) string {
	if f.opts.NormalizeIdentifiers {
		id = sqlparser.NewTableIdent(strings.ToLower(id.String()))
	}
	return sqlparser.String(id)
}

func (f *formatter) tableName(name sqlparser.TableName) {
	if name.IsEmpty() {
		return
	}
	if !name.Qualifier.IsEmpty() {
		f.sb.WriteString(f.tableIdent(name.Qualifier))
		f.sb.WriteString(".")
	}
	f.sb.WriteString(f.tableIdent(name.Name))
}
