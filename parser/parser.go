// Package parser adapts the external SQL grammars used by querydiff.
//
// MySQL-dialect text (and text in the "auto" dialect) is parsed with
// github.com/xwb1989/sqlparser. ClickHouse text is parsed with
// github.com/AfterShip/clickhouse-sql-parser, which is used for strict
// syntax checking and re-serialization only.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xwb1989/sqlparser"
)

// Dialect selects the grammar used to parse a query.
type Dialect string

const (
	DialectAuto       Dialect = "auto"
	DialectMySQL      Dialect = "mysql"
	DialectClickHouse Dialect = "clickhouse"
)

// Dialects lists the accepted dialect names.
var Dialects = []Dialect{DialectAuto, DialectMySQL, DialectClickHouse}

// ParseDialect converts a user-supplied name into a Dialect. The empty
// string selects DialectAuto.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DialectAuto, nil
	case "mysql":
		return DialectMySQL, nil
	case "clickhouse":
		return DialectClickHouse, nil
	}
	return "", errors.Errorf("unknown dialect %q (valid: auto, mysql, clickhouse)", name)
}

// Query is a parsed query. It is read-only once returned by Parse.
type Query struct {
	SQL     string
	Dialect Dialect

	// Statement is set for the MySQL and auto dialects.
	Statement sqlparser.Statement
	// ClickHouse holds the statements parsed in the ClickHouse dialect.
	ClickHouse []aftership.Expr
}

// Error is a parse failure. Line and Column are 1-based; 0 means the
// position is unknown.
type Error struct {
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (Line %d, Col: %d)", e.Msg, e.Line, e.Column)
	}
	return e.Msg
}

var (
	positionPattern = regexp.MustCompile(`at position (\d+)`)
	lineColPattern  = regexp.MustCompile(`(?i)line[:\s]*(\d+)\s*,\s*col(?:umn)?[:\s]*(\d+)`)
)

// Parse parses a single statement. Failures, including panics raised by the
// underlying grammar, are returned as *Error.
func Parse(sql string, dialect Dialect) (q *Query, err error) {
	if strings.TrimSpace(sql) == "" {
		return nil, &Error{Msg: "empty query"}
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Str("dialect", string(dialect)).Interface("panic", r).Msg("parser panicked")
			q = nil
			err = &Error{Msg: fmt.Sprintf("parser failure: %v", r)}
		}
	}()

	switch dialect {
	case DialectClickHouse:
		return parseClickHouse(sql)
	case DialectAuto, DialectMySQL, "":
		stmt, err := sqlparser.Parse(sql)
		if err != nil {
			return nil, newError(sql, err.Error())
		}
		return &Query{SQL: sql, Dialect: dialect, Statement: stmt}, nil
	}
	return nil, errors.Errorf("unknown dialect %q", dialect)
}

func parseClickHouse(sql string) (*Query, error) {
	p := aftership.NewParser(sql)
	stmts, err := p.ParseStmts()
	if err != nil {
		return nil, newError(sql, err.Error())
	}
	if len(stmts) == 0 {
		return nil, &Error{Msg: "no statement found"}
	}
	return &Query{SQL: sql, Dialect: DialectClickHouse, ClickHouse: stmts}, nil
}

// newError builds an *Error from a parser message, deriving the line and
// column from either a byte position or an explicit line/column pair.
func newError(sql, msg string) *Error {
	e := &Error{Msg: msg}
	if m := lineColPattern.FindStringSubmatch(msg); m != nil {
		e.Line, _ = strconv.Atoi(m[1])
		e.Column, _ = strconv.Atoi(m[2])
		return e
	}
	if m := positionPattern.FindStringSubmatch(msg); m != nil {
		pos, _ := strconv.Atoi(m[1])
		e.Line, e.Column = lineColumn(sql, pos-1)
	}
	return e
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(sql string, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(sql) {
		offset = len(sql)
	}
	prefix := sql[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - strings.LastIndex(prefix, "\n")
	return line, col
}
