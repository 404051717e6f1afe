// Package token defines constants representing the lexical tokens of SQL.
package token

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	COMMENT

	// Literals
	IDENT  // identifiers
	NUMBER // integer or float literals
	STRING // string literals

	// Operators
	PLUS         // +
	MINUS        // -
	ASTERISK     // *
	SLASH        // /
	PERCENT      // %
	EQ           // =
	NEQ          // != or <>
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	CONCAT       // ||
	ARROW        // -> or ->>
	NULL_SAFE_EQ // <=>
	CARET        // ^
	AMPERSAND    // &
	PIPE         // |
	TILDE        // ~
	BANG         // !

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?

	// Keywords
	keyword_beg
	ALL
	AND
	ANY
	AS
	ASC
	BETWEEN
	BINARY
	BY
	CASE
	COLLATE
	CROSS
	DATE
	DELETE
	DESC
	DISTINCT
	DIV
	ELSE
	END
	ESCAPE
	EXCEPT
	EXISTS
	FALSE
	FOR
	FROM
	FULL
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTERSECT
	INTERVAL
	INTO
	IS
	JOIN
	LEFT
	LIKE
	LIMIT
	MOD
	NATURAL
	NOT
	NULL
	OFFSET
	ON
	OR
	ORDER
	OUTER
	REGEXP
	RIGHT
	RLIKE
	SELECT
	SET
	SOME
	STRAIGHT_JOIN
	THEN
	TIME
	TIMESTAMP
	TRUE
	UNION
	UPDATE
	USING
	VALUES
	WHEN
	WHERE
	WITH
	XOR
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:         "+",
	MINUS:        "-",
	ASTERISK:     "*",
	SLASH:        "/",
	PERCENT:      "%",
	EQ:           "=",
	NEQ:          "!=",
	LT:           "<",
	GT:           ">",
	LTE:          "<=",
	GTE:          ">=",
	CONCAT:       "||",
	ARROW:        "->",
	NULL_SAFE_EQ: "<=>",
	CARET:        "^",
	AMPERSAND:    "&",
	PIPE:         "|",
	TILDE:        "~",
	BANG:         "!",

	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",
	COLON:     ":",
	QUESTION:  "?",

	ALL:           "ALL",
	AND:           "AND",
	ANY:           "ANY",
	AS:            "AS",
	ASC:           "ASC",
	BETWEEN:       "BETWEEN",
	BINARY:        "BINARY",
	BY:            "BY",
	CASE:          "CASE",
	COLLATE:       "COLLATE",
	CROSS:         "CROSS",
	DATE:          "DATE",
	DELETE:        "DELETE",
	DESC:          "DESC",
	DISTINCT:      "DISTINCT",
	DIV:           "DIV",
	ELSE:          "ELSE",
	END:           "END",
	ESCAPE:        "ESCAPE",
	EXCEPT:        "EXCEPT",
	EXISTS:        "EXISTS",
	FALSE:         "FALSE",
	FOR:           "FOR",
	FROM:          "FROM",
	FULL:          "FULL",
	GROUP:         "GROUP",
	HAVING:        "HAVING",
	IN:            "IN",
	INNER:         "INNER",
	INSERT:        "INSERT",
	INTERSECT:     "INTERSECT",
	INTERVAL:      "INTERVAL",
	INTO:          "INTO",
	IS:            "IS",
	JOIN:          "JOIN",
	LEFT:          "LEFT",
	LIKE:          "LIKE",
	LIMIT:         "LIMIT",
	MOD:           "MOD",
	NATURAL:       "NATURAL",
	NOT:           "NOT",
	NULL:          "NULL",
	OFFSET:        "OFFSET",
	ON:            "ON",
	OR:            "OR",
	ORDER:         "ORDER",
	OUTER:         "OUTER",
	REGEXP:        "REGEXP",
	RIGHT:         "RIGHT",
	RLIKE:         "RLIKE",
	SELECT:        "SELECT",
	SET:           "SET",
	SOME:          "SOME",
	STRAIGHT_JOIN: "STRAIGHT_JOIN",
	THEN:          "THEN",
	TIME:          "TIME",
	TIMESTAMP:     "TIMESTAMP",
	TRUE:          "TRUE",
	UNION:         "UNION",
	UPDATE:        "UPDATE",
	USING:         "USING",
	VALUES:        "VALUES",
	WHEN:          "WHEN",
	WHERE:         "WHERE",
	WITH:          "WITH",
	XOR:           "XOR",
}

// String returns the string representation of the token.
func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps upper-case keyword strings to their token types.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup returns the token type for an identifier string.
// If the string is a keyword, it returns the keyword token.
// Otherwise, it returns IDENT.
func Lookup(ident string) Token {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// IsClause reports whether the token starts a top-level clause.
func (tok Token) IsClause() bool {
	switch tok {
	case SELECT, FROM, WHERE, GROUP, ORDER, HAVING, LIMIT, OFFSET, UNION:
		return true
	}
	return false
}

// IsJoin reports whether the token can begin a join operator.
func (tok Token) IsJoin() bool {
	switch tok {
	case JOIN, INNER, LEFT, RIGHT, FULL, CROSS, NATURAL, OUTER, STRAIGHT_JOIN:
		return true
	}
	return false
}

// IsConnective reports whether the token joins or continues a condition
// rather than supplying content of its own: boolean operators and the
// branch keywords of a CASE expression.
func (tok Token) IsConnective() bool {
	switch tok {
	case AND, OR, XOR, THEN, ELSE, END, WHEN:
		return true
	}
	return false
}

// PrecedesLiteral reports whether a string literal may legitimately follow
// the keyword without a comparison operator in between.
func (tok Token) PrecedesLiteral() bool {
	switch tok {
	case ALL, AND, ANY, AS, BETWEEN, BINARY, CASE, COLLATE, DATE, DIV, ELSE,
		ESCAPE, EXISTS, FROM, HAVING, IN, INTERVAL, IS, LIKE, LIMIT, MOD, NOT,
		OFFSET, ON, OR, REGEXP, RLIKE, SELECT, SET, SOME, THEN, TIME,
		TIMESTAMP, VALUES, WHEN, WHERE, XOR:
		return true
	}
	return false
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}
