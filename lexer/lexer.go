// Package lexer implements a position-tracking lexer for SQL text.
//
// The lexer never fails. Malformed input such as an unterminated string or
// a stray character yields ILLEGAL or truncated items instead of errors.
package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlc-dev/querydiff/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	reader *bufio.Reader
	ch     rune // current character
	width  int  // byte width of ch
	pos    token.Position
	eof    bool
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token token.Token
	Value string
	Pos   token.Position
	End   int  // byte offset just past the token
	Quote rune // opening quote of a STRING or quoted IDENT, 0 otherwise
}

// New creates a new Lexer from an io.Reader.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		reader: bufio.NewReader(r),
		pos:    token.Position{Offset: 0, Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.eof {
		l.ch = 0
		return
	}

	r, size, err := l.reader.ReadRune()
	if err != nil {
		l.pos.Offset += l.width
		l.width = 0
		l.ch = 0
		l.eof = true
		return
	}

	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset += l.width
	l.width = size
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}
	bytes, err := l.reader.Peek(utf8.UTFMax)
	if len(bytes) == 0 && err != nil {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func (l *Lexer) skipWhitespace() {
	// Skip whitespace and BOM (byte order mark U+FEFF)
	for unicode.IsSpace(l.ch) || l.ch == '\uFEFF' {
		l.readChar()
	}
}

func (l *Lexer) emit(tok token.Token, value string, pos token.Position) Item {
	return Item{Token: tok, Value: value, Pos: pos, End: l.pos.Offset}
}

// single consumes one character and returns it as tok.
func (l *Lexer) single(tok token.Token, pos token.Position) Item {
	ch := l.ch
	l.readChar()
	return l.emit(tok, string(ch), pos)
}

// double consumes two characters and returns them as tok.
func (l *Lexer) double(tok token.Token, pos token.Position) Item {
	var sb strings.Builder
	sb.WriteRune(l.ch)
	l.readChar()
	sb.WriteRune(l.ch)
	l.readChar()
	return l.emit(tok, sb.String(), pos)
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Item {
	l.skipWhitespace()

	pos := l.pos

	if l.eof || l.ch == 0 {
		return l.emit(token.EOF, "", pos)
	}

	// Handle comments
	if l.ch == '-' && l.peekChar() == '-' {
		return l.readLineComment()
	}
	if l.ch == '#' {
		return l.readLineComment()
	}
	if l.ch == '/' && l.peekChar() == '*' {
		return l.readBlockComment()
	}

	switch l.ch {
	case '+':
		return l.single(token.PLUS, pos)
	case '-':
		if l.peekChar() == '>' {
			item := l.double(token.ARROW, pos)
			if l.ch == '>' {
				l.readChar()
				return l.emit(token.ARROW, "->>", pos)
			}
			return item
		}
		return l.single(token.MINUS, pos)
	case '*':
		return l.single(token.ASTERISK, pos)
	case '/':
		return l.single(token.SLASH, pos)
	case '%':
		return l.single(token.PERCENT, pos)
	case '=':
		if l.peekChar() == '=' {
			return l.double(token.EQ, pos)
		}
		return l.single(token.EQ, pos)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NEQ, pos)
		}
		return l.single(token.BANG, pos)
	case '<':
		switch l.peekChar() {
		case '=':
			item := l.double(token.LTE, pos)
			if l.ch == '>' {
				l.readChar()
				return l.emit(token.NULL_SAFE_EQ, "<=>", pos)
			}
			return item
		case '>':
			return l.double(token.NEQ, pos)
		}
		return l.single(token.LT, pos)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GTE, pos)
		}
		return l.single(token.GT, pos)
	case '|':
		if l.peekChar() == '|' {
			return l.double(token.CONCAT, pos)
		}
		return l.single(token.PIPE, pos)
	case '&':
		if l.peekChar() == '&' {
			return l.double(token.AND, pos)
		}
		return l.single(token.AMPERSAND, pos)
	case '^':
		return l.single(token.CARET, pos)
	case '~':
		return l.single(token.TILDE, pos)
	case ':':
		return l.single(token.COLON, pos)
	case '(':
		return l.single(token.LPAREN, pos)
	case ')':
		return l.single(token.RPAREN, pos)
	case ',':
		return l.single(token.COMMA, pos)
	case '.':
		if unicode.IsDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.single(token.DOT, pos)
	case ';':
		return l.single(token.SEMICOLON, pos)
	case '?':
		return l.single(token.QUESTION, pos)
	case '\'', '"':
		return l.readString(l.ch)
	case '`':
		return l.readBacktickIdentifier()
	case '@':
		return l.readVariable()
	default:
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		return l.single(token.ILLEGAL, pos)
	}
}

func (l *Lexer) readLineComment() Item {
	pos := l.pos
	var sb strings.Builder
	for l.ch != '\n' && !l.eof {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.COMMENT, sb.String(), pos)
}

func (l *Lexer) readBlockComment() Item {
	pos := l.pos
	var sb strings.Builder
	// Skip /*
	sb.WriteRune(l.ch)
	l.readChar()
	sb.WriteRune(l.ch)
	l.readChar()

	for !l.eof {
		if l.ch == '*' && l.peekChar() == '/' {
			sb.WriteRune(l.ch)
			l.readChar()
			sb.WriteRune(l.ch)
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.COMMENT, sb.String(), pos)
}

// readString reads a quoted string literal and decodes doubled quotes and
// backslash escapes. An unterminated string runs to the end of input.
func (l *Lexer) readString(quote rune) Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for !l.eof {
		if l.ch == quote {
			// Check for escaped quote (e.g., '' becomes ')
			if l.peekChar() == quote {
				sb.WriteRune(l.ch)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			break
		}
		if l.ch == '\\' {
			l.readChar() // consume backslash
			if l.eof {
				break
			}
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune('\x00')
			case 'b':
				sb.WriteRune('\b')
			case 'Z':
				sb.WriteRune('\x1a')
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	item := l.emit(token.STRING, sb.String(), pos)
	item.Quote = quote
	return item
}

func (l *Lexer) readBacktickIdentifier() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening backtick

	for !l.eof {
		if l.ch == '`' {
			if l.peekChar() == '`' {
				sb.WriteRune('`')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	item := l.emit(token.IDENT, sb.String(), pos)
	item.Quote = '`'
	return item
}

func (l *Lexer) readVariable() Item {
	pos := l.pos
	var sb strings.Builder
	for l.ch == '@' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	for isIdentChar(l.ch) || l.ch == '.' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return l.emit(token.IDENT, sb.String(), pos)
}

func (l *Lexer) readNumber() Item {
	pos := l.pos
	var sb strings.Builder

	// Hex and binary literals: 0x1F, 0b101
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X' || l.peekChar() == 'b' || l.peekChar() == 'B') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for isHexDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.emit(token.NUMBER, sb.String(), pos)
	}

	for unicode.IsDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' {
		sb.WriteRune(l.ch)
		l.readChar()
		for unicode.IsDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if unicode.IsDigit(next) || next == '+' || next == '-' {
			sb.WriteRune(l.ch)
			l.readChar()
			sb.WriteRune(l.ch)
			l.readChar()
			for unicode.IsDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}
	// Identifiers may start with digits (e.g. 1st_column)
	if isIdentStart(l.ch) {
		for isIdentChar(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.emit(token.IDENT, sb.String(), pos)
	}
	return l.emit(token.NUMBER, sb.String(), pos)
}

func isHexDigit(ch rune) bool {
	return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) readIdentifier() Item {
	pos := l.pos

	// Prefixed string literals: x'..', b'..', N'..'
	switch l.ch {
	case 'x', 'X', 'b', 'B', 'n', 'N':
		if l.peekChar() == '\'' {
			l.readChar()
			item := l.readString('\'')
			item.Pos = pos
			return item
		}
	}

	var sb strings.Builder
	for isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	ident := sb.String()
	tok := token.Lookup(strings.ToUpper(ident))
	return l.emit(tok, ident, pos)
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize returns all tokens from the reader, including comments and the
// trailing EOF item.
func Tokenize(r io.Reader) []Item {
	l := New(r)
	var items []Item
	for {
		item := l.NextToken()
		items = append(items, item)
		if item.Token == token.EOF {
			break
		}
	}
	return items
}

// Significant returns the tokens of s with comments and the EOF item
// removed.
func Significant(s string) []Item {
	var items []Item
	for _, item := range Tokenize(strings.NewReader(s)) {
		if item.Token == token.COMMENT || item.Token == token.EOF {
			continue
		}
		items = append(items, item)
	}
	return items
}
