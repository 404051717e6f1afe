package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/querydiff/lexer"
	"github.com/sqlc-dev/querydiff/token"
)

func TestTokenize(t *testing.T) {
	items := lexer.Significant("SELECT id, `order` FROM t WHERE x >= 1.5e3 AND y <> 'it''s'")

	var got []token.Token
	for _, item := range items {
		got = append(got, item.Token)
	}
	want := []token.Token{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.GTE, token.NUMBER, token.AND, token.IDENT,
		token.NEQ, token.STRING,
	}
	assert.Equal(t, want, got)

	assert.Equal(t, "order", items[3].Value)
	assert.Equal(t, '`', items[3].Quote)
	assert.Equal(t, "1.5e3", items[9].Value)
	assert.Equal(t, "it's", items[13].Value)
	assert.Equal(t, '\'', items[13].Quote)
}

func TestPositions(t *testing.T) {
	sql := "SELECT a\n  FROM t"
	items := lexer.Significant(sql)
	require.Len(t, items, 4)

	from := items[2]
	assert.Equal(t, token.FROM, from.Token)
	assert.Equal(t, 2, from.Pos.Line)
	assert.Equal(t, 3, from.Pos.Column)
	assert.Equal(t, "FROM", sql[from.Pos.Offset:from.End])
}

func TestMultibytePositions(t *testing.T) {
	sql := "SELECT 'héllo' AS x"
	items := lexer.Significant(sql)
	require.Len(t, items, 4)

	lit := items[1]
	assert.Equal(t, "'héllo'", sql[lit.Pos.Offset:lit.End])
	assert.Equal(t, 8, lit.Pos.Column)
	assert.Equal(t, 16, items[2].Pos.Column)
}

func TestComments(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader("-- head\nSELECT 1 # tail\n/* block\ncomment */ FROM t"))

	var comments, significant int
	for _, item := range items {
		switch item.Token {
		case token.COMMENT:
			comments++
		case token.EOF:
		default:
			significant++
		}
	}
	assert.Equal(t, 3, comments)
	assert.Equal(t, 4, significant)
	assert.Equal(t, token.EOF, items[len(items)-1].Token)
}

func TestCommentMarkersInsideStrings(t *testing.T) {
	items := lexer.Significant("SELECT '-- not a comment', \"/* nor this */\"")
	require.Len(t, items, 4)
	assert.Equal(t, "-- not a comment", items[1].Value)
	assert.Equal(t, "/* nor this */", items[3].Value)
	assert.Equal(t, '"', items[3].Quote)
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'a\nb'`, "a\nb"},
		{`'tab\there'`, "tab\there"},
		{`'quote\'s'`, "quote's"},
		{`'back\\slash'`, `back\slash`},
		{`'unknown\q'`, "unknownq"},
		{`''`, ""},
		{`'unterminated`, "unterminated"},
	}
	for _, tt := range tests {
		items := lexer.Significant(tt.input)
		require.Len(t, items, 1, tt.input)
		assert.Equal(t, token.STRING, items[0].Token, tt.input)
		assert.Equal(t, tt.want, items[0].Value, tt.input)
	}
}

func TestPrefixedStrings(t *testing.T) {
	items := lexer.Significant("SELECT x'4D', N'name', b'01'")
	require.Len(t, items, 6)
	for _, i := range []int{1, 3, 5} {
		assert.Equal(t, token.STRING, items[i].Token)
	}
	assert.Equal(t, "4D", items[1].Value)
}

func TestIdentifiers(t *testing.T) {
	items := lexer.Significant("SELECT @user_var, 1st_col, 0x1F, $x FROM t")
	require.Len(t, items, 10)
	assert.Equal(t, token.IDENT, items[1].Token)
	assert.Equal(t, "@user_var", items[1].Value)
	assert.Equal(t, token.IDENT, items[3].Token)
	assert.Equal(t, "1st_col", items[3].Value)
	assert.Equal(t, token.NUMBER, items[5].Token)
	assert.Equal(t, token.IDENT, items[7].Token)
}
