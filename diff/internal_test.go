package diff

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/sqlc-dev/querydiff/parser"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcde", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 5))
	assert.Equal(t, "éé...", truncate("éééééé", 5))
}

func TestDescribeError(t *testing.T) {
	err := errors.Wrap(&parser.Error{Msg: "syntax error"}, "SQL A")
	assert.Equal(t, "parser.Error: SQL A: syntax error", describeError(err))

	assert.Equal(t, "Error: boom", describeError(errors.New("boom")))
	assert.Equal(t, "diff.PanicError: panic: oops", describeError(&PanicError{Value: "oops"}))
}
