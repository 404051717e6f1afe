package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlc-dev/querydiff/diff"
)

func TestTextIdentical(t *testing.T) {
	assert.Empty(t, diff.Text("SELECT a\nFROM t", "SELECT a\nFROM t", false))
	assert.Empty(t, diff.Text("", "", true))
}

func TestTextUnified(t *testing.T) {
	got := diff.Text("SELECT a\nFROM t", "SELECT b\nFROM t", false)
	assert.Equal(t, "--- SQL A\n+++ SQL B\n@@ -1,2 +1,2 @@\n-SELECT a\n+SELECT b\n FROM t\n", got)
}

func TestTextIgnoreWhitespace(t *testing.T) {
	a := "SELECT a\n\n   FROM t  \n"
	b := "SELECT a\nFROM t"
	assert.Empty(t, diff.Text(a, b, true))
	assert.NotEmpty(t, diff.Text(a, b, false))
}

func TestTextCRLF(t *testing.T) {
	assert.Empty(t, diff.Text("SELECT a\r\nFROM t", "SELECT a\nFROM t", false))
}
