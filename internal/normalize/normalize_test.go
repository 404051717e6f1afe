package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitespace(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t", Whitespace("  SELECT\ta\n\n  FROM   t \n"))
	assert.Equal(t, "", Whitespace(" \n\t "))
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "SELECT 1 -- one\nFROM t", "SELECT 1 \nFROM t"},
		{"hash", "SELECT 1 # one", "SELECT 1 "},
		{"block keeps line breaks", "SELECT /* a\nb */ 1\nFROM t", "SELECT \n 1\nFROM t"},
		{"markers in strings", "SELECT '--x', '/*y*/'", "SELECT '--x', '/*y*/'"},
		{"none", "SELECT 1", "SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripComments(tt.input))
		})
	}
}

func TestLines(t *testing.T) {
	input := "SELECT\n  a,\n\n  b\r\nFROM t\n"
	assert.Equal(t, []string{"SELECT", "  a,", "", "  b", "FROM t"}, Lines(input, false))
	assert.Equal(t, []string{"SELECT", "a,", "b", "FROM t"}, Lines(input, true))
	assert.Empty(t, Lines("", true))
}
