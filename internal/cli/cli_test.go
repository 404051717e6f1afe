package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sqlc-dev/querydiff/diff"
	"github.com/sqlc-dev/querydiff/extract"
)

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeQuery(t *testing.T, name, sql string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(sql+"\n"), 0o644))
	return path
}

func TestCompareText(t *testing.T) {
	a := writeQuery(t, "a.sql", "SELECT id, name FROM users")
	b := writeQuery(t, "b.sql", "SELECT id, name, email FROM users")

	out, err := execute(t, "", "compare", a, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "INFO [SELECT] Added column/expression: email\n\n--- SQL A\n+++ SQL B\n"), out)
	assert.Contains(t, out, "+email\n")
}

func TestCompareIdentical(t *testing.T) {
	a := writeQuery(t, "a.sql", "select id from users")

	out, err := execute(t, "SELECT id\nFROM users", "compare", a, "-")
	require.NoError(t, err)
	assert.Equal(t, "✓ Queries are identical\n", out)
}

func TestCompareJSON(t *testing.T) {
	a := writeQuery(t, "a.sql", "SELECT * FROM a")
	b := writeQuery(t, "b.sql", "SELECT * FROM a LEFT JOIN b ON a.id = b.a_id")

	out, err := execute(t, "", "compare", "-o", "json", a, b)
	require.NoError(t, err)

	var res diff.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Notices, 1)
	assert.Equal(t, diff.CategoryJoin, res.Notices[0].Category)
	assert.NotEmpty(t, res.TextDiff)
	assert.NotEmpty(t, res.NormalizedB)
}

func TestCompareNoSemantic(t *testing.T) {
	a := writeQuery(t, "a.sql", "SELECT a FROM t")
	b := writeQuery(t, "b.sql", "SELECT b FROM t")

	out, err := execute(t, "", "compare", "--semantic=false", "--normalize=false", a, b)
	require.NoError(t, err)
	assert.Equal(t, "--- SQL A\n+++ SQL B\n@@ -1 +1 @@\n-SELECT a FROM t\n+SELECT b FROM t\n", out)
}

func TestCompareParseError(t *testing.T) {
	a := writeQuery(t, "a.sql", "SELECT FROM")
	b := writeQuery(t, "b.sql", "SELECT 1")

	out, err := execute(t, "", "compare", a, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "WARN [GENERAL] Parse error - semantic diff unavailable\n   Semantic diff unavailable: parser.Error: SQL A: "), out)
}

func TestCompareMissingFile(t *testing.T) {
	_, err := execute(t, "", "compare", filepath.Join(t.TempDir(), "nope.sql"), "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "cannot read")
}

func TestCompareArgs(t *testing.T) {
	_, err := execute(t, "", "compare", "only-one.sql")
	require.Error(t, err)
}

func TestValidateValid(t *testing.T) {
	out, err := execute(t, "SELECT id FROM users WHERE active = 1\n", "validate", "-")
	require.NoError(t, err)
	assert.Equal(t, "✓ Query is valid\n", out)
}

func TestValidateInvalid(t *testing.T) {
	path := writeQuery(t, "bad.sql", "SELECT id FORM users")

	out, err := execute(t, "", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with")

	assert.True(t, strings.HasPrefix(out, "✗ Validation failed\n"), out)
	assert.Contains(t, out, "  ✗ [STRUCTURAL_DEFECT] Line 1, Column 11: Possible typo: 'FORM' (did you mean 'FROM'?)\n")
	assert.Contains(t, out, "  ✗ [PARSE_FAILURE] ")
}

func TestValidateJSON(t *testing.T) {
	out, err := execute(t, "SELECT * FROM users WHERE (a = 1", "validate", "--output", "json", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var res ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)
}

func TestBeautify(t *testing.T) {
	out, err := execute(t, "select id, name from users where active = 1", "beautify", "-")
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  id,\n  name\nFROM users\nWHERE\n  active = 1\n", out)
}

func TestBeautifyYAML(t *testing.T) {
	out, err := execute(t, "select a from t", "beautify", "-o", "yaml", "-")
	require.NoError(t, err)

	var res BeautifyResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, "SELECT\n  a\nFROM t", res.SQL)
}

func TestBeautifyInvalid(t *testing.T) {
	out, err := execute(t, "SELECT\nFROM users", "beautify", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Cannot beautify an invalid query\n")
	assert.Contains(t, out, "Empty SELECT clause")
}

func TestComponents(t *testing.T) {
	sql := "SELECT u.name FROM users u LEFT JOIN orders o ON o.user_id = u.id WHERE u.id IN (SELECT user_id FROM vip) ORDER BY u.name LIMIT 10"
	out, err := execute(t, sql, "components", "-")
	require.NoError(t, err)
	assert.Equal(t, `SELECT:
  u.name
FROM:
  users AS u
JOIN:
  LEFT JOIN orders AS o ON o.user_id = u.id
WHERE:
  u.id IN (SELECT user_id FROM vip)
ORDER BY:
  u.name ASC
LIMIT:
  10
SUBQUERIES:
  [WHERE-IN] SELECT user_id FROM vip
`, out)
}

func TestComponentsJSON(t *testing.T) {
	out, err := execute(t, "SELECT a FROM t GROUP BY a", "components", "--output=json", "-")
	require.NoError(t, err)

	var c extract.Components
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, []string{"a"}, c.Select)
	assert.Equal(t, []string{"a"}, c.GroupBy)
}

func TestComponentsUnsupported(t *testing.T) {
	_, err := execute(t, "DELETE FROM t", "components", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestExplain(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("..", "..", "parser", "testdata", "select_basic", "explain.txt"))
	require.NoError(t, err)
	sql, err := os.ReadFile(filepath.Join("..", "..", "parser", "testdata", "select_basic", "query.sql"))
	require.NoError(t, err)

	out, err := execute(t, string(sql), "explain", "-")
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestExplainParseError(t *testing.T) {
	_, err := execute(t, "SELECT (", "explain", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "parse failed")
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := execute(t, "SELECT 1", "validate", "--dialect", "oracle", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", assert.AnError)))
	assert.Equal(t, "bad: "+assert.AnError.Error(), WrapExitError(ExitCommandError, "bad", assert.AnError).Error())
}
