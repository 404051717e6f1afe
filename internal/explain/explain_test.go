package explain_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xwb1989/sqlparser"

	"github.com/sqlc-dev/querydiff/internal/explain"
)

func TestExplain(t *testing.T) {
	testdataDir := "../../parser/testdata"

	entries, err := os.ReadDir(testdataDir)
	require.NoError(t, err)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testName := entry.Name()
		testDir := filepath.Join(testdataDir, testName)

		// Check if explain.txt exists
		explainBytes, err := os.ReadFile(filepath.Join(testDir, "explain.txt"))
		if err != nil {
			continue // Skip test cases without explain.txt
		}
		expected := string(explainBytes)

		t.Run(testName, func(t *testing.T) {
			queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
			require.NoError(t, err)
			query := strings.TrimSpace(string(queryBytes))

			stmt, err := sqlparser.Parse(query)
			require.NoError(t, err)

			assert.Equal(t, expected, explain.Explain(stmt), "query: %s", query)
		})
	}
}

func TestExplainDetails(t *testing.T) {
	stmt, err := sqlparser.Parse("SELECT DISTINCT a FROM t LEFT JOIN u ON t.id = u.id ORDER BY a DESC")
	require.NoError(t, err)

	out := explain.Explain(stmt)
	assert.True(t, strings.HasPrefix(out, "Select distinct (children "), out)
	assert.Contains(t, out, "JoinTableExpr left join (children ")
	assert.Contains(t, out, "Order desc (children 1)")
}
