package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xwb1989/sqlparser"
)

func TestStatement(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		opts Options
		want string
	}{
		{
			name: "keywords upper-cased",
			sql:  "select distinct a, count(*) as n from t group by a having count(*) > 1",
			want: "SELECT DISTINCT a, COUNT(*) AS n FROM t GROUP BY a HAVING COUNT(*) > 1",
		},
		{
			name: "plain join becomes cross join",
			sql:  "select * from a join b",
			want: "SELECT * FROM a CROSS JOIN b",
		},
		{
			name: "using",
			sql:  "select * from a left join b using (id)",
			want: "SELECT * FROM a LEFT JOIN b USING (id)",
		},
		{
			name: "case and between",
			sql:  "select case when x between 1 and 2 then 'a' else 'b' end from t",
			want: "SELECT CASE WHEN x BETWEEN 1 AND 2 THEN 'a' ELSE 'b' END FROM t",
		},
		{
			name: "union",
			sql:  "select a from t union all select a from u order by a limit 1",
			want: "SELECT a FROM t UNION ALL SELECT a FROM u ORDER BY a ASC LIMIT 1",
		},
		{
			name: "normalized identifiers",
			sql:  "select T.Col from Tbl as T",
			opts: Options{NormalizeIdentifiers: true},
			want: "SELECT t.col FROM tbl AS t",
		},
		{
			name: "keyword identifiers stay quoted",
			sql:  "select `order` from t",
			want: "SELECT `order` FROM t",
		},
		{
			name: "pretty",
			sql:  "select a, b from t where a = 1 and b = 2 group by a order by b limit 10, 5",
			opts: Options{Pretty: true},
			want: "SELECT\n  a,\n  b\nFROM t\nWHERE\n  a = 1 AND b = 2\nGROUP BY\n  a\nORDER BY\n  b ASC\nLIMIT 5\nOFFSET 10",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := sqlparser.Parse(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Statement(stmt, tt.opts))
		})
	}
}

func TestNode(t *testing.T) {
	stmt, err := sqlparser.Parse("select a from t where (x = 1 or y = 2) and z is not null")
	require.NoError(t, err)

	where := stmt.(*sqlparser.Select).Where
	and := where.Expr.(*sqlparser.AndExpr)
	assert.Equal(t, "(x = 1 OR y = 2)", Node(and.Left, Options{}))
	assert.Equal(t, "z IS NOT NULL", Node(and.Right, Options{}))
}

func TestJoinKeyword(t *testing.T) {
	stmt, err := sqlparser.Parse("select * from a inner join b on a.id = b.id")
	require.NoError(t, err)

	join := stmt.(*sqlparser.Select).From[0].(*sqlparser.JoinTableExpr)
	assert.Equal(t, "INNER JOIN", JoinKeyword(join))
}
