package parser_test

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/stretchr/testify/require"
)

func TestLookupDialect(t *testing.T) {
	tests := []struct {
		name     string
		expected Dialect
	}{
		{"mysql", MySQL{}},
		{"MySQL", MySQL{}},
		{"postgresql", PostgreSQL{}},
		{"postgres", PostgreSQL{}},
		{"oracle", Oracle{}},
		{"sql92", BaseDialect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := LookupDialect(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, d)
		})
	}

	_, err := LookupDialect("sqlserver")
	require.EqualError(t, err, `unknown dialect "sqlserver" (supported: mysql, oracle, postgres, postgresql, sql92)`)

	require.Equal(t, []string{"mysql", "oracle", "postgres", "postgresql", "sql92"}, Dialects())
	require.Equal(t, "mysql", DefaultDialect().Name())
}

func TestDialect_Limit(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		sql     string
		limit   *query.Limit
	}{
		{
			name:    "mysql row count",
			dialect: MySQL{},
			sql:     "SELECT * FROM t LIMIT 10",
			limit:   &query.Limit{RowCount: 10, OffsetParameterIndex: -1, RowCountParameterIndex: -1},
		},
		{
			name:    "mysql offset and row count",
			dialect: MySQL{},
			sql:     "SELECT * FROM t ORDER BY id LIMIT 20, 10 FOR UPDATE",
			limit:   &query.Limit{Offset: 20, RowCount: 10, OffsetParameterIndex: -1, RowCountParameterIndex: -1},
		},
		{
			name:    "mysql parameters",
			dialect: MySQL{},
			sql:     "SELECT * FROM t WHERE a = ? LIMIT ? OFFSET ? LOCK IN SHARE MODE",
			limit:   &query.Limit{RowCount: -1, OffsetParameterIndex: 2, RowCountParameterIndex: 1},
		},
		{
			name:    "postgresql limit offset",
			dialect: PostgreSQL{},
			sql:     "SELECT * FROM t LIMIT 10 OFFSET 20",
			limit:   &query.Limit{Offset: 20, RowCount: 10, OffsetParameterIndex: -1, RowCountParameterIndex: -1},
		},
		{
			name:    "postgresql offset limit",
			dialect: PostgreSQL{},
			sql:     "SELECT * FROM t OFFSET $1 LIMIT ALL FOR SHARE OF t NOWAIT",
			limit:   &query.Limit{RowCount: -1, OffsetParameterIndex: 0, RowCountParameterIndex: -1},
		},
		{
			name:    "postgresql fetch",
			dialect: PostgreSQL{},
			sql:     "SELECT * FROM t ORDER BY id OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY FOR NO KEY UPDATE SKIP LOCKED",
			limit:   &query.Limit{Offset: 5, RowCount: 10, OffsetParameterIndex: -1, RowCountParameterIndex: -1},
		},
		{
			name:    "postgresql fetch first row",
			dialect: PostgreSQL{},
			sql:     "SELECT * FROM t FETCH FIRST ROW ONLY",
			limit:   &query.Limit{RowCount: 1, OffsetParameterIndex: -1, RowCountParameterIndex: -1},
		},
		{
			name:    "oracle fetch",
			dialect: Oracle{},
			sql:     "SELECT * FROM t ORDER BY id OFFSET 10 ROWS FETCH FIRST :n ROWS ONLY FOR UPDATE OF t.id WAIT 5",
			limit:   &query.Limit{Offset: 10, RowCount: -1, OffsetParameterIndex: -1, RowCountParameterIndex: 0},
		},
		{
			name:    "no limit",
			dialect: Oracle{},
			sql:     "SELECT * FROM t FOR UPDATE SKIP LOCKED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ParseString(tt.sql, tt.dialect)
			require.NoError(t, err)
			require.Equal(t, tt.limit, ctx.Limit)
		})
	}
}

func TestDialect_LimitErrors(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		sql     string
	}{
		{"mysql missing count", MySQL{}, "SELECT * FROM t LIMIT"},
		{"mysql bad lock", MySQL{}, "SELECT * FROM t LOCK IN SHARE"},
		{"mysql for", MySQL{}, "SELECT * FROM t FOR SHARE"},
		{"postgresql fetch", PostgreSQL{}, "SELECT * FROM t FETCH 10 ROWS ONLY"},
		{"postgresql only", PostgreSQL{}, "SELECT * FROM t FETCH FIRST 10 ROWS"},
		{"postgresql lock", PostgreSQL{}, "SELECT * FROM t FOR DELETE"},
		{"oracle skip", Oracle{}, "SELECT * FROM t FOR UPDATE SKIP"},
		{"decimal", MySQL{}, "SELECT * FROM t LIMIT 1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.sql, tt.dialect)
			require.True(t, errors.Is(err, ErrSyntax), "%v", err)
		})
	}
}

func TestDialect_Keywords(t *testing.T) {
	// LIMIT is common, FETCH only reserved where the dialect uses it
	ctx, err := ParseString("SELECT id fetch FROM t", MySQL{})
	require.NoError(t, err)
	require.Equal(t, "fetch", *ctx.Items[0].Alias())

	_, err = ParseString("SELECT id fetch FROM t", PostgreSQL{})
	require.True(t, errors.Is(err, ErrSyntax))
}
