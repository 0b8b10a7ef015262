package parser_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/lexer"
	. "github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/pseudomuto/shardkeeper/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	sql := "SELECT o.user_id, AVG(o.price) FROM t_order o WHERE o.status = ? GROUP BY o.user_id ORDER BY o.created_at DESC LIMIT 10"

	ctx, err := Parse(strings.NewReader(sql), MySQL{})
	require.NoError(t, err)

	require.Equal(t, sql, ctx.SQL)
	require.False(t, ctx.Distinct)
	require.False(t, ctx.ContainStar)
	require.Len(t, ctx.Items, 2)
	require.Equal(t, []string{"t_order"}, ctx.TableNames())
	require.Equal(t, 1, ctx.ParametersIndex)

	require.Len(t, ctx.GroupBy, 1)
	require.Equal(t, "o.user_id", ctx.GroupBy[0].QualifiedName())
	require.Nil(t, ctx.GroupBy[0].Alias)

	require.Len(t, ctx.OrderBy, 1)
	require.Equal(t, "o.created_at", ctx.OrderBy[0].QualifiedName())
	require.Equal(t, query.Desc, ctx.OrderBy[0].Direction)
	require.Equal(t, "sharding_gen_3", *ctx.OrderBy[0].Alias)

	require.Equal(t, 10, ctx.Limit.RowCount)

	items := ctx.ItemsToken()
	require.NotNil(t, items)
	require.Equal(t, strings.Index(sql, " FROM"), items.BeginPosition)
	require.Equal(t, []string{
		"COUNT(o.price) AS sharding_gen_1",
		"SUM(o.price) AS sharding_gen_2",
		"o.created_at AS sharding_gen_3",
	}, items.Items)
}

func TestParseString_AvgDecomposition(t *testing.T) {
	sql := "SELECT AVG(price) AS avg_price FROM t_order"

	ctx, err := ParseString(sql, nil)
	require.NoError(t, err)
	require.Len(t, ctx.Items, 1)

	avg, ok := ctx.Items[0].(*query.AggregationSelectItem)
	require.True(t, ok)
	require.Equal(t, query.Avg, avg.Type)
	require.Equal(t, "(price)", avg.InnerExpression)
	require.Equal(t, "avg_price", *avg.Alias())
	require.Equal(t, 1, avg.Index())

	require.Len(t, avg.Derived, 2)
	require.Equal(t, query.Count, avg.Derived[0].Type)
	require.Equal(t, "sharding_gen_1", *avg.Derived[0].As)
	require.Equal(t, -1, avg.Derived[0].Index())
	require.Empty(t, avg.Derived[0].Derived)
	require.Equal(t, query.Sum, avg.Derived[1].Type)
	require.Equal(t, "sharding_gen_2", *avg.Derived[1].As)

	require.Equal(t, len("SELECT AVG(price) AS avg_price"), ctx.SelectListEnd)
	require.Equal(t, ctx.SelectListEnd, ctx.ItemsToken().Position())
	require.Equal(t, []string{"COUNT(price) AS sharding_gen_1", "SUM(price) AS sharding_gen_2"}, ctx.ItemsToken().Items)
}

func TestParseString_GeneratedAliases(t *testing.T) {
	t.Run("skip client aliases", func(t *testing.T) {
		ctx, err := ParseString("SELECT AVG(x), y AS SHARDING_GEN_1 FROM t", nil)
		require.NoError(t, err)

		avg := ctx.AggregationItems()[0]
		require.Equal(t, "sharding_gen_2", *avg.Derived[0].As)
		require.Equal(t, "sharding_gen_3", *avg.Derived[1].As)
	})

	t.Run("strictly increasing across clauses", func(t *testing.T) {
		ctx, err := ParseString("SELECT AVG(a), AVG(b) FROM t GROUP BY c ORDER BY d", nil)
		require.NoError(t, err)

		require.Equal(t, []string{
			"COUNT(a) AS sharding_gen_1",
			"SUM(a) AS sharding_gen_2",
			"COUNT(b) AS sharding_gen_3",
			"SUM(b) AS sharding_gen_4",
			"c AS sharding_gen_5",
			"d AS sharding_gen_6",
		}, ctx.ItemsToken().Items)
	})

	t.Run("independent parsers", func(t *testing.T) {
		for range 2 {
			ctx, err := ParseString("SELECT id FROM t ORDER BY name", nil)
			require.NoError(t, err)
			require.Equal(t, "sharding_gen_1", *ctx.OrderBy[0].Alias)
		}
	})
}

func TestParseString_OrderBy(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		alias   *string
		ordinal *int
		items   []string
	}{
		{
			name:    "ordinal",
			sql:     "SELECT id, name FROM t ORDER BY 2",
			ordinal: utils.Ptr(2),
		},
		{
			name:  "existing alias",
			sql:   "SELECT id AS x FROM t ORDER BY x",
			alias: utils.Ptr("x"),
		},
		{
			name: "existing column without alias",
			sql:  "SELECT id FROM t ORDER BY ID",
		},
		{
			name:  "missing column",
			sql:   "SELECT id FROM t ORDER BY name",
			alias: utils.Ptr("sharding_gen_1"),
			items: []string{"name AS sharding_gen_1"},
		},
		{
			name:  "quoted column",
			sql:   "SELECT `id` FROM `t` ORDER BY `status`",
			alias: utils.Ptr("sharding_gen_1"),
			items: []string{"`status` AS sharding_gen_1"},
		},
		{
			name:  "qualified column",
			sql:   "SELECT o.id FROM t_order o ORDER BY o.status",
			alias: utils.Ptr("sharding_gen_1"),
			items: []string{"o.status AS sharding_gen_1"},
		},
		{
			name: "wildcard",
			sql:  "SELECT * FROM t ORDER BY name",
		},
		{
			name: "qualified wildcard",
			sql:  "SELECT o.* FROM t_order o ORDER BY o.status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ParseString(tt.sql, nil)
			require.NoError(t, err)
			require.Len(t, ctx.OrderBy, 1)

			item := ctx.OrderBy[0]
			require.Equal(t, query.Asc, item.Direction)
			require.Equal(t, tt.alias, item.Alias)
			require.Equal(t, tt.ordinal, item.Index)

			if tt.items == nil {
				require.Nil(t, ctx.ItemsToken())
				return
			}
			require.Equal(t, tt.items, ctx.ItemsToken().Items)
		})
	}
}

func TestParseString_OrderByDirection(t *testing.T) {
	ctx, err := ParseString("SELECT a, b, c FROM t ORDER BY a DESC, b ASC, c NULLS LAST", PostgreSQL{})
	require.NoError(t, err)
	require.Len(t, ctx.OrderBy, 3)
	require.Equal(t, query.Desc, ctx.OrderBy[0].Direction)
	require.Equal(t, query.Asc, ctx.OrderBy[1].Direction)
	require.Equal(t, query.Asc, ctx.OrderBy[2].Direction)
}

func TestParseString_DropsComplexItems(t *testing.T) {
	ctx, err := ParseString("SELECT id FROM t GROUP BY UPPER(name), id ORDER BY id + 1, 1.5, UPPER(name) DESC", nil)
	require.NoError(t, err)

	require.Len(t, ctx.GroupBy, 1)
	require.Equal(t, "id", *ctx.GroupBy[0].Name)
	require.Empty(t, ctx.OrderBy)
	require.Nil(t, ctx.ItemsToken())
}

func TestParseString_GroupBy(t *testing.T) {
	sql := "SELECT user_id, COUNT(*) AS cnt FROM t_order GROUP BY user_id WITH ROLLUP HAVING COUNT(*) > ? ORDER BY status"

	ctx, err := ParseString(sql, nil)
	require.NoError(t, err)

	require.Len(t, ctx.GroupBy, 1)
	require.Equal(t, "user_id", *ctx.GroupBy[0].Name)
	require.Nil(t, ctx.GroupBy[0].Alias)
	require.Equal(t, 1, ctx.ParametersIndex)

	require.Equal(t, []string{"status AS sharding_gen_1"}, ctx.ItemsToken().Items)

	t.Run("shared derived columns", func(t *testing.T) {
		ctx, err := ParseString("SELECT COUNT(*) FROM t GROUP BY user_id ORDER BY USER_ID DESC", nil)
		require.NoError(t, err)

		require.Equal(t, "sharding_gen_1", *ctx.GroupBy[0].Alias)
		require.Equal(t, "sharding_gen_1", *ctx.OrderBy[0].Alias)
		require.Equal(t, []string{"user_id AS sharding_gen_1"}, ctx.ItemsToken().Items)
	})

	t.Run("having without group by", func(t *testing.T) {
		ctx, err := ParseString("SELECT COUNT(*) FROM t HAVING COUNT(*) > 1", nil)
		require.NoError(t, err)
		require.Empty(t, ctx.GroupBy)
	})
}

func TestParseString_SelectItems(t *testing.T) {
	sql := "SELECT COUNT(*) + 1 AS c, sum(price) total, MAX(x) OVER (PARTITION BY y), a > b AS flag, 'lit' \"quoted\", o.* FROM t o"

	ctx, err := ParseString(sql, nil)
	require.NoError(t, err)
	require.Len(t, ctx.Items, 6)
	require.True(t, ctx.ContainStar)

	expected := []query.SelectItem{
		&query.CommonSelectItem{Expr: "COUNT(*) + 1", As: utils.Ptr("c"), Position: 1},
		&query.AggregationSelectItem{Type: query.Sum, InnerExpression: "(price)", As: utils.Ptr("total"), Position: 2},
		&query.CommonSelectItem{Expr: "MAX(x) OVER (PARTITION BY y)", Position: 3},
		&query.CommonSelectItem{Expr: "a > b", As: utils.Ptr("flag"), Position: 4},
		&query.CommonSelectItem{Expr: "'lit'", As: utils.Ptr("quoted"), Position: 5},
		&query.CommonSelectItem{Expr: "o.*", Position: 6, Star: true},
	}
	require.Equal(t, expected, ctx.Items)
	require.Equal(t, strings.Index(sql, " FROM"), ctx.SelectListEnd)
}

func TestParseString_Distinct(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		dialect  Dialect
		distinct bool
		items    int
	}{
		{"distinct", "SELECT DISTINCT user_id FROM t", nil, true, 1},
		{"distinctrow", "SELECT DISTINCTROW user_id, status FROM t", nil, true, 2},
		{"all", "SELECT ALL user_id FROM t", nil, false, 1},
		{"distinct on", "SELECT DISTINCT ON (user_id) user_id, status FROM t", PostgreSQL{}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ParseString(tt.sql, tt.dialect)
			require.NoError(t, err)
			require.Equal(t, tt.distinct, ctx.Distinct)
			require.Len(t, ctx.Items, tt.items)
		})
	}

	t.Run("distinct on unsupported", func(t *testing.T) {
		_, err := ParseString("SELECT DISTINCT ON (user_id) user_id FROM t", MySQL{})
		require.True(t, errors.Is(err, ErrSyntax))
	})
}

func TestParseString_TableTokens(t *testing.T) {
	sql := "SELECT * FROM a JOIN b ON a.id = b.id"

	ctx, err := ParseString(sql, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ctx.TableNames())

	require.Equal(t, []*query.TableToken{
		{BeginPosition: 14, Original: "a", TableName: "a"},
		{BeginPosition: 21, Original: "b", TableName: "b"},
		{BeginPosition: 26, Original: "a", TableName: "a"},
		{BeginPosition: 33, Original: "b", TableName: "b"},
	}, ctx.TableTokens())
}

func TestParseString_Joins(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		tables []string
		tokens []string
	}{
		{
			name:   "aliased tables",
			sql:    "SELECT * FROM t_order o JOIN t_order_item i ON o.order_id = i.order_id",
			tables: []string{"t_order", "t_order_item"},
			tokens: []string{"t_order", "t_order_item"},
		},
		{
			name:   "comma join",
			sql:    "SELECT * FROM t_order, t_user",
			tables: []string{"t_order", "t_user"},
			tokens: []string{"t_order", "t_user"},
		},
		{
			name:   "chain",
			sql:    "SELECT * FROM a LEFT OUTER JOIN b USING (id) INNER JOIN c ON b.id = c.id AND c.x = a.x",
			tables: []string{"a", "b", "c"},
			tokens: []string{"a", "b", "c", "b", "c", "c", "a"},
		},
		{
			name:   "quoted",
			sql:    "SELECT * FROM `t_order` JOIN \"t_user\" ON `t_order`.user_id = \"t_user\".id",
			tables: []string{"t_order", "t_user"},
			tokens: []string{"`t_order`", "\"t_user\"", "`t_order`", "\"t_user\""},
		},
		{
			name:   "schema qualified",
			sql:    "SELECT * FROM db.t_order o JOIN t_user u ON o.user_id = u.id",
			tables: []string{"t_user"},
			tokens: []string{"t_user"},
		},
		{
			name:   "natural straight join",
			sql:    "SELECT * FROM a NATURAL JOIN b STRAIGHT_JOIN c",
			tables: []string{"a", "b", "c"},
			tokens: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ParseString(tt.sql, nil)
			require.NoError(t, err)
			require.Equal(t, tt.tables, ctx.TableNames())

			var tokens []string
			for _, tok := range ctx.TableTokens() {
				require.Equal(t, tok.Original, tt.sql[tok.BeginPosition:tok.End()])
				tokens = append(tokens, tok.Original)
			}
			require.Equal(t, tt.tokens, tokens)
		})
	}
}

func TestParseString_Where(t *testing.T) {
	ctx, err := ParseString("SELECT id FROM t WHERE a = ? AND (b IN (?, ?) OR c BETWEEN ? AND 10) LIMIT ?", nil)
	require.NoError(t, err)
	require.Equal(t, 5, ctx.ParametersIndex)
	require.Equal(t, 4, ctx.Limit.RowCountParameterIndex)
}

func TestSelectParser_WhereWithoutTables(t *testing.T) {
	p, err := NewSelectParser("SELECT 1 WHERE id = 1", nil)
	require.NoError(t, err)

	ctx, err := p.Parse()
	require.NoError(t, err)
	require.Empty(t, ctx.Tables)
	require.Zero(t, ctx.ParametersIndex)

	require.Equal(t, lexer.Keyword, p.Lexer().Current().Kind)
	require.Equal(t, "WHERE", p.Lexer().Current().Literal)
}

func TestSelectParser_Reuse(t *testing.T) {
	p, err := NewSelectParser("SELECT id FROM t", nil)
	require.NoError(t, err)

	_, err = p.Parse()
	require.NoError(t, err)

	_, err = p.Parse()
	require.ErrorIs(t, err, ErrParserReused)
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected error
	}{
		{"subquery", "SELECT * FROM (SELECT 1) t", ErrSubqueryUnsupported},
		{"joined subquery", "SELECT * FROM t JOIN (SELECT 1) s ON t.id = s.id", ErrSubqueryUnsupported},
		{"union", "SELECT id FROM t UNION SELECT id FROM u", ErrUnsupported},
		{"minus", "SELECT id FROM t MINUS SELECT id FROM u", ErrUnsupported},
		{"not a select", "UPDATE t SET a = 1", ErrSyntax},
		{"missing by", "SELECT id FROM t ORDER id", ErrSyntax},
		{"unbalanced", "SELECT COUNT(id FROM t", ErrSyntax},
		{"bad join condition", "SELECT * FROM a JOIN b ON a.id", ErrSyntax},
		{"untokenizable", "SELECT 'unterminated", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := ParseString(tt.sql, nil)
			require.Nil(t, ctx)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.expected), err.Error())
			require.Contains(t, err.Error(), "failed to parse SQL")
		})
	}

	t.Run("unsupported token", func(t *testing.T) {
		_, err := ParseString("SELECT id FROM t UNION ALL SELECT id FROM u", nil)

		var unsupported *UnsupportedError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, "UNION", unsupported.Token.Literal)
		require.Equal(t, 17, unsupported.Token.Offset)
	})
}

// unionDialect accepts set operators by consuming the rest of the statement.
type unionDialect struct{ BaseDialect }

func (unionDialect) QueryRest(p *SelectParser) error {
	if p.Expressions().SkipIfEqual("UNION", "EXCEPT", "INTERSECT") {
		for p.Lexer().Current().Kind != lexer.EOF {
			p.Lexer().Next()
		}
	}
	return nil
}

func TestParseString_CustomDialect(t *testing.T) {
	ctx, err := ParseString("SELECT id FROM t UNION SELECT id FROM u", unionDialect{})
	require.NoError(t, err)
	require.Equal(t, []string{"t"}, ctx.TableNames())
}
