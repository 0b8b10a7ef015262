package rewrite

import (
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/query"
)

// ErrOverlappingTokens is returned when two tokens edit the same part of the
// original text.
var ErrOverlappingTokens = errors.New("overlapping rewrite tokens")

// Rewriter renders parsed statements against one shard's table routes.
type Rewriter struct {
	tables map[string]string
}

// New creates a Rewriter for the given logical to physical table routes.
// Logical names are matched case-insensitively.
func New(tables map[string]string) *Rewriter {
	routes := make(map[string]string, len(tables))
	for logical, physical := range tables {
		routes[strings.ToLower(logical)] = physical
	}
	return &Rewriter{tables: routes}
}

// Rewrite writes the rewritten statement to w. Nothing is written when the
// tokens cannot be applied.
func (r *Rewriter) Rewrite(w io.Writer, ctx *query.SelectContext) error {
	sql, err := r.String(ctx)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, sql); err != nil {
		return errors.Wrap(err, "failed to write rewritten SQL")
	}
	return nil
}

// String returns the rewritten statement.
func (r *Rewriter) String(ctx *query.SelectContext) (string, error) {
	sql := ctx.SQL

	var sb strings.Builder
	cursor := 0
	for _, tok := range sortedTokens(ctx.Tokens) {
		pos := tok.Position()
		if pos < cursor {
			return "", errors.Wrapf(ErrOverlappingTokens, "token at offset %d starts before offset %d", pos, cursor)
		}
		if pos > len(sql) {
			return "", errors.Errorf("token offset %d is past the end of the statement", pos)
		}

		sb.WriteString(sql[cursor:pos])
		cursor = pos

		switch t := tok.(type) {
		case *query.TableToken:
			if t.End() > len(sql) || sql[pos:t.End()] != t.Original {
				return "", errors.Errorf("table token %q does not match the statement at offset %d", t.Original, pos)
			}
			sb.WriteString(r.table(t))
			cursor = t.End()
		case *query.ItemsToken:
			if len(t.Items) > 0 {
				sb.WriteString(", ")
				sb.WriteString(strings.Join(t.Items, ", "))
			}
		default:
			return "", errors.Errorf("unsupported rewrite token %T", tok)
		}
	}

	sb.WriteString(sql[cursor:])
	return sb.String(), nil
}

// table returns the physical name for a table token, or the token as written
// when the table is not routed.
func (r *Rewriter) table(t *query.TableToken) string {
	if physical, ok := r.tables[strings.ToLower(t.TableName)]; ok {
		return physical
	}
	return t.Original
}

// sortedTokens orders tokens by offset. Insertions sort before replacements
// at the same offset, so they land in front of the replaced text.
func sortedTokens(tokens []query.Token) []query.Token {
	sorted := make([]query.Token, len(tokens))
	copy(sorted, tokens)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position() != sorted[j].Position() {
			return sorted[i].Position() < sorted[j].Position()
		}
		_, left := sorted[i].(*query.ItemsToken)
		_, right := sorted[j].(*query.ItemsToken)
		return left && !right
	})

	return sorted
}

// Rewrite writes ctx rewritten for the given table routes to w (convenience
// function).
func Rewrite(w io.Writer, ctx *query.SelectContext, tables map[string]string) error {
	return New(tables).Rewrite(w, ctx)
}

// String returns ctx rewritten for the given table routes (convenience
// function).
func String(ctx *query.SelectContext, tables map[string]string) (string, error) {
	return New(tables).String(ctx)
}
