package parser

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/lexer"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/pseudomuto/shardkeeper/pkg/utils"
)

// SelectParser parses one SELECT statement into a query.SelectContext.
//
// A SelectParser is single use: it owns the token stream, the context being
// built and the counter that generates derived column aliases, all of which
// are scoped to one statement. Create a new parser for every statement.
type SelectParser struct {
	dialect Dialect
	lexer   *lexer.Lexer
	exprs   *ExpressionParser
	ctx     *query.SelectContext

	itemsToken          *query.ItemsToken
	derivedColumnOffset int
	// derivedColumns maps lower-cased ORDER BY and GROUP BY columns to the
	// alias they were added under.
	derivedColumns map[string]string
	used           bool
}

// NewSelectParser tokenizes sql with the keywords of the given dialect. A
// nil dialect selects the default (mysql). Tokenization failures match
// ErrSyntax.
func NewSelectParser(sql string, dialect Dialect) (*SelectParser, error) {
	if dialect == nil {
		dialect = DefaultDialect()
	}

	l, err := lexer.New(sql, dialect.Keywords()...)
	if err != nil {
		return nil, &SyntaxError{Cause: err}
	}

	return &SelectParser{
		dialect: dialect,
		lexer:   l,
		exprs:   NewExpressionParser(l),
		ctx:     query.NewSelectContext(sql),

		derivedColumns: make(map[string]string),
	}, nil
}

// ParseString parses a single SELECT statement.
//
// Example:
//
//	ctx, err := parser.ParseString("SELECT AVG(price) FROM t_order ORDER BY user_id", nil)
//	if err != nil {
//		return err
//	}
//
//	// COUNT(price) AS sharding_gen_1, SUM(price) AS sharding_gen_2, user_id AS sharding_gen_3
//	fmt.Println(ctx.ItemsToken().Items)
func ParseString(sql string, dialect Dialect) (*query.SelectContext, error) {
	p, err := NewSelectParser(sql, dialect)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	ctx, err := p.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}

	return ctx, nil
}

// Parse reads a single SELECT statement from r and parses it.
func Parse(r io.Reader, dialect Dialect) (*query.SelectContext, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}

	return ParseString(string(data), dialect)
}

// Parse runs the parse. On failure no partial context is returned.
func (p *SelectParser) Parse() (*query.SelectContext, error) {
	if p.used {
		return nil, ErrParserReused
	}
	p.used = true

	if err := p.query(); err != nil {
		return nil, err
	}

	if err := p.parseOrderBy(); err != nil {
		return nil, err
	}

	if err := p.dialect.CustomizedSelect(p); err != nil {
		return nil, err
	}

	p.ctx.ParametersIndex = p.exprs.ParametersIndex()
	if p.itemsToken != nil && len(p.itemsToken.Items) > 0 {
		p.ctx.AddToken(p.itemsToken)
	}

	return p.ctx, nil
}

func (p *SelectParser) query() error {
	if err := p.exprs.Accept("SELECT"); err != nil {
		return err
	}

	if err := p.parseDistinct(); err != nil {
		return err
	}

	if err := p.parseSelectList(); err != nil {
		return err
	}

	if err := p.parseFrom(); err != nil {
		return err
	}

	if len(p.ctx.Tables) > 0 {
		if err := p.exprs.ParseWhere(p.ctx); err != nil {
			return err
		}
	}

	if err := p.parseGroupBy(); err != nil {
		return err
	}

	return p.dialect.QueryRest(p)
}

func (p *SelectParser) parseDistinct() error {
	switch {
	case p.exprs.SkipIfEqual("DISTINCT", "DISTINCTROW"):
		p.ctx.Distinct = true
		if p.dialect.HasDistinctOn() && p.exprs.SkipIfEqual("ON") {
			return p.exprs.SkipParentheses()
		}
	case p.exprs.SkipIfEqual("ALL"):
	}

	return nil
}

// Lexer returns the token stream, for dialect hooks.
func (p *SelectParser) Lexer() *lexer.Lexer {
	return p.lexer
}

// Expressions returns the expression delegate, for dialect hooks.
func (p *SelectParser) Expressions() *ExpressionParser {
	return p.exprs
}

// Context returns the context being built, for dialect hooks.
func (p *SelectParser) Context() *query.SelectContext {
	return p.ctx
}

// generateDerivedColumnAlias returns the next alias of the statement wide
// counter. Values equal to a client alias are skipped, so the suffixes stay
// strictly increasing but may have gaps.
func (p *SelectParser) generateDerivedColumnAlias() string {
	for {
		p.derivedColumnOffset++
		alias := fmt.Sprintf("%s%d", consts.DerivedAliasPrefix, p.derivedColumnOffset)
		if !p.isClientAlias(alias) {
			return alias
		}
	}
}

func (p *SelectParser) isClientAlias(alias string) bool {
	for _, item := range p.ctx.Items {
		if item.Index() < 0 {
			continue
		}
		if as := item.Alias(); as != nil && utils.EqualIdentifiers(*as, alias) {
			return true
		}
	}
	return false
}

// addDerivedItem appends a fragment to the items token, creating the token
// at the end of the select list on first use.
func (p *SelectParser) addDerivedItem(fragment string) {
	if p.itemsToken == nil {
		p.itemsToken = query.NewItemsToken(p.ctx.SelectListEnd)
	}
	p.itemsToken.Items = append(p.itemsToken.Items, fragment)
}
