package parser

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/pseudomuto/shardkeeper/pkg/utils"
)

// parseFrom parses an optional FROM clause with its join chain.
func (p *SelectParser) parseFrom() error {
	if !p.exprs.SkipIfEqual("FROM") {
		return nil
	}

	return p.parseTable()
}

func (p *SelectParser) parseTable() error {
	if tok := p.lexer.Current(); tok.Is("(") {
		return errors.Wrapf(ErrSubqueryUnsupported, "at offset %d", tok.Offset)
	}

	if err := p.parseTableFactor(); err != nil {
		return err
	}

	return p.parseJoinTable()
}

// parseTableFactor records a table and a token for its name. Schema
// qualified names are consumed without being recorded.
func (p *SelectParser) parseTableFactor() error {
	tok := p.lexer.Current()
	if !tok.IsIdentifier() {
		return syntaxError("table name", tok)
	}
	p.lexer.Next()

	if p.exprs.SkipIfEqual(".") {
		if name := p.lexer.Current(); !name.IsIdentifier() {
			return syntaxError("table name", name)
		}
		p.lexer.Next()

		_, err := p.exprs.ParseAlias()
		return err
	}

	name := utils.ExactlyValue(tok.Literal)
	p.ctx.AddToken(&query.TableToken{BeginPosition: tok.Offset, Original: tok.Literal, TableName: name})

	alias, err := p.exprs.ParseAlias()
	if err != nil {
		return err
	}

	p.ctx.Tables = append(p.ctx.Tables, &query.Table{Original: tok.Literal, Name: name, Alias: alias})
	return nil
}

// parseJoinTable consumes the join chain. Every ON predicate is a list of
// equalities joined by AND, each side of which may mention a table by name.
func (p *SelectParser) parseJoinTable() error {
	for {
		joined, err := p.exprs.SkipJoin()
		if err != nil {
			return err
		}
		if !joined {
			return nil
		}

		if tok := p.lexer.Current(); tok.Is("(") {
			return errors.Wrapf(ErrSubqueryUnsupported, "at offset %d", tok.Offset)
		}

		if err := p.parseTableFactor(); err != nil {
			return err
		}

		switch {
		case p.exprs.SkipIfEqual("ON"):
			if err := p.parseJoinCondition(); err != nil {
				return err
			}
		case p.exprs.SkipIfEqual("USING"):
			if err := p.exprs.SkipParentheses(); err != nil {
				return err
			}
		}
	}
}

func (p *SelectParser) parseJoinCondition() error {
	for {
		if err := p.parseTableCondition(); err != nil {
			return err
		}

		if err := p.exprs.Accept("="); err != nil {
			return err
		}

		if err := p.parseTableCondition(); err != nil {
			return err
		}

		if !p.exprs.SkipIfEqual("AND") {
			return nil
		}
	}
}

// parseTableCondition parses one side of a join equality. When the side is a
// column qualified by a known table name, the owner gets a table token.
func (p *SelectParser) parseTableCondition() error {
	expr, err := p.exprs.ParseExpression()
	if err != nil {
		return err
	}

	property, ok := expr.(*PropertyExpr)
	if !ok {
		return nil
	}

	owner := property.Owner
	name := utils.ExactlyValue(owner.Name)
	if p.ctx.FindTable(name) != nil {
		p.ctx.AddToken(&query.TableToken{BeginPosition: owner.Begin(), Original: owner.Name, TableName: name})
	}

	return nil
}
