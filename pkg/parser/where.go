package parser

import (
	"github.com/pseudomuto/shardkeeper/pkg/lexer"
	"github.com/pseudomuto/shardkeeper/pkg/query"
)

var (
	comparisonOperators = []string{"=", "<>", "!=", "<", ">", "<=", ">=", "<=>"}

	// predicateKeywords continue an operand into a boolean expression.
	predicateKeywords = []string{"AND", "OR", "NOT", "IS", "IN", "LIKE", "BETWEEN"}
)

// ParseWhere consumes an optional WHERE clause. Predicates are not
// interpreted, but every bind parameter inside them is counted so that
// parameters in later clauses get the right index.
func (p *ExpressionParser) ParseWhere(ctx *query.SelectContext) error {
	if !p.SkipIfEqual("WHERE") {
		return nil
	}

	if _, err := p.ParseCondition(); err != nil {
		return err
	}

	ctx.ParametersIndex = p.parametersIndex
	return nil
}

// ParseCondition parses a boolean expression: operands combined with
// comparisons, IS, IN, LIKE and BETWEEN predicates, NOT, AND and OR. A plain
// operand without any predicate is returned unchanged so callers can still
// classify it.
func (p *ExpressionParser) ParseCondition() (Expr, error) {
	begin := p.lexer.Current().Offset

	first, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}

	if !p.EqualAny("OR") {
		return first, nil
	}

	for p.SkipIfEqual("OR") {
		if _, err := p.parseConjunction(); err != nil {
			return nil, err
		}
	}

	return p.composite(begin), nil
}

func (p *ExpressionParser) parseConjunction() (Expr, error) {
	begin := p.lexer.Current().Offset

	first, err := p.parseNegation()
	if err != nil {
		return nil, err
	}

	if !p.EqualAny("AND", "&&") {
		return first, nil
	}

	for p.SkipIfEqual("AND", "&&") {
		if _, err := p.parseNegation(); err != nil {
			return nil, err
		}
	}

	return p.composite(begin), nil
}

func (p *ExpressionParser) parseNegation() (Expr, error) {
	begin := p.lexer.Current().Offset
	if p.SkipIfEqual("NOT") {
		if _, err := p.parseNegation(); err != nil {
			return nil, err
		}
		return p.composite(begin), nil
	}

	return p.parsePredicate()
}

func (p *ExpressionParser) parsePredicate() (Expr, error) {
	begin := p.lexer.Current().Offset

	operand, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	matched, err := p.parsePredicateTail()
	if err != nil {
		return nil, err
	}
	if !matched {
		return operand, nil
	}

	// a = b = c and friends
	for {
		more, err := p.parsePredicateTail()
		if err != nil {
			return nil, err
		}
		if !more {
			return p.composite(begin), nil
		}
	}
}

// parsePredicateTail consumes one predicate following an operand and reports
// whether there was one.
func (p *ExpressionParser) parsePredicateTail() (bool, error) {
	switch {
	case p.SkipIfEqual(comparisonOperators...):
		if p.SkipIfEqual("ANY", "ALL", "SOME") {
			return true, p.SkipParentheses()
		}
		_, err := p.ParseExpression()
		return true, err
	case p.SkipIfEqual("IS"):
		p.SkipIfEqual("NOT")
		if !p.SkipIfEqual("NULL", "TRUE", "FALSE", "UNKNOWN") {
			return true, syntaxError("NULL", p.lexer.Current())
		}
		return true, nil
	case p.EqualAny("NOT") && p.lexer.Peek().Is("IN", "LIKE", "BETWEEN", "REGEXP", "RLIKE", "ILIKE"):
		p.lexer.Next()
		return p.parsePredicateTail()
	case p.SkipIfEqual("IN"):
		return true, p.SkipParentheses()
	case p.SkipIfEqual("LIKE", "ILIKE", "REGEXP", "RLIKE"):
		if _, err := p.ParseExpression(); err != nil {
			return true, err
		}
		if p.SkipIfEqual("ESCAPE") {
			_, err := p.ParseExpression()
			return true, err
		}
		return true, nil
	case p.SkipIfEqual("BETWEEN"):
		if _, err := p.ParseExpression(); err != nil {
			return true, err
		}
		if err := p.Accept("AND"); err != nil {
			return true, err
		}
		_, err := p.ParseExpression()
		return true, err
	default:
		return false, nil
	}
}

// ParseSelectItem parses one projection of the select list together with
// its alias. index is the 1-based position of the item.
//
// A single COUNT, SUM, AVG, MIN or MAX call becomes an aggregation item; once
// anything else follows the call (arithmetic, a window clause) the whole
// projection is a common item.
func (p *ExpressionParser) ParseSelectItem(index int) (query.SelectItem, error) {
	tok := p.lexer.Current()

	if tok.Is("*") {
		p.lexer.Next()
		return &query.CommonSelectItem{Expr: tok.Literal, Position: index, Star: true}, nil
	}

	if typ, ok := query.ParseAggregationType(tok.Literal); ok && tok.Kind == lexer.Ident && p.lexer.Peek().Is("(") {
		item, err := p.parseAggregation(typ, index)
		if err != nil || item != nil {
			return item, err
		}
	}

	expr, err := p.ParseCondition()
	if err != nil {
		return nil, err
	}

	return p.commonItem(expr, index)
}

// parseAggregation returns nil without error when the call turns out to be
// part of a larger expression. The stream is rewound in that case so the
// projection can be parsed again as a common item.
func (p *ExpressionParser) parseAggregation(typ query.AggregationType, index int) (query.SelectItem, error) {
	mark, params := p.lexer.Mark(), p.parametersIndex
	p.lexer.Next()

	innerBegin := p.lexer.Current().Offset
	if err := p.SkipParentheses(); err != nil {
		return nil, err
	}
	inner := p.lexer.Slice(innerBegin, p.lexer.LastEnd())

	if !p.endsSelectItem() {
		p.lexer.Reset(mark)
		p.parametersIndex = params
		return nil, nil
	}

	alias, err := p.ParseAlias()
	if err != nil {
		return nil, err
	}

	return &query.AggregationSelectItem{
		Type:            typ,
		InnerExpression: inner,
		As:              alias,
		Position:        index,
	}, nil
}

// endsSelectItem reports whether the current token can follow a complete
// projection: a separator, an alias or the keyword starting the next clause.
func (p *ExpressionParser) endsSelectItem() bool {
	tok := p.lexer.Current()
	switch {
	case tok.Kind == lexer.EOF, tok.IsIdentifier() && !tok.Is("OVER"), tok.Kind == lexer.String:
		return true
	case tok.Kind == lexer.Keyword:
		return !tok.Is(predicateKeywords...)
	default:
		return tok.Is(",", ")", ";")
	}
}

func (p *ExpressionParser) commonItem(expr Expr, index int) (query.SelectItem, error) {
	alias, err := p.ParseAlias()
	if err != nil {
		return nil, err
	}

	_, star := expr.(*StarExpr)
	return &query.CommonSelectItem{
		Expr:     expr.Text(),
		As:       alias,
		Position: index,
		Star:     star,
	}, nil
}
