package parser

import (
	"strconv"

	"github.com/pseudomuto/shardkeeper/pkg/lexer"
	"github.com/pseudomuto/shardkeeper/pkg/utils"
)

type (
	// Expr is a parsed expression. The planner only needs to tell a few
	// shapes apart (numbers, plain and qualified identifiers), everything
	// else is kept as source text.
	Expr interface {
		// Begin is the offset of the first character of the expression.
		Begin() int
		// End is the offset just past the expression.
		End() int
		// Text is the expression exactly as written.
		Text() string
	}

	span struct {
		begin int
		end   int
		text  string
	}

	// NumberExpr is a numeric literal.
	NumberExpr struct {
		span
		Value string
	}

	// IdentifierExpr is a bare or quoted column name.
	IdentifierExpr struct {
		span
		Name string
	}

	// PropertyExpr is a qualified column name such as o.order_id.
	PropertyExpr struct {
		span
		Owner *IdentifierExpr
		Name  string
	}

	// StarExpr is * or owner.*.
	StarExpr struct {
		span
		Owner *string
	}

	// PlaceholderExpr is a bind parameter.
	PlaceholderExpr struct {
		span
		Index int
	}

	// CompositeExpr is any other expression: calls, arithmetic, predicates,
	// CASE, literals and parenthesized groups.
	CompositeExpr struct {
		span
	}
)

func (s span) Begin() int   { return s.begin }
func (s span) End() int     { return s.end }
func (s span) Text() string { return s.text }

// Int returns the literal as an int when it is an integer.
func (e *NumberExpr) Int() (int, bool) {
	n, err := strconv.Atoi(e.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// arithmeticOperators join operands into a single scalar expression.
var arithmeticOperators = []string{
	"+", "-", "*", "/", "%", "&", "|", "^", "||", "::", "<<", ">>",
}

// functionKeywords are reserved words that double as function names.
var functionKeywords = []string{"LEFT", "RIGHT"}

// ExpressionParser is the expression delegate of the SELECT parser. It owns
// the token stream and the bind parameter counter, and knows how to consume
// expressions without building a full expression tree.
type ExpressionParser struct {
	lexer           *lexer.Lexer
	parametersIndex int
}

// NewExpressionParser creates an expression parser reading from l.
func NewExpressionParser(l *lexer.Lexer) *ExpressionParser {
	return &ExpressionParser{lexer: l}
}

// Lexer returns the underlying token stream.
func (p *ExpressionParser) Lexer() *lexer.Lexer {
	return p.lexer
}

// ParametersIndex returns the number of bind parameters consumed so far.
func (p *ExpressionParser) ParametersIndex() int {
	return p.parametersIndex
}

// NextParameter consumes a bind parameter slot and returns its index.
func (p *ExpressionParser) NextParameter() int {
	idx := p.parametersIndex
	p.parametersIndex++
	return idx
}

// EqualAny reports whether the current token matches one of literals.
func (p *ExpressionParser) EqualAny(literals ...string) bool {
	return p.lexer.Current().Is(literals...)
}

// SkipIfEqual consumes the current token if it matches one of literals.
func (p *ExpressionParser) SkipIfEqual(literals ...string) bool {
	if p.EqualAny(literals...) {
		p.lexer.Next()
		return true
	}
	return false
}

// Accept consumes the current token, failing unless it matches literal.
func (p *ExpressionParser) Accept(literal string) error {
	if !p.SkipIfEqual(literal) {
		return syntaxError(literal, p.lexer.Current())
	}
	return nil
}

// SkipParentheses consumes a balanced parenthesized group starting at the
// current token. Bind parameters inside the group are still counted.
func (p *ExpressionParser) SkipParentheses() error {
	if !p.EqualAny("(") {
		return syntaxError("(", p.lexer.Current())
	}

	depth := 0
	for {
		tok := p.lexer.Current()
		switch {
		case tok.Kind == lexer.EOF:
			return syntaxError(")", tok)
		case tok.Kind == lexer.Placeholder:
			p.parametersIndex++
		case tok.Is("("):
			depth++
		case tok.Is(")"):
			depth--
		}

		p.lexer.Next()
		if depth == 0 {
			return nil
		}
	}
}

// SkipJoin consumes a join operator and reports whether one was found.
// Supported forms: ",", JOIN, INNER JOIN, CROSS JOIN, STRAIGHT_JOIN and
// [NATURAL] [LEFT|RIGHT|FULL] [OUTER] JOIN.
func (p *ExpressionParser) SkipJoin() (bool, error) {
	switch {
	case p.SkipIfEqual(",", "JOIN", "STRAIGHT_JOIN"):
		return true, nil
	case p.SkipIfEqual("INNER", "CROSS"):
		return true, p.Accept("JOIN")
	case p.SkipIfEqual("NATURAL"):
		p.SkipIfEqual("LEFT", "RIGHT", "FULL", "INNER")
		p.SkipIfEqual("OUTER")
		return true, p.Accept("JOIN")
	case p.SkipIfEqual("LEFT", "RIGHT", "FULL"):
		p.SkipIfEqual("OUTER")
		return true, p.Accept("JOIN")
	default:
		return false, nil
	}
}

// ParseAlias consumes an optional alias, either "AS name" or an implicit
// bare identifier. The returned alias has its quotes removed.
func (p *ExpressionParser) ParseAlias() (*string, error) {
	if p.SkipIfEqual("AS") {
		tok := p.lexer.Current()
		if !tok.IsIdentifier() && tok.Kind != lexer.String {
			return nil, syntaxError("alias", tok)
		}

		p.lexer.Next()
		return aliasOf(tok), nil
	}

	if tok := p.lexer.Current(); tok.IsIdentifier() {
		p.lexer.Next()
		return aliasOf(tok), nil
	}

	return nil, nil
}

func aliasOf(tok lexer.Token) *string {
	name := tok.Literal
	if tok.Kind == lexer.String {
		name = name[1 : len(name)-1]
	}
	return utils.Ptr(utils.ExactlyValue(name))
}

// ParseExpression parses one scalar operand: a literal, parameter, column,
// function call, CASE expression or parenthesized group, optionally joined to
// further operands by arithmetic operators. It stops at comparison operators,
// AND, OR, commas and clause keywords.
func (p *ExpressionParser) ParseExpression() (Expr, error) {
	begin := p.lexer.Current().Offset
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return p.continueExpression(begin, first)
}

// continueExpression consumes trailing arithmetic operators after an already
// parsed first operand.
func (p *ExpressionParser) continueExpression(begin int, first Expr) (Expr, error) {
	if !p.EqualAny(arithmeticOperators...) {
		return first, nil
	}

	for p.SkipIfEqual(arithmeticOperators...) {
		if _, err := p.parseUnary(); err != nil {
			return nil, err
		}
	}

	return p.composite(begin), nil
}

func (p *ExpressionParser) parseUnary() (Expr, error) {
	begin := p.lexer.Current().Offset
	if p.SkipIfEqual("-", "+", "~", "!") {
		if _, err := p.parseUnary(); err != nil {
			return nil, err
		}
		return p.composite(begin), nil
	}

	return p.parsePrimary()
}

func (p *ExpressionParser) parsePrimary() (Expr, error) {
	tok := p.lexer.Current()

	switch {
	case tok.Kind == lexer.Number:
		p.lexer.Next()
		return &NumberExpr{span: p.spanFrom(tok.Offset), Value: tok.Literal}, nil
	case tok.Kind == lexer.String:
		p.lexer.Next()
		return p.composite(tok.Offset), nil
	case tok.Kind == lexer.Placeholder:
		p.lexer.Next()
		return &PlaceholderExpr{span: p.spanFrom(tok.Offset), Index: p.NextParameter()}, nil
	case tok.Is("("):
		if err := p.SkipParentheses(); err != nil {
			return nil, err
		}
		return p.composite(tok.Offset), nil
	case tok.Is("*"):
		p.lexer.Next()
		return &StarExpr{span: p.spanFrom(tok.Offset)}, nil
	case tok.Is("CASE"):
		if err := p.skipCase(); err != nil {
			return nil, err
		}
		return p.composite(tok.Offset), nil
	case tok.Is("EXISTS"):
		p.lexer.Next()
		if err := p.SkipParentheses(); err != nil {
			return nil, err
		}
		return p.composite(tok.Offset), nil
	case tok.Is("NULL", "TRUE", "FALSE"):
		p.lexer.Next()
		return p.composite(tok.Offset), nil
	case tok.Is(functionKeywords...) && p.lexer.Peek().Is("("):
		p.lexer.Next()
		if err := p.SkipParentheses(); err != nil {
			return nil, err
		}
		return p.composite(tok.Offset), nil
	case tok.IsIdentifier():
		return p.parseIdentifier()
	default:
		return nil, syntaxError("expression", tok)
	}
}

// parseIdentifier handles columns, qualified columns, owner.* and function
// calls, including window functions.
func (p *ExpressionParser) parseIdentifier() (Expr, error) {
	tok := p.lexer.Current()
	p.lexer.Next()

	if p.EqualAny("(") {
		return p.parseFunctionCall(tok.Offset)
	}

	if !p.SkipIfEqual(".") {
		return &IdentifierExpr{span: p.spanFrom(tok.Offset), Name: tok.Literal}, nil
	}

	if p.SkipIfEqual("*") {
		owner := utils.ExactlyValue(tok.Literal)
		return &StarExpr{span: p.spanFrom(tok.Offset), Owner: &owner}, nil
	}

	// keywords are valid column names once qualified
	property := p.lexer.Current()
	if !property.IsIdentifier() && property.Kind != lexer.Keyword {
		return nil, syntaxError("column name", property)
	}
	p.lexer.Next()

	switch {
	case p.EqualAny("("):
		return p.parseFunctionCall(tok.Offset)
	case p.EqualAny("."):
		// schema.table.column
		p.lexer.Next()
		if next := p.lexer.Current(); next.IsIdentifier() || next.Kind == lexer.Keyword || next.Is("*") {
			p.lexer.Next()
			return p.composite(tok.Offset), nil
		}
		return nil, syntaxError("column name", p.lexer.Current())
	}

	owner := &IdentifierExpr{
		span: span{begin: tok.Offset, end: tok.End(), text: tok.Literal},
		Name: tok.Literal,
	}
	return &PropertyExpr{span: p.spanFrom(tok.Offset), Owner: owner, Name: property.Literal}, nil
}

func (p *ExpressionParser) parseFunctionCall(begin int) (Expr, error) {
	if err := p.SkipParentheses(); err != nil {
		return nil, err
	}

	if p.SkipIfEqual("OVER") {
		if p.EqualAny("(") {
			if err := p.SkipParentheses(); err != nil {
				return nil, err
			}
		} else if tok := p.lexer.Current(); tok.IsIdentifier() {
			p.lexer.Next()
		} else {
			return nil, syntaxError("window", tok)
		}
	}

	return p.composite(begin), nil
}

// skipCase consumes CASE ... END, including nested CASE expressions.
func (p *ExpressionParser) skipCase() error {
	depth := 0
	for {
		tok := p.lexer.Current()
		switch {
		case tok.Kind == lexer.EOF:
			return syntaxError("END", tok)
		case tok.Kind == lexer.Placeholder:
			p.parametersIndex++
		case tok.Is("CASE"):
			depth++
		case tok.Is("END"):
			depth--
		}

		p.lexer.Next()
		if depth == 0 {
			return nil
		}
	}
}

func (p *ExpressionParser) spanFrom(begin int) span {
	end := p.lexer.LastEnd()
	return span{begin: begin, end: end, text: p.lexer.Slice(begin, end)}
}

func (p *ExpressionParser) composite(begin int) *CompositeExpr {
	return &CompositeExpr{span: p.spanFrom(begin)}
}
