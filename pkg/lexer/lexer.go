package lexer

import (
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// keywords are reserved in every dialect. Anything that can start a clause
	// must be listed here, otherwise it would be taken for an implicit alias.
	keywords = []string{
		"SELECT", "DISTINCT", "DISTINCTROW", "ALL", "AS", "FROM", "WHERE",
		"GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC", "LIMIT", "OFFSET",
		"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "NATURAL",
		"ON", "USING", "UNION", "EXCEPT", "INTERSECT", "MINUS", "WITH",
		"AND", "OR", "NOT", "IN", "IS", "NULL", "LIKE", "BETWEEN", "EXISTS",
		"CASE", "WHEN", "THEN", "ELSE", "END", "FOR", "UPDATE", "INTO",
		"WINDOW", "TRUE", "FALSE",
	}

	// sqlLexer tokenizes SQL text. Rule order matters: comments must win over
	// the '-' and '/' punctuation and quoted identifiers over '[' and '"'.
	sqlLexer = plexer.MustSimple([]plexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^'\\]|\\.|'')*'`},
		{Name: "QuotedIdent", Pattern: "`([^`]|``)*`|\"([^\"]|\"\")*\"|\\[[^\\]]*\\]"},
		{Name: "Number", Pattern: `\d+(\.\d+)?([eE][+-]?\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$]*`},
		{Name: "Operator", Pattern: `<=>|<>|!=|<=|>=|\|\||::|&&|<<|>>`},
		{Name: "Placeholder", Pattern: `\?|\$\d+|:[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[(),.;=+\-*/%<>!~&|^@:{}]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// kinds maps participle token types onto token kinds. Types without an
	// entry (whitespace and comments) are elided.
	kinds = func() map[plexer.TokenType]Kind {
		symbols := sqlLexer.Symbols()
		return map[plexer.TokenType]Kind{
			symbols["String"]:      String,
			symbols["QuotedIdent"]: QuotedIdent,
			symbols["Number"]:      Number,
			symbols["Ident"]:       Ident,
			symbols["Operator"]:    Operator,
			symbols["Placeholder"]: Placeholder,
			symbols["Punct"]:       Punct,
		}
	}()
)

// Lexer is a token stream over one SQL statement with one token of lookahead.
//
// The whole input is tokenized up front so that lexical errors surface before
// any parsing starts. Offsets always refer to the original, unmodified input.
type Lexer struct {
	input   string
	tokens  []Token
	pos     int
	lastEnd int
}

// New tokenizes input. Extra keywords are reserved on top of the common set,
// which is how dialects reserve their own clause keywords.
//
// Example:
//
//	l, err := lexer.New("SELECT id FROM t_order LIMIT 10", "STRAIGHT_JOIN")
//	if err != nil {
//		return err
//	}
//
//	for tok := l.Current(); tok.Kind != lexer.EOF; tok = l.Next() {
//		fmt.Println(tok)
//	}
func New(input string, extraKeywords ...string) (*Lexer, error) {
	reserved := make(map[string]struct{}, len(keywords)+len(extraKeywords))
	for _, kw := range keywords {
		reserved[kw] = struct{}{}
	}
	for _, kw := range extraKeywords {
		reserved[strings.ToUpper(kw)] = struct{}{}
	}

	lex, err := sqlLexer.LexString("", input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	raw, err := plexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}

		kind, ok := kinds[tok.Type]
		if !ok {
			continue
		}

		if kind == Ident {
			if _, reservedWord := reserved[strings.ToUpper(tok.Value)]; reservedWord {
				kind = Keyword
			}
		}

		tokens = append(tokens, Token{Kind: kind, Literal: tok.Value, Offset: tok.Pos.Offset})
	}

	tokens = append(tokens, Token{Kind: EOF, Offset: len(input)})
	return &Lexer{input: input, tokens: tokens}, nil
}

// Input returns the original SQL text.
func (l *Lexer) Input() string {
	return l.input
}

// Current returns the token under the cursor.
func (l *Lexer) Current() Token {
	return l.tokens[l.pos]
}

// Peek returns the token after the current one without consuming anything.
func (l *Lexer) Peek() Token {
	if l.pos+1 < len(l.tokens) {
		return l.tokens[l.pos+1]
	}
	return l.tokens[len(l.tokens)-1]
}

// Next consumes the current token and returns the new current token. At the
// end of input it keeps returning EOF.
func (l *Lexer) Next() Token {
	if l.pos < len(l.tokens)-1 {
		l.lastEnd = l.tokens[l.pos].End()
		l.pos++
	}
	return l.tokens[l.pos]
}

// LastEnd returns the end offset of the most recently consumed token, or 0
// when nothing has been consumed yet.
func (l *Lexer) LastEnd() int {
	return l.lastEnd
}

// Mark returns the current position so that a speculative parse can be
// rolled back with Reset.
func (l *Lexer) Mark() int {
	return l.pos
}

// Reset moves the cursor back to a position returned by Mark.
func (l *Lexer) Reset(mark int) {
	l.pos = mark
	l.lastEnd = 0
	if mark > 0 {
		l.lastEnd = l.tokens[mark-1].End()
	}
}

// Slice returns the original text between two offsets.
func (l *Lexer) Slice(begin, end int) string {
	return l.input[begin:end]
}
