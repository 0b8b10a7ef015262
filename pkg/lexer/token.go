package lexer

import (
	"fmt"
	"strings"
)

// Kind classifies a lexical token.
type Kind int

const (
	// EOF marks the end of the input. Its offset is the input length.
	EOF Kind = iota
	// Ident is a bare identifier that is not a keyword.
	Ident
	// QuotedIdent is an identifier wrapped in backticks, double quotes or brackets.
	QuotedIdent
	// Keyword is a reserved word of the active dialect.
	Keyword
	// Number is a numeric literal.
	Number
	// String is a single quoted string literal, quotes included.
	String
	// Placeholder is a bind parameter such as ?, $1 or :name.
	Placeholder
	// Operator is a multi-character operator such as <>, <= or ||.
	Operator
	// Punct is a single punctuation or operator character.
	Punct
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Ident:       "Ident",
	QuotedIdent: "QuotedIdent",
	Keyword:     "Keyword",
	Number:      "Number",
	String:      "String",
	Placeholder: "Placeholder",
	Operator:    "Operator",
	Punct:       "Punct",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical token anchored in the original input.
type Token struct {
	Kind    Kind
	Literal string
	// Offset is the byte offset of the first character of Literal in the input.
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Literal)
}

// Is reports whether the token matches any of the given literals. Keywords
// and identifiers compare case-insensitively; string literals and quoted
// identifiers never match so that 'FROM' or "FROM" are not mistaken for the
// keyword.
func (t Token) Is(literals ...string) bool {
	if t.Kind == EOF || t.Kind == String || t.Kind == QuotedIdent {
		return false
	}

	for _, lit := range literals {
		if strings.EqualFold(t.Literal, lit) {
			return true
		}
	}

	return false
}

// IsIdentifier reports whether the token names something (bare or quoted).
func (t Token) IsIdentifier() bool {
	return t.Kind == Ident || t.Kind == QuotedIdent
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q at offset %d", t.Kind, t.Literal, t.Offset)
}
