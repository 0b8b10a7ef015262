package lexer_test

import (
	"testing"

	. "github.com/pseudomuto/shardkeeper/pkg/lexer"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, l *Lexer) []Token {
	t.Helper()

	var tokens []Token
	for tok := l.Current(); tok.Kind != EOF; tok = l.Next() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestLexer_Offsets(t *testing.T) {
	sql := "SELECT o.id, `name` FROM t_order o WHERE o.id = ?"
	l, err := New(sql)
	require.NoError(t, err)

	tokens := collect(t, l)
	for _, tok := range tokens {
		require.Equal(t, tok.Literal, sql[tok.Offset:tok.End()], "token %s", tok)
	}

	require.Equal(t, []Kind{
		Keyword, Ident, Punct, Ident, Punct, QuotedIdent, Keyword, Ident, Ident,
		Keyword, Ident, Punct, Ident, Punct, Placeholder,
	}, kindsOf(tokens))
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    Kind
		literal string
	}{
		{"keyword is case insensitive", "select", Keyword, "select"},
		{"aggregate names are identifiers", "count", Ident, "count"},
		{"number", "42", Number, "42"},
		{"decimal", "3.14", Number, "3.14"},
		{"exponent", "1e10", Number, "1e10"},
		{"string", "'it''s'", String, "'it''s'"},
		{"escaped string", `'a\'b'`, String, `'a\'b'`},
		{"backtick identifier", "`order`", QuotedIdent, "`order`"},
		{"double quoted identifier", `"Order"`, QuotedIdent, `"Order"`},
		{"bracket identifier", "[order]", QuotedIdent, "[order]"},
		{"question placeholder", "?", Placeholder, "?"},
		{"numbered placeholder", "$3", Placeholder, "$3"},
		{"named placeholder", ":user_id", Placeholder, ":user_id"},
		{"not equal", "<>", Operator, "<>"},
		{"concat", "||", Operator, "||"},
		{"cast", "::", Operator, "::"},
		{"star", "*", Punct, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.kind, l.Current().Kind)
			require.Equal(t, tt.literal, l.Current().Literal)
			require.Equal(t, EOF, l.Next().Kind)
		})
	}
}

func TestLexer_ElidesCommentsAndWhitespace(t *testing.T) {
	sql := "SELECT /* all */ id -- trailing\nFROM t"
	l, err := New(sql)
	require.NoError(t, err)

	tokens := collect(t, l)
	require.Len(t, tokens, 4)
	require.Equal(t, "FROM", tokens[2].Literal)
	require.Equal(t, 32, tokens[2].Offset)
}

func TestLexer_ExtraKeywords(t *testing.T) {
	l, err := New("STRAIGHT_JOIN")
	require.NoError(t, err)
	require.Equal(t, Ident, l.Current().Kind)

	l, err = New("straight_join", "STRAIGHT_JOIN")
	require.NoError(t, err)
	require.Equal(t, Keyword, l.Current().Kind)
}

func TestLexer_Navigation(t *testing.T) {
	l, err := New("SELECT id")
	require.NoError(t, err)

	require.Equal(t, 0, l.LastEnd())
	require.Equal(t, "SELECT", l.Current().Literal)
	require.Equal(t, "id", l.Peek().Literal)

	require.Equal(t, "id", l.Next().Literal)
	require.Equal(t, 6, l.LastEnd())
	require.Equal(t, EOF, l.Peek().Kind)

	require.Equal(t, EOF, l.Next().Kind)
	require.Equal(t, 9, l.LastEnd())
	require.Equal(t, 9, l.Current().Offset)

	// EOF is sticky
	require.Equal(t, EOF, l.Next().Kind)
	require.Equal(t, 9, l.LastEnd())
	require.Equal(t, "SELECT id", l.Input())
	require.Equal(t, "id", l.Slice(7, 9))
}

func TestLexer_MarkReset(t *testing.T) {
	l, err := New("SELECT a, b")
	require.NoError(t, err)

	l.Next()
	mark := l.Mark()
	l.Next()
	l.Next()
	require.Equal(t, "b", l.Current().Literal)
	require.Equal(t, 9, l.LastEnd())

	l.Reset(mark)
	require.Equal(t, "a", l.Current().Literal)
	require.Equal(t, 6, l.LastEnd())

	l.Reset(0)
	require.Equal(t, "SELECT", l.Current().Literal)
	require.Equal(t, 0, l.LastEnd())
}

func TestLexer_InvalidInput(t *testing.T) {
	_, err := New("SELECT 'unterminated")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to tokenize SQL")
}

func TestToken_Is(t *testing.T) {
	l, err := New("from 'from' `from` *")
	require.NoError(t, err)

	require.True(t, l.Current().Is("FROM"))
	require.True(t, l.Current().Is("WHERE", "FROM"))
	require.False(t, l.Next().Is("FROM"), "string literal")
	require.False(t, l.Next().Is("FROM"), "quoted identifier")
	require.True(t, l.Next().Is("*"))
	require.False(t, l.Next().Is(""), "EOF never matches")
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "Keyword", Keyword.String())
	require.Equal(t, "Kind(99)", Kind(99).String())
}

func kindsOf(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}
