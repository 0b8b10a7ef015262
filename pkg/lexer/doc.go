// Package lexer tokenizes SQL text for the SELECT rewrite planner.
//
// Tokenization is delegated to github.com/alecthomas/participle/v2/lexer, which
// reports the byte offset of every token. Those offsets are the anchors of every
// rewrite token produced by the parser, so this package never modifies the input:
// comments and whitespace are elided from the stream but stay in the text.
//
// The lexer offers a single token of lookahead (Current and Peek), which is all
// the recursive-descent parser needs.
//
// Basic usage:
//
//	l, err := lexer.New("SELECT id FROM `t_order`")
//	if err != nil {
//		return err
//	}
//
//	tok := l.Current() // Keyword "SELECT" at offset 0
//	tok = l.Next()     // Ident "id" at offset 7
//	tok = l.Next()     // Keyword "FROM" at offset 10
//	tok = l.Next()     // QuotedIdent "`t_order`" at offset 15
package lexer
