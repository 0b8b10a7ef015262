// Package parser turns a SELECT statement into a query.SelectContext: what
// the statement projects, reads, groups and sorts by, plus the rewrite tokens
// that make it runnable against sharded tables and mergeable afterwards.
//
// The parser is a single pass recursive descent parser with one token of
// lookahead over the tokens produced by package lexer. It does not build an
// expression tree. Expressions are consumed by the ExpressionParser, which
// only tells numbers, plain columns and qualified columns apart and keeps
// everything else as source text.
//
// Besides recording the statement, the parser plans two kinds of edits:
//
//   - every occurrence of a table name (in FROM, JOIN and JOIN ... ON) gets a
//     TableToken so the rewriter can substitute the physical table
//   - columns the merge layer needs but the client did not select (the COUNT
//     and SUM behind an AVG, ORDER BY and GROUP BY columns) are collected in
//     one ItemsToken appended to the select list under generated aliases
//
// Dialect differences live behind the Dialect interface. MySQL, PostgreSQL,
// Oracle and plain SQL-92 are provided; see LookupDialect.
//
// Example:
//
//	ctx, err := parser.ParseString("SELECT o.user_id, AVG(o.price) FROM t_order o GROUP BY o.user_id", parser.MySQL{})
//	if err != nil {
//		return err
//	}
//
//	for _, tok := range ctx.TableTokens() {
//		fmt.Println(tok.BeginPosition, tok.TableName)
//	}
package parser
