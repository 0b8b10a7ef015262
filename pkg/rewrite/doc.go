// Package rewrite applies the rewrite tokens of a parsed SELECT statement to
// its original text, producing the statement to run against one shard.
//
// Tokens are applied in a single pass over the original SQL, in offset order:
//   - a TableToken replaces the table name at its offset with the physical
//     table routed for it (names without a route are kept as written)
//   - the ItemsToken appends the derived columns to the end of the select list
//
// Usage:
//
//	ctx, err := parser.ParseString("SELECT AVG(price) FROM t_order", nil)
//	if err != nil {
//		return err
//	}
//
//	// Object-oriented API
//	rw := rewrite.New(map[string]string{"t_order": "t_order_0"})
//	var buf bytes.Buffer
//	err = rw.Rewrite(&buf, ctx)
//
//	// Functional API
//	sql, err := rewrite.String(ctx, map[string]string{"t_order": "t_order_0"})
//
// Output:
//
//	SELECT AVG(price), COUNT(price) AS sharding_gen_1, SUM(price) AS sharding_gen_2 FROM t_order_0
package rewrite
