// Package shard runs rewritten SELECT statements against ClickHouse shards.
//
// A statement is parsed once, then Plan renders one statement per configured
// shard with that shard's physical table names. The Executor sends each unit
// to its shard concurrently and collects the raw rows per shard.
//
// # Usage Example
//
//	ctx, err := parser.ParseString("SELECT status, AVG(price) FROM t_order GROUP BY status", dialect)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	units, err := shard.Plan(ctx, cfg.Shards)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := shard.New(shard.Config{Timeout: cfg.Timeout}).Execute(context.Background(), units)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Results are not merged. Derived columns such as the COUNT and SUM added for
// an AVG are returned as extra trailing columns.
package shard
