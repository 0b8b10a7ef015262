// Package cmd provides CLI commands for the shardkeeper tool.
//
// # Available Commands
//
//   - parse: Print what the parser extracted from a SELECT statement
//   - rewrite: Print the statement each configured shard would receive
//   - exec: Run the statement on every shard and print the raw rows
//
// # Command Structure
//
// Each command is implemented as a function that takes its fx parameters and
// returns a *cli.Command, following the urfave/cli/v3 pattern. Commands are
// provided to the "commands" fx group and picked up by Run.
//
// Every command takes the statement as its only argument, or "-" to read it
// from stdin, and accepts --dialect to override the configured dialect.
//
// # Example Usage
//
//	shardkeeper parse "SELECT AVG(price) FROM t_order"          # Show parse result as YAML
//	shardkeeper parse -f json - < query.sql                     # Same, as JSON, from stdin
//	shardkeeper rewrite "SELECT * FROM t_order ORDER BY id"     # Show per-shard statements
//	shardkeeper exec -p paid "SELECT * FROM t_order WHERE status = ?"
//
// The rewrite and exec commands need a shardkeeper.yaml in the current
// directory describing the shards.
package cmd
