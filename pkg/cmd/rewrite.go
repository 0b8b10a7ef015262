package cmd

import (
	"context"
	"fmt"

	"github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/pseudomuto/shardkeeper/pkg/shard"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type rewriteParams struct {
	fx.In

	Config  *config.Config
	Dialect parser.Dialect
}

// rewriteCmd creates the rewrite command, which prints the statement every
// configured shard would receive, each preceded by a comment naming the
// shard.
//
// Example:
//
//	$ shardkeeper rewrite "SELECT AVG(price) FROM t_order"
//	-- shard0
//	SELECT AVG(price), COUNT(price) AS sharding_gen_1, SUM(price) AS sharding_gen_2 FROM t_order_0
//	-- shard1
//	SELECT AVG(price), COUNT(price) AS sharding_gen_1, SUM(price) AS sharding_gen_2 FROM t_order_1
func rewriteCmd(p rewriteParams) *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Print the statement sent to each shard",
		ArgsUsage: "<sql|->",
		Before:    requireConfig(p.Config),
		Flags:     []cli.Flag{dialectFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stmt, err := parseStatement(cmd, p.Dialect)
			if err != nil {
				return err
			}

			units, err := shard.Plan(stmt, p.Config.Shards)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, unit := range units {
				if _, err := fmt.Fprintf(w, "-- %s\n%s\n", unit.Shard.Name, unit.SQL); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
