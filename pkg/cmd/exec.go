package cmd

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/pseudomuto/shardkeeper/pkg/shard"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type execParams struct {
	fx.In

	Config  *config.Config
	Dialect parser.Dialect
	Dialer  shard.Dialer `optional:"true"`
}

// execCmd creates the exec command, which runs a statement on every shard and
// prints the rows each shard returned as YAML. Rows are not merged, derived
// columns show up as trailing columns.
//
// Flags:
//   - --dialect: SQL dialect to parse with
//   - --timeout, -t: overall timeout, defaults to the configured timeout
//   - --param, -p: bind parameter value, repeat for each placeholder
//
// Example:
//
//	shardkeeper exec -p paid "SELECT status, COUNT(*) FROM t_order WHERE status = ? GROUP BY status"
func execCmd(p execParams) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run a statement on every shard",
		ArgsUsage: "<sql|->",
		Before:    requireConfig(p.Config),
		Flags: []cli.Flag{
			dialectFlag,
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "overall timeout, defaults to the configured timeout",
			},
			&cli.StringSliceFlag{
				Name:    "param",
				Aliases: []string{"p"},
				Usage:   "bind parameter value, in placeholder order",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runExec(ctx, cmd, p)
		},
	}
}

func runExec(ctx context.Context, cmd *cli.Command, p execParams) error {
	stmt, err := parseStatement(cmd, p.Dialect)
	if err != nil {
		return err
	}

	params := cmd.StringSlice("param")
	if len(params) != stmt.ParametersIndex {
		return errors.Errorf("statement has %d parameters, got %d values", stmt.ParametersIndex, len(params))
	}

	units, err := shard.Plan(stmt, p.Config.Shards)
	if err != nil {
		return err
	}

	timeout := p.Config.Timeout
	if cmd.IsSet("timeout") {
		timeout = cmd.Duration("timeout")
	}

	slog.Info("Executing statement", "shards", len(units), "timeout", timeout)

	args := make([]any, len(params))
	for i, param := range params {
		args[i] = param
	}

	results, err := shard.New(shard.Config{Dialer: p.Dialer, Timeout: timeout}).Execute(ctx, units, args...)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return errors.Wrap(err, "failed to write results")
	}
	return enc.Close()
}
