package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main shardkeeper CLI application with the given
// version and command-line arguments. Commands are collected from the fx
// "commands" group, so adding a command only requires providing it in Module.
//
// The application runs once the fx app starts and shuts the fx app down when
// the command returns, with exit code 1 on failure.
//
// Example usage:
//
//	# Show the parse result of a statement
//	shardkeeper parse "SELECT AVG(price) FROM t_order"
//
//	# Print the statement each shard would receive
//	echo "SELECT * FROM t_order ORDER BY id" | shardkeeper rewrite -
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "shardkeeper",
		Usage: "Parse and route SELECT statements across sharded ClickHouse tables",
		Description: `shardkeeper parses SELECT statements, works out the columns needed to merge
results from several shards and rewrites the statement for each shard's
physical tables.

Shards are read from shardkeeper.yaml in the current directory.`,
		Version:  p.Version.Version,
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, errors.Errorf("%s not found", consts.DefaultConfigFile)
		}

		return ctx, nil
	}
}
