package cmd

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type parseParams struct {
	fx.In

	Dialect parser.Dialect
}

// parseCmd creates the parse command, which prints everything the parser
// learned about a statement: select items with their derived columns, tables,
// ORDER BY and GROUP BY items, limit and rewrite tokens.
//
// Flags:
//   - --dialect: SQL dialect to parse with
//   - --format, -f: output format, yaml (default) or json
//
// Examples:
//
//	# Parse a statement given as an argument
//	shardkeeper parse "SELECT AVG(price) FROM t_order GROUP BY status"
//
//	# Parse a statement from stdin as JSON
//	cat query.sql | shardkeeper parse -f json -
func parseCmd(p parseParams) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the parse result of a SELECT statement",
		ArgsUsage: "<sql|->",
		Flags: []cli.Flag{
			dialectFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format (yaml, json)",
				Value:   "yaml",
				Validator: func(s string) error {
					if s != "yaml" && s != "json" {
						return errors.Errorf("unsupported format %q", s)
					}
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stmt, err := parseStatement(cmd, p.Dialect)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if cmd.String("format") == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(stmt), "failed to write parse result")
			}

			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(stmt); err != nil {
				return errors.Wrap(err, "failed to write parse result")
			}
			return enc.Close()
		},
	}
}
