package cmd

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/urfave/cli/v3"
)

var dialectFlag = &cli.StringFlag{
	Name:  "dialect",
	Usage: "SQL dialect, overrides the configured one (" + strings.Join(parser.Dialects(), ", ") + ")",
	Config: cli.StringConfig{
		TrimSpace: true,
	},
}

// parseStatement parses the statement given as the single argument of cmd,
// reading it from the command's input when the argument is "-". The dialect
// flag wins over the dialect provided by the application.
func parseStatement(cmd *cli.Command, dialect parser.Dialect) (*query.SelectContext, error) {
	if cmd.Args().Len() != 1 {
		return nil, errors.New("exactly one SQL argument is required")
	}

	if name := cmd.String(dialectFlag.Name); name != "" {
		d, err := parser.LookupDialect(name)
		if err != nil {
			return nil, err
		}
		dialect = d
	}

	sql := cmd.Args().First()
	if sql == "-" {
		data, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read SQL from input")
		}
		sql = string(data)
	}

	return parser.ParseString(strings.TrimSpace(sql), dialect)
}
