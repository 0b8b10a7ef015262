package config

import (
	"os"

	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Function attempts to load the configuration from shardkeeper.yaml if it exists.
	// Returns nil if the file doesn't exist, allowing commands that don't require config
	// (like parse, help, version) to function properly.
	func() (*Config, error) {
		if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.DefaultConfigFile)
	},
	func(c *Config) (parser.Dialect, error) {
		if c == nil {
			return parser.DefaultDialect(), nil
		}
		return c.GetDialect()
	},
))
