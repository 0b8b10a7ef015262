package config_test

import (
	"os"
	"testing"

	. "github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModule(t *testing.T) {
	t.Run("without config file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		var (
			cfg     *Config
			dialect parser.Dialect
		)

		app := fxtest.New(t, Module, fx.Populate(&cfg, &dialect))
		app.RequireStart()
		defer app.RequireStop()

		require.Nil(t, cfg)
		require.Equal(t, parser.MySQL{}, dialect)
	})

	t.Run("with config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(consts.DefaultConfigFile, []byte(testConfigYAML), consts.ModeFile))

		var (
			cfg     *Config
			dialect parser.Dialect
		)

		app := fxtest.New(t, Module, fx.Populate(&cfg, &dialect))
		app.RequireStart()
		defer app.RequireStop()

		require.NotNil(t, cfg)
		require.Len(t, cfg.Shards, 2)
		require.Equal(t, parser.PostgreSQL{}, dialect)
	})
}
