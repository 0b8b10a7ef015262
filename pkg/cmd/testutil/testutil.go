package testutil

import (
	"strings"
	"testing"

	"github.com/pseudomuto/shardkeeper/pkg/config"
	"github.com/stretchr/testify/require"
)

// DefaultConfig is a two shard configuration splitting t_order and
// t_order_item by suffix
const DefaultConfig = `dialect: mysql
shards:
  - name: shard0
    dsn: clickhouse://default:@shard0:9000/default
    tables:
      t_order: t_order_0
      t_order_item: t_order_item_0
  - name: shard1
    dsn: clickhouse://default:@shard1:9000/default
    tables:
      t_order: t_order_1
      t_order_item: t_order_item_1
`

// TestConfig loads the given YAML as a shard configuration, DefaultConfig
// when empty
func TestConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()

	if yaml == "" {
		yaml = DefaultConfig
	}

	cfg, err := config.LoadConfig(strings.NewReader(yaml))
	require.NoError(t, err, "Failed to load test config")
	return cfg
}
