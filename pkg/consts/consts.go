package consts

import (
	"os"
	"time"
)

const (
	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DerivedAliasPrefix prefixes every alias generated for derived columns.
	// The merge layer relies on it to tell synthesized columns apart from
	// client projections.
	DerivedAliasPrefix = "sharding_gen_"

	// DefaultDialect is used when neither the config nor a flag selects one
	DefaultDialect = "mysql"

	// DefaultConfigFile is the configuration file looked up in the working directory
	DefaultConfigFile = "shardkeeper.yaml"

	// DefaultTimeout bounds a statement executed across all shards
	DefaultTimeout = 30 * time.Second

	// DefaultClickHouseVersion is the server image used by the test container
	DefaultClickHouseVersion = "25.7"
)
