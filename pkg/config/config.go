package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/parser"
	"gopkg.in/yaml.v3"
)

type (
	// Shard describes one physical ClickHouse database holding a slice of the
	// logical tables.
	Shard struct {
		// Name identifies the shard in logs and command output
		Name string `yaml:"name"`

		// DSN is the ClickHouse connection string, e.g.
		// clickhouse://default:@localhost:9000/default
		DSN string `yaml:"dsn"`

		// Tables maps logical table names to the physical tables of this
		// shard. Tables without an entry are sent to the shard as written.
		Tables map[string]string `yaml:"tables,omitempty"`

		// TLS enables mutual TLS for the shard connection when set
		TLS *TLS `yaml:"tls,omitempty"`
	}

	// TLS holds the certificate files for a mutual TLS connection.
	TLS struct {
		CertFile string `yaml:"cert_file"`
		KeyFile  string `yaml:"key_file"`
		CAFile   string `yaml:"ca_file"`
	}

	// Config represents the shard topology and parser settings.
	Config struct {
		// Dialect selects the SQL dialect statements are parsed with
		Dialect string `yaml:"dialect"`

		// Timeout bounds the execution of one statement across all shards
		Timeout time.Duration `yaml:"timeout,omitempty"`

		// Shards lists the physical shards in routing order
		Shards []Shard `yaml:"shards"`
	}
)

// LoadConfig parses a shard configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data that defines the
// dialect and the shards. It uses a streaming YAML decoder to handle
// configuration files efficiently. If no dialect is specified, it defaults to
// consts.DefaultDialect. The configuration is validated before it is
// returned.
//
// Example:
//
//	yamlData := `
//	dialect: mysql
//	shards:
//	  - name: shard0
//	    dsn: clickhouse://default:@localhost:9000/default
//	    tables:
//	      t_order: t_order_0
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Shards: %d\n", len(cfg.Shards))
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal shard config")
	}

	if cfg.Dialect == "" {
		cfg.Dialect = consts.DefaultDialect
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = consts.DefaultTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a shard configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("shardkeeper.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate checks that the dialect is known and that every shard has a
// unique, non-empty name with complete TLS settings.
func (c *Config) Validate() error {
	if _, err := parser.LookupDialect(c.Dialect); err != nil {
		return errors.Wrap(err, "invalid shard config")
	}

	if c.Timeout < 0 {
		return errors.Errorf("invalid shard config: negative timeout %s", c.Timeout)
	}

	seen := make(map[string]struct{}, len(c.Shards))
	for i, shard := range c.Shards {
		name := strings.TrimSpace(shard.Name)
		if name == "" {
			return errors.Errorf("invalid shard config: shard %d has no name", i)
		}

		if _, ok := seen[name]; ok {
			return errors.Errorf("invalid shard config: duplicate shard %q", name)
		}
		seen[name] = struct{}{}

		if tls := shard.TLS; tls != nil && (tls.CertFile == "" || tls.KeyFile == "" || tls.CAFile == "") {
			return errors.Errorf("invalid shard config: shard %q needs cert_file, key_file and ca_file for TLS", name)
		}
	}

	return nil
}

// GetDialect returns the parser dialect selected by the configuration.
func (c *Config) GetDialect() (parser.Dialect, error) {
	return parser.LookupDialect(c.Dialect)
}
