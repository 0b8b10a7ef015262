package shard

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/config"
)

type (
	// ClickHouse is the part of a ClickHouse connection the executor needs.
	// It is satisfied by driver.Conn.
	ClickHouse interface {
		Query(context.Context, string, ...any) (driver.Rows, error)
		Close() error
	}

	// Dialer opens a connection to one shard.
	Dialer func(context.Context, config.Shard) (ClickHouse, error)
)

// Open connects to the shard described by the given configuration and
// verifies the connection with a ping. The DSN uses the clickhouse-go
// format, e.g. clickhouse://default:@localhost:9000/default.
//
// Example:
//
//	conn, err := shard.Open(ctx, config.Shard{
//		Name: "shard0",
//		DSN:  "clickhouse://default:@localhost:9000/default",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer conn.Close()
func Open(ctx context.Context, s config.Shard) (ClickHouse, error) {
	opts, err := clickhouse.ParseDSN(s.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid DSN for shard %q", s.Name)
	}

	if s.TLS != nil {
		if opts.TLS, err = GetTLSConfig(*s.TLS); err != nil {
			return nil, errors.Wrapf(err, "failed to configure TLS for shard %q", s.Name)
		}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to shard %q", s.Name)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "failed to ping shard %q", s.Name)
	}

	return conn, nil
}

// GetTLSConfig creates a TLS config for connecting to a shard over mTLS.
//
// Example usage:
//
//	tlsConfig, err := GetTLSConfig(config.TLS{
//		CertFile: "client.crt",
//		KeyFile:  "client.key",
//		CAFile:   "ca.crt",
//	})
func GetTLSConfig(settings config.TLS) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(settings.CertFile, settings.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load cert_file/key_file")
	}

	caCert, err := os.ReadFile(settings.CAFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load ca_file")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, errors.Errorf("no certificates found in %s", settings.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
