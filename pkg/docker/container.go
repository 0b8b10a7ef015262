package docker

import (
	"context"
	"fmt"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

type (
	// DockerOptions represents options for running a ClickHouse shard in Docker
	DockerOptions struct {
		// Version is the ClickHouse version to run (default: consts.DefaultClickHouseVersion)
		Version string

		// Database is created on startup and used by GetDSN (default: default)
		Database string

		// InitScripts are SQL or shell files run by the image entrypoint on first start
		InitScripts []string
	}

	// Container manages a ClickHouse Docker container standing in for one shard
	Container struct {
		options   DockerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a new Docker container with the given options
//
// Example:
//
//	container := docker.New(docker.DockerOptions{Version: "25.7"})
//
//	// Start ClickHouse container
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func New(opts DockerOptions) *Container {
	if opts.Version == "" {
		opts.Version = consts.DefaultClickHouseVersion
	}
	if opts.Database == "" {
		opts.Database = "default"
	}

	return &Container{options: opts}
}

// Start starts a ClickHouse Docker container with the configured version
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		clickhouse.WithDatabase(c.options.Database),
		testcontainers.WithWaitStrategyAndDeadline(
			5*time.Minute,
			wait.
				NewHTTPStrategy("/").
				WithPort(nat.Port("8123/tcp")).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	}

	if len(c.options.InitScripts) > 0 {
		customizers = append(customizers, clickhouse.WithInitScripts(c.options.InitScripts...))
	}

	container, err := clickhouse.Run(ctx,
		fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", c.options.Version),
		customizers...,
	)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the ClickHouse Docker container
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop ClickHouse container")
	}

	return nil
}

// GetDSN returns the native protocol DSN of the running container, in the
// format expected by config.Shard.
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// Seed runs the given statements in order, typically to create and fill the
// physical tables of a shard.
func (c *Container) Seed(ctx context.Context, statements ...string) error {
	dsn, err := c.GetDSN(ctx)
	if err != nil {
		return err
	}

	opts, err := ch.ParseDSN(dsn)
	if err != nil {
		return errors.Wrap(err, "invalid container DSN")
	}

	conn, err := ch.Open(opts)
	if err != nil {
		return errors.Wrap(err, "failed to connect to container")
	}
	defer func() { _ = conn.Close() }()

	for _, stmt := range statements {
		if err := conn.Exec(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to seed statement: %s", stmt)
		}
	}

	return nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
