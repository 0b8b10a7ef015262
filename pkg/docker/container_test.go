package docker_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/docker"
	"github.com/stretchr/testify/require"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Docker tests in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.Command("docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestDockerContainer_StartStop(t *testing.T) {
	skipIfNoDocker(t)

	container := docker.New(docker.DockerOptions{Version: consts.DefaultClickHouseVersion})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Clean up at end
	defer func() {
		_ = container.Stop(ctx)
	}()

	require.NoError(t, container.Start(ctx), "Failed to start ClickHouse container")
	require.True(t, container.IsRunning())
	require.Error(t, container.Start(ctx), "second start should fail")

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err)
	require.Contains(t, dsn, "clickhouse://")

	require.NoError(t, container.Seed(ctx,
		"CREATE TABLE t_order_0 (id UInt64) ENGINE = MergeTree ORDER BY id",
		"INSERT INTO t_order_0 VALUES (1), (2)",
	))
	require.Error(t, container.Seed(ctx, "SELEKT 1"))

	require.NoError(t, container.Stop(ctx), "Failed to stop ClickHouse container")
	require.False(t, container.IsRunning())
}

func TestDockerContainer_NotRunning(t *testing.T) {
	container := docker.New(docker.DockerOptions{})
	ctx := context.Background()

	// Stop should not error if container doesn't exist
	require.NoError(t, container.Stop(ctx))
	require.False(t, container.IsRunning())

	_, err := container.GetDSN(ctx)
	require.EqualError(t, err, "container is not running")

	require.EqualError(t, container.Seed(ctx, "SELECT 1"), "container is not running")
}
