// Package docker runs throwaway ClickHouse containers that stand in for
// shards during integration tests.
//
// # Usage Example
//
//	container := docker.New(docker.DockerOptions{Version: "25.7"})
//
//	ctx := context.Background()
//	defer container.Stop(ctx)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	// Create the physical tables of the shard
//	err := container.Seed(ctx,
//		"CREATE TABLE t_order_0 (id UInt64, price Float64) ENGINE = MergeTree ORDER BY id",
//	)
//
//	// Point a shard at the container
//	dsn, _ := container.GetDSN(ctx)
//	shards := []config.Shard{{Name: "shard0", DSN: dsn, Tables: map[string]string{"t_order": "t_order_0"}}}
package docker
