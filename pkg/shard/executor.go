package shard

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type (
	// Executor runs planned units against their shards.
	//
	// Every unit gets its own connection and runs concurrently with the
	// others. The first failure cancels the units still running and is
	// returned to the caller. Rows are returned per shard, in the order the
	// shard produced them; merging them is left to the caller.
	//
	// Example usage:
	//
	//	exec := shard.New(shard.Config{Timeout: 30 * time.Second})
	//
	//	results, err := exec.Execute(ctx, units)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	for _, result := range results {
	//		fmt.Printf("%s: %d rows in %v\n", result.Shard, len(result.Rows), result.Duration)
	//	}
	Executor struct {
		dial    Dialer
		timeout time.Duration
	}

	// Config contains configuration options for creating a new Executor.
	Config struct {
		// Dialer opens shard connections, Open when nil
		Dialer Dialer

		// Timeout bounds a whole Execute call, no limit when zero
		Timeout time.Duration
	}

	// Result holds what one shard returned for its unit.
	Result struct {
		// ID is shared by all results of one Execute call
		ID uuid.UUID `json:"id" yaml:"id"`

		// Shard is the name of the shard the unit ran on
		Shard string `json:"shard" yaml:"shard"`

		// SQL is the statement sent to the shard
		SQL string `json:"sql" yaml:"sql"`

		Columns []string `json:"columns" yaml:"columns"`
		Rows    [][]any  `json:"rows" yaml:"rows"`

		// Duration covers connecting, querying and reading all rows
		Duration time.Duration `json:"duration" yaml:"duration"`
	}
)

// New creates a new shard executor with the provided configuration.
func New(cfg Config) *Executor {
	if cfg.Dialer == nil {
		cfg.Dialer = Open
	}

	return &Executor{
		dial:    cfg.Dialer,
		timeout: cfg.Timeout,
	}
}

// Execute runs every unit on its shard and returns one result per unit, in
// unit order. The bind arguments are passed unchanged to every shard.
func (e *Executor) Execute(ctx context.Context, units []Unit, args ...any) ([]*Result, error) {
	if len(units) == 0 {
		return nil, ErrNoShards
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	id := uuid.New()
	results := make([]*Result, len(units))

	g, gctx := errgroup.WithContext(ctx)
	for i, unit := range units {
		g.Go(func() error {
			result, err := e.execute(gctx, id, unit, args)
			if err != nil {
				return err
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Statement failed", "id", id, "error", err)
		return nil, err
	}

	return results, nil
}

func (e *Executor) execute(ctx context.Context, id uuid.UUID, unit Unit, args []any) (*Result, error) {
	start := time.Now()

	conn, err := e.dial(ctx, unit.Shard)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.Query(ctx, unit.SQL, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query failed on shard %q", unit.Shard.Name)
	}
	defer func() { _ = rows.Close() }()

	data, err := scanRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rows from shard %q", unit.Shard.Name)
	}

	result := &Result{
		ID:       id,
		Shard:    unit.Shard.Name,
		SQL:      unit.SQL,
		Columns:  rows.Columns(),
		Rows:     data,
		Duration: time.Since(start),
	}

	slog.Info("Executed statement",
		"id", id,
		"shard", result.Shard,
		"rows", len(result.Rows),
		"duration", result.Duration,
	)

	return result, nil
}

// scanRows reads all remaining rows, allocating each value with the scan type
// the driver reports for its column.
func scanRows(rows driver.Rows) ([][]any, error) {
	types := rows.ColumnTypes()
	data := [][]any{}

	for rows.Next() {
		dest := make([]any, len(types))
		for i, ct := range types {
			dest[i] = reflect.New(ct.ScanType()).Interface()
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]any, len(dest))
		for i, d := range dest {
			row[i] = reflect.ValueOf(d).Elem().Interface()
		}
		data = append(data, row)
	}

	return data, rows.Err()
}
