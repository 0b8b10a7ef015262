package shard_test

import (
	"context"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type mockClickHouse struct {
	queryFunc func(context.Context, string, ...any) (driver.Rows, error)
	queries   []string
	closed    bool
}

func (m *mockClickHouse) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	m.queries = append(m.queries, query)
	if m.queryFunc != nil {
		return m.queryFunc(ctx, query, args...)
	}
	return &mockRows{}, nil
}

func (m *mockClickHouse) Close() error {
	m.closed = true
	return nil
}

type mockColumnType struct {
	name     string
	scanType reflect.Type
}

func (c mockColumnType) Name() string             { return c.name }
func (c mockColumnType) Nullable() bool           { return false }
func (c mockColumnType) ScanType() reflect.Type   { return c.scanType }
func (c mockColumnType) DatabaseTypeName() string { return c.scanType.String() }

// mockRows serves data row by row, assigning each value through the pointer
// the executor passes to Scan.
type mockRows struct {
	columns []mockColumnType
	data    [][]any
	pos     int
	err     error
	closed  bool
}

func (m *mockRows) Next() bool {
	if m.pos < len(m.data) {
		m.pos++
		return true
	}
	return false
}

func (m *mockRows) Scan(dest ...any) error {
	for i, v := range m.data[m.pos-1] {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (m *mockRows) Close() error {
	m.closed = true
	return nil
}

func (m *mockRows) Err() error {
	return m.err
}

func (m *mockRows) ColumnTypes() []driver.ColumnType {
	types := make([]driver.ColumnType, len(m.columns))
	for i, c := range m.columns {
		types[i] = c
	}
	return types
}

func (m *mockRows) Columns() []string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = c.name
	}
	return names
}

func (m *mockRows) ScanStruct(dest any) error {
	return nil
}

func (m *mockRows) Totals(dest ...any) error {
	return nil
}
