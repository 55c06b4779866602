// Package driver provides pluggable source database abstractions.
// Each database (MySQL, PostgreSQL, MSSQL) implements the Driver interface
// to provide all database-specific functionality in one cohesive unit.
package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
)

// SchemaSource describes the schema of a source database. It is the
// capability the Hive statement builders consume: column discovery and
// the source-to-Hive type table.
//
// A SchemaSource handed to the builders must represent a freshly validated
// connection; callers reuse Discard to drop pooled connections that may
// have gone stale during a long-running import.
type SchemaSource interface {
	// ColumnNames returns the column names of a table in ordinal order.
	ColumnNames(ctx context.Context, table string) ([]string, error)

	// ColumnNamesForQuery returns the result column names of a free-form query.
	ColumnNamesForQuery(ctx context.Context, query string) ([]string, error)

	// ColumnTypes returns the type code of each column of a table.
	ColumnTypes(ctx context.Context, table string) (map[string]TypeCode, error)

	// ColumnTypesForQuery returns the type code of each result column of a query.
	ColumnTypesForQuery(ctx context.Context, query string) (map[string]TypeCode, error)

	// HiveType resolves a column's type code to a Hive type name.
	// Returns false if the source type has no Hive equivalent.
	HiveType(table, column string, code TypeCode) (string, bool)

	// Discard drops any pooled connections so that subsequent calls
	// re-establish fresh ones.
	Discard()

	// Close releases all connections.
	Close() error
}

// TableReader streams table rows for the warehouse export step.
type TableReader interface {
	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, table string) (int64, error)

	// ReadTable reads the given columns of every row in a table, in
	// arbitrary order, invoking fn once per row with the raw values
	// rendered as strings (nil for SQL NULL).
	ReadTable(ctx context.Context, table string, columns []string, fn func(values []*string) error) error

	// ReadQuery streams every result row of a free-form query.
	ReadQuery(ctx context.Context, query string, fn func(values []*string) error) error
}

// Source is a connected source database: schema introspection plus row access.
type Source interface {
	SchemaSource
	TableReader
}

// Driver represents a pluggable source database driver.
//
// To add a new database:
// 1. Create a package under internal/driver/<dbname>/
// 2. Implement the Driver interface
// 3. Register via init(): driver.Register(&MyDriver{})
type Driver interface {
	// Name returns the primary driver name (e.g., "mysql", "postgres").
	Name() string

	// Aliases returns alternative names for this driver.
	Aliases() []string

	// DefaultPort returns the default port for this database.
	DefaultPort() int

	// Open connects to the source database described by cfg.
	Open(cfg *dbconfig.SourceConfig) (Source, error)
}

var registry = map[string]Driver{}

// Register adds a driver to the registry under its name and aliases.
// Called from driver package init functions.
func Register(d Driver) {
	registry[d.Name()] = d
	for _, alias := range d.Aliases() {
		registry[alias] = d
	}
}

// Lookup returns the driver registered under name (case-insensitive).
func Lookup(name string) (Driver, error) {
	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown source database type %q", name)
	}
	return d, nil
}

// Open looks up the driver for cfg.Type and connects to the source.
func Open(cfg *dbconfig.SourceConfig) (Source, error) {
	d, err := Lookup(cfg.Type)
	if err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = d.DefaultPort()
	}
	return d.Open(cfg)
}
