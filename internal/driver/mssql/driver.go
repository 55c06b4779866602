// Package mssql provides the SQL Server source driver.
// It registers itself with the driver registry on import.
package mssql

import (
	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
)

func init() {
	driver.Register(&Driver{})
}

// Driver implements driver.Driver for SQL Server databases.
type Driver struct{}

// Name returns the primary driver name.
func (d *Driver) Name() string {
	return "mssql"
}

// Aliases returns alternative names for this driver.
func (d *Driver) Aliases() []string {
	return []string{"sqlserver"}
}

// DefaultPort returns the default SQL Server port.
func (d *Driver) DefaultPort() int {
	return 1433
}

// Open connects to a SQL Server source database.
func (d *Driver) Open(cfg *dbconfig.SourceConfig) (driver.Source, error) {
	return NewSource(cfg)
}
