// Package postgres provides the PostgreSQL source driver.
// It registers itself with the driver registry on import.
package postgres

import (
	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
)

func init() {
	driver.Register(&Driver{})
}

// Driver implements driver.Driver for PostgreSQL databases.
type Driver struct{}

// Name returns the primary driver name.
func (d *Driver) Name() string {
	return "postgres"
}

// Aliases returns alternative names for this driver.
func (d *Driver) Aliases() []string {
	return []string{"postgresql", "pg"}
}

// DefaultPort returns the default PostgreSQL port.
func (d *Driver) DefaultPort() int {
	return 5432
}

// Open connects to a PostgreSQL source database.
func (d *Driver) Open(cfg *dbconfig.SourceConfig) (driver.Source, error) {
	return NewSource(cfg)
}
