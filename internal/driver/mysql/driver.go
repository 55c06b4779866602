// Package mysql provides the MySQL/MariaDB source driver.
// It registers itself with the driver registry on import.
package mysql

import (
	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
)

func init() {
	driver.Register(&Driver{})
}

// Driver implements driver.Driver for MySQL/MariaDB databases.
type Driver struct{}

// Name returns the primary driver name.
func (d *Driver) Name() string {
	return "mysql"
}

// Aliases returns alternative names for this driver.
func (d *Driver) Aliases() []string {
	return []string{"mariadb", "maria"}
}

// DefaultPort returns the default MySQL port.
func (d *Driver) DefaultPort() int {
	return 3306
}

// Open connects to a MySQL source database.
func (d *Driver) Open(cfg *dbconfig.SourceConfig) (driver.Source, error) {
	return NewSource(cfg)
}
