// Package dbconfig provides database configuration types used by both
// the config and driver packages. This package exists to break the
// circular import between config and driver packages.
package dbconfig

// SourceConfig holds source database connection settings.
// This is the configuration needed to connect to the database being imported.
type SourceConfig struct {
	Type            string `yaml:"type"` // "mysql", "postgres" or "mssql"
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Database        string `yaml:"database"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Schema          string `yaml:"schema"`            // PostgreSQL/MSSQL schema to introspect
	SSLMode         string `yaml:"ssl_mode"`          // PostgreSQL: disable, require, verify-ca, verify-full
	TrustServerCert bool   `yaml:"trust_server_cert"` // MSSQL: trust server certificate
	Encrypt         *bool  `yaml:"encrypt"`           // MSSQL: enable TLS encryption (default: true)
}

// DSNOptions returns a map of options for building a DSN.
func (c *SourceConfig) DSNOptions() map[string]any {
	opts := make(map[string]any)
	if c.SSLMode != "" {
		opts["sslmode"] = c.SSLMode
	}
	if c.Encrypt != nil {
		opts["encrypt"] = *c.Encrypt
	}
	if c.TrustServerCert {
		opts["trustServerCertificate"] = true
	}
	return opts
}
