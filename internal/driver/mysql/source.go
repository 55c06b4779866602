package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
	"github.com/EungsopYoo/sqoop/internal/logging"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// Source implements driver.Source for MySQL/MariaDB.
type Source struct {
	db     *sql.DB
	config *dbconfig.SourceConfig
}

// NewSource connects to a MySQL source database.
func NewSource(cfg *dbconfig.SourceConfig) (*Source, error) {
	dsn := buildDSN(cfg)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Detect MySQL vs MariaDB
	var version string
	db.QueryRow("SELECT VERSION()").Scan(&version)
	dbType := "MySQL"
	if strings.Contains(strings.ToLower(version), "mariadb") {
		dbType = "MariaDB"
	}

	logging.Info("Connected to %s source: %s:%d/%s", dbType, cfg.Host, cfg.Port, cfg.Database)

	return &Source{db: db, config: cfg}, nil
}

func buildDSN(cfg *dbconfig.SourceConfig) string {
	params := "parseTime=false"
	if mode, ok := cfg.DSNOptions()["sslmode"]; ok && mode != "disable" {
		params += "&tls=true"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, params)
}

// quoteIdent safely quotes a MySQL identifier, escaping embedded backticks.
func quoteIdent(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// Close closes all connections.
func (s *Source) Close() error {
	return s.db.Close()
}

// Discard closes idle pooled connections so later calls re-dial.
func (s *Source) Discard() {
	s.db.SetMaxIdleConns(0)
	s.db.SetMaxIdleConns(1)
}

// ColumnNames returns the table's column names in ordinal order.
func (s *Source) ColumnNames(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COLUMN_NAME
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, s.config.Database, table)
	if err != nil {
		return nil, fmt.Errorf("querying columns of %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("table %s not found in database %s", table, s.config.Database)
	}
	return names, nil
}

// ColumnTypes returns the classification code of each column of a table.
func (s *Source) ColumnTypes(ctx context.Context, table string) (map[string]driver.TypeCode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
	`, s.config.Database, table)
	if err != nil {
		return nil, fmt.Errorf("querying column types of %s: %w", table, err)
	}
	defer rows.Close()

	types := make(map[string]driver.TypeCode)
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, fmt.Errorf("scanning column type: %w", err)
		}
		types[name] = typeCodeFor(dataType)
	}
	return types, rows.Err()
}

// ColumnNamesForQuery returns the result column names of a free-form query.
func (s *Source) ColumnNamesForQuery(ctx context.Context, query string) ([]string, error) {
	names, _, err := driver.QueryColumnInfo(ctx, s.db, probeQuery(query))
	return names, err
}

// ColumnTypesForQuery returns the classification code of each result column.
func (s *Source) ColumnTypesForQuery(ctx context.Context, query string) (map[string]driver.TypeCode, error) {
	names, typeNames, err := driver.QueryColumnInfo(ctx, s.db, probeQuery(query))
	if err != nil {
		return nil, err
	}
	types := make(map[string]driver.TypeCode, len(names))
	for i, name := range names {
		types[name] = typeCodeFor(typeNames[i])
	}
	return types, nil
}

// HiveType resolves a column's type code to a Hive type name.
func (s *Source) HiveType(table, column string, code driver.TypeCode) (string, bool) {
	return driver.ToHiveType(code)
}

// probeQuery wraps a query so it can be described without fetching rows.
func probeQuery(query string) string {
	return "SELECT * FROM (" + query + ") AS sqoop_subquery WHERE 1=0"
}

// RowCount returns the number of rows in a table.
func (s *Source) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))).Scan(&count)
	return count, err
}

// ReadTable streams the given columns of every row in a table.
func (s *Source) ReadTable(ctx context.Context, table string, columns []string, fn func(values []*string) error) error {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(table))
	return driver.ReadRows(ctx, s.db, query, fn)
}

// ReadQuery streams every result row of a free-form query.
func (s *Source) ReadQuery(ctx context.Context, query string, fn func(values []*string) error) error {
	return driver.ReadRows(ctx, s.db, query, fn)
}
