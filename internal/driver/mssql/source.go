package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
	"github.com/EungsopYoo/sqoop/internal/logging"
	_ "github.com/microsoft/go-mssqldb" // SQL Server driver
)

// Source implements driver.Source for SQL Server.
type Source struct {
	db     *sql.DB
	config *dbconfig.SourceConfig
	schema string
}

// NewSource connects to a SQL Server source database.
func NewSource(cfg *dbconfig.SourceConfig) (*Source, error) {
	dsn := buildDSN(cfg)

	db, err := sql.Open("sqlserver", dsn)
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

	logging.Info("Connected to SQL Server source: %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	schema := cfg.Schema
	if schema == "" {
		schema = "dbo"
	}

	return &Source{db: db, config: cfg, schema: schema}, nil
}

func buildDSN(cfg *dbconfig.SourceConfig) string {
	q := url.Values{}
	q.Set("database", cfg.Database)
	for k, v := range cfg.DSNOptions() {
		if k == "sslmode" {
			continue
		}
		q.Set(k, fmt.Sprintf("%v", v))
	}
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// quoteIdent safely quotes a SQL Server identifier, escaping embedded ].
func quoteIdent(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
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
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
		ORDER BY ORDINAL_POSITION
	`, s.schema, table)
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
		return nil, fmt.Errorf("table %s not found in schema %s", table, s.schema)
	}
	return names, nil
}

// ColumnTypes returns the classification code of each column of a table.
func (s *Source) ColumnTypes(ctx context.Context, table string) (map[string]driver.TypeCode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
	`, s.schema, table)
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
	return "SELECT TOP 0 * FROM (" + query + ") AS sqoop_subquery"
}

// RowCount returns the number of rows in a table.
func (s *Source) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT_BIG(*) FROM %s.%s",
		quoteIdent(s.schema), quoteIdent(table))).Scan(&count)
	return count, err
}

// ReadTable streams the given columns of every row in a table.
func (s *Source) ReadTable(ctx context.Context, table string, columns []string, fn func(values []*string) error) error {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s.%s",
		strings.Join(quoted, ", "), quoteIdent(s.schema), quoteIdent(table))
	return driver.ReadRows(ctx, s.db, query, fn)
}

// ReadQuery streams every result row of a free-form query.
func (s *Source) ReadQuery(ctx context.Context, query string, fn func(values []*string) error) error {
	return driver.ReadRows(ctx, s.db, query, fn)
}
