package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/driver"
	"github.com/EungsopYoo/sqoop/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Source implements driver.Source for PostgreSQL.
type Source struct {
	pool   *pgxpool.Pool
	db     *sql.DB // stdlib wrapper over the pool, for generic row access
	config *dbconfig.SourceConfig
	schema string
}

// NewSource connects to a PostgreSQL source database.
func NewSource(cfg *dbconfig.SourceConfig) (*Source, error) {
	dsn := buildDSN(cfg)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	poolCfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logging.Info("Connected to PostgreSQL source: %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}

	return &Source{
		pool:   pool,
		db:     stdlib.OpenDBFromPool(pool),
		config: cfg,
		schema: schema,
	}, nil
}

func buildDSN(cfg *dbconfig.SourceConfig) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, url.QueryEscape(cfg.Database))
	if mode, ok := cfg.DSNOptions()["sslmode"]; ok {
		dsn += fmt.Sprintf("?sslmode=%v", mode)
	}
	return dsn
}

// quoteIdent safely quotes a PostgreSQL identifier, escaping embedded quotes.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Close closes all connections.
func (s *Source) Close() error {
	err := s.db.Close()
	s.pool.Close()
	return err
}

// Discard drops all pooled connections so later calls re-dial.
func (s *Source) Discard() {
	s.pool.Reset()
}

// ColumnNames returns the table's column names in ordinal order.
func (s *Source) ColumnNames(ctx context.Context, table string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
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
	rows, err := s.pool.Query(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
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
	return "SELECT * FROM (" + query + ") AS sqoop_subquery WHERE 1=0"
}

// RowCount returns the number of rows in a table.
func (s *Source) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s.%s",
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
