package driver

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryColumnInfo executes a zero-row probe query and returns the result
// column names alongside the driver-reported type names, in result order.
func QueryColumnInfo(ctx context.Context, db *sql.DB, probe string) ([]string, []string, error) {
	rows, err := db.QueryContext(ctx, probe)
	if err != nil {
		return nil, nil, fmt.Errorf("describing query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading result columns: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, fmt.Errorf("reading result column types: %w", err)
	}
	typeNames := make([]string, len(colTypes))
	for i, ct := range colTypes {
		typeNames[i] = ct.DatabaseTypeName()
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return names, typeNames, nil
}

// ReadRows runs query and streams every row to fn as stringified values,
// nil for SQL NULL. Used by the warehouse export step.
func ReadRows(ctx context.Context, db *sql.DB, query string, fn func(values []*string) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("reading table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	raw := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	values := make([]*string, len(cols))

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		for i := range raw {
			if raw[i].Valid {
				v := raw[i].String
				values[i] = &v
			} else {
				values[i] = nil
			}
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}
