// Package hive generates the Hive DDL used to register imported data as a
// queryable table: a CREATE TABLE statement describing the schema and a
// LOAD DATA INPATH statement pointing Hive at the imported files.
//
// The package performs no I/O of its own. Schema description and path
// qualification are injected capabilities; the SchemaSource handed in must
// represent a freshly validated connection.
package hive

import (
	"context"
	"strings"
	"time"

	"github.com/EungsopYoo/sqoop/internal/driver"
)

// TableDefWriter builds the two Hive statements for one import.
type TableDefWriter struct {
	spec    *TableSpec
	source  driver.SchemaSource
	qualify QualifyFunc
	diag    Diagnostics
	now     func() time.Time
}

// NewTableDefWriter creates a writer for the given spec. The source
// describes the schema being imported; qualify resolves warehouse paths
// against the filesystem context (nil leaves paths unqualified); diag
// receives non-fatal notices (nil routes them to the process logger).
func NewTableDefWriter(spec *TableSpec, source driver.SchemaSource, qualify QualifyFunc, diag Diagnostics) *TableDefWriter {
	if diag == nil {
		diag = logDiagnostics{}
	}
	return &TableDefWriter{
		spec:    spec,
		source:  source,
		qualify: qualify,
		diag:    diag,
		now:     time.Now,
	}
}

// columnNames returns the names of the columns to import, in order.
// A user-specified column list takes precedence over introspection.
func (w *TableDefWriter) columnNames(ctx context.Context) ([]string, error) {
	if len(w.spec.Columns) > 0 {
		return w.spec.Columns, nil
	}
	if w.spec.InputTable != "" {
		return w.source.ColumnNames(ctx, w.spec.InputTable)
	}
	return w.source.ColumnNamesForQuery(ctx, w.spec.Query)
}

func (w *TableDefWriter) columnTypes(ctx context.Context) (map[string]driver.TypeCode, error) {
	if w.spec.InputTable != "" {
		return w.source.ColumnTypes(ctx, w.spec.InputTable)
	}
	return w.source.ColumnTypesForQuery(ctx, w.spec.Query)
}

// ResolveColumns validates the requested schema and resolves every
// imported column to its Hive type. Overrides are used verbatim and never
// flagged as approximated; all other columns consult the source's type
// table. No statement text is produced if any validation fails.
func (w *TableDefWriter) ResolveColumns(ctx context.Context) ([]ResolvedColumn, error) {
	colNames, err := w.columnNames(ctx)
	if err != nil {
		return nil, err
	}
	colTypes, err := w.columnTypes(ctx)
	if err != nil {
		return nil, err
	}

	// Every explicitly mapped column must be part of the import.
	for overridden := range w.spec.ColumnOverrides {
		found := false
		for _, c := range colNames {
			if c == overridden {
				found = true
				break
			}
		}
		if !found {
			return nil, &ArgumentError{Msg: "no column by the name " + overridden + " found while importing data"}
		}
	}

	resolved := make([]ResolvedColumn, 0, len(colNames))
	for _, col := range colNames {
		if col == w.spec.PartitionKey {
			return nil, &ArgumentError{Msg: "partition key " + col + " cannot be a column to import"}
		}

		code := colTypes[col]
		hiveType, overridden := w.spec.ColumnOverrides[col]
		if !overridden {
			var ok bool
			hiveType, ok = w.source.HiveType(w.spec.InputTable, col, code)
			if !ok {
				return nil, &UnsupportedTypeError{Column: col}
			}
		}
		if hiveType == "" {
			return nil, &UnsupportedTypeError{Column: col}
		}

		resolved = append(resolved, ResolvedColumn{
			Name:         col,
			SourceType:   code,
			HiveType:     hiveType,
			Approximated: !overridden && driver.HiveTypeImprovised(code),
		})
	}
	return resolved, nil
}

// CreateTableStmt returns the CREATE TABLE statement for the table to
// load into Hive.
func (w *TableDefWriter) CreateTableStmt(ctx context.Context) (string, error) {
	cols, err := w.ResolveColumns(ctx)
	if err != nil {
		return "", err
	}

	fieldDelim, err := OctalEscape(w.spec.FieldDelim)
	if err != nil {
		return "", err
	}
	recordDelim, err := OctalEscape(w.spec.RecordDelim)
	if err != nil {
		return "", err
	}

	external := w.spec.ExternalDir != ""

	var sb strings.Builder
	switch {
	case w.spec.FailIfExists && external:
		sb.WriteString("CREATE EXTERNAL TABLE `")
	case w.spec.FailIfExists:
		sb.WriteString("CREATE TABLE `")
	case external:
		sb.WriteString("CREATE EXTERNAL TABLE IF NOT EXISTS `")
	default:
		sb.WriteString("CREATE TABLE IF NOT EXISTS `")
	}

	if w.spec.Database != "" {
		sb.WriteString(w.spec.Database)
		sb.WriteString("`.`")
	}
	sb.WriteString(w.spec.OutputTable)
	sb.WriteString("` ( ")

	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("`")
		sb.WriteString(col.Name)
		sb.WriteString("` ")
		sb.WriteString(col.HiveType)

		if col.Approximated {
			w.diag.Warnf("Column %s had to be cast to a less precise type in Hive", col.Name)
		}
	}
	sb.WriteString(") ")

	if w.spec.Comments {
		sb.WriteString("COMMENT 'Imported by sqoop on ")
		sb.WriteString(w.now().Format("2006/01/02 15:04:05"))
		sb.WriteString("' ")
	}

	if w.spec.PartitionKey != "" {
		// The partition column lives at the storage level only; it is
		// declared here, never among the imported columns.
		sb.WriteString("PARTITIONED BY (")
		sb.WriteString(w.spec.PartitionKey)
		sb.WriteString(" STRING) ")
	}

	sb.WriteString("ROW FORMAT DELIMITED FIELDS TERMINATED BY '")
	sb.WriteString(fieldDelim)
	sb.WriteString("' LINES TERMINATED BY '")
	sb.WriteString(recordDelim)

	if isLzopCodec(w.spec.CompressionCodec) {
		sb.WriteString("' STORED AS INPUTFORMAT '")
		sb.WriteString(lzopInputFormatClass)
		sb.WriteString("' OUTPUTFORMAT '")
		sb.WriteString(textOutputFormatClass)
		sb.WriteString("'")
	} else {
		sb.WriteString("' STORED AS TEXTFILE")
	}

	if external {
		sb.WriteString(" LOCATION '")
		sb.WriteString(w.spec.ExternalDir)
		sb.WriteString("'")
	}

	stmt := sb.String()
	w.diag.Debugf("Create statement: %s", stmt)
	return stmt, nil
}

// FinalPath returns the qualified location of the imported data files.
func (w *TableDefWriter) FinalPath() (string, error) {
	return FinalPath(w.spec.WarehouseDir, w.spec.TargetDir, w.spec.InputTable, w.qualify)
}

// LoadDataStmt returns the LOAD DATA statement that moves the imported
// files into the Hive table.
func (w *TableDefWriter) LoadDataStmt() (string, error) {
	finalPath, err := w.FinalPath()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("LOAD DATA INPATH '")
	sb.WriteString(finalPath)
	sb.WriteString("'")
	if w.spec.Overwrite {
		sb.WriteString(" OVERWRITE")
	}
	sb.WriteString(" INTO TABLE `")
	if w.spec.Database != "" {
		sb.WriteString(w.spec.Database)
		sb.WriteString("`.`")
	}
	sb.WriteString(w.spec.OutputTable)
	sb.WriteString("`")

	if w.spec.PartitionKey != "" {
		sb.WriteString(" PARTITION (")
		sb.WriteString(w.spec.PartitionKey)
		sb.WriteString("='")
		sb.WriteString(w.spec.PartitionValue)
		sb.WriteString("')")
	}

	stmt := sb.String()
	w.diag.Debugf("Load statement: %s", stmt)
	return stmt, nil
}
