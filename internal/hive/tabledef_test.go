package hive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/EungsopYoo/sqoop/internal/driver"
)

// fakeSource is an in-memory SchemaSource for builder tests.
type fakeSource struct {
	names []string
	types map[string]driver.TypeCode
}

func (f *fakeSource) ColumnNames(ctx context.Context, table string) ([]string, error) {
	return f.names, nil
}

func (f *fakeSource) ColumnNamesForQuery(ctx context.Context, query string) ([]string, error) {
	return f.names, nil
}

func (f *fakeSource) ColumnTypes(ctx context.Context, table string) (map[string]driver.TypeCode, error) {
	return f.types, nil
}

func (f *fakeSource) ColumnTypesForQuery(ctx context.Context, query string) (map[string]driver.TypeCode, error) {
	return f.types, nil
}

func (f *fakeSource) HiveType(table, column string, code driver.TypeCode) (string, bool) {
	return driver.ToHiveType(code)
}

func (f *fakeSource) Discard() {}

func (f *fakeSource) Close() error { return nil }

// recordingDiag captures diagnostics for assertions.
type recordingDiag struct {
	warns  []string
	debugs []string
}

func (d *recordingDiag) Warnf(format string, args ...interface{}) {
	d.warns = append(d.warns, fmt.Sprintf(format, args...))
}

func (d *recordingDiag) Debugf(format string, args ...interface{}) {
	d.debugs = append(d.debugs, fmt.Sprintf(format, args...))
}

func basicSource() *fakeSource {
	return &fakeSource{
		names: []string{"id", "name"},
		types: map[string]driver.TypeCode{
			"id":   driver.TypeInteger,
			"name": driver.TypeVarchar,
		},
	}
}

func basicSpec() *TableSpec {
	return &TableSpec{
		InputTable:  "out",
		OutputTable: "out",
		FieldDelim:  ',',
		RecordDelim: '\n',
	}
}

func TestCreateTableStmt(t *testing.T) {
	w := NewTableDefWriter(basicSpec(), basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "CREATE TABLE IF NOT EXISTS `out` ( `id` INT, `name` STRING) " +
		"ROW FORMAT DELIMITED FIELDS TERMINATED BY '\\054' " +
		"LINES TERMINATED BY '\\012' STORED AS TEXTFILE"
	if got != want {
		t.Errorf("create statement mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestCreateTableClauseVariants(t *testing.T) {
	tests := []struct {
		name         string
		failIfExists bool
		externalDir  string
		wantPrefix   string
	}{
		{"create if absent managed", false, "", "CREATE TABLE IF NOT EXISTS `"},
		{"create or fail managed", true, "", "CREATE TABLE `"},
		{"create if absent external", false, "/data/ext", "CREATE EXTERNAL TABLE IF NOT EXISTS `"},
		{"create or fail external", true, "/data/ext", "CREATE EXTERNAL TABLE `"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := basicSpec()
			spec.FailIfExists = tt.failIfExists
			spec.ExternalDir = tt.externalDir
			w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

			got, err := w.CreateTableStmt(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("statement %q does not start with %q", got, tt.wantPrefix)
			}
			if tt.externalDir != "" {
				wantLocation := " LOCATION '" + tt.externalDir + "'"
				if !strings.HasSuffix(got, wantLocation) {
					t.Errorf("statement %q does not end with %q", got, wantLocation)
				}
			} else if strings.Contains(got, "LOCATION") {
				t.Errorf("managed table statement contains LOCATION clause: %q", got)
			}
		})
	}
}

func TestCreateTableDatabaseQualified(t *testing.T) {
	spec := basicSpec()
	spec.Database = "analytics"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "CREATE TABLE IF NOT EXISTS `analytics`.`out` ( ") {
		t.Errorf("missing database-qualified table name: %q", got)
	}
}

func TestCreateTableComments(t *testing.T) {
	spec := basicSpec()
	spec.Comments = true
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})
	w.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ") COMMENT 'Imported by sqoop on 2024/01/02 03:04:05' ROW FORMAT"
	if !strings.Contains(got, want) {
		t.Errorf("statement %q missing comment clause %q", got, want)
	}
}

func TestCreateTablePartition(t *testing.T) {
	spec := basicSpec()
	spec.PartitionKey = "dt"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, ") PARTITIONED BY (dt STRING) ROW FORMAT") {
		t.Errorf("statement %q missing partition clause", got)
	}
	if strings.Contains(got, "`dt`") {
		t.Errorf("partition column must not appear among imported columns: %q", got)
	}
}

func TestCreateTableLzopCodec(t *testing.T) {
	for _, codec := range []string{"lzop", "com.hadoop.compression.lzo.LzopCodec"} {
		t.Run(codec, func(t *testing.T) {
			spec := basicSpec()
			spec.CompressionCodec = codec
			w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

			got, err := w.CreateTableStmt(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := "' STORED AS INPUTFORMAT 'com.hadoop.mapred.DeprecatedLzoTextInputFormat'" +
				" OUTPUTFORMAT 'org.apache.hadoop.hive.ql.io.HiveIgnoreKeyTextOutputFormat'"
			if !strings.HasSuffix(got, want) {
				t.Errorf("statement %q missing lzop storage clause", got)
			}
			if strings.Contains(got, "TEXTFILE") {
				t.Errorf("lzop statement must not fall back to TEXTFILE: %q", got)
			}
		})
	}
}

func TestCreateTableOtherCodecUsesTextfile(t *testing.T) {
	spec := basicSpec()
	spec.CompressionCodec = "gzip"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "' STORED AS TEXTFILE") {
		t.Errorf("statement %q should use plain TEXTFILE storage", got)
	}
}

func TestCreateTableOverrideVerbatim(t *testing.T) {
	spec := basicSpec()
	spec.ColumnOverrides = map[string]string{"id": "DECIMAL(10,2)"}
	diag := &recordingDiag{}
	w := NewTableDefWriter(spec, basicSource(), nil, diag)

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "`id` DECIMAL(10,2)") {
		t.Errorf("override not applied verbatim: %q", got)
	}
	if len(diag.warns) != 0 {
		t.Errorf("user overrides must never warn, got %v", diag.warns)
	}
}

func TestCreateTableUnknownOverrideColumn(t *testing.T) {
	spec := basicSpec()
	spec.ColumnOverrides = map[string]string{"missing": "STRING"}
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err == nil {
		t.Fatalf("expected error, got statement %q", got)
	}
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *ArgumentError", err)
	}
	if !strings.Contains(argErr.Error(), "missing") {
		t.Errorf("error %q does not name the unknown column", argErr.Error())
	}
	if got != "" {
		t.Errorf("no output may be produced on failure, got %q", got)
	}
}

func TestCreateTablePartitionKeyCollision(t *testing.T) {
	spec := basicSpec()
	spec.PartitionKey = "name"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.CreateTableStmt(context.Background())
	if err == nil {
		t.Fatalf("expected error, got statement %q", got)
	}
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("error = %T, want *ArgumentError", err)
	}
	if !strings.Contains(argErr.Error(), "name") {
		t.Errorf("error %q does not name the colliding column", argErr.Error())
	}
}

func TestCreateTableUnsupportedType(t *testing.T) {
	src := &fakeSource{
		names: []string{"id", "payload"},
		types: map[string]driver.TypeCode{
			"id":      driver.TypeInteger,
			"payload": driver.TypeVarBinary,
		},
	}
	w := NewTableDefWriter(basicSpec(), src, nil, &recordingDiag{})

	_, err := w.CreateTableStmt(context.Background())
	var typeErr *UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %T, want *UnsupportedTypeError", err)
	}
	if typeErr.Column != "payload" {
		t.Errorf("error names column %q, want %q", typeErr.Column, "payload")
	}
}

func TestCreateTableEmptyOverride(t *testing.T) {
	spec := basicSpec()
	spec.ColumnOverrides = map[string]string{"id": ""}
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	_, err := w.CreateTableStmt(context.Background())
	var typeErr *UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %T, want *UnsupportedTypeError", err)
	}
}

func TestCreateTableApproximatedMappingWarns(t *testing.T) {
	src := &fakeSource{
		names: []string{"id", "created_at"},
		types: map[string]driver.TypeCode{
			"id":         driver.TypeInteger,
			"created_at": driver.TypeTimestamp,
		},
	}
	diag := &recordingDiag{}
	w := NewTableDefWriter(basicSpec(), src, nil, diag)

	got, err := w.CreateTableStmt(context.Background())
	if err != nil {
		t.Fatalf("approximated mappings must not abort: %v", err)
	}
	if !strings.Contains(got, "`created_at` STRING") {
		t.Errorf("approximated column missing from statement: %q", got)
	}
	if len(diag.warns) != 1 || !strings.Contains(diag.warns[0], "created_at") {
		t.Errorf("expected one warning naming created_at, got %v", diag.warns)
	}
}

func TestCreateTableDelimiterOutOfRange(t *testing.T) {
	spec := basicSpec()
	spec.FieldDelim = 200
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	_, err := w.CreateTableStmt(context.Background())
	var rangeErr *DelimiterRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %T, want *DelimiterRangeError", err)
	}
	if rangeErr.Code != 200 {
		t.Errorf("range error names code %d, want 200", rangeErr.Code)
	}
}

func TestLoadDataStmt(t *testing.T) {
	spec := basicSpec()
	spec.WarehouseDir = "/warehouse"
	spec.Overwrite = true
	spec.PartitionKey = "dt"
	spec.PartitionValue = "2024-01-01"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.LoadDataStmt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "LOAD DATA INPATH '/warehouse/out' OVERWRITE INTO TABLE `out` " +
		"PARTITION (dt='2024-01-01')"
	if got != want {
		t.Errorf("load statement mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestLoadDataStmtMinimal(t *testing.T) {
	spec := basicSpec()
	spec.WarehouseDir = "/warehouse"
	spec.Database = "analytics"
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	got, err := w.LoadDataStmt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "LOAD DATA INPATH '/warehouse/out' INTO TABLE `analytics`.`out`"
	if got != want {
		t.Errorf("load statement mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestLoadDataStmtQualifiedPath(t *testing.T) {
	spec := basicSpec()
	spec.WarehouseDir = "/warehouse"
	qualify := func(path string) (string, error) {
		return "hdfs://nn:8020" + path, nil
	}
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})
	w.qualify = qualify

	got, err := w.LoadDataStmt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "LOAD DATA INPATH 'hdfs://nn:8020/warehouse/out'") {
		t.Errorf("load statement %q missing qualified path", got)
	}
}

func TestResolveColumnsEmptyOverrides(t *testing.T) {
	src := basicSource()
	w := NewTableDefWriter(basicSpec(), src, nil, &recordingDiag{})

	cols, err := w.ResolveColumns(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("resolved %d columns, want 2", len(cols))
	}
	for _, col := range cols {
		want, _ := driver.ToHiveType(src.types[col.Name])
		if col.HiveType != want {
			t.Errorf("column %s resolved to %q, want the source-reported %q",
				col.Name, col.HiveType, want)
		}
	}
}

func TestResolveColumnsExplicitList(t *testing.T) {
	spec := basicSpec()
	spec.Columns = []string{"name"}
	w := NewTableDefWriter(spec, basicSource(), nil, &recordingDiag{})

	cols, err := w.ResolveColumns(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 1 || cols[0].Name != "name" {
		t.Errorf("resolved columns = %v, want just name", cols)
	}
}
