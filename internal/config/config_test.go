package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
source:
  type: mysql
  host: localhost
  database: shop
  user: importer
  password: secret
import:
  table: orders
  warehouse_dir: /warehouse
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Import.FieldDelim != "," {
		t.Errorf("field_delim default = %q, want comma", cfg.Import.FieldDelim)
	}
	if cfg.Import.RecordDelim != `\n` {
		t.Errorf("record_delim default = %q, want newline escape", cfg.Import.RecordDelim)
	}
	if cfg.Hive.Table != "orders" {
		t.Errorf("hive table default = %q, want the import table", cfg.Hive.Table)
	}
	if cfg.Metastore.Path != "sqoop.db" {
		t.Errorf("metastore path default = %q", cfg.Metastore.Path)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default = %q", cfg.Log.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing source type", `
source:
  host: localhost
  database: shop
import:
  table: orders
`},
		{"missing table and query", `
source:
  type: mysql
  host: localhost
  database: shop
`},
		{"table and query both set", `
source:
  type: mysql
  host: localhost
  database: shop
import:
  table: orders
  query: SELECT 1
  target_dir: q
`},
		{"query without target dir", `
source:
  type: mysql
  host: localhost
  database: shop
import:
  query: SELECT 1
hive:
  table: q
`},
		{"partition value without key", `
source:
  type: mysql
  host: localhost
  database: shop
import:
  table: orders
hive:
  partition_value: "2024-01-01"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestTableSpec(t *testing.T) {
	content := `
source:
  type: postgres
  host: localhost
  database: shop
import:
  table: orders
  columns: "id, total"
  warehouse_dir: /warehouse
  field_delim: "\\0001"
  record_delim: "\\n"
hive:
  table: orders_hive
  database: analytics
  partition_key: dt
  partition_value: "2024-01-01"
  map_column:
    total: "DECIMAL(12,2)"
  overwrite: true
  comments: true
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec, err := cfg.TableSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.InputTable != "orders" || spec.OutputTable != "orders_hive" {
		t.Errorf("table names = (%q, %q)", spec.InputTable, spec.OutputTable)
	}
	if len(spec.Columns) != 2 || spec.Columns[0] != "id" || spec.Columns[1] != "total" {
		t.Errorf("columns = %v", spec.Columns)
	}
	if spec.FieldDelim != 1 {
		t.Errorf("field delim = %d, want 1 (octal \\0001)", spec.FieldDelim)
	}
	if spec.RecordDelim != 10 {
		t.Errorf("record delim = %d, want 10", spec.RecordDelim)
	}
	if spec.ColumnOverrides["total"] != "DECIMAL(12,2)" {
		t.Errorf("overrides = %v", spec.ColumnOverrides)
	}
	if !spec.Overwrite || !spec.Comments {
		t.Error("boolean flags not carried into spec")
	}
	if spec.Database != "analytics" || spec.PartitionKey != "dt" {
		t.Errorf("hive fields = (%q, %q)", spec.Database, spec.PartitionKey)
	}
}

func TestTableSpecBadDelimiter(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Import.FieldDelim = "ab"
	if _, err := cfg.TableSpec(); err == nil {
		t.Error("expected error for multi-character delimiter")
	}
}
