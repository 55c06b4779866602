package hive

import "github.com/EungsopYoo/sqoop/internal/driver"

// TableSpec is a read-only snapshot of the options for one Hive import.
// It is constructed once per invocation and never mutated afterwards.
type TableSpec struct {
	// InputTable is the source table to import. Mutually exclusive
	// with Query.
	InputTable string

	// Query is a free-form source query to import instead of a table.
	Query string

	// Columns optionally restricts the import to an explicit column list.
	// When nil, all source columns are imported.
	Columns []string

	// OutputTable is the Hive table to create and load.
	OutputTable string

	// Database optionally qualifies OutputTable with a Hive database.
	Database string

	// PartitionKey and PartitionValue configure a storage-level partition
	// column. The key must not collide with an imported column.
	PartitionKey   string
	PartitionValue string

	// ExternalDir, when set, makes the table EXTERNAL with this LOCATION.
	ExternalDir string

	// WarehouseDir and TargetDir locate the imported data files.
	WarehouseDir string
	TargetDir    string

	// FieldDelim and RecordDelim are single-byte delimiter codes in [0, 127].
	FieldDelim  int
	RecordDelim int

	// CompressionCodec is the codec the data files were written with,
	// by short name or fully qualified class name.
	CompressionCodec string

	// ColumnOverrides maps column names to explicit Hive types. Every key
	// must name an imported column.
	ColumnOverrides map[string]string

	// FailIfExists selects CREATE TABLE over CREATE TABLE IF NOT EXISTS.
	FailIfExists bool

	// Overwrite adds the OVERWRITE modifier to the load statement.
	Overwrite bool

	// Comments adds a timestamped COMMENT clause to the created table.
	Comments bool
}

// ResolvedColumn is one imported column with its Hive type resolved.
type ResolvedColumn struct {
	// Name is the source column name.
	Name string

	// SourceType is the source engine's type classification.
	SourceType driver.TypeCode

	// HiveType is the resolved Hive type string.
	HiveType string

	// Approximated reports that the Hive mapping loses precision
	// relative to the source type.
	Approximated bool
}
