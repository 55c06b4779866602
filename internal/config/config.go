// Package config loads and validates the tool configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/EungsopYoo/sqoop/internal/dbconfig"
	"github.com/EungsopYoo/sqoop/internal/hive"
	"github.com/EungsopYoo/sqoop/internal/util"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Source    dbconfig.SourceConfig `yaml:"source"`
	Import    ImportConfig          `yaml:"import"`
	Hive      HiveConfig            `yaml:"hive"`
	FS        FSConfig              `yaml:"fs"`
	Metastore MetastoreConfig       `yaml:"metastore"`
	Log       LogConfig             `yaml:"log"`
}

// ImportConfig selects what to import and where the data files land.
type ImportConfig struct {
	Table        string `yaml:"table"`         // source table; mutually exclusive with query
	Query        string `yaml:"query"`         // free-form source query
	Columns      string `yaml:"columns"`       // optional CSV column subset
	WarehouseDir string `yaml:"warehouse_dir"` // base directory for imported data
	TargetDir    string `yaml:"target_dir"`    // explicit data directory (required for query imports)
	FieldDelim   string `yaml:"field_delim"`   // delimiter spec, e.g. "," or \t or \0001
	RecordDelim  string `yaml:"record_delim"`
}

// HiveConfig controls the generated Hive statements.
type HiveConfig struct {
	Table            string            `yaml:"table"`    // defaults to the import table
	Database         string            `yaml:"database"` // optional Hive database
	PartitionKey     string            `yaml:"partition_key"`
	PartitionValue   string            `yaml:"partition_value"`
	ExternalDir      string            `yaml:"external_dir"`
	CompressionCodec string            `yaml:"compression_codec"`
	MapColumn        map[string]string `yaml:"map_column"` // explicit Hive type overrides
	FailIfExists     bool              `yaml:"fail_if_exists"`
	Overwrite        bool              `yaml:"overwrite"`
	Comments         bool              `yaml:"comments"`
}

// FSConfig locates the distributed filesystem.
type FSConfig struct {
	DefaultFS string `yaml:"default_fs"` // e.g. hdfs://namenode:8020
}

// MetastoreConfig locates the saved-job store.
type MetastoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and defaults the configuration without validating it,
// for callers that apply command-line overrides before validation.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Import.FieldDelim == "" {
		c.Import.FieldDelim = ","
	}
	if c.Import.RecordDelim == "" {
		c.Import.RecordDelim = `\n`
	}
	if c.Hive.Table == "" {
		c.Hive.Table = c.Import.Table
	}
	if c.Metastore.Path == "" {
		c.Metastore.Path = "sqoop.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration for contradictions and omissions.
func (c *Config) Validate() error {
	if c.Source.Type == "" {
		return fmt.Errorf("source.type is required")
	}
	if c.Source.Host == "" {
		return fmt.Errorf("source.host is required")
	}
	if c.Source.Database == "" {
		return fmt.Errorf("source.database is required")
	}
	if c.Import.Table == "" && c.Import.Query == "" {
		return fmt.Errorf("one of import.table or import.query is required")
	}
	if c.Import.Table != "" && c.Import.Query != "" {
		return fmt.Errorf("import.table and import.query are mutually exclusive")
	}
	if c.Import.Query != "" && c.Import.TargetDir == "" {
		return fmt.Errorf("import.target_dir is required for query imports")
	}
	if c.Hive.Table == "" {
		return fmt.Errorf("hive.table is required for query imports")
	}
	if c.Hive.PartitionKey == "" && c.Hive.PartitionValue != "" {
		return fmt.Errorf("hive.partition_value requires hive.partition_key")
	}
	return nil
}

// TableSpec builds the immutable options snapshot the statement builders
// consume. Delimiter specs are parsed here, once, so the builders only
// ever see byte codes.
func (c *Config) TableSpec() (*hive.TableSpec, error) {
	fieldDelim, err := util.ParseDelimiter(c.Import.FieldDelim)
	if err != nil {
		return nil, fmt.Errorf("import.field_delim: %w", err)
	}
	recordDelim, err := util.ParseDelimiter(c.Import.RecordDelim)
	if err != nil {
		return nil, fmt.Errorf("import.record_delim: %w", err)
	}

	return &hive.TableSpec{
		InputTable:       c.Import.Table,
		Query:            c.Import.Query,
		Columns:          util.SplitCSV(c.Import.Columns),
		OutputTable:      c.Hive.Table,
		Database:         c.Hive.Database,
		PartitionKey:     c.Hive.PartitionKey,
		PartitionValue:   c.Hive.PartitionValue,
		ExternalDir:      c.Hive.ExternalDir,
		WarehouseDir:     c.Import.WarehouseDir,
		TargetDir:        c.Import.TargetDir,
		FieldDelim:       fieldDelim,
		RecordDelim:      recordDelim,
		CompressionCodec: c.Hive.CompressionCodec,
		ColumnOverrides:  c.Hive.MapColumn,
		FailIfExists:     c.Hive.FailIfExists,
		Overwrite:        c.Hive.Overwrite,
		Comments:         c.Hive.Comments,
	}, nil
}
