// Package importer runs the full import pipeline: export source rows to
// delimited text files under the warehouse directory, generate the Hive
// statements for the imported data, and record the run in the metastore.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/EungsopYoo/sqoop/internal/config"
	"github.com/EungsopYoo/sqoop/internal/driver"
	"github.com/EungsopYoo/sqoop/internal/fsutil"
	"github.com/EungsopYoo/sqoop/internal/hive"
	"github.com/EungsopYoo/sqoop/internal/logging"
	"github.com/EungsopYoo/sqoop/internal/metastore"
	"github.com/EungsopYoo/sqoop/internal/progress"
	"github.com/EungsopYoo/sqoop/internal/secrets"
)

// Importer ties a connected source database, the parsed table spec and
// the job store together for one import run.
type Importer struct {
	cfg    *config.Config
	spec   *hive.TableSpec
	source driver.Source
	store  *metastore.Store
}

// New connects to the source database and opens the job store.
func New(cfg *config.Config) (*Importer, error) {
	spec, err := cfg.TableSpec()
	if err != nil {
		return nil, err
	}

	password, err := secrets.ResolvePassword(&cfg.Source)
	if err != nil {
		return nil, err
	}
	cfg.Source.Password = password

	source, err := driver.Open(&cfg.Source)
	if err != nil {
		return nil, err
	}

	store, err := metastore.Open(cfg.Metastore.Path)
	if err != nil {
		source.Close()
		return nil, err
	}

	return &Importer{cfg: cfg, spec: spec, source: source, store: store}, nil
}

// Close releases the source connection and the job store.
func (i *Importer) Close() error {
	err := i.source.Close()
	if cerr := i.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// Statements generates the CREATE TABLE and LOAD DATA statements for the
// configured import. Pooled connections are discarded first: by the time
// statements are generated a long row export may have idled them out.
func (i *Importer) Statements(ctx context.Context) (create, load string, err error) {
	i.source.Discard()

	qualifier := &fsutil.Qualifier{DefaultFS: i.cfg.FS.DefaultFS}
	w := hive.NewTableDefWriter(i.spec, i.source, qualifier.Qualify, nil)

	create, err = w.CreateTableStmt(ctx)
	if err != nil {
		return "", "", err
	}
	load, err = w.LoadDataStmt()
	if err != nil {
		return "", "", err
	}
	return create, load, nil
}

// Run performs a full import: export rows, generate statements, write the
// Hive script, and record the job. Returns the job ID.
func (i *Importer) Run(ctx context.Context) (string, error) {
	jobID := uuid.NewString()
	if err := i.store.CreateJob(jobID, i.sourceName(), i.spec.OutputTable); err != nil {
		return "", err
	}

	rows, err := i.exportData(ctx)
	if err != nil {
		i.store.FailJob(jobID, err.Error())
		return jobID, err
	}

	create, load, err := i.Statements(ctx)
	if err != nil {
		i.store.FailJob(jobID, err.Error())
		return jobID, err
	}

	scriptPath, err := i.writeScript(create, load)
	if err != nil {
		i.store.FailJob(jobID, err.Error())
		return jobID, err
	}

	if err := i.store.CompleteJob(jobID, create, load, rows); err != nil {
		return jobID, err
	}
	logging.Info("Import complete: %d rows exported, Hive script at %s", rows, scriptPath)
	return jobID, nil
}

func (i *Importer) sourceName() string {
	if i.spec.InputTable != "" {
		return i.spec.InputTable
	}
	return "(query)"
}

// exportDir resolves the local directory the data files land in. The
// qualifier is deliberately nil: data is written through the local
// filesystem and only the generated statements carry the qualified URI.
func (i *Importer) exportDir() (string, error) {
	return hive.FinalPath(i.spec.WarehouseDir, i.spec.TargetDir, i.spec.InputTable, nil)
}

func (i *Importer) exportData(ctx context.Context) (int64, error) {
	dir, err := i.exportDir()
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, "part-00000")
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating data file: %w", err)
	}
	defer f.Close()
	out := bufio.NewWriter(f)

	var bar *progress.Tracker
	var rows int64
	writeRow := func(values []*string) error {
		for idx, v := range values {
			if idx > 0 {
				out.WriteByte(byte(i.spec.FieldDelim))
			}
			if v == nil {
				out.WriteString("null")
			} else {
				out.WriteString(*v)
			}
		}
		if err := out.WriteByte(byte(i.spec.RecordDelim)); err != nil {
			return fmt.Errorf("writing data file: %w", err)
		}
		rows++
		bar.Add(1)
		return nil
	}

	if i.spec.InputTable != "" {
		// Resolving columns up front validates overrides and the
		// partition key before any rows leave the source.
		w := hive.NewTableDefWriter(i.spec, i.source, nil, nil)
		resolved, err := w.ResolveColumns(ctx)
		if err != nil {
			return 0, err
		}
		columns := make([]string, len(resolved))
		for idx, col := range resolved {
			columns[idx] = col.Name
		}

		total, err := i.source.RowCount(ctx, i.spec.InputTable)
		if err != nil {
			logging.Warn("Could not count rows in %s: %v", i.spec.InputTable, err)
			total = -1
		}
		bar = progress.New(total, "exporting "+i.spec.InputTable)
		err = i.source.ReadTable(ctx, i.spec.InputTable, columns, writeRow)
		if err != nil {
			return 0, fmt.Errorf("reading table %s: %w", i.spec.InputTable, err)
		}
	} else {
		bar = progress.New(-1, "exporting query")
		if err := i.source.ReadQuery(ctx, i.spec.Query, writeRow); err != nil {
			return 0, fmt.Errorf("reading query results: %w", err)
		}
	}
	bar.Finish()

	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("writing data file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing data file: %w", err)
	}
	logging.Info("Exported %d rows to %s", rows, path)
	return rows, nil
}

// writeScript writes both statements to a Hive script file next to the
// data directory, ready to run with `hive -f`.
func (i *Importer) writeScript(create, load string) (string, error) {
	dir, err := i.exportDir()
	if err != nil {
		return "", err
	}
	path := filepath.Clean(dir) + ".hql"

	script := create + ";\n" + load + ";\n"
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("writing Hive script: %w", err)
	}
	return path, nil
}
