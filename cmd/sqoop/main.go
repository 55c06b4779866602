package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/EungsopYoo/sqoop/internal/config"
	"github.com/EungsopYoo/sqoop/internal/importer"
	"github.com/EungsopYoo/sqoop/internal/logging"
	"github.com/EungsopYoo/sqoop/internal/metastore"
	"github.com/EungsopYoo/sqoop/internal/version"

	// Registered source database drivers.
	_ "github.com/EungsopYoo/sqoop/internal/driver/mssql"
	_ "github.com/EungsopYoo/sqoop/internal/driver/mysql"
	_ "github.com/EungsopYoo/sqoop/internal/driver/postgres"
)

func main() {
	app := &cli.App{
		Name:    version.Name,
		Usage:   version.Description,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Export source rows to the warehouse and generate Hive statements",
				Action: runImport,
				Flags:  importFlags(),
			},
			{
				Name:   "create-hive-table",
				Usage:  "Print the Hive statements without exporting any data",
				Action: createHiveTable,
				Flags:  importFlags(),
			},
			{
				Name:  "job",
				Usage: "Inspect recorded import jobs",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all recorded jobs",
						Action: listJobs,
					},
					{
						Name:   "show",
						Usage:  "Show details for one job",
						Action: showJob,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "id",
								Usage:    "Job ID",
								Required: true,
							},
						},
					},
					{
						Name:   "delete",
						Usage:  "Delete a job record",
						Action: deleteJob,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "id",
								Usage:    "Job ID",
								Required: true,
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "table",
			Usage: "Source table to import",
		},
		&cli.StringFlag{
			Name:  "query",
			Usage: "Free-form query to import instead of a table",
		},
		&cli.StringFlag{
			Name:  "columns",
			Usage: "Comma-separated subset of columns to import",
		},
		&cli.StringFlag{
			Name:  "warehouse-dir",
			Usage: "Base warehouse directory for imported data",
		},
		&cli.StringFlag{
			Name:  "target-dir",
			Usage: "Explicit data directory (overrides warehouse-dir)",
		},
		&cli.StringFlag{
			Name:  "hive-table",
			Usage: "Name of the Hive table to create",
		},
		&cli.StringFlag{
			Name:  "hive-database",
			Usage: "Hive database to create the table in",
		},
		&cli.BoolFlag{
			Name:  "overwrite",
			Usage: "Generate LOAD DATA ... OVERWRITE",
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override from flags
	if c.IsSet("table") {
		cfg.Import.Table = c.String("table")
		if !c.IsSet("hive-table") && cfg.Hive.Table == "" {
			cfg.Hive.Table = cfg.Import.Table
		}
	}
	if c.IsSet("query") {
		cfg.Import.Query = c.String("query")
	}
	if c.IsSet("columns") {
		cfg.Import.Columns = c.String("columns")
	}
	if c.IsSet("warehouse-dir") {
		cfg.Import.WarehouseDir = c.String("warehouse-dir")
	}
	if c.IsSet("target-dir") {
		cfg.Import.TargetDir = c.String("target-dir")
	}
	if c.IsSet("hive-table") {
		cfg.Hive.Table = c.String("hive-table")
	}
	if c.IsSet("hive-database") {
		cfg.Hive.Database = c.String("hive-database")
	}
	if c.IsSet("overwrite") {
		cfg.Hive.Overwrite = c.Bool("overwrite")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	logging.SetFormat(cfg.Log.Format)
	return cfg, nil
}

func runImport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	imp, err := importer.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}
	defer imp.Close()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nInterrupted. Aborting import...")
		cancel()
	}()

	jobID, err := imp.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Job %s finished\n", jobID)
	return nil
}

func createHiveTable(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	imp, err := importer.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}
	defer imp.Close()

	create, load, err := imp.Statements(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(create + ";")
	fmt.Println(load + ";")
	return nil
}

// openStore opens the job store named by the config file. Job commands
// skip config validation: they only need the metastore path.
func openStore(c *cli.Context) (*metastore.Store, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return metastore.Open(cfg.Metastore.Path)
}

func listJobs(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.ListJobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs recorded")
		return nil
	}
	fmt.Printf("%-36s  %-20s  %-20s  %-8s  %10s  %s\n",
		"ID", "SOURCE", "HIVE TABLE", "STATUS", "ROWS", "STARTED")
	for _, job := range jobs {
		fmt.Printf("%-36s  %-20s  %-20s  %-8s  %10d  %s\n",
			job.ID, job.SourceTable, job.HiveTable, job.Status,
			job.RowsExported, job.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func showJob(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	job, err := store.GetJob(c.String("id"))
	if err != nil {
		return err
	}
	fmt.Printf("ID:          %s\n", job.ID)
	fmt.Printf("Source:      %s\n", job.SourceTable)
	fmt.Printf("Hive table:  %s\n", job.HiveTable)
	fmt.Printf("Status:      %s\n", job.Status)
	fmt.Printf("Rows:        %d\n", job.RowsExported)
	fmt.Printf("Started:     %s\n", job.StartedAt.Format("2006-01-02 15:04:05"))
	if !job.FinishedAt.IsZero() {
		fmt.Printf("Finished:    %s\n", job.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	if job.Error != "" {
		fmt.Printf("Error:       %s\n", job.Error)
	}
	if job.CreateStmt != "" {
		fmt.Printf("\n%s;\n%s;\n", job.CreateStmt, job.LoadStmt)
	}
	return nil
}

func deleteJob(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteJob(c.String("id")); err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}
