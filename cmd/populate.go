package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dstjohniii/rand-db-jsonb-populate/internal/datagen"
	"github.com/dstjohniii/rand-db-jsonb-populate/internal/loader"
)

type populateConfig struct {
	host        string
	port        int
	user        string
	password    string
	database    string
	sslMode     string
	askPassword bool

	schema        string
	table         string
	numRows       int
	rowsPerInsert int
	poolSize      int
	pooled        int
	counts        datagen.Counts

	seed        uint64
	noProgress  bool
	summaryFile string
}

var popCfg populateConfig

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Empty the target table and fill it with generated JSONB rows",
	Long: `Runs the full load:
1. Connect and delete every existing row in the target table
2. Build the type pool and the field schema, and print both
3. Insert --rows rows in sequential batches of --rows-per-insert
4. Print the elapsed load time and verify the final row count

The table is expected to exist with columns id (bigint) and "values" (jsonb).`,
	RunE: runPopulate,
}

func init() {
	rootCmd.AddCommand(populateCmd)

	f := populateCmd.Flags()
	f.StringVar(&popCfg.host, "host", "", "PostgreSQL host (default localhost, or POPULATE_HOST env)")
	f.IntVar(&popCfg.port, "port", 0, "PostgreSQL port (default 5432, or POPULATE_PORT env)")
	f.StringVar(&popCfg.user, "user", "", "PostgreSQL username (default postgres, or POPULATE_USER env)")
	f.StringVar(&popCfg.database, "database", "", "Database name (default postgres, or POPULATE_DB env)")
	f.StringVar(&popCfg.sslMode, "sslmode", "disable", "PostgreSQL sslmode")
	f.BoolVar(&popCfg.askPassword, "ask-password", false, "Prompt for the password instead of using env or the default")

	f.StringVar(&popCfg.schema, "schema", "test-big", "Target schema")
	f.StringVar(&popCfg.table, "table", "entity_values", "Target table")
	f.IntVarP(&popCfg.numRows, "rows", "n", 100000, "Total rows to insert")
	f.IntVarP(&popCfg.rowsPerInsert, "rows-per-insert", "b", 10000, "Rows per insert statement")
	f.IntVar(&popCfg.poolSize, "pool-size", 20, "Pre-generated values per field type")
	f.IntVar(&popCfg.pooled, "pooled", 2, "Leading fields per type that draw from the type pool")

	def := datagen.DefaultCounts()
	f.IntVar(&popCfg.counts.Date, "date-fields", def.Date, "Number of date fields (ids 20xxx)")
	f.IntVar(&popCfg.counts.TextCode, "text-code-fields", def.TextCode, "Number of text code fields (ids 30xxx)")
	f.IntVar(&popCfg.counts.TextShort, "text-short-fields", def.TextShort, "Number of short text fields (ids 31xxx)")
	f.IntVar(&popCfg.counts.TextLong, "text-long-fields", def.TextLong, "Number of long text fields (ids 32xxx)")
	f.IntVar(&popCfg.counts.NumericCurrency, "currency-fields", def.NumericCurrency, "Number of currency fields (ids 40xxx)")
	f.IntVar(&popCfg.counts.NumericFraction, "fraction-fields", def.NumericFraction, "Number of fraction fields (ids 41xxx)")

	f.Uint64Var(&popCfg.seed, "seed", 0, "Random seed (0 = time based)")
	f.BoolVar(&popCfg.noProgress, "no-progress", false, "Disable the batch progress bar")
	f.StringVar(&popCfg.summaryFile, "summary-file", "", "Write a JSON run summary to this path")
}

func resolvePopulateEnv(c *populateConfig) {
	if c.host == "" {
		c.host = os.Getenv("POPULATE_HOST")
	}
	if c.port == 0 {
		if p := os.Getenv("POPULATE_PORT"); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				c.port = port
			}
		}
	}
	if c.user == "" {
		c.user = os.Getenv("POPULATE_USER")
	}
	if c.password == "" {
		c.password = os.Getenv("POPULATE_PGPASSWORD")
		if c.password == "" {
			c.password = os.Getenv("PGPASSWORD")
		}
	}
	if c.database == "" {
		c.database = os.Getenv("POPULATE_DB")
	}

	if c.host == "" {
		c.host = "localhost"
	}
	if c.port == 0 {
		c.port = defaultPort
	}
	if c.user == "" {
		c.user = "postgres"
	}
	if c.password == "" && !c.askPassword {
		c.password = "admin"
	}
	if c.database == "" {
		c.database = "postgres"
	}
}

func (c *populateConfig) validate() error {
	if err := c.counts.Validate(); err != nil {
		return err
	}
	if err := (datagen.Options{PoolSize: c.poolSize, PooledAssumptions: c.pooled}).Validate(); err != nil {
		return err
	}
	return c.loaderConfig().Validate()
}

func (c *populateConfig) loaderConfig() loader.Config {
	return loader.Config{
		Schema:        c.schema,
		Table:         c.table,
		TotalRows:     c.numRows,
		RowsPerInsert: c.rowsPerInsert,
	}
}

func runPopulate(cmd *cobra.Command, args []string) error {
	resolvePopulateEnv(&popCfg)
	if popCfg.askPassword {
		popCfg.password = promptPassword("  Password: ")
	}
	if err := popCfg.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()
	runStart := time.Now()

	connStr := buildConnStr(popCfg.host, popCfg.port, popCfg.user, popCfg.password, popCfg.database, popCfg.sslMode)
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return fmt.Errorf("connect to %s:%d: %w", popCfg.host, popCfg.port, err)
	}
	defer conn.Close(ctx)
	log("Connected to %s:%d/%s", popCfg.host, popCfg.port, popCfg.database)

	ld, err := loader.New(conn, popCfg.loaderConfig())
	if err != nil {
		return err
	}

	deleted, err := ld.Clear(ctx)
	if err != nil {
		return err
	}
	log("Deleted %s existing rows from %s.%s", humanize.Comma(deleted), popCfg.schema, popCfg.table)

	catalog := datagen.NewCatalog(popCfg.counts)
	gen, err := datagen.NewGenerator(datagen.NewRand(popCfg.seed), catalog, datagen.Options{
		PoolSize:          popCfg.poolSize,
		PooledAssumptions: popCfg.pooled,
	})
	if err != nil {
		return fmt.Errorf("build generator: %w", err)
	}

	fmt.Println("Type pool")
	fmt.Print(formatPool(catalog, gen.Pool))
	fmt.Printf("Schema (%d fields)\n", len(gen.Schema))
	fmt.Print(formatSchema(gen.Schema))

	cfg := popCfg.loaderConfig()
	log("Inserting %s rows in %d batches of up to %s",
		humanize.Comma(int64(cfg.TotalRows)), cfg.Batches(), humanize.Comma(int64(cfg.RowsPerInsert)))

	if !popCfg.noProgress && cfg.Batches() > 0 {
		bar := progressbar.NewOptions(cfg.Batches(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("inserting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		ld.OnBatch = func(loader.BatchStats) { _ = bar.Add(1) }
	}

	res, err := ld.Load(ctx, gen)
	if err != nil {
		return fmt.Errorf("load aborted after %d of %d batches: %w", res.Batches, cfg.Batches(), err)
	}
	fmt.Printf("Duration: %d milliseconds\n", res.Duration.Milliseconds())
	log("Run %s: %s rows, %d batches, %s payload, %s",
		res.RunID, humanize.Comma(int64(res.Rows)), res.Batches,
		humanize.Bytes(uint64(res.Bytes)), rowsPerSec(res.Rows, res.Duration))

	count, err := ld.Count(ctx)
	if err != nil {
		return err
	}

	if popCfg.summaryFile != "" {
		end := time.Now()
		summary := runSummary{
			RunID:         res.RunID.String(),
			StartTime:     runStart,
			EndTime:       end,
			DurationSecs:  end.Sub(runStart).Seconds(),
			Schema:        popCfg.schema,
			Table:         popCfg.table,
			RowsRequested: cfg.TotalRows,
			RowsInserted:  res.Rows,
			RowsInTable:   count,
			Batches:       res.Batches,
			PayloadBytes:  res.Bytes,
			Fields:        gen.Schema,
		}
		if err := writeSummaryJSON(summary, popCfg.summaryFile); err != nil {
			log("Warning: failed to write JSON summary: %v", err)
		} else {
			log("JSON summary: %s", popCfg.summaryFile)
		}
	}

	if count != int64(cfg.TotalRows) {
		return fmt.Errorf("verification: %s.%s has %d rows, expected %d", popCfg.schema, popCfg.table, count, cfg.TotalRows)
	}
	log("Verified %s rows in %s.%s", humanize.Comma(count), popCfg.schema, popCfg.table)
	return nil
}
