package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/database"
	"github.com/Rana718/retailgen/internal/manifest"
	"github.com/Rana718/retailgen/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	genTruncate bool
	genVerify   bool
	genDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset and load it into the database",
	Long: `Generate customers, near-duplicate customers, orders and transactions and
load them table by table in foreign key order.

A load failure stops the run. The run manifest then reports status "failed"
and flags every unfinished table as partial; empty the tables (--truncate)
before trying again.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.Int64("seed", 0, "Random seed")
	f.Int("customers", 0, "Number of base customers")
	f.Int("orders", 0, "Number of orders")
	f.Int("customer-batch", 0, "Customers per batch")
	f.Int("order-batch", 0, "Orders per batch")
	f.Int("transaction-batch", 0, "Orders whose line items form one transaction batch")
	f.Int("workers", 0, "Batches generated in parallel")
	f.String("manifest", "", "Where to write the run manifest")
	f.BoolVar(&genTruncate, "truncate", false, "Empty the target tables before generating")
	f.BoolVar(&genVerify, "verify", false, "Verify the loaded tables after the run")
	f.BoolVar(&genDryRun, "dry-run", false, "Generate into an in-memory sink")

	bindings := map[string]string{
		"seed":              "generation.seed",
		"customers":         "generation.customers",
		"orders":            "generation.orders",
		"customer-batch":    "generation.customer_batch",
		"order-batch":       "generation.order_batch",
		"transaction-batch": "generation.transaction_batch",
		"workers":           "generation.workers",
		"manifest":          "output.manifest_path",
	}
	for flag, key := range bindings {
		viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if genDryRun {
		cfg.Database.Provider = "memory"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	s, err := seeder.NewSeeder(cfg, sink, log)
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}

	report, runErr := s.Run(ctx, genTruncate)

	m := manifest.New(cfg, report, runErr)
	if path := cfg.Output.ManifestPath; path != "" {
		if err := m.Write(path); err != nil {
			color.Yellow("⚠️  Could not write manifest: %v", err)
		} else {
			color.Cyan("📄 Manifest written to %s (status: %s)", path, m.Status)
		}
	}

	if runErr != nil {
		var partial []string
		for _, t := range m.Tables {
			if t.Partial {
				partial = append(partial, t.Name)
			}
		}
		color.Red("❌ Generation failed; partial tables: %s", strings.Join(partial, ", "))
		color.Yellow("💡 Re-run with --truncate once the cause is fixed")
		return runErr
	}

	printReport(report)

	if genVerify {
		return verifySink(ctx, sink, m)
	}
	return nil
}

// connect opens the sink for the configured provider.
func connect(ctx context.Context, cfg *config.Config) (database.Sink, error) {
	sink, err := database.NewSink(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}
	if err := sink.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sink.Ping(ctx); err != nil {
		sink.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sink, nil
}

func printReport(r *seeder.Report) {
	fmt.Println()
	color.Cyan("📊 Summary (%s)", r.Finished.Sub(r.Started).Round(time.Millisecond))
	for _, name := range r.Order {
		st := r.Tables[name]
		fmt.Printf("  %-20s %10d rows  %4d batches  digest %s\n", name, st.Rows, st.Batches, st.Digest)
	}

	dups := r.DuplicateCustomers()
	if r.BaseCustomers > 0 {
		fmt.Printf("  duplicates: %d of %d base customers (%.1f%%), %d exact_contact, %d fuzzy_name (%d misspelled)\n",
			dups, r.BaseCustomers, 100*float64(dups)/float64(r.BaseCustomers),
			r.Duplicates.Exact, r.Duplicates.Fuzzy, r.Duplicates.FuzzyTypo)
	}
	if r.Duplicates.Demoted > 0 {
		color.Yellow("  ⚠️  %d exact_contact duplicates became fuzzy_name for lack of a contact field", r.Duplicates.Demoted)
	}
}
