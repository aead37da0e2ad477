package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/database"
	"github.com/Rana718/retailgen/internal/manifest"
	"github.com/Rana718/retailgen/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the loaded tables for integrity problems",
	Long: `Count the rows of every table and check that:
- every order references an existing customer
- every transaction references an existing order
- every order has between 1 and 10 transactions
- every total_amount equals quantity x unit_price

When the run manifest exists, the row counts must also match the last run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx := context.Background()
		sink, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer sink.Close()

		var m *manifest.Manifest
		if path := cfg.Output.ManifestPath; path != "" {
			if _, err := os.Stat(path); err == nil {
				if m, err = manifest.Read(path); err != nil {
					return err
				}
			}
		}
		return verifySink(ctx, sink, m)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// verifySink checks the loaded tables and, when m is not nil, their counts
// against the run that loaded them.
func verifySink(ctx context.Context, sink database.Sink, m *manifest.Manifest) error {
	color.Cyan("🔍 Verifying data integrity...")
	v, err := sink.Verify(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify tables: %w", err)
	}

	for _, name := range []string{types.TableCustomers, types.TableOrders, types.TableTransactions} {
		fmt.Printf("  %-14s %10d rows\n", name, v.Counts[name])
	}
	fmt.Printf("  avg items per order: %.2f\n", v.AvgItemsPerOrder())

	problems := v.Problems()
	if m != nil {
		problems = append(problems, m.Compare(v.Counts)...)
	}
	if len(problems) == 0 {
		color.Green("✅ No integrity problems found")
		return nil
	}
	for _, p := range problems {
		color.Red("  ❌ %s", p)
	}
	return fmt.Errorf("verification found %d problem(s)", len(problems))
}
