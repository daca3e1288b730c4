package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rand-db-jsonb-populate [command]",
	Short: "Synthetic JSONB test-data loader for PostgreSQL",
	Long: `Fabricates pseudo-random records (dates, codes, short/long text, currency and
fractional numerics) as JSON documents and bulk inserts them into a PostgreSQL
table for load and performance testing.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
