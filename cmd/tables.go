package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tablesCmd represents the tables command
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Load the dataset and list its tables",
	Long:  `Loads every CSV table from the configured source and prints the shape of each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, logg, err := loadEnv()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := openStorage(cfg, needsBucket(cfg), logg)
		if err != nil {
			return err
		}
		source, err := newSource(cfg, client, logg)
		if err != nil {
			return err
		}

		tables, err := source.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load tables: %w", err)
		}

		fmt.Println("\n=== Dataset Tables ===")
		for _, name := range tables.Names() {
			df := tables[name]
			fmt.Printf("%-20s %8d rows %3d columns\n", name, df.Nrow(), df.Ncol())
		}
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

		logg.Info("Tables loaded", zap.Int("tables", len(tables)), zap.String("source", cfg.Dataset.Source))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
