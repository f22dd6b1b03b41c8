package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"order-features/core/database"
	"order-features/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the dataset",
	Long:  `Checks that the dataset has every required table and column, the expected reviews shape, and that the storage bucket and export table are usable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			return svc.Report(ctx), nil
		})
	},
}

var tablesCheckCmd = &cobra.Command{
	Use:   "tables",
	Short: "Check that every required table is present",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			missing, err := svc.CheckTables(ctx)
			return map[string]interface{}{"missing": missing}, err
		})
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the columns of every required table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			return svc.CheckSchema(ctx)
		})
	},
}

var reviewsCheckCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Check the reviews table shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			return svc.CheckReviews(ctx)
		})
	},
}

var bucketCheckCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Check the dataset objects in the storage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			return svc.CheckBucket(ctx)
		})
	},
}

var exportCheckCmd = &cobra.Command{
	Use:   "export",
	Short: "Check the export table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, svc *integrity.Service) (interface{}, error) {
			return svc.CheckExport()
		})
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(tablesCheckCmd, schemaCheckCmd, reviewsCheckCmd, bucketCheckCmd, exportCheckCmd)
}

func runIntegrity(ctx context.Context, check func(context.Context, *integrity.Service) (interface{}, error)) error {
	cfg, logg, err := loadEnv()
	if err != nil {
		return err
	}
	defer logg.Sync()

	client, err := openStorage(cfg, needsBucket(cfg), logg)
	if err != nil {
		return err
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	source, err := newSource(cfg, client, logg)
	if err != nil {
		return err
	}

	svc := integrity.NewService(source, client, db, integrity.Options{
		Bucket:      cfg.Storage.Bucket,
		Prefix:      cfg.Dataset.Prefix,
		Naming:      cfg.Dataset.Naming(),
		ReviewsRows: cfg.Dataset.ReviewsRows,
		ReviewsCols: cfg.Dataset.ReviewsCols,
		ExportTable: cfg.Export.Table,
	}, logg)

	result, err := check(ctx, svc)
	if err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
