package cmd

import (
	"fmt"

	"order-features/core/config"
	"order-features/core/dataset"
	"order-features/core/logger"
	"order-features/core/storage"
	"order-features/feature/orders"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// loadEnv loads the configuration and builds the logger every command needs.
func loadEnv() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// openStorage creates the storage client. When the command can run without
// storage a failure is logged and a nil client returned.
func openStorage(cfg *config.Config, required bool, logg *zap.Logger) (storage.Client, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		if required {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		logg.Warn("Optional storage client failed", zap.Error(err))
		return nil, nil
	}
	return client, nil
}

// newSource builds the dataset source selected by the configuration.
func newSource(cfg *config.Config, client storage.Client, logg *zap.Logger) (dataset.Source, error) {
	return dataset.NewSource(cfg.Dataset, afero.NewOsFs(), client, cfg.Storage.Bucket, logg)
}

func reviewsShape(cfg *config.Config) orders.Option {
	return orders.WithReviewsShape(cfg.Dataset.ReviewsRows, cfg.Dataset.ReviewsCols)
}

func needsBucket(cfg *config.Config) bool {
	return cfg.Dataset.Source == "bucket"
}
