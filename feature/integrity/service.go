package integrity

import (
	"context"
	"fmt"

	"order-features/core/dataset"
	"order-features/core/storage"
	"order-features/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options locates the dataset and export table the checks inspect.
type Options struct {
	Bucket      string
	Prefix      string
	Naming      dataset.Naming
	ReviewsRows int
	ReviewsCols int
	ExportTable string
}

// Service handles integrity checks.
type Service struct {
	source dataset.Source
	client storage.Client
	db     *gorm.DB
	opts   Options
	logger *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil; the
// checks needing them then report an error.
func NewService(source dataset.Source, client storage.Client, db *gorm.DB, opts Options, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		client: client,
		db:     db,
		opts:   opts,
		logger: logger,
	}
}

// CheckTables returns the required tables the source does not provide.
func (s *Service) CheckTables(ctx context.Context) ([]string, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckTables(tables), nil
}

// CheckSchema reports missing columns per required table.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckSchema(tables), nil
}

// CheckReviews compares the reviews table with its expected shape.
func (s *Service) CheckReviews(ctx context.Context) (*checks.ShapeReport, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckReviewsShape(tables, s.opts.ReviewsRows, s.opts.ReviewsCols)
}

// CheckBucket lists the dataset objects in the storage bucket.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage client is not configured")
	}
	return checks.CheckBucket(ctx, s.client, s.opts.Bucket, s.opts.Prefix, s.opts.Naming)
}

// CheckExport verifies the export table schema.
func (s *Service) CheckExport() (*checks.ExportReport, error) {
	return checks.CheckExportTable(s.db, s.opts.ExportTable)
}

// Report runs every check, loading the tables once. A failing check is
// reported in place of its result.
func (s *Service) Report(ctx context.Context) map[string]interface{} {
	report := make(map[string]interface{})

	tables, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Warn("Dataset load failed", zap.Error(err))
		failed := map[string]interface{}{"status": "error", "error": err.Error()}
		report["tables"] = failed
		report["schema"] = failed
		report["reviews"] = failed
	} else {
		report["tables"] = map[string]interface{}{"status": "ok", "missing": checks.CheckTables(tables)}
		report["schema"] = checks.CheckSchema(tables)
		if shape, err := checks.CheckReviewsShape(tables, s.opts.ReviewsRows, s.opts.ReviewsCols); err != nil {
			report["reviews"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["reviews"] = shape
		}
	}

	if s.client != nil {
		if bucket, err := s.CheckBucket(ctx); err != nil {
			report["bucket"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["bucket"] = bucket
		}
	}

	if s.db != nil {
		if export, err := s.CheckExport(); err != nil {
			report["export"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["export"] = export
		}
	}

	return report
}
