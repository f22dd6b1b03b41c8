package orders

import (
	"context"
	"time"

	"order-features/core/dataset"
	"order-features/core/metrics"
	"order-features/core/pipeline"

	"go.uber.org/zap"
)

// Service builds order features from a dataset source.
type Service struct {
	source  dataset.Source
	logger  *zap.Logger
	metrics *metrics.Registry
	opts    []Option
	flights pipeline.Group
}

// NewService creates a new orders service. metrics may be nil.
func NewService(source dataset.Source, logger *zap.Logger, reg *metrics.Registry, opts ...Option) *Service {
	return &Service{
		source:  source,
		logger:  logger,
		metrics: reg,
		opts:    opts,
	}
}

// Training loads the tables and builds the training data.
func (s *Service) Training(ctx context.Context, isDelivered, withDistance bool) (*pipeline.Result, error) {
	return s.run(ctx, "training", TrainingSpec(isDelivered, withDistance, s.opts...))
}

// Feature loads the tables and derives a single named feature.
func (s *Service) Feature(ctx context.Context, name string, isDelivered bool) (*pipeline.Result, error) {
	spec, err := FeatureSpec(name, isDelivered, s.opts...)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, name, spec)
}

func (s *Service) run(ctx context.Context, name string, spec *pipeline.Spec) (*pipeline.Result, error) {
	start := time.Now()
	res, shared, err := s.flights.Do(ctx, spec, s.load)
	elapsed := time.Since(start)

	rows := 0
	if res != nil {
		rows = res.Summary.Rows
	}
	s.metrics.ObserveBuild(name, elapsed, rows, err)

	if err != nil {
		s.logger.Error("Feature build failed", zap.String("pipeline", name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Feature build finished",
		zap.String("pipeline", name),
		zap.Int("rows", rows),
		zap.Bool("shared", shared),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}

func (s *Service) load(ctx context.Context) (dataset.Tables, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveTables(len(tables))
	return tables, nil
}
