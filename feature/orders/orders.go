package orders

import (
	"context"
	"errors"
	"fmt"

	"order-features/core/dataset"
	"order-features/core/pipeline"

	"github.com/go-gota/gota/dataframe"
)

// Logical table names read by the derivations.
const (
	TableOrders      = "orders"
	TableOrderItems  = "order_items"
	TableReviews     = "order_reviews"
	TableSellers     = "sellers"
	TableCustomers   = "customers"
	TableGeolocation = "geolocation"
)

// Feature names, also used as route parameters.
const (
	FeatureWaitTime         = "wait_time"
	FeatureReviewScore      = "review_score"
	FeatureNumberOfProducts = "number_of_products"
	FeatureNumberOfSellers  = "number_of_sellers"
	FeaturePriceAndFreight  = "price_and_freight"
	FeatureDistance         = "distance_seller_customer"
)

// Key is the grain of every feature table.
const Key = "order_id"

// StatusDelivered is the order_status kept when filtering to delivered orders.
const StatusDelivered = "delivered"

// Expected reviews table shape, a guard against a different dataset release.
const (
	DefaultReviewsRows = 99224
	DefaultReviewsCols = 7
)

var (
	// ErrShapeMismatch is returned when the reviews table does not have the expected shape.
	ErrShapeMismatch = errors.New("reviews table shape mismatch")

	// ErrUnknownFeature is returned for a feature name no derivation provides.
	ErrUnknownFeature = errors.New("unknown feature")
)

// Features lists every feature name in training column order.
var Features = []string{
	FeatureWaitTime,
	FeatureReviewScore,
	FeatureNumberOfProducts,
	FeatureNumberOfSellers,
	FeaturePriceAndFreight,
	FeatureDistance,
}

type options struct {
	reviewsRows int
	reviewsCols int
}

// Option customizes derivations.
type Option func(*options)

// WithReviewsShape sets the expected reviews table shape. Zero rows disables the check.
func WithReviewsShape(rows, cols int) Option {
	return func(o *options) {
		o.reviewsRows = rows
		o.reviewsCols = cols
	}
}

func newOptions(opts []Option) options {
	o := options{reviewsRows: DefaultReviewsRows, reviewsCols: DefaultReviewsCols}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Order derives per-order features from one snapshot of the tables.
type Order struct {
	tables dataset.Tables
	opts   options
}

// New creates an Order over tables. The tables are only read.
func New(tables dataset.Tables, opts ...Option) *Order {
	return &Order{tables: tables, opts: newOptions(opts)}
}

// WaitTime returns wait_time, expected_wait_time and delay_vs_expected in days.
func (o *Order) WaitTime(isDelivered bool) (dataframe.DataFrame, error) {
	return waitTime(o.tables, isDelivered)
}

// ReviewScore returns the star flags and score of the first review of each order.
func (o *Order) ReviewScore() (dataframe.DataFrame, error) {
	return reviewScore(o.tables, o.opts)
}

// NumberOfProducts returns the item count per order.
func (o *Order) NumberOfProducts() (dataframe.DataFrame, error) {
	return numberOfProducts(o.tables)
}

// NumberOfSellers returns the distinct seller count per order.
func (o *Order) NumberOfSellers() (dataframe.DataFrame, error) {
	return numberOfSellers(o.tables)
}

// PriceAndFreight returns the summed price and freight_value per order.
func (o *Order) PriceAndFreight() (dataframe.DataFrame, error) {
	return priceAndFreight(o.tables)
}

// DistanceSellerCustomer returns the mean seller to customer distance in km per order.
func (o *Order) DistanceSellerCustomer() (dataframe.DataFrame, error) {
	return distanceSellerCustomer(o.tables)
}

// Build runs the training pipeline and returns the frame with its row summary.
func (o *Order) Build(ctx context.Context, isDelivered, withDistance bool) (*pipeline.Result, error) {
	return pipeline.Run(ctx, TrainingSpec(isDelivered, withDistance, o.optionList()...), o.tables)
}

// TrainingData joins every feature on order_id and drops rows with missing values.
func (o *Order) TrainingData(isDelivered, withDistance bool) (dataframe.DataFrame, error) {
	res, err := o.Build(context.Background(), isDelivered, withDistance)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return res.Frame, nil
}

func (o *Order) optionList() []Option {
	return []Option{WithReviewsShape(o.opts.reviewsRows, o.opts.reviewsCols)}
}

// GetTrainingData loads the tables in dir and derives the training data.
// Every call reads the files again.
func GetTrainingData(dir string, isDelivered, withDistance bool, opts ...Option) (dataframe.DataFrame, error) {
	tables, err := dataset.LoadTables(dir)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return New(tables, opts...).TrainingData(isDelivered, withDistance)
}

// TrainingSpec returns the pipeline joining all features. Distance is the
// most expensive stage and is only included on request.
func TrainingSpec(isDelivered, withDistance bool, opts ...Option) *pipeline.Spec {
	o := newOptions(opts)
	stages := []pipeline.Derivation{
		waitTimeStage(isDelivered),
		pipeline.NewFunc(FeatureReviewScore, func(t dataset.Tables) (dataframe.DataFrame, error) { return reviewScore(t, o) }),
		pipeline.NewFunc(FeatureNumberOfProducts, numberOfProducts),
		pipeline.NewFunc(FeatureNumberOfSellers, numberOfSellers),
		pipeline.NewFunc(FeaturePriceAndFreight, priceAndFreight),
	}
	if withDistance {
		stages = append(stages, pipeline.NewFunc(FeatureDistance, distanceSellerCustomer))
	}
	return &pipeline.Spec{
		Key:     Key,
		Stages:  stages,
		DropNA:  true,
		Variant: o.variant(isDelivered),
	}
}

// FeatureSpec returns a single-stage pipeline for the named feature.
func FeatureSpec(name string, isDelivered bool, opts ...Option) (*pipeline.Spec, error) {
	o := newOptions(opts)
	var d pipeline.Derivation
	switch name {
	case FeatureWaitTime:
		d = waitTimeStage(isDelivered)
	case FeatureReviewScore:
		d = pipeline.NewFunc(name, func(t dataset.Tables) (dataframe.DataFrame, error) { return reviewScore(t, o) })
	case FeatureNumberOfProducts:
		d = pipeline.NewFunc(name, numberOfProducts)
	case FeatureNumberOfSellers:
		d = pipeline.NewFunc(name, numberOfSellers)
	case FeaturePriceAndFreight:
		d = pipeline.NewFunc(name, priceAndFreight)
	case FeatureDistance:
		d = pipeline.NewFunc(name, distanceSellerCustomer)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	return &pipeline.Spec{Key: Key, Stages: []pipeline.Derivation{d}, Variant: o.variant(isDelivered)}, nil
}

func waitTimeStage(isDelivered bool) pipeline.Derivation {
	return pipeline.NewFunc(FeatureWaitTime, func(t dataset.Tables) (dataframe.DataFrame, error) {
		return waitTime(t, isDelivered)
	})
}

func (o options) variant(isDelivered bool) string {
	return fmt.Sprintf("delivered=%t,reviews=%dx%d", isDelivered, o.reviewsRows, o.reviewsCols)
}
