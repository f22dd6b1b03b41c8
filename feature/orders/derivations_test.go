package orders

import (
	"math"
	"strings"
	"testing"

	"order-features/core/dataset"
	"order-features/core/frame"
	"order-features/core/geo"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strs(t *testing.T, df dataframe.DataFrame, col string) []string {
	t.Helper()
	vals, _, err := frame.Strings(df, col)
	require.NoError(t, err)
	return vals
}

func floats(t *testing.T, df dataframe.DataFrame, col string) []float64 {
	t.Helper()
	vals, err := frame.Floats(df, col)
	require.NoError(t, err)
	return vals
}

func TestWaitTime_Delivered(t *testing.T) {
	df, err := New(fixtureTables(t), fixtureShape).WaitTime(true)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "wait_time", "expected_wait_time", "delay_vs_expected", "order_status"}, df.Names())
	assert.Equal(t, []string{"o1", "o2", "o3", "o5", "o6", "o7"}, strs(t, df, "order_id"))
	assert.Equal(t, []float64{4.5, 12, 7, 3, 2, 1}, floats(t, df, "wait_time"))
	assert.Equal(t, []float64{9, 9, 9, 9, 9, 9}, floats(t, df, "expected_wait_time"))
	assert.Equal(t, []float64{0, 3, 0, 0, 0, 0}, floats(t, df, "delay_vs_expected"))
	for _, s := range strs(t, df, "order_status") {
		assert.Equal(t, StatusDelivered, s)
	}
}

func TestWaitTime_AllOrders(t *testing.T) {
	df, err := New(fixtureTables(t), fixtureShape).WaitTime(false)
	require.NoError(t, err)
	require.Equal(t, 7, df.Nrow())

	// o4 was never delivered
	wait := floats(t, df, "wait_time")
	delay := floats(t, df, "delay_vs_expected")
	assert.True(t, math.IsNaN(wait[3]))
	assert.Equal(t, 0.0, delay[3])
	assert.Equal(t, 9.0, floats(t, df, "expected_wait_time")[3])
	assert.Equal(t, "canceled", strs(t, df, "order_status")[3])
}

func TestWaitTime_DelayClamp(t *testing.T) {
	tests := []struct {
		name      string
		delivered string
		want      float64
	}{
		{"ThreeDaysLate", "2018-01-13 00:00:00", 3},
		{"TwoDaysEarly", "2018-01-08 00:00:00", 0},
		{"OnTime", "2018-01-10 00:00:00", 0},
		{"HalfDayLate", "2018-01-10 12:00:00", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "order_id,order_status,order_purchase_timestamp,order_delivered_customer_date,order_estimated_delivery_date\n" +
				"o1,delivered,2018-01-01 00:00:00," + tt.delivered + ",2018-01-10 00:00:00\n"
			orders, err := dataset.ReadTable(strings.NewReader(csv))
			require.NoError(t, err)

			df, err := New(dataset.Tables{TableOrders: orders}).WaitTime(true)
			require.NoError(t, err)
			assert.Equal(t, []float64{tt.want}, floats(t, df, "delay_vs_expected"))
		})
	}
}

func TestWaitTime_Errors(t *testing.T) {
	t.Run("MissingTable", func(t *testing.T) {
		_, err := New(dataset.Tables{}).WaitTime(true)
		assert.ErrorIs(t, err, dataset.ErrTableNotFound)
	})

	t.Run("MalformedTimestamp", func(t *testing.T) {
		csv := "order_id,order_status,order_purchase_timestamp,order_delivered_customer_date,order_estimated_delivery_date\n" +
			"o1,delivered,yesterday,2018-01-13 00:00:00,2018-01-10 00:00:00\n"
		orders, err := dataset.ReadTable(strings.NewReader(csv))
		require.NoError(t, err)

		_, err = New(dataset.Tables{TableOrders: orders}).WaitTime(true)
		assert.ErrorContains(t, err, "order_purchase_timestamp row 1")
	})
}

func TestReviewScore(t *testing.T) {
	df, err := New(fixtureTables(t), fixtureShape).ReviewScore()
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "dim_is_one_star", "dim_is_five_star", "review_score"}, df.Names())
	assert.Equal(t, []string{"o1", "o2", "o3", "o4", "o6", "o7"}, strs(t, df, "order_id"))
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 0}, floats(t, df, "dim_is_one_star"))
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0}, floats(t, df, "dim_is_five_star"))
	assert.Equal(t, []float64{5, 1, 3, 4, 5, 2}, floats(t, df, "review_score"))
	assert.Equal(t, series.Int, df.Col("review_score").Type())
}

func TestReviewScore_Invalid(t *testing.T) {
	tables := fixtureTables(t)
	reviews, err := dataset.ReadTable(strings.NewReader("order_id,review_score\no1,4.5\n"))
	require.NoError(t, err)
	tables[TableReviews] = reviews

	_, err = New(tables, WithReviewsShape(0, 0)).ReviewScore()
	assert.ErrorContains(t, err, "review_score row 1")
}

func TestReviewScore_Shape(t *testing.T) {
	_, err := New(fixtureTables(t)).ReviewScore()
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.ErrorContains(t, err, "got 7x7, want 99224x7")

	_, err = New(fixtureTables(t), WithReviewsShape(0, 0)).ReviewScore()
	assert.NoError(t, err)
}

func TestItemAggregates(t *testing.T) {
	o := New(fixtureTables(t), fixtureShape)
	ids := []string{"o1", "o2", "o3", "o4", "o5", "o6"}

	products, err := o.NumberOfProducts()
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "number_of_products"}, products.Names())
	assert.Equal(t, ids, strs(t, products, "order_id"))
	assert.Equal(t, []float64{1, 2, 2, 1, 1, 1}, floats(t, products, "number_of_products"))

	sellers, err := o.NumberOfSellers()
	require.NoError(t, err)
	assert.Equal(t, ids, strs(t, sellers, "order_id"))
	assert.Equal(t, []float64{1, 2, 1, 1, 1, 1}, floats(t, sellers, "number_of_sellers"))

	pf, err := o.PriceAndFreight()
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "price", "freight_value"}, pf.Names())
	assert.Equal(t, []float64{100, 100, 40, 10, 15, 30}, floats(t, pf, "price"))
	assert.Equal(t, []float64{10, 10, 6, 1, 2, 5}, floats(t, pf, "freight_value"))
}

func TestDistanceSellerCustomer(t *testing.T) {
	df, err := New(fixtureTables(t), fixtureShape).DistanceSellerCustomer()
	require.NoError(t, err)

	sp := geo.Point{Lat: -23.5505, Lng: -46.6333}
	rio := geo.Point{Lat: -22.9068, Lng: -43.1729}
	d := geo.Haversine(rio, sp)

	assert.Equal(t, []string{"order_id", "distance_seller_customer"}, df.Names())
	// o6 ships from an unknown zip prefix, o7 has no items
	assert.Equal(t, []string{"o1", "o2", "o3", "o4", "o5"}, strs(t, df, "order_id"))

	got := floats(t, df, "distance_seller_customer")
	want := []float64{d, d / 2, 0, 0, d}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "row %d", i)
	}
	assert.InDelta(t, 360.75, d, 0.5)
}

func TestDistanceSellerCustomer_MissingColumn(t *testing.T) {
	tables := fixtureTables(t)
	tables[TableSellers] = tables[TableSellers].Drop("seller_zip_code_prefix")

	_, err := New(tables).DistanceSellerCustomer()
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}
