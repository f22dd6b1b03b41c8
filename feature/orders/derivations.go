package orders

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"order-features/core/dataset"
	"order-features/core/frame"
	"order-features/core/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func waitTime(tables dataset.Tables, isDelivered bool) (dataframe.DataFrame, error) {
	orders, err := tables.Get(TableOrders)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if isDelivered {
		if orders, err = frame.FilterEq(orders, "order_status", StatusDelivered); err != nil {
			return dataframe.DataFrame{}, err
		}
	}

	ids, err := frame.Column(orders, Key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	status, err := frame.Column(orders, "order_status")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	purchase, err := timestamps(orders, "order_purchase_timestamp")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	delivered, err := timestamps(orders, "order_delivered_customer_date")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	estimated, err := timestamps(orders, "order_estimated_delivery_date")
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	n := orders.Nrow()
	wait := make([]float64, n)
	expected := make([]float64, n)
	delay := make([]float64, n)
	for i := 0; i < n; i++ {
		wait[i] = elapsedDays(purchase[i], delivered[i])
		expected[i] = elapsedDays(purchase[i], estimated[i])

		// Early and unknown deliveries both count as no delay
		if d := elapsedDays(estimated[i], delivered[i]); d > 0 {
			delay[i] = d
		}
	}

	out := dataframe.New(
		ids,
		series.New(wait, series.Float, "wait_time"),
		series.New(expected, series.Float, "expected_wait_time"),
		series.New(delay, series.Float, "delay_vs_expected"),
		status,
	)
	return out, out.Err
}

// stamp is a parsed timestamp cell; ok is false when the cell was missing.
type stamp struct {
	t  time.Time
	ok bool
}

func timestamps(df dataframe.DataFrame, col string) ([]stamp, error) {
	vals, missing, err := frame.Strings(df, col)
	if err != nil {
		return nil, err
	}
	out := make([]stamp, len(vals))
	for i, v := range vals {
		t, ok, err := utils.ToTime(v, missing[i])
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", col, i+1, err)
		}
		out[i] = stamp{t: t, ok: ok}
	}
	return out, nil
}

// elapsedDays returns to - from in days, NaN when either side is missing.
func elapsedDays(from, to stamp) float64 {
	if !from.ok || !to.ok {
		return math.NaN()
	}
	return utils.Days(to.t.Sub(from.t))
}

func reviewScore(tables dataset.Tables, o options) (dataframe.DataFrame, error) {
	reviews, err := tables.Get(TableReviews)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if o.reviewsRows > 0 && (reviews.Nrow() != o.reviewsRows || reviews.Ncol() != o.reviewsCols) {
		return dataframe.DataFrame{}, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrShapeMismatch, reviews.Nrow(), reviews.Ncol(), o.reviewsRows, o.reviewsCols)
	}

	reviews, err = frame.Select(reviews, Key, "review_score")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	// Orders can carry several reviews; the first one keeps order_id unique
	reviews, err = frame.FirstBy(reviews, Key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	vals, missing, err := frame.Strings(reviews, "review_score")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	n := len(vals)
	oneStar := make([]int, n)
	fiveStar := make([]int, n)
	// Int cells are built from strings so that "NaN" stays missing
	scores := make([]string, n)
	for i, v := range vals {
		score, err := utils.ToFloat(v, missing[i])
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("column review_score row %d: %w", i+1, err)
		}
		if math.IsNaN(score) {
			scores[i] = "NaN"
			continue
		}
		if score != math.Trunc(score) {
			return dataframe.DataFrame{}, fmt.Errorf("column review_score row %d: %q is not a whole star count", i+1, v)
		}
		scores[i] = strconv.Itoa(int(score))
		if score == 1 {
			oneStar[i] = 1
		}
		if score == 5 {
			fiveStar[i] = 1
		}
	}

	out := dataframe.New(
		reviews.Col(Key),
		series.New(oneStar, series.Int, "dim_is_one_star"),
		series.New(fiveStar, series.Int, "dim_is_five_star"),
		series.New(scores, series.Int, "review_score"),
	)
	return out, out.Err
}

func numberOfProducts(tables dataset.Tables) (dataframe.DataFrame, error) {
	items, err := tables.Get(TableOrderItems)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return frame.CountBy(items, Key, "order_item_id", "number_of_products")
}

func numberOfSellers(tables dataset.Tables) (dataframe.DataFrame, error) {
	items, err := tables.Get(TableOrderItems)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return frame.NuniqueBy(items, Key, "seller_id", "number_of_sellers")
}

func priceAndFreight(tables dataset.Tables) (dataframe.DataFrame, error) {
	items, err := tables.Get(TableOrderItems)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return frame.SumBy(items, Key, "price", "freight_value")
}
