package models

import (
	"fmt"
	"math"

	"order-features/core/frame"

	"github.com/go-gota/gota/dataframe"
)

// TrainingRow is one order of the training table.
type TrainingRow struct {
	OrderID          string  `gorm:"column:order_id;primaryKey;size:32" json:"order_id"`
	WaitTime         float64 `gorm:"column:wait_time" json:"wait_time"`
	ExpectedWaitTime float64 `gorm:"column:expected_wait_time" json:"expected_wait_time"`
	DelayVsExpected  float64 `gorm:"column:delay_vs_expected" json:"delay_vs_expected"`
	OrderStatus      string  `gorm:"column:order_status;size:16" json:"order_status"`
	DimIsOneStar     int     `gorm:"column:dim_is_one_star" json:"dim_is_one_star"`
	DimIsFiveStar    int     `gorm:"column:dim_is_five_star" json:"dim_is_five_star"`
	ReviewScore      int     `gorm:"column:review_score" json:"review_score"`
	NumberOfProducts int     `gorm:"column:number_of_products" json:"number_of_products"`
	NumberOfSellers  int     `gorm:"column:number_of_sellers" json:"number_of_sellers"`
	Price            float64 `gorm:"column:price" json:"price"`
	FreightValue     float64 `gorm:"column:freight_value" json:"freight_value"`

	// DistanceSellerCustomer is nil when the distance feature was not requested.
	DistanceSellerCustomer *float64 `gorm:"column:distance_seller_customer" json:"distance_seller_customer,omitempty"`
}

// TableName is the default table for exported training rows.
func (TrainingRow) TableName() string {
	return "training_data"
}

// Columns lists the column names of TrainingRow in table order.
var Columns = []string{
	"order_id", "wait_time", "expected_wait_time", "delay_vs_expected", "order_status",
	"dim_is_one_star", "dim_is_five_star", "review_score",
	"number_of_products", "number_of_sellers", "price", "freight_value",
	"distance_seller_customer",
}

// FromFrame converts a training frame into rows. The distance column is
// optional; every other column must be present and complete.
func FromFrame(df dataframe.DataFrame) ([]TrainingRow, error) {
	ids, idMissing, err := frame.Strings(df, "order_id")
	if err != nil {
		return nil, err
	}
	status, statusMissing, err := frame.Strings(df, "order_status")
	if err != nil {
		return nil, err
	}

	nums := make(map[string][]float64)
	for _, col := range Columns {
		if col == "order_id" || col == "order_status" {
			continue
		}
		vals, err := frame.Floats(df, col)
		if err != nil {
			if col == "distance_seller_customer" {
				continue
			}
			return nil, err
		}
		nums[col] = vals
	}

	rows := make([]TrainingRow, len(ids))
	for i := range rows {
		if idMissing[i] || statusMissing[i] {
			return nil, fmt.Errorf("row %d: missing order_id or order_status", i+1)
		}
		for col, vals := range nums {
			if col != "distance_seller_customer" && math.IsNaN(vals[i]) {
				return nil, fmt.Errorf("row %d: missing %s", i+1, col)
			}
		}

		rows[i] = TrainingRow{
			OrderID:          ids[i],
			WaitTime:         nums["wait_time"][i],
			ExpectedWaitTime: nums["expected_wait_time"][i],
			DelayVsExpected:  nums["delay_vs_expected"][i],
			OrderStatus:      status[i],
			DimIsOneStar:     int(nums["dim_is_one_star"][i]),
			DimIsFiveStar:    int(nums["dim_is_five_star"][i]),
			ReviewScore:      int(nums["review_score"][i]),
			NumberOfProducts: int(nums["number_of_products"][i]),
			NumberOfSellers:  int(nums["number_of_sellers"][i]),
			Price:            nums["price"][i],
			FreightValue:     nums["freight_value"][i],
		}
		if dist, ok := nums["distance_seller_customer"]; ok && !math.IsNaN(dist[i]) {
			d := dist[i]
			rows[i].DistanceSellerCustomer = &d
		}
	}
	return rows, nil
}
