package checks

import (
	"sort"

	"order-features/core/dataset"
	"order-features/feature/orders"
)

// RequiredColumns lists, per logical table, the columns the order features read.
var RequiredColumns = map[string][]string{
	orders.TableOrders: {
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
		"order_delivered_customer_date", "order_estimated_delivery_date",
	},
	orders.TableOrderItems:  {"order_id", "order_item_id", "seller_id", "price", "freight_value"},
	orders.TableReviews:     {"order_id", "review_score"},
	orders.TableSellers:     {"seller_id", "seller_zip_code_prefix"},
	orders.TableCustomers:   {"customer_id", "customer_zip_code_prefix"},
	orders.TableGeolocation: {"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng"},
}

// RequiredTables returns the required table names in lexical order.
func RequiredTables() []string {
	names := make([]string, 0, len(RequiredColumns))
	for name := range RequiredColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckTables returns the required tables missing from tables.
func CheckTables(tables dataset.Tables) []string {
	missing := []string{}
	for _, name := range RequiredTables() {
		if _, ok := tables[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// SchemaReport describes the columns of every required table.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
}

// TableReport describes one table of a SchemaReport.
type TableReport struct {
	Rows           int      `json:"rows"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies that each required table carries the columns the
// derivations read. Extra columns are ignored.
func CheckSchema(tables dataset.Tables) *SchemaReport {
	report := &SchemaReport{Matched: true, Tables: make(map[string]TableReport, len(RequiredColumns))}

	for _, name := range RequiredTables() {
		df, ok := tables[name]
		if !ok {
			report.Tables[name] = TableReport{MissingColumns: RequiredColumns[name], Status: "missing"}
			report.Matched = false
			continue
		}

		present := make(map[string]struct{}, df.Ncol())
		for _, col := range df.Names() {
			present[col] = struct{}{}
		}

		tbl := TableReport{Rows: df.Nrow(), MissingColumns: []string{}, Status: "ok"}
		for _, col := range RequiredColumns[name] {
			if _, ok := present[col]; !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, col)
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[name] = tbl
	}
	return report
}

// ShapeReport compares the reviews table against its expected shape.
type ShapeReport struct {
	Rows         int  `json:"rows"`
	Cols         int  `json:"cols"`
	ExpectedRows int  `json:"expected_rows"`
	ExpectedCols int  `json:"expected_cols"`
	Matched      bool `json:"matched"`
}

// CheckReviewsShape reports whether the reviews table has rows x cols cells.
func CheckReviewsShape(tables dataset.Tables, rows, cols int) (*ShapeReport, error) {
	df, err := tables.Get(orders.TableReviews)
	if err != nil {
		return nil, err
	}
	return &ShapeReport{
		Rows:         df.Nrow(),
		Cols:         df.Ncol(),
		ExpectedRows: rows,
		ExpectedCols: cols,
		Matched:      df.Nrow() == rows && df.Ncol() == cols,
	}, nil
}
