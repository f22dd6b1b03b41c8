// Package orders derives a per-order feature table from the marketplace
// dataset.
//
// Every derivation reads the loaded tables and returns a table keyed by
// order_id:
//
//   - wait_time: wait_time, expected_wait_time and delay_vs_expected in days,
//     plus order_status. Delay only counts late deliveries.
//   - review_score: dim_is_one_star, dim_is_five_star and review_score of the
//     first review of each order. The reviews table must match the expected
//     shape.
//   - number_of_products: items per order.
//   - number_of_sellers: distinct sellers per order.
//   - price_and_freight: summed price and freight_value.
//   - distance_seller_customer: mean haversine distance in km between the
//     seller and customer zip prefix of every item. Orders without coordinates
//     on either side are absent.
//
// TrainingData inner-joins the derivations on order_id and drops rows with a
// missing value, so its rows are the orders every derivation could describe.
//
// # HTTP Endpoints
//
//   - GET /orders/training?delivered=true&distance=false
//   - GET /orders/features
//   - GET /orders/features/:name?delivered=true
//
// Each request loads the tables again. Identical concurrent requests share
// one build.
package orders
