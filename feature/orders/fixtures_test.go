package orders

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"order-features/core/dataset"

	"github.com/stretchr/testify/require"
)

// Seven orders covering early, late, undelivered, unreviewed, double-reviewed
// and item-less cases. Zip 1037 is written with and without its leading zero.
var fixtures = map[string]string{
	TableOrders: `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,2018-01-01 00:00:00,2018-01-01 01:00:00,2018-01-02 00:00:00,2018-01-05 12:00:00,2018-01-10 00:00:00
o2,c2,delivered,2018-01-01 00:00:00,2018-01-01 01:00:00,2018-01-02 00:00:00,2018-01-13 00:00:00,2018-01-10 00:00:00
o3,c1,delivered,2018-02-01 00:00:00,2018-02-01 01:00:00,2018-02-02 00:00:00,2018-02-08 00:00:00,2018-02-10 00:00:00
o4,c2,canceled,2018-03-01 00:00:00,,,,2018-03-10 00:00:00
o5,c1,delivered,2018-03-01 00:00:00,2018-03-01 01:00:00,2018-03-02 00:00:00,2018-03-04 00:00:00,2018-03-10 00:00:00
o6,c2,delivered,2018-04-01 00:00:00,2018-04-01 01:00:00,2018-04-02 00:00:00,2018-04-03 00:00:00,2018-04-10 00:00:00
o7,c1,delivered,2018-05-01 00:00:00,2018-05-01 01:00:00,2018-05-01 12:00:00,2018-05-02 00:00:00,2018-05-10 00:00:00
`,
	TableOrderItems: `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
o1,1,p1,s1,2018-01-03 00:00:00,100.00,10.00
o2,1,p2,s1,2018-01-03 00:00:00,50.50,5.25
o2,2,p3,s2,2018-01-03 00:00:00,49.50,4.75
o3,1,p4,s2,2018-02-03 00:00:00,20.00,3.00
o3,2,p4,s2,2018-02-03 00:00:00,20.00,3.00
o4,1,p5,s1,2018-03-03 00:00:00,10.00,1.00
o5,1,p1,s1,2018-03-03 00:00:00,15.00,2.00
o6,1,p2,s3,2018-04-03 00:00:00,30.00,5.00
`,
	TableReviews: `review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp
r1,o1,5,,,2018-01-06 00:00:00,2018-01-07 00:00:00
r2,o2,1,,atrasou,2018-01-14 00:00:00,2018-01-15 00:00:00
r3,o3,3,,,2018-02-09 00:00:00,2018-02-10 00:00:00
r4,o4,4,,,2018-03-11 00:00:00,2018-03-12 00:00:00
r6a,o6,5,,,2018-04-04 00:00:00,2018-04-05 00:00:00
r6b,o6,1,,,2018-04-06 00:00:00,2018-04-07 00:00:00
r7,o7,2,,,2018-05-03 00:00:00,2018-05-04 00:00:00
`,
	TableCustomers: `customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state
c1,u1,01037,sao paulo,SP
c2,u2,20010,rio de janeiro,RJ
`,
	TableSellers: `seller_id,seller_zip_code_prefix,seller_city,seller_state
s1,20010,rio de janeiro,RJ
s2,1037,sao paulo,SP
s3,99999,nowhere,XX
`,
	TableGeolocation: `geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state
1037,-23.5505,-46.6333,sao paulo,SP
01037,-10.0,-10.0,sao paulo,SP
20010,-22.9068,-43.1729,rio de janeiro,RJ
`,
}

// fixtureShape matches the reviews fixture.
var fixtureShape = WithReviewsShape(7, 7)

func fixtureTables(t *testing.T) dataset.Tables {
	t.Helper()
	tables := make(dataset.Tables, len(fixtures))
	for name, csv := range fixtures {
		df, err := dataset.ReadTable(strings.NewReader(csv))
		require.NoError(t, err)
		tables[name] = df
	}
	return tables
}

// writeFixtures writes the tables with their marketplace export file names.
func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	for name, csv := range fixtures {
		file := "olist_" + name + "_dataset.csv"
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(csv), 0o644))
	}
}

// staticSource serves a fixed set of tables and counts loads.
type staticSource struct {
	tables dataset.Tables
	err    error
	loads  int
}

func (s *staticSource) Load(ctx context.Context) (dataset.Tables, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.tables, nil
}
