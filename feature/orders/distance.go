package orders

import (
	"fmt"
	"strings"

	"order-features/core/dataset"
	"order-features/core/frame"
	"order-features/core/geo"
	"order-features/core/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	geoZip = "geolocation_zip_code_prefix"
	geoLat = "geolocation_lat"
	geoLng = "geolocation_lng"
)

// selectTables picks the named columns from each table, keyed by table name.
func selectTables(tables dataset.Tables, cols map[string][]string) (map[string]dataframe.DataFrame, error) {
	out := make(map[string]dataframe.DataFrame, len(cols))
	for name, names := range cols {
		df, err := tables.Get(name)
		if err != nil {
			return nil, err
		}
		if df, err = frame.Select(df, names...); err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		out[name] = df
	}
	return out, nil
}

func distanceSellerCustomer(tables dataset.Tables) (dataframe.DataFrame, error) {
	t, err := selectTables(tables, map[string][]string{
		TableOrders:      {Key, "customer_id"},
		TableOrderItems:  {Key, "seller_id"},
		TableSellers:     {"seller_id", "seller_zip_code_prefix"},
		TableCustomers:   {"customer_id", "customer_zip_code_prefix"},
		TableGeolocation: {geoZip, geoLat, geoLng},
	})
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	// A zip prefix has many coordinate samples; the first one stands for all
	coords, err := normalizeZip(t[TableGeolocation], geoZip)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if coords, err = frame.FirstBy(coords, geoZip); err != nil {
		return dataframe.DataFrame{}, err
	}

	customers, err := locate(t[TableCustomers], "customer_id", "customer_zip_code_prefix", "customer", coords)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	sellers, err := locate(t[TableSellers], "seller_id", "seller_zip_code_prefix", "seller", coords)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	joined, err := frame.InnerJoin(t[TableOrders], customers, "customer_id")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if joined, err = frame.InnerJoin(joined, t[TableOrderItems], Key); err != nil {
		return dataframe.DataFrame{}, err
	}
	if joined, err = frame.InnerJoin(joined, sellers, "seller_id"); err != nil {
		return dataframe.DataFrame{}, err
	}
	joined = frame.DropNA(joined)

	sellerLat, err := numbers(joined, "seller_lat")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	sellerLng, err := numbers(joined, "seller_lng")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	customerLat, err := numbers(joined, "customer_lat")
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	customerLng, err := numbers(joined, "customer_lng")
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	dist := make([]float64, joined.Nrow())
	for i := range dist {
		dist[i] = geo.Haversine(
			geo.Point{Lat: sellerLat[i], Lng: sellerLng[i]},
			geo.Point{Lat: customerLat[i], Lng: customerLng[i]},
		)
	}

	perItem := dataframe.New(joined.Col(Key), series.New(dist, series.Float, FeatureDistance))
	if perItem.Err != nil {
		return dataframe.DataFrame{}, perItem.Err
	}
	return frame.MeanBy(perItem, Key, FeatureDistance, FeatureDistance)
}

// locate attaches <prefix>_lat and <prefix>_lng to every row of df by zip
// prefix. Rows with an unknown prefix keep missing coordinates.
func locate(df dataframe.DataFrame, id, zip, prefix string, coords dataframe.DataFrame) (dataframe.DataFrame, error) {
	df, err := normalizeZip(df, zip)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	renamed := coords.
		Rename(zip, geoZip).
		Rename(prefix+"_lat", geoLat).
		Rename(prefix+"_lng", geoLng)
	if renamed.Err != nil {
		return dataframe.DataFrame{}, renamed.Err
	}

	joined, err := frame.LeftJoin(df, renamed, zip)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return frame.Select(joined, id, prefix+"_lat", prefix+"_lng")
}

// normalizeZip strips leading zeros so prefixes exported as "01037" and
// "1037" resolve to the same key.
func normalizeZip(df dataframe.DataFrame, col string) (dataframe.DataFrame, error) {
	vals, missing, err := frame.Strings(df, col)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		if missing[i] {
			out[i] = "NaN"
			continue
		}
		v = strings.TrimLeft(strings.TrimSpace(v), "0")
		if v == "" {
			v = "0"
		}
		out[i] = v
	}
	df = df.Mutate(series.New(out, series.String, col))
	return df, df.Err
}

func numbers(df dataframe.DataFrame, col string) ([]float64, error) {
	vals, missing, err := frame.Strings(df, col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		if out[i], err = utils.ToFloat(v, missing[i]); err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", col, i+1, err)
		}
	}
	return out, nil
}
