// Package dataset loads the marketplace CSV tables into memory.
//
// A Source discovers *.csv files (DirSource, on any afero filesystem) or
// objects (BucketSource, through core/storage) and reads each into a gota
// DataFrame. The logical table name is the file name with the configured
// prefix token, the "_dataset" suffix token and the ".csv" extension removed:
//
//	olist_order_items_dataset.csv -> order_items
//
// Loading is eager and uncached: every Load call reads the files again.
// Read and parse errors are returned as-is, wrapped with the file name.
// There is no schema validation here; see feature/integrity for checks.
package dataset
