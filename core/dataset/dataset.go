package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Extension is the file extension of loadable tables.
const Extension = ".csv"

// ErrTableNotFound is returned when a derivation asks for a table the source did not provide.
var ErrTableNotFound = errors.New("table not found")

// MissingValues are the cells read as missing. Empty cells are included so
// that undelivered orders carry missing dates instead of empty strings.
var MissingValues = []string{"", "NA", "NaN", "<nil>"}

// Tables maps a logical table name (e.g. "orders", "order_items") to its rows.
type Tables map[string]dataframe.DataFrame

// Get returns the named table or an error wrapping ErrTableNotFound.
func (t Tables) Get(name string) (dataframe.DataFrame, error) {
	df, ok := t[name]
	if !ok {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return df, nil
}

// Names returns the table names in lexical order.
func (t Tables) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Naming holds the literal tokens stripped from file names.
type Naming struct {
	Prefix string
	Suffix string
}

// DefaultNaming matches the public marketplace export ("olist_orders_dataset.csv" -> "orders").
var DefaultNaming = Naming{Prefix: "olist_", Suffix: "_dataset"}

// TableName derives the logical table name from a file or object base name.
func (n Naming) TableName(file string) string {
	name := strings.TrimSuffix(file, Extension)
	if n.Suffix != "" {
		name = strings.TrimSuffix(name, n.Suffix)
	}
	if n.Prefix != "" {
		name = strings.TrimPrefix(name, n.Prefix)
	}
	return name
}

// ReadTable reads one CSV table. Every column is kept as a string column;
// derivations parse the cells they need. A header without rows is an empty
// table, not an error.
func ReadTable(r io.Reader) (dataframe.DataFrame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) == 1 {
		return emptyTable(records[0])
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

func emptyTable(header []string) (dataframe.DataFrame, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}
