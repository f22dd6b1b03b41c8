package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrColumnNotFound is returned when a table lacks a required column.
var ErrColumnNotFound = errors.New("column not found")

// Column returns the named column or an error wrapping ErrColumnNotFound.
func Column(df dataframe.DataFrame, name string) (series.Series, error) {
	for _, n := range df.Names() {
		if n == name {
			return df.Col(name), nil
		}
	}
	return series.Series{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// IsMissing reports whether row i of s holds no value. Float columns built
// from NaN values count as missing even when gota does not flag them.
func IsMissing(s series.Series, i int) bool {
	e := s.Elem(i)
	if e.IsNA() {
		return true
	}
	return s.Type() == series.Float && math.IsNaN(e.Float())
}

// Strings returns the column cells as strings with a parallel missing mask.
func Strings(df dataframe.DataFrame, name string) ([]string, []bool, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, nil, err
	}
	vals := make([]string, s.Len())
	missing := make([]bool, s.Len())
	for i := range vals {
		if IsMissing(s, i) {
			missing[i] = true
			continue
		}
		vals[i] = s.Elem(i).String()
	}
	return vals, missing, nil
}

// Floats returns the column as float64 values, NaN where missing.
func Floats(df dataframe.DataFrame, name string) ([]float64, error) {
	s, err := Column(df, name)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, s.Len())
	for i := range vals {
		if IsMissing(s, i) {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = s.Elem(i).Float()
	}
	return vals, nil
}

// Select keeps the named columns in the given order.
func Select(df dataframe.DataFrame, names ...string) (dataframe.DataFrame, error) {
	for _, name := range names {
		if _, err := Column(df, name); err != nil {
			return dataframe.DataFrame{}, err
		}
	}
	out := df.Select(names)
	return out, out.Err
}

// FilterEq keeps the rows whose column equals value.
func FilterEq(df dataframe.DataFrame, name, value string) (dataframe.DataFrame, error) {
	if _, err := Column(df, name); err != nil {
		return dataframe.DataFrame{}, err
	}
	out := df.Filter(dataframe.F{Colname: name, Comparator: series.Eq, Comparando: value})
	return out, out.Err
}

// Take builds a new frame from the given row indexes. An index of -1 yields
// a row of missing values.
func Take(df dataframe.DataFrame, idx []int) dataframe.DataFrame {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for c, name := range names {
		cols[c] = pick(df.Col(name), idx)
	}
	return dataframe.New(cols...)
}

// pick copies the selected cells of s, keeping its name and type.
func pick(s series.Series, idx []int) series.Series {
	if s.Type() == series.Float {
		vals := make([]float64, len(idx))
		for j, i := range idx {
			if i < 0 || IsMissing(s, i) {
				vals[j] = math.NaN()
				continue
			}
			vals[j] = s.Elem(i).Float()
		}
		return series.New(vals, series.Float, s.Name)
	}

	// gota parses "NaN" as missing for string, int and bool elements
	vals := make([]string, len(idx))
	for j, i := range idx {
		if i < 0 || IsMissing(s, i) {
			vals[j] = "NaN"
			continue
		}
		vals[j] = s.Elem(i).String()
	}
	return series.New(vals, s.Type(), s.Name)
}

// DropNA removes every row holding a missing value in any column.
func DropNA(df dataframe.DataFrame) dataframe.DataFrame {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for c, name := range names {
		cols[c] = df.Col(name)
	}

	keep := make([]int, 0, df.Nrow())
rows:
	for i := 0; i < df.Nrow(); i++ {
		for _, s := range cols {
			if IsMissing(s, i) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	if len(keep) == df.Nrow() {
		return df
	}
	return Take(df, keep)
}

// Records returns the rows as maps keyed by column name, with nil for missing cells.
func Records(df dataframe.DataFrame) []map[string]interface{} {
	names := df.Names()
	cols := make([]series.Series, len(names))
	for c, name := range names {
		cols[c] = df.Col(name)
	}

	out := make([]map[string]interface{}, df.Nrow())
	for i := range out {
		row := make(map[string]interface{}, len(names))
		for c, s := range cols {
			if IsMissing(s, i) {
				row[names[c]] = nil
				continue
			}
			row[names[c]] = s.Elem(i).Val()
		}
		out[i] = row
	}
	return out
}
