package frame

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
)

// groups maps each non-missing key to its row indexes, with keys sorted.
type groups struct {
	keys []string
	rows map[string][]int
}

func groupBy(df dataframe.DataFrame, key string) (groups, error) {
	vals, missing, err := Strings(df, key)
	if err != nil {
		return groups{}, err
	}
	g := groups{rows: make(map[string][]int)}
	for i, k := range vals {
		if missing[i] {
			continue
		}
		if _, ok := g.rows[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.rows[k] = append(g.rows[k], i)
	}
	sort.Strings(g.keys)
	return g, nil
}

// FirstBy keeps the first row of each key in order of appearance.
func FirstBy(df dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	vals, missing, err := Strings(df, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	seen := make(map[string]struct{}, len(vals))
	var idx []int
	for i, k := range vals {
		if missing[i] {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		idx = append(idx, i)
	}
	return Take(df, idx), nil
}

// CountBy counts the non-missing values of col per key into column as.
func CountBy(df dataframe.DataFrame, key, col, as string) (dataframe.DataFrame, error) {
	return intAgg(df, key, col, as, func(s series.Series, rows []int) int {
		n := 0
		for _, i := range rows {
			if !IsMissing(s, i) {
				n++
			}
		}
		return n
	})
}

// NuniqueBy counts the distinct non-missing values of col per key into column as.
func NuniqueBy(df dataframe.DataFrame, key, col, as string) (dataframe.DataFrame, error) {
	return intAgg(df, key, col, as, func(s series.Series, rows []int) int {
		distinct := make(map[string]struct{})
		for _, i := range rows {
			if !IsMissing(s, i) {
				distinct[s.Elem(i).String()] = struct{}{}
			}
		}
		return len(distinct)
	})
}

func intAgg(df dataframe.DataFrame, key, col, as string, fn func(series.Series, []int) int) (dataframe.DataFrame, error) {
	s, err := Column(df, col)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	g, err := groupBy(df, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	counts := make([]int, len(g.keys))
	for k, name := range g.keys {
		counts[k] = fn(s, g.rows[name])
	}
	out := dataframe.New(
		series.New(g.keys, series.String, key),
		series.New(counts, series.Int, as),
	)
	return out, out.Err
}

// SumBy sums each of cols per key with decimal arithmetic, so currency
// columns add up exactly before the final conversion to float64. Missing
// values are skipped; a key with none sums to zero.
func SumBy(df dataframe.DataFrame, key string, cols ...string) (dataframe.DataFrame, error) {
	g, err := groupBy(df, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	out := []series.Series{series.New(g.keys, series.String, key)}
	for _, col := range cols {
		s, err := Column(df, col)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		sums := make([]float64, len(g.keys))
		for k, name := range g.keys {
			total := decimal.Zero
			for _, i := range g.rows[name] {
				if IsMissing(s, i) {
					continue
				}
				d, err := toDecimal(s, i)
				if err != nil {
					return dataframe.DataFrame{}, fmt.Errorf("column %s: %w", col, err)
				}
				total = total.Add(d)
			}
			sums[k] = total.InexactFloat64()
		}
		out = append(out, series.New(sums, series.Float, col))
	}

	df = dataframe.New(out...)
	return df, df.Err
}

func toDecimal(s series.Series, i int) (decimal.Decimal, error) {
	if s.Type() == series.Float {
		return decimal.NewFromFloat(s.Elem(i).Float()), nil
	}
	return decimal.NewFromString(s.Elem(i).String())
}

// MeanBy averages the non-missing values of col per key into column as.
// A key with no values gets NaN.
func MeanBy(df dataframe.DataFrame, key, col, as string) (dataframe.DataFrame, error) {
	vals, err := Floats(df, col)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	g, err := groupBy(df, key)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	means := make([]float64, len(g.keys))
	for k, name := range g.keys {
		sum, n := 0.0, 0
		for _, i := range g.rows[name] {
			if math.IsNaN(vals[i]) {
				continue
			}
			sum += vals[i]
			n++
		}
		if n == 0 {
			means[k] = math.NaN()
			continue
		}
		means[k] = sum / float64(n)
	}

	out := dataframe.New(
		series.New(g.keys, series.String, key),
		series.New(means, series.Float, as),
	)
	return out, out.Err
}
