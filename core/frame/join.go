package frame

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// InnerJoin joins right onto left by key. Left row order is preserved and a
// left row matching several right rows is repeated once per match. Rows with
// a missing key never match.
func InnerJoin(left, right dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	return join(left, right, key, false)
}

// LeftJoin is InnerJoin that also keeps unmatched left rows, with missing
// values in the right columns.
func LeftJoin(left, right dataframe.DataFrame, key string) (dataframe.DataFrame, error) {
	return join(left, right, key, true)
}

func join(left, right dataframe.DataFrame, key string, keepUnmatched bool) (dataframe.DataFrame, error) {
	leftKeys, leftMissing, err := Strings(left, key)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("left side: %w", err)
	}
	rightKeys, rightMissing, err := Strings(right, key)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("right side: %w", err)
	}

	leftCols := without(left.Names(), key)
	rightCols := without(right.Names(), key)
	seen := make(map[string]struct{}, len(leftCols))
	for _, name := range leftCols {
		seen[name] = struct{}{}
	}
	for _, name := range rightCols {
		if _, dup := seen[name]; dup {
			return dataframe.DataFrame{}, fmt.Errorf("column %s present on both sides of join on %s", name, key)
		}
	}

	index := make(map[string][]int, len(rightKeys))
	for j, k := range rightKeys {
		if rightMissing[j] {
			continue
		}
		index[k] = append(index[k], j)
	}

	var li, ri []int
	for i, k := range leftKeys {
		var matches []int
		if !leftMissing[i] {
			matches = index[k]
		}
		if len(matches) == 0 {
			if keepUnmatched {
				li = append(li, i)
				ri = append(ri, -1)
			}
			continue
		}
		for _, j := range matches {
			li = append(li, i)
			ri = append(ri, j)
		}
	}

	cols := make([]series.Series, 0, 1+len(leftCols)+len(rightCols))
	cols = append(cols, pick(left.Col(key), li))
	for _, name := range leftCols {
		cols = append(cols, pick(left.Col(name), li))
	}
	for _, name := range rightCols {
		cols = append(cols, pick(right.Col(name), ri))
	}

	out := dataframe.New(cols...)
	return out, out.Err
}

func without(names []string, drop string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}
