// Package frame implements the relational operations the feature pipeline
// needs on top of gota DataFrames: hash joins that keep left row order,
// first-row-per-key selection, keyed aggregations (count, distinct count,
// decimal sum, mean) and missing-row removal.
//
// Aggregation outputs are sorted by key. Missing keys never join and never
// form a group.
package frame
