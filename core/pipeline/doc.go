// Package pipeline joins independent per-key derivations into one table.
//
// Each Derivation reads the loaded tables and returns a table keyed by the
// pipeline key. Run derives the stages in order and inner-joins them on the
// key, so the output grain is the set of keys every stage produced. With
// DropNA, rows holding any missing value are removed last. The Summary
// records row counts after every stage, which makes the implicit filtering of
// inner joins visible.
//
// # In-flight Coalescing
//
// Group wraps singleflight: concurrent requests for the same spec share one
// load-and-derive. Results are not retained after the flight ends.
//
// # Usage
//
//	spec := &pipeline.Spec{Key: "order_id", Stages: stages, DropNA: true}
//	res, err := pipeline.Run(ctx, spec, tables)
package pipeline
