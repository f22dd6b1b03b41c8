// Package metrics exposes Prometheus collectors for feature builds.
//
// A Registry owns its own prometheus.Registry so tests can create isolated
// instances. A nil *Registry is valid and records nothing, which lets
// command-line paths skip metrics entirely.
//
// # Collectors
//
//   - feature_builds_total{pipeline,status}
//   - feature_build_duration_seconds{pipeline}
//   - feature_rows{pipeline}
//   - dataset_tables_loaded
package metrics
