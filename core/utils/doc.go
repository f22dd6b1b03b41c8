// Package utils provides cell conversion helpers shared by the feature
// derivations: numeric and timestamp parsing with explicit missing-value
// handling, and day arithmetic.
package utils
