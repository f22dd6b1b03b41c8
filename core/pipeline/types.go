package pipeline

import (
	"strings"

	"order-features/core/dataset"

	"github.com/go-gota/gota/dataframe"
)

// Derivation produces one table keyed by the pipeline key from the loaded tables.
// Implementations must not modify the tables they read.
type Derivation interface {
	// Name identifies the derivation in errors, summaries and routes (e.g. "wait_time").
	Name() string

	// Derive returns a table holding the key column and the derived columns.
	Derive(tables dataset.Tables) (dataframe.DataFrame, error)
}

// Func adapts a plain function to the Derivation interface.
type Func struct {
	name string
	fn   func(dataset.Tables) (dataframe.DataFrame, error)
}

// NewFunc creates a named Derivation from fn.
func NewFunc(name string, fn func(dataset.Tables) (dataframe.DataFrame, error)) Func {
	return Func{name: name, fn: fn}
}

// Name returns the derivation name.
func (f Func) Name() string { return f.name }

// Derive calls the wrapped function.
func (f Func) Derive(tables dataset.Tables) (dataframe.DataFrame, error) { return f.fn(tables) }

// Spec defines one pipeline run: the stages to inner-join and how to finish.
type Spec struct {
	// Key is the column every stage is joined on (e.g. "order_id").
	Key string

	// Stages are derived in order; the first stage's rows drive the output order.
	Stages []Derivation

	// DropNA removes rows with a missing value in any column after the joins.
	DropNA bool

	// Variant distinguishes runs whose stages share names but not options
	// (e.g. delivered-only wait times).
	Variant string
}

// FlightKey identifies runs that may share one in-flight computation.
func (s *Spec) FlightKey() string {
	parts := []string{s.Key, s.Variant}
	for _, st := range s.Stages {
		parts = append(parts, st.Name())
	}
	if s.DropNA {
		parts = append(parts, "dropna")
	}
	return strings.Join(parts, "|")
}

// StageStat records the size of a stage output and of the running join after it.
type StageStat struct {
	// Name is the derivation name.
	Name string `json:"name"`

	// Rows is the row count the derivation produced.
	Rows int `json:"rows"`

	// JoinedRows is the row count after joining this stage.
	JoinedRows int `json:"joined_rows"`
}

// Summary describes where rows were lost during a run.
type Summary struct {
	// Stages holds one entry per derivation, in run order.
	Stages []StageStat `json:"stages"`

	// DroppedMissing counts rows removed by DropNA.
	DroppedMissing int `json:"dropped_missing"`

	// Rows is the final row count.
	Rows int `json:"rows"`
}

// Result is the output of a pipeline run.
type Result struct {
	Frame   dataframe.DataFrame
	Summary Summary
}
