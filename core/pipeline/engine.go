package pipeline

import (
	"context"
	"fmt"

	"order-features/core/dataset"
	"order-features/core/frame"

	"github.com/go-gota/gota/dataframe"
)

// Run derives every stage from tables and inner-joins the results on spec.Key.
// A row survives only if every stage produced its key.
func Run(ctx context.Context, spec *Spec, tables dataset.Tables) (*Result, error) {
	if len(spec.Stages) == 0 {
		return nil, fmt.Errorf("pipeline has no stages")
	}

	var (
		acc     dataframe.DataFrame
		summary Summary
	)

	for i, stage := range spec.Stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		df, err := stage.Derive(tables)
		if err != nil {
			return nil, fmt.Errorf("derivation %s: %w", stage.Name(), err)
		}

		if i == 0 {
			if _, err := frame.Column(df, spec.Key); err != nil {
				return nil, fmt.Errorf("derivation %s: %w", stage.Name(), err)
			}
			acc = df
		} else {
			acc, err = frame.InnerJoin(acc, df, spec.Key)
			if err != nil {
				return nil, fmt.Errorf("join %s: %w", stage.Name(), err)
			}
		}

		summary.Stages = append(summary.Stages, StageStat{
			Name:       stage.Name(),
			Rows:       df.Nrow(),
			JoinedRows: acc.Nrow(),
		})
	}

	if spec.DropNA {
		before := acc.Nrow()
		acc = frame.DropNA(acc)
		summary.DroppedMissing = before - acc.Nrow()
	}
	summary.Rows = acc.Nrow()

	return &Result{Frame: acc, Summary: summary}, nil
}
