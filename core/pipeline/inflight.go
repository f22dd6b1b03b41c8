package pipeline

import (
	"context"

	"order-features/core/dataset"

	"golang.org/x/sync/singleflight"
)

// Group coalesces concurrent runs of the same spec into one computation.
// Nothing is kept once the run returns, so a later call always recomputes
// from freshly loaded tables.
type Group struct {
	sf singleflight.Group
}

// Do runs load and then the spec, unless an identical run is already in
// flight, in which case it waits for and shares that run's result.
// shared reports whether the result was delivered to more than one caller.
//
// The shared run is detached from the cancellation of the caller that
// started it. A caller whose ctx ends stops waiting and gets ctx.Err();
// the others still receive the result.
func (g *Group) Do(ctx context.Context, spec *Spec, load func(context.Context) (dataset.Tables, error)) (res *Result, shared bool, err error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := g.sf.DoChan(spec.FlightKey(), func() (interface{}, error) {
		tables, err := load(flightCtx)
		if err != nil {
			return nil, err
		}
		return Run(flightCtx, spec, tables)
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Shared, r.Err
		}
		return r.Val.(*Result), r.Shared, nil
	}
}
