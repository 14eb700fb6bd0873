package planner

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs the plan or error of one request in a batch
type BatchResult struct {
	Plan *Plan
	Err  error
}

// PlanBatch plans every request concurrently, each with its own RRT* instance.
// Results keep the request order. Per-request failures are reported in the
// results; the returned error is only set when ctx ends before all requests ran.
func (p *Planner) PlanBatch(ctx context.Context, reqs []Request) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			plan, err := p.Plan(req)
			results[i] = BatchResult{Plan: plan, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
