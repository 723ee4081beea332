package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs one document of a batch with its outcome.
// Exactly one of Result and Err is set.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch executes every document in parallel, at most limit at a time
// (limit <= 0 means GOMAXPROCS). Results are returned in input order.
//
// A failing document does not stop the others; its error is recorded in
// its BatchResult. When ctx is canceled no further documents are started,
// the unstarted ones report ctx.Err(), and RunBatch returns ctx.Err().
func (r *Runner) RunBatch(ctx context.Context, docs []Options, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, opts := range docs {
		results[i].Name = opts.Name
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			res, err := r.Execute(gctx, opts)
			results[i].Result, results[i].Err = res, err
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}
