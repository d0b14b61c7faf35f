package classifier

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one instance in a batch query. Err is set
// when that instance failed (e.g. a dimensionality mismatch) without
// affecting the other results.
type Result struct {
	Scores Scores
	Err    error
}

// QueryBatch scores every instance concurrently, fanning out across
// GOMAXPROCS workers. Each query is independent and side-effect free, so
// results arrive in input order with per-instance error granularity; the
// batch-level error is only non-nil when ctx is cancelled.
func (m *Model) QueryBatch(ctx context.Context, instances [][]float32) ([]Result, error) {
	results := make([]Result, len(instances))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, instance := range instances {
		i, instance := i, instance
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores, err := m.Query(instance)
			results[i] = Result{Scores: scores, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
