package strategy

import (
	"context"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/partition"
	"golang.org/x/sync/errgroup"
)

// reducePartitioned hands each worker one Partition and one slot of a result slice. A slot
// is written by exactly one worker, and read only after the group has been joined.
func reducePartitioned[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], workers int) (N, error) {
	var zero N
	parts, err := partition.Plan(job.Len(), workers)
	if err != nil {
		return zero, err
	}
	slots := make([]N, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parts {
		g.Go(func() error {
			partial, err := fold(gctx, job, p, job.Accumulator.Identity())
			if err != nil {
				return err
			}
			slots[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}
	return merge(job.Accumulator, slots), nil
}
