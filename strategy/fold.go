package strategy

import (
	"context"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/internal/util"
)

// forEach transforms every element of p in index order, handing each value to absorb.
// It stops before the next element once ctx is done, so in-flight work finishes but no
// new work begins.
func forEach[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], p preduce.Partition, absorb func(v N)) error {
	done := ctx.Done()
	transform := util.SafeTransform(job.Transform)
	for i := p.Start; i < p.End; i++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		v, err := transform(i, job.Input[i])
		if err != nil {
			return err
		}
		absorb(v)
	}
	return nil
}

// fold absorbs every element of p into the partial result acc
func fold[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], p preduce.Partition, acc N) (N, error) {
	err := forEach(ctx, job, p, func(v N) {
		acc = job.Accumulator.Absorb(acc, v)
	})
	return acc, err
}

// merge combines per-worker partial results in slot order. Only ever called on the
// calling goroutine, after every worker has been joined.
func merge[N preduce.Number](acc preduce.Accumulator[N], slots []N) N {
	result := acc.Identity()
	for _, partial := range slots {
		result = acc.Combine(result, partial)
	}
	return result
}
