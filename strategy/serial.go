package strategy

import (
	"context"

	"github.com/go-sif/preduce"
)

func reduceSerial[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N]) (N, error) {
	result, err := fold(ctx, job, preduce.Partition{Start: 0, End: job.Len()}, job.Accumulator.Identity())
	if err != nil {
		var zero N
		return zero, err
	}
	return result, nil
}
