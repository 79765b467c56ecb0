package strategy

import (
	"context"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/errors"
)

// Reduce runs job under the strategy selected by tag, with the given number of workers.
// Serial ignores workers beyond validating them. Configuration problems are reported as
// InvalidConfigurationErrors before any work starts; Transform failures as
// TransformFailureErrors.
func Reduce[E any, N preduce.Number](ctx context.Context, tag preduce.StrategyTag, job *preduce.Job[E, N], workers int) (N, error) {
	var zero N
	if err := Validate(tag, job, workers); err != nil {
		return zero, err
	}
	switch tag {
	case preduce.Serial:
		return reduceSerial(ctx, job)
	case preduce.PartitionedThreaded:
		return reducePartitioned(ctx, job, workers)
	case preduce.AtomicThreaded:
		return reduceAtomic(ctx, job, workers)
	default:
		return reduceWorkStealing(ctx, job, workers, DefaultChunksPerWorker)
	}
}

// Validate reports the first reason Reduce would refuse to run job, as an
// InvalidConfigurationError
func Validate[E any, N preduce.Number](tag preduce.StrategyTag, job *preduce.Job[E, N], workers int) error {
	if !tag.Valid() {
		return errors.InvalidConfigurationError{Field: "strategy", Value: tag, Reason: "is not a known strategy"}
	}
	if workers <= 0 {
		return errors.InvalidConfigurationError{Field: "workers", Value: workers, Reason: "must be greater than 0"}
	}
	if job == nil || job.Transform == nil || job.Accumulator == nil {
		return errors.InvalidConfigurationError{Field: "job", Value: job, Reason: "must have a Transform and an Accumulator"}
	}
	return nil
}
