// Package harness benchmarks reduction strategies: it times repeated invocations of a
// strategy, summarizes the samples, and checks that strategies agree on their results.
package harness

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-sif/preduce"
	istats "github.com/go-sif/preduce/internal/stats"
	"github.com/go-sif/preduce/stats"
	"github.com/go-sif/preduce/strategy"
	uuid "github.com/gofrs/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Run benchmarks one strategy: opts.Warmup untimed invocations followed by
// opts.Repetitions timed ones. The first failing invocation aborts the run and its error
// is returned. A nil opts means DefaultOptions().
func Run[E any, N preduce.Number](ctx context.Context, tag preduce.StrategyTag, job *preduce.Job[E, N], opts *Options) (*Report[N], error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := strategy.Validate(tag, job, opts.Workers); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}
	logger := opts.logger().With(zap.String("run", id.String()), zap.String("strategy", string(tag)), zap.Int("workers", opts.Workers))
	logger.Debug("Starting benchmark", zap.Int("warmup", opts.Warmup), zap.Int("repetitions", opts.Repetitions), zap.Int("length", job.Len()))

	var tracker istats.RunStatistics
	tracker.Start()
	for i := 0; i < opts.Warmup; i++ {
		if _, err := strategy.Reduce(ctx, tag, job, opts.Workers); err != nil {
			logger.Debug("Warmup invocation failed", zap.Int("invocation", i), zap.Error(err))
			return nil, err
		}
		tracker.EndWarmup()
	}

	samples := make([]Sample[N], 0, opts.Repetitions)
	var before, after runtime.MemStats
	for i := 0; i < opts.Repetitions; i++ {
		runtime.ReadMemStats(&before)
		tracker.StartInvocation()
		res, err := strategy.Reduce(ctx, tag, job, opts.Workers)
		elapsed := tracker.EndInvocation()
		runtime.ReadMemStats(&after)
		if err != nil {
			logger.Debug("Timed invocation failed", zap.Int("invocation", i), zap.Error(err))
			return nil, err
		}
		samples = append(samples, Sample[N]{Elapsed: elapsed, Allocs: after.Mallocs - before.Mallocs, Result: res})
	}
	tracker.Finish()

	report := &Report[N]{
		ID:          id.String(),
		Strategy:    tag,
		Workers:     opts.Workers,
		Repetitions: opts.Repetitions,
		Warmup:      opts.Warmup,
		InputLength: job.Len(),
		StartTime:   tracker.GetStartTime(),
		Runtime:     tracker.GetRuntime(),
		Elapsed:     stats.Summarize(lo.Map(samples, func(s Sample[N], _ int) time.Duration { return s.Elapsed })),
		MeanAllocs:  float64(lo.SumBy(samples, func(s Sample[N]) uint64 { return s.Allocs })) / float64(len(samples)),
		Results:     distinct(lo.Map(samples, func(s Sample[N], _ int) N { return s.Result })),
		Samples:     samples,
	}
	logger.Debug("Finished benchmark",
		zap.Duration("median", report.Elapsed.Median),
		zap.Duration("recent", tracker.GetCurrentInvocationTime()),
		zap.Duration("runtime", report.Runtime),
		zap.Int("distinctResults", len(report.Results)))
	return report, nil
}

// distinct returns the distinct values in order of first occurrence. Every NaN counts as
// the same value.
func distinct[N preduce.Number](values []N) []N {
	seenNaN := false
	return lo.Uniq(lo.Filter(values, func(v N, _ int) bool {
		if v == v {
			return true
		}
		if seenNaN {
			return false
		}
		seenNaN = true
		return true
	}))
}

// RunAll benchmarks each of the given strategies in turn (all of them, if none are given)
// with the same job and options, then verifies that they agree within DefaultTolerance.
// Reports gathered before a failure are returned alongside the error.
func RunAll[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], opts *Options, tags ...preduce.StrategyTag) ([]*Report[N], error) {
	if len(tags) == 0 {
		tags = preduce.AllStrategies
	}
	reports := make([]*Report[N], 0, len(tags))
	for _, tag := range tags {
		report, err := Run(ctx, tag, job, opts)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, Verify(DefaultTolerance, reports...)
}
