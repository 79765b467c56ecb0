package harness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/accumulators"
	perrors "github.com/go-sif/preduce/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func createTestSumJob(n int) *preduce.Job[float64, float64] {
	input := make([]float64, n)
	for i := range input {
		input[i] = 1.0 / float64(i+1)
	}
	return &preduce.Job[float64, float64]{
		Input:       input,
		Transform:   preduce.Identity[float64](),
		Accumulator: accumulators.Adder[float64](),
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, runtime.GOMAXPROCS(0), opts.Workers)
	require.Equal(t, 1000, opts.Repetitions)
	require.Equal(t, 10, opts.Warmup)
	require.Nil(t, opts.Validate())

	clone := CloneOptions(opts)
	clone.Workers = 99
	require.NotEqual(t, opts.Workers, clone.Workers)
}

func TestValidateAggregatesProblems(t *testing.T) {
	err := (&Options{Workers: 0, Repetitions: -2, Warmup: -1}).Validate()
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
	for _, e := range merr.Errors {
		_, ok := e.(perrors.InvalidConfigurationError)
		require.True(t, ok)
	}
	require.Nil(t, (&Options{Workers: 1, Repetitions: 1, Warmup: 0}).Validate())
}

func TestRunRejectsConfigurationBeforeWork(t *testing.T) {
	var calls int64
	job := &preduce.Job[int, int]{
		Input: []int{1, 2, 3},
		Transform: func(x int) (int, error) {
			atomic.AddInt64(&calls, 1)
			return x, nil
		},
		Accumulator: accumulators.Adder[int](),
	}
	_, err := Run(context.Background(), preduce.Serial, job, &Options{Workers: 1, Repetitions: 0})
	require.NotNil(t, err)
	var ice perrors.InvalidConfigurationError
	require.True(t, errors.As(err, &ice))
	_, err = Run(context.Background(), preduce.StrategyTag("simd"), job, &Options{Workers: 1, Repetitions: 1})
	require.True(t, errors.As(err, &ice))
	_, err = Run[int, int](context.Background(), preduce.Serial, nil, &Options{Workers: 1, Repetitions: 1})
	require.True(t, errors.As(err, &ice))
	_, err = Run(context.Background(), preduce.Serial, &preduce.Job[int, int]{Input: job.Input, Accumulator: job.Accumulator}, &Options{Workers: 1, Repetitions: 1})
	require.True(t, errors.As(err, &ice))
	require.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestRunCollectsSamples(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls int64
	job := &preduce.Job[float64, float64]{
		Input: []float64{1.0, 2.0, 3.0, 4.0, 5.0},
		Transform: func(x float64) (float64, error) {
			atomic.AddInt64(&calls, 1)
			return x, nil
		},
		Accumulator: accumulators.Adder[float64](),
	}
	for _, tag := range preduce.AllStrategies {
		atomic.StoreInt64(&calls, 0)
		report, err := Run(context.Background(), tag, job, &Options{Workers: 2, Repetitions: 20, Warmup: 3})
		require.Nil(t, err)
		require.Equal(t, int64(5*23), atomic.LoadInt64(&calls))
		require.NotEmpty(t, report.ID)
		require.Equal(t, tag, report.Strategy)
		require.Len(t, report.Samples, 20)
		require.Equal(t, []float64{15.0}, report.Results)
		require.Equal(t, 15.0, report.Result())
		require.Equal(t, 20, report.Elapsed.Count)
		require.LessOrEqual(t, report.Elapsed.Min, report.Elapsed.Median)
		require.LessOrEqual(t, report.Elapsed.Median, report.Elapsed.Max)
		require.GreaterOrEqual(t, report.Runtime, report.Elapsed.Min)
		require.GreaterOrEqual(t, report.MeanAllocs, 0.0)
	}
}

func TestRunWithoutWarmup(t *testing.T) {
	report, err := Run(context.Background(), preduce.Serial, createTestSumJob(10), &Options{Workers: 1, Repetitions: 1})
	require.Nil(t, err)
	require.Len(t, report.Samples, 1)
}

func TestRunAbortsOnTransformFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	var calls int64
	cause := fmt.Errorf("flaky")
	job := &preduce.Job[int, int]{
		Input: make([]int, 10),
		Transform: func(x int) (int, error) {
			// fails during the third invocation
			if atomic.AddInt64(&calls, 1) == 25 {
				return 0, cause
			}
			return x, nil
		},
		Accumulator: accumulators.Adder[int](),
	}
	for _, warmup := range []int{0, 5} {
		for _, tag := range preduce.AllStrategies {
			atomic.StoreInt64(&calls, 0)
			report, err := Run(context.Background(), tag, job, &Options{Workers: 3, Repetitions: 10, Warmup: warmup})
			require.Nil(t, report)
			var tfe perrors.TransformFailureError
			require.True(t, errors.As(err, &tfe), tag)
			require.True(t, errors.Is(err, cause), tag)
		}
	}
	// later independent runs are unaffected
	atomic.StoreInt64(&calls, 100)
	_, err := Run(context.Background(), preduce.WorkStealing, job, &Options{Workers: 3, Repetitions: 10})
	require.Nil(t, err)
}

func TestRunLogsProgress(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := &Options{Workers: 2, Repetitions: 3, Warmup: 1, Logger: zap.New(core)}
	_, err := Run(context.Background(), preduce.PartitionedThreaded, createTestSumJob(100), opts)
	require.Nil(t, err)
	require.Equal(t, 1, logs.FilterMessage("Starting benchmark").Len())
	finished := logs.FilterMessage("Finished benchmark").All()
	require.Len(t, finished, 1)
	require.Equal(t, "partitioned", finished[0].ContextMap()["strategy"])
}

func TestRunAllAgrees(t *testing.T) {
	defer goleak.VerifyNone(t)
	reports, err := RunAll(context.Background(), createTestSumJob(50000), &Options{Workers: 4, Repetitions: 5, Warmup: 1})
	require.Nil(t, err)
	require.Len(t, reports, len(preduce.AllStrategies))
	for i, tag := range preduce.AllStrategies {
		require.Equal(t, tag, reports[i].Strategy)
	}
}

func TestRunAllSubset(t *testing.T) {
	reports, err := RunAll(context.Background(), createTestSumJob(100), &Options{Workers: 2, Repetitions: 2}, preduce.AtomicThreaded, preduce.WorkStealing)
	require.Nil(t, err)
	require.Len(t, reports, 2)
}

func TestVerifyDetectsViolations(t *testing.T) {
	serial := &Report[int64]{Strategy: preduce.Serial, Results: []int64{100}}
	good := &Report[int64]{Strategy: preduce.PartitionedThreaded, Results: []int64{100}}
	racy := &Report[int64]{Strategy: preduce.AtomicThreaded, Results: []int64{100, 97, 98}}
	require.Nil(t, Verify(DefaultTolerance, good, serial))

	err := Verify(DefaultTolerance, good, racy, serial)
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	var cve perrors.ConsistencyViolationError
	require.True(t, errors.As(err, &cve))
	require.Equal(t, "serial", cve.Reference)
	require.Equal(t, "atomic", cve.Other)
	require.Equal(t, int64(97), cve.Actual)

	require.Nil(t, Verify[int64](DefaultTolerance))
}

func TestVerifyWithoutSerialUsesFirstReport(t *testing.T) {
	a := &Report[float64]{Strategy: preduce.WorkStealing, Results: []float64{1.0}}
	b := &Report[float64]{Strategy: preduce.AtomicThreaded, Results: []float64{2.0}}
	err := Verify(DefaultTolerance, a, b)
	var cve perrors.ConsistencyViolationError
	require.True(t, errors.As(err, &cve))
	require.Equal(t, "workstealing", cve.Reference)
}

func TestVerifySkipsReportsWithoutResults(t *testing.T) {
	empty := &Report[float64]{Strategy: preduce.Serial}
	a := &Report[float64]{Strategy: preduce.AtomicThreaded, Results: []float64{2.0}}
	b := &Report[float64]{Strategy: preduce.WorkStealing, Results: []float64{2.0}}
	require.Nil(t, Verify(DefaultTolerance, empty, a, b))
	require.Nil(t, Verify(DefaultTolerance, empty))

	c := &Report[float64]{Strategy: preduce.PartitionedThreaded, Results: []float64{3.0}}
	err := Verify(DefaultTolerance, empty, a, c)
	var cve perrors.ConsistencyViolationError
	require.True(t, errors.As(err, &cve))
	require.Equal(t, "atomic", cve.Reference)
}

func TestRunCollapsesNaNResults(t *testing.T) {
	job := &preduce.Job[float64, float64]{
		Input:       []float64{1, 2, 3},
		Transform:   func(x float64) (float64, error) { return math.NaN(), nil },
		Accumulator: accumulators.Adder[float64](),
	}
	report, err := Run(context.Background(), preduce.Serial, job, &Options{Workers: 1, Repetitions: 5})
	require.Nil(t, err)
	require.Len(t, report.Results, 1)
	require.True(t, math.IsNaN(report.Result()))
	require.Len(t, report.Samples, 5)

	require.Equal(t, []float64{1, 2}, distinct([]float64{1, 2, 1, 2}))
	mixed := distinct([]float64{math.NaN(), 1, math.NaN(), 1})
	require.Len(t, mixed, 2)
	require.True(t, math.IsNaN(mixed[0]))
	require.Equal(t, 1.0, mixed[1])
}

func TestReportJSONKeepsNonFiniteResults(t *testing.T) {
	report := &Report[float64]{
		Strategy: preduce.Serial,
		Results:  []float64{math.Inf(-1), math.Inf(1), math.NaN(), 2.5},
		Samples:  []Sample[float64]{{Elapsed: 3, Allocs: 1, Result: math.Inf(-1)}, {Elapsed: 4, Result: math.NaN()}},
	}
	data, err := json.Marshal(report)
	require.Nil(t, err)
	decoded := &Report[float64]{}
	require.Nil(t, json.Unmarshal(data, decoded))
	require.Equal(t, preduce.Serial, decoded.Strategy)
	require.Len(t, decoded.Results, 4)
	require.True(t, math.IsInf(decoded.Results[0], -1))
	require.True(t, math.IsInf(decoded.Results[1], 1))
	require.True(t, math.IsNaN(decoded.Results[2]))
	require.Equal(t, 2.5, decoded.Results[3])
	require.True(t, math.IsInf(decoded.Samples[0].Result, -1))
	require.Equal(t, uint64(1), decoded.Samples[0].Allocs)
	require.True(t, math.IsNaN(decoded.Samples[1].Result))

	extremes := &Report[int64]{Results: []int64{math.MaxInt64, math.MinInt64}}
	data, err = json.Marshal(extremes)
	require.Nil(t, err)
	decodedInts := &Report[int64]{}
	require.Nil(t, json.Unmarshal(data, decodedInts))
	require.Equal(t, extremes.Results, decodedInts.Results)

	large := &Report[uint64]{Results: []uint64{math.MaxUint64}}
	data, err = json.Marshal(large)
	require.Nil(t, err)
	decodedUints := &Report[uint64]{}
	require.Nil(t, json.Unmarshal(data, decodedUints))
	require.Equal(t, large.Results, decodedUints.Results)
}

func TestEquivalent(t *testing.T) {
	require.True(t, Equivalent(1.0, 1.0+1e-12, DefaultTolerance))
	require.True(t, Equivalent(1e6, 1e6*(1+5e-10), DefaultTolerance))
	require.False(t, Equivalent(1e6, 1e6*(1+5e-9), DefaultTolerance))
	require.True(t, Equivalent(0.0, 1e-13, DefaultTolerance))
	require.True(t, Equivalent(math.NaN(), math.NaN(), DefaultTolerance))
	require.False(t, Equivalent(math.NaN(), 1.0, DefaultTolerance))
	require.True(t, Equivalent(float32(3), float32(3), DefaultTolerance))
	require.True(t, Equivalent(42, 42, DefaultTolerance))
	require.False(t, Equivalent(uint64(1<<60), uint64(1<<60+1), DefaultTolerance))
}
