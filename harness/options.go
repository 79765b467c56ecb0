package harness

import (
	"runtime"

	"github.com/go-sif/preduce/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

const (
	// DefaultRepetitions is the default number of timed invocations per benchmark
	DefaultRepetitions = 1000
	// DefaultWarmup is the default number of untimed invocations run before timing starts
	DefaultWarmup = 10
)

// Options configure a benchmark run
type Options struct {
	Workers     int         // the number of workers handed to the strategy
	Repetitions int         // the number of timed invocations
	Warmup      int         // the number of untimed invocations run before timing starts
	Logger      *zap.Logger // receives debug-level progress. nil means no logging
}

// DefaultOptions returns Options using all available hardware parallelism,
// DefaultRepetitions and DefaultWarmup
func DefaultOptions() *Options {
	return &Options{
		Workers:     runtime.GOMAXPROCS(0),
		Repetitions: DefaultRepetitions,
		Warmup:      DefaultWarmup,
	}
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Workers:     opts.Workers,
		Repetitions: opts.Repetitions,
		Warmup:      opts.Warmup,
		Logger:      opts.Logger,
	}
}

// Validate reports every unusable value in these Options as an InvalidConfigurationError,
// aggregated into a single error
func (o *Options) Validate() error {
	var merr *multierror.Error
	if o.Workers <= 0 {
		merr = multierror.Append(merr, errors.InvalidConfigurationError{Field: "workers", Value: o.Workers, Reason: "must be greater than 0"})
	}
	if o.Repetitions <= 0 {
		merr = multierror.Append(merr, errors.InvalidConfigurationError{Field: "repetitions", Value: o.Repetitions, Reason: "must be greater than 0"})
	}
	if o.Warmup < 0 {
		merr = multierror.Append(merr, errors.InvalidConfigurationError{Field: "warmup", Value: o.Warmup, Reason: "must not be negative"})
	}
	return merr.ErrorOrNil()
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
