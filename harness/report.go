package harness

import (
	"time"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/stats"
)

// A Sample is the measurement of one timed invocation
type Sample[N preduce.Number] struct {
	Elapsed time.Duration `json:"elapsed"`
	Allocs  uint64        `json:"allocs"` // heap allocations made by the process during the invocation
	Result  N             `json:"result"`
}

// A Report describes one benchmark run of one strategy
type Report[N preduce.Number] struct {
	ID          string              `json:"id"`
	Strategy    preduce.StrategyTag `json:"strategy"`
	Workers     int                 `json:"workers"`
	Repetitions int                 `json:"repetitions"`
	Warmup      int                 `json:"warmup"`
	InputLength int                 `json:"input_length"`
	InputDigest uint64              `json:"input_digest,omitempty"` // optional fingerprint of the input, set by the caller
	StartTime   time.Time           `json:"start_time"`
	Runtime     time.Duration       `json:"runtime"` // total, including warmup
	Elapsed     stats.Summary       `json:"elapsed"`
	MeanAllocs  float64             `json:"mean_allocs"`
	Results     []N                 `json:"results"` // distinct results, in order of first observation
	Samples     []Sample[N]         `json:"samples"`
}

// Result returns the first result observed during this run
func (r *Report[N]) Result() N {
	if len(r.Results) == 0 {
		var zero N
		return zero
	}
	return r.Results[0]
}
