package stats

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
)

// Summary describes the distribution of a set of elapsed times
type Summary struct {
	Count    int           `json:"count"`
	Min      time.Duration `json:"min"`
	Max      time.Duration `json:"max"`
	Median   time.Duration `json:"median"`
	Mean     time.Duration `json:"mean"`
	StdDev   time.Duration `json:"stddev"`
	Variance float64       `json:"variance"` // in nanoseconds squared
}

// Summarize computes a Summary. Variance uses the sample (n-1) estimator, and is zero
// for fewer than two durations. An empty slice produces a zero Summary.
func Summarize(durations []time.Duration) Summary {
	if len(durations) == 0 {
		return Summary{}
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	mean := float64(lo.Sum(sorted)) / float64(n)
	var median time.Duration
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	var variance float64
	if n > 1 {
		for _, d := range sorted {
			delta := float64(d) - mean
			variance += delta * delta
		}
		variance /= float64(n - 1)
	}
	return Summary{
		Count:    n,
		Min:      sorted[0],
		Max:      sorted[n-1],
		Median:   median,
		Mean:     time.Duration(math.Round(mean)),
		StdDev:   time.Duration(math.Round(math.Sqrt(variance))),
		Variance: variance,
	}
}
