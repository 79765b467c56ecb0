package report

import (
	"fmt"
	"time"

	"github.com/go-sif/preduce"
)

// A Comparison relates the median time of one strategy and worker count in a baseline to
// the same configuration in a newer File
type Comparison struct {
	Strategy       preduce.StrategyTag
	Workers        int
	BaselineMedian time.Duration
	CurrentMedian  time.Duration
	Speedup        float64 // BaselineMedian / CurrentMedian; greater than 1 means current is faster
}

type configKey struct {
	strategy preduce.StrategyTag
	workers  int
}

// Compare matches the reports of current against baseline by strategy and worker count,
// in the order they appear in current. Configurations missing from either side are
// skipped. Files whose reports carry different input digests cannot be compared.
func Compare[N preduce.Number](baseline, current *File[N]) ([]Comparison, error) {
	baseByKey := make(map[configKey]int, len(baseline.Reports))
	for i, r := range baseline.Reports {
		baseByKey[configKey{r.Strategy, r.Workers}] = i
	}
	comparisons := make([]Comparison, 0, len(current.Reports))
	for _, cur := range current.Reports {
		i, ok := baseByKey[configKey{cur.Strategy, cur.Workers}]
		if !ok {
			continue
		}
		base := baseline.Reports[i]
		if base.InputDigest != cur.InputDigest {
			return nil, fmt.Errorf("Baseline input digest %x does not match current input digest %x", base.InputDigest, cur.InputDigest)
		}
		c := Comparison{
			Strategy:       cur.Strategy,
			Workers:        cur.Workers,
			BaselineMedian: base.Elapsed.Median,
			CurrentMedian:  cur.Elapsed.Median,
		}
		if c.CurrentMedian > 0 {
			c.Speedup = float64(c.BaselineMedian) / float64(c.CurrentMedian)
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, nil
}
