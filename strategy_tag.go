package preduce

import (
	"strings"

	"github.com/go-sif/preduce/errors"
)

// StrategyTag selects the concurrency discipline used to execute a reduction
type StrategyTag string

const (
	// Serial folds the whole input on the calling goroutine, in index order
	Serial StrategyTag = "serial"
	// PartitionedThreaded gives each worker a contiguous Partition and an exclusive result slot
	PartitionedThreaded StrategyTag = "partitioned"
	// AtomicThreaded gives each worker a contiguous Partition, absorbing every element into one shared slot atomically
	AtomicThreaded StrategyTag = "atomic"
	// WorkStealing has workers repeatedly claim small chunks from a shared queue until it is empty
	WorkStealing StrategyTag = "workstealing"
)

// AllStrategies lists every StrategyTag, Serial first
var AllStrategies = []StrategyTag{Serial, PartitionedThreaded, AtomicThreaded, WorkStealing}

// IsThreaded returns true iff this strategy runs work on goroutines other than the caller's
func (t StrategyTag) IsThreaded() bool {
	return t == PartitionedThreaded || t == AtomicThreaded || t == WorkStealing
}

// Valid returns true iff this is one of the known strategies
func (t StrategyTag) Valid() bool {
	return t == Serial || t.IsThreaded()
}

// ParseStrategy translates a strategy name into a StrategyTag. Matching ignores case and
// dashes, so "Work-Stealing" and "workstealing" are equivalent.
func ParseStrategy(name string) (StrategyTag, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	switch normalized {
	case "serial":
		return Serial, nil
	case "partitioned", "partitionedthreaded":
		return PartitionedThreaded, nil
	case "atomic", "atomicthreaded":
		return AtomicThreaded, nil
	case "workstealing", "stealing":
		return WorkStealing, nil
	default:
		return "", errors.InvalidConfigurationError{Field: "strategy", Value: name, Reason: "is not a known strategy"}
	}
}
