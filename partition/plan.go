// Package partition splits index ranges into balanced, contiguous Partitions for workers.
package partition

import (
	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/errors"
)

// DefaultChunksPerWorker is the number of chunks per worker produced by Chunks when
// a non-positive value is supplied
const DefaultChunksPerWorker = 8

// Plan splits [0, length) into min(workers, length) contiguous, non-empty Partitions in
// ascending order. The first length%k Partitions hold one more element than the rest,
// so sizes never differ by more than one. An empty range produces no Partitions.
func Plan(length int, workers int) ([]preduce.Partition, error) {
	if workers <= 0 {
		return nil, errors.InvalidConfigurationError{Field: "workers", Value: workers, Reason: "must be greater than 0"}
	}
	if length < 0 {
		return nil, errors.InvalidConfigurationError{Field: "length", Value: length, Reason: "must not be negative"}
	}
	k := workers
	if length < k {
		k = length
	}
	parts := make([]preduce.Partition, 0, k)
	if k == 0 {
		return parts, nil
	}
	size, extra := length/k, length%k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < extra {
			end++
		}
		parts = append(parts, preduce.Partition{Start: start, End: end})
		start = end
	}
	return parts, nil
}

// Chunks splits [0, length) into the finer-grained Partitions used by work stealing:
// workers*chunksPerWorker balanced chunks, or fewer when the range is shorter than that.
func Chunks(length int, workers int, chunksPerWorker int) ([]preduce.Partition, error) {
	if workers <= 0 {
		return nil, errors.InvalidConfigurationError{Field: "workers", Value: workers, Reason: "must be greater than 0"}
	}
	if chunksPerWorker <= 0 {
		chunksPerWorker = DefaultChunksPerWorker
	}
	// more chunks than elements would only be empty, so cap before multiplying
	chunks := length
	if workers <= length/chunksPerWorker {
		chunks = workers * chunksPerWorker
	}
	if chunks <= 0 {
		chunks = 1
	}
	return Plan(length, chunks)
}
