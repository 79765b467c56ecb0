package strategy

import (
	"context"
	"sync/atomic"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/partition"
	"golang.org/x/sync/errgroup"
)

// DefaultChunksPerWorker is how many chunks per worker the work-stealing strategy divides
// its input into
const DefaultChunksPerWorker = partition.DefaultChunksPerWorker

// chunkQueue hands out chunks in ascending order. The chunk list is immutable; the only
// shared mutable state is the cursor, advanced atomically by pop.
type chunkQueue struct {
	chunks []preduce.Partition
	next   atomic.Int64
}

// pop claims the next unclaimed chunk, returning false once the queue is empty
func (q *chunkQueue) pop() (preduce.Partition, bool) {
	i := q.next.Add(1) - 1
	if i >= int64(len(q.chunks)) {
		return preduce.Partition{}, false
	}
	return q.chunks[i], true
}

// reduceWorkStealing lets each worker claim chunks until none remain, folding them into a
// worker-local slot. Slots are merged in worker order after the group is joined, so the
// floating point grouping depends on which worker claimed which chunk.
func reduceWorkStealing[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], workers int, chunksPerWorker int) (N, error) {
	var zero N
	chunks, err := partition.Chunks(job.Len(), workers, chunksPerWorker)
	if err != nil {
		return zero, err
	}
	if len(chunks) < workers {
		workers = len(chunks)
	}
	q := &chunkQueue{chunks: chunks}
	slots := make([]N, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			partial := job.Accumulator.Identity()
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				chunk, ok := q.pop()
				if !ok {
					break
				}
				next, err := fold(gctx, job, chunk, partial)
				if err != nil {
					return err
				}
				partial = next
			}
			slots[w] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}
	return merge(job.Accumulator, slots), nil
}
