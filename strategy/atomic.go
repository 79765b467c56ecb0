package strategy

import (
	"context"
	"sync/atomic"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/internal/util"
	"github.com/go-sif/preduce/partition"
	"golang.org/x/sync/errgroup"
)

// atomicSlot is a single result shared by every worker. Absorb is an indivisible
// read-modify-write: a compare-and-swap loop over the value's bit pattern.
type atomicSlot[N preduce.Number] struct {
	acc  preduce.Accumulator[N]
	bits atomic.Uint64
}

func newAtomicSlot[N preduce.Number](acc preduce.Accumulator[N]) *atomicSlot[N] {
	s := &atomicSlot[N]{acc: acc}
	s.bits.Store(util.ToBits(acc.Identity()))
	return s
}

func (s *atomicSlot[N]) absorb(v N) {
	for {
		old := s.bits.Load()
		next := util.ToBits(s.acc.Absorb(util.FromBits[N](old), v))
		if s.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (s *atomicSlot[N]) load() N {
	return util.FromBits[N](s.bits.Load())
}

// reduceAtomic partitions the input like reducePartitioned, but every transformed element
// is absorbed straight into one shared slot, so workers contend on every element.
func reduceAtomic[E any, N preduce.Number](ctx context.Context, job *preduce.Job[E, N], workers int) (N, error) {
	var zero N
	parts, err := partition.Plan(job.Len(), workers)
	if err != nil {
		return zero, err
	}
	slot := newAtomicSlot(job.Accumulator)
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		g.Go(func() error {
			return forEach(gctx, job, p, slot.absorb)
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}
	return slot.load(), nil
}
