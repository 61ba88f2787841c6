// Package gate implements the cache's critical-section lock: a two-state
// test-and-set spin lock with acquire/release memory ordering, no fairness
// guarantee and no reentrancy. Exactly one holder at a time.
//
// A spin lock is only correct here because the cache's critical sections are
// strictly bounded and non-suspending — between Acquire and Release there
// must be no awaits, no I/O, no allocation that could block the runtime.
// Suspending a goroutine while holding the gate would let the scheduler park
// the holder and live-lock every other goroutine spinning on the same gate.
//
// © 2025 arena-cache authors. MIT License.
package gate

import (
	"context"
	"runtime"
	"sync/atomic"
)

// backoffAfter is the number of failed CAS attempts between yields: Acquire
// spins tightly and calls runtime.Gosched once every backoffAfter failed
// attempts. This keeps a contended
// gate from starving the goroutine that currently holds it on a single-core
// or GOMAXPROCS=1 build.
const backoffAfter = 64

// Gate is a non-reentrant spin lock protecting the cache's joint
// table/list invariants.
type Gate struct {
	held  atomic.Bool
	spins atomic.Uint64
}

// Acquire spins until the gate is free, then claims it. If ctx is cancelled
// before the gate is claimed, Acquire returns ctx.Err() without acquiring —
// the caller never enters the critical section and performs no mutation.
func (g *Gate) Acquire(ctx context.Context) error {
	for i := 0; ; i++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if g.held.CompareAndSwap(false, true) {
			return nil
		}
		g.spins.Add(1)
		if i%backoffAfter == backoffAfter-1 {
			runtime.Gosched()
		}
	}
}

// Release publishes every write performed during the critical section and
// frees the gate for the next contender.
func (g *Gate) Release() {
	g.held.Store(false)
}

// Spins returns the cumulative number of failed acquisition attempts,
// exposed for the cache's gate-contention metric.
func (g *Gate) Spins() uint64 {
	return g.spins.Load()
}
