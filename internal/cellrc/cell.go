// Package cellrc implements the cache's shared value cell: an immutable
// (K, V) pair held under atomic reference counting so that a reader may keep
// observing a result after the cache has evicted or replaced it.
//
// A Cell is created by each insertion or replacement of its key, and is never
// mutated in place: key replacement swaps the *pointer* stored in the node,
// it never writes through an existing Cell. This is what lets a concurrent
// holder of an old Cell keep comparing equal to the value it originally
// observed, per the cache's replacement-isolation guarantee.
//
// Go is garbage collected, so a Cell's memory is reclaimed whether or not
// anyone calls Release — the refcount does not exist to free memory. It
// exists to preserve the cache's observable "last holder" contract: a
// caller-supplied onRelease hook (the cache wires it to a debug-log hook;
// the eject callback is invoked separately) fires exactly once, when the
// last outstanding reference is dropped, not when the slot happens to be
// erased from the table.
//
// © 2025 arena-cache authors. MIT License.
package cellrc

import "sync/atomic"

// Cell is a reference-counted, immutable holder of a (K, V) pair.
type Cell[K comparable, V any] struct {
	key   K
	value V
	refs  atomic.Int32
	onRel func(K, V)
}

// New creates a Cell with an initial reference count of one.
func New[K comparable, V any](k K, v V) *Cell[K, V] {
	c := &Cell[K, V]{key: k, value: v}
	c.refs.Store(1)
	return c
}

// NewWithRelease is like New but invokes onRelease exactly once, the moment
// the last outstanding reference is released. Passing a nil onRelease is
// equivalent to New.
func NewWithRelease[K comparable, V any](k K, v V, onRelease func(K, V)) *Cell[K, V] {
	c := New[K, V](k, v)
	c.onRel = onRelease
	return c
}

// Clone returns a new reference to the same underlying pair, bumping the
// refcount. It does not copy K or V — the returned pointer is identical to
// c, matching Arc::clone semantics: two holders share identity, not just
// equal values.
func (c *Cell[K, V]) Clone() *Cell[K, V] {
	if c == nil {
		return nil
	}
	c.refs.Add(1)
	return c
}

// Release drops one reference. When the last reference is dropped, the
// onRelease hook supplied at construction (if any) runs synchronously on the
// releasing goroutine.
func (c *Cell[K, V]) Release() {
	if c == nil {
		return
	}
	if c.refs.Add(-1) == 0 && c.onRel != nil {
		c.onRel(c.key, c.value)
	}
}

// Key returns the cell's key.
func (c *Cell[K, V]) Key() K { return c.key }

// Value returns the cell's value.
func (c *Cell[K, V]) Value() V { return c.value }

// KV returns both the key and the value in one call.
func (c *Cell[K, V]) KV() (K, V) { return c.key, c.value }

// RefCount reports the current number of outstanding references. Intended
// for tests and diagnostics only.
func (c *Cell[K, V]) RefCount() int32 { return c.refs.Load() }
