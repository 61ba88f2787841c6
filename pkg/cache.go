// Package cache implements a fixed-capacity, concurrency-safe LRU cache
// combining a hash index over a preallocated slot table with an intrusive doubly-linked
// recency list, so that lookup, insertion, promotion and eviction each
// complete in amortized constant time while preserving stable node
// addresses. Values are handed out as reference-counted immutable
// key/value cells so that concurrent readers may keep a result after it has
// been evicted without aliasing the cache's interior.
//
// The table never resizes: capacity is a hard construction-time choice
// (see internal/slot), which is what lets the recency list thread pointers
// directly through slot storage instead of through a separate arena.
//
// © 2025 arena-cache authors. MIT License.
package cache

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Voskan/lrucache/internal/cellrc"
	"github.com/Voskan/lrucache/internal/gate"
	"github.com/Voskan/lrucache/internal/slot"
)

// Cache is the public LRU cache type. K must be comparable; V carries no
// constraints beyond what a caller's own WeightFn or EjectCallback impose.
//
// Unlike the teacher's sharded design, Cache is a single, unsharded
// structure: the spec's invariants (head == nil iff tail == nil iff count
// == 0, a single chain of length count reachable from head, …) are global to
// the whole cache, not per-partition, so sharding — which would give each
// partition its own independent recency list — would silently break the
// single global LRU order the spec requires.
type Cache[K comparable, V any] struct {
	table *slot.Table[K, V]
	head  slot.Index
	tail  slot.Index

	gate gate.Gate

	cfg     *config[K, V]
	metrics metricsSink
	loaders singleflight.Group

	bytes     atomic.Int64
	lastSpins atomic.Uint64
	closed    atomic.Bool

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Stats is a point-in-time snapshot of cumulative counters, independent of
// whether WithMetrics was configured — it is cheap enough to expose on a
// debug/inspection endpoint without requiring a Prometheus registry.
type Stats struct {
	Len       int
	Capacity  int
	Bytes     int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cache's size and cumulative counters.
func (c *Cache[K, V]) Stats(ctx context.Context) Stats {
	return Stats{
		Len:       c.Len(ctx),
		Capacity:  c.Capacity(),
		Bytes:     c.SizeBytes(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// New constructs a cache with the given fixed capacity and the default
// hash/maphash-backed hasher. Capacity zero is legal: the cache is
// permanently empty, and PushFront always returns nil on it.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, errNegativeCapacity
	}

	cfg := defaultConfig[K, V]()
	applyOptions(cfg, opts)

	c := &Cache[K, V]{
		table:   slot.New[K, V](capacity),
		head:    slot.NoIndex,
		tail:    slot.NoIndex,
		cfg:     cfg,
		metrics: newMetricsSink(cfg.registry),
	}
	cfg.logger.Debug("lru cache constructed", zap.Int("capacity", capacity))
	return c, nil
}

func (c *Cache[K, V]) keyEq(k K) func(*slot.Node[K, V]) bool {
	return func(n *slot.Node[K, V]) bool { return n.Cell.Key() == k }
}

func (c *Cache[K, V]) reportGateSpins() {
	total := c.gate.Spins()
	if prev := c.lastSpins.Swap(total); total > prev {
		c.metrics.addGateSpins(total - prev)
	}
}

// PushFront inserts a key-value pair at the head of the recency list,
// returning the previously-associated value's cell if the key was already
// present (that cell is NOT released on the caller's behalf — any
// outstanding holder of it keeps observing the old value). If the key is
// absent and the cache is at capacity, the least-recently-used entry is
// evicted first; replacing a present key never evicts. Never
// reports failure: a cancelled ctx or a zero-capacity cache both simply
// result in no mutation and a nil return.
func (c *Cache[K, V]) PushFront(ctx context.Context, k K, v V) *cellrc.Cell[K, V] {
	return c.pushFront(ctx, k, v, nil, false)
}

// PushFrontWithMeta is PushFront plus an opaque per-entry metadata
// attachment point. Metadata is never inspected by the cache; it is only
// stored and destroyed alongside its node. Replacing a key via plain
// PushFront leaves any previously attached metadata untouched.
func (c *Cache[K, V]) PushFrontWithMeta(ctx context.Context, k K, v V, meta any) *cellrc.Cell[K, V] {
	return c.pushFront(ctx, k, v, meta, true)
}

func (c *Cache[K, V]) pushFront(ctx context.Context, k K, v V, meta any, setMeta bool) *cellrc.Cell[K, V] {
	if c.closed.Load() || c.table.Capacity() == 0 {
		return nil
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil
	}
	defer c.gate.Release()
	c.reportGateSpins()

	h := c.cfg.hasher.Hash(k)
	eq := c.keyEq(k)

	var bucket slot.Index
	var prevCell *cellrc.Cell[K, V]
	var weightDelta int

	// Look up the key before considering capacity pressure: replacing an
	// already-present key is never itself a reason to evict, even when the
	// cache happens to be completely full (e.g. capacity 1, re-pushing its
	// sole occupant). Evicting first and only then discovering the key was
	// already present would both evict and lose the prior-cell return.
	if idx, found := c.table.Find(h, eq); found {
		node := c.table.Node(idx)
		prevCell = node.Cell
		node.Cell = cellrc.NewWithRelease(k, v, c.onCellReleased)
		if setMeta {
			node.Meta = meta
		}
		bucket = idx
		if c.cfg.weightFn != nil {
			weightDelta = c.cfg.weightFn(v) - c.cfg.weightFn(prevCell.Value())
		}
	} else {
		if c.table.Len() >= c.table.Capacity() && c.tail != slot.NoIndex {
			c.evictTailLocked()
		}

		newNode := slot.Node[K, V]{Hash: h, Cell: cellrc.NewWithRelease(k, v, c.onCellReleased), Prev: slot.NoIndex, Next: slot.NoIndex}
		if setMeta {
			newNode.Meta = meta
		}
		bucket = c.table.InsertWithoutGrowing(newNode)
		if c.cfg.weightFn != nil {
			weightDelta = c.cfg.weightFn(v)
		}
	}

	slot.ToHead(c.table, &c.head, &c.tail, bucket)

	if c.cfg.weightFn != nil && weightDelta != 0 {
		c.metrics.setBytes(c.bytes.Add(int64(weightDelta)))
	}

	return prevCell
}

// evictTailLocked evicts the current LRU tail. Caller must hold the gate.
func (c *Cache[K, V]) evictTailLocked() {
	idx := c.tail
	node := c.table.Node(idx)
	evicted := node.Cell

	slot.Unlink(c.table, &c.head, &c.tail, idx)
	c.table.EraseWithoutDropping(idx)
	c.metrics.incEvict()
	c.evictions.Add(1)

	if c.cfg.weightFn != nil {
		c.metrics.setBytes(c.bytes.Add(-int64(c.cfg.weightFn(evicted.Value()))))
	}

	if c.cfg.ejectCb != nil {
		c.callEjectCbSafely(evicted)
	}
	evicted.Release()
}

// onCellReleased is the Cell-level diagnostic hook: it fires once a given
// key/value pair's last outstanding reference (cache's own plus any clones
// handed out via Get) is dropped. It never drives eviction decisions — that
// is always a deliberate tail-splice, not a side effect of refcounting — it
// only gives the configured logger visibility into when a value actually
// stops being observable by anyone, which is useful for diagnosing a caller
// that never lets go of a Get result.
func (c *Cache[K, V]) onCellReleased(k K, _ V) {
	c.cfg.logger.Debug("cell released", zap.Any("key", k))
}

func (c *Cache[K, V]) callEjectCbSafely(evicted *cellrc.Cell[K, V]) {
	defer func() {
		if r := recover(); r != nil {
			c.cfg.logger.Error("eject callback panicked", zap.Any("recover", r))
		}
	}()
	k, v := evicted.KV()
	c.cfg.ejectCb(k, v, ReasonCapacity)
}

// Get returns the cell for k, promoting it to the head of the recency list,
// or nil if k is absent.
func (c *Cache[K, V]) Get(ctx context.Context, k K) *cellrc.Cell[K, V] {
	if c.closed.Load() {
		return nil
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil
	}
	defer c.gate.Release()
	c.reportGateSpins()

	h := c.cfg.hasher.Hash(k)
	idx, found := c.table.Find(h, c.keyEq(k))
	if !found {
		c.metrics.incMiss()
		c.misses.Add(1)
		return nil
	}
	slot.ToHead(c.table, &c.head, &c.tail, idx)
	c.metrics.incHit()
	c.hits.Add(1)
	return c.table.Node(idx).Cell.Clone()
}

// Meta returns the metadata attached via PushFrontWithMeta for k, if any.
// Unlike Get, it does not promote the entry — inspecting metadata is not
// itself an access for LRU purposes.
func (c *Cache[K, V]) Meta(ctx context.Context, k K) (any, bool) {
	if c.closed.Load() {
		return nil, false
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, false
	}
	defer c.gate.Release()

	h := c.cfg.hasher.Hash(k)
	idx, found := c.table.Find(h, c.keyEq(k))
	if !found {
		return nil, false
	}
	return c.table.Node(idx).Meta, true
}

// PopBack removes and returns the cell at the tail of the recency list (the
// least-recently-used entry), or nil if the cache is empty.
func (c *Cache[K, V]) PopBack(ctx context.Context) *cellrc.Cell[K, V] {
	if c.closed.Load() {
		return nil
	}
	if err := c.gate.Acquire(ctx); err != nil {
		return nil
	}
	defer c.gate.Release()
	c.reportGateSpins()

	if c.tail == slot.NoIndex {
		return nil
	}
	idx := c.tail
	node := c.table.Node(idx)
	cell := node.Cell

	if c.cfg.weightFn != nil {
		c.metrics.setBytes(c.bytes.Add(-int64(c.cfg.weightFn(cell.Value()))))
	}

	slot.Unlink(c.table, &c.head, &c.tail, idx)
	c.table.EraseWithoutDropping(idx)
	return cell
}

// Len returns the number of entries currently in the cache. It acquires the
// gate so callers observe an invariant-consistent snapshot.
func (c *Cache[K, V]) Len(ctx context.Context) int {
	if err := c.gate.Acquire(ctx); err != nil {
		return 0
	}
	defer c.gate.Release()
	return c.table.Len()
}

// Capacity returns the cache's fixed capacity. Capacity never changes after
// construction, so this does not need the gate.
func (c *Cache[K, V]) Capacity() int {
	return c.table.Capacity()
}

// SizeBytes returns the running total maintained by WeightFn (by default
// unsafe.Sizeof of each value), or 0 if WeightFn was set to nil via
// WithWeightFn. It is purely informational: the cache never uses
// it to decide what to evict (eviction is always of the LRU tail).
func (c *Cache[K, V]) SizeBytes() int64 {
	return c.bytes.Load()
}

// Close releases every live cell held by the cache and erases its slot. It is
// idempotent; only the first call has any effect. After Close, PushFront,
// PushFrontWithMeta, Get, Meta and PopBack are no-ops returning the empty
// value, and Len reports 0.
func (c *Cache[K, V]) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	_ = c.gate.Acquire(context.Background())
	defer c.gate.Release()

	for idx := c.head; idx != slot.NoIndex; {
		next := c.table.Node(idx).Next
		c.table.Node(idx).Cell.Release()
		c.table.EraseWithoutDropping(idx)
		idx = next
	}
	c.head, c.tail = slot.NoIndex, slot.NoIndex
}
