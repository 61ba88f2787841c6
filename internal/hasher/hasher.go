// Package hasher implements the cache's hasher adapter: it wraps a pluggable
// hash-builder and produces a 64-bit fingerprint for a key.
//
// The default builder is seeded `hash/maphash`, the same primitive the
// teacher's shard.hash used, generalised from a type-switch over string/
// []byte/scalar into a single generic Builder so callers may substitute any
// 64-bit-producing hash source (spec's "any uniform BuildHasher is
// acceptable").
//
// © 2025 arena-cache authors. MIT License.
package hasher

import (
	"hash/maphash"
	"unsafe"

	"github.com/Voskan/lrucache/internal/unsafehelpers"
)

// Builder produces a 64-bit fingerprint for a key of type K. Implementations
// must be deterministic for equal keys within the lifetime of a single
// Builder instance (the seed may vary across instances/process restarts —
// the cache never persists hashes across runs).
type Builder[K comparable] interface {
	Hash(k K) uint64
}

// MapHashBuilder is the default Builder, backed by the standard library's
// hash/maphash. Each instance owns its own seed so that two caches (or two
// Cache instances sharing a key type) do not share hash-flooding exposure.
type MapHashBuilder[K comparable] struct {
	seed maphash.Seed
}

// NewMapHashBuilder constructs a MapHashBuilder with a fresh random seed.
func NewMapHashBuilder[K comparable]() *MapHashBuilder[K] {
	return &MapHashBuilder[K]{seed: maphash.MakeSeed()}
}

// Hash builds a fresh hasher, feeds k's byte representation through the hash
// protocol, and finishes to a uint64 — exactly the adapter operation
// described by the cache's hasher-adapter component.
func (b *MapHashBuilder[K]) Hash(k K) uint64 {
	var h maphash.Hash
	h.SetSeed(b.seed)

	switch v := any(k).(type) {
	case string:
		// Write and WriteString hash the same bytes identically, so a
		// string key and a []byte key with equal content hash equally.
		h.Write(unsafehelpers.StringToBytes(v))
	case []byte:
		h.WriteString(unsafehelpers.BytesToString(v))
	default:
		// Scalars and fixed-shape structs: hash the raw bytes of k's
		// in-memory representation. Safe because we only read, never
		// retain, the resulting slice.
		ptr := unsafe.Pointer(&k)
		size := unsafe.Sizeof(k)
		h.Write(unsafehelpers.ByteSliceFrom(ptr, size))
	}
	return h.Sum64()
}

var _ Builder[string] = (*MapHashBuilder[string])(nil)
