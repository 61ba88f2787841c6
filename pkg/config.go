package cache

// config.go defines the internal configuration object and the set of
// functional options New[K,V] accepts. A generic Option is used so that
// callbacks retain full type-safety with respect to the concrete key/value
// types chosen by the caller.
//
// Design notes
// ------------
// • All fields are initialised with sensible defaults in defaultConfig().
// • Options never allocate unless strictly necessary — they just capture
//   pointers to external objects (registry, logger, hasher builder …).
// • The struct itself is unexported: callers can only influence behaviour
//   through Option[K,V], which keeps the door open to add fields later
//   without breaking callers.
//
// © 2025 arena-cache authors. MIT License.

import (
	"errors"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Voskan/lrucache/internal/hasher"
)

// WeightFn computes an integer weight for a stored value V. The cache never
// uses the weight to decide *what* to evict — eviction is always of the LRU
// tail, per spec — it only accumulates the running total into SizeBytes(),
// an informational counter left as a documented extension hook for callers
// who want to layer byte-budget admission on top of the fixed-capacity LRU
// policy. A nil WeightFn disables the counter (SizeBytes always reports 0).
type WeightFn[V any] func(V) int

// EjectReason explains why an entry's value was handed to an EjectCallback
// without the caller who evicted it ever seeing it.
type EjectReason uint8

const (
	// ReasonCapacity means PushFront evicted the LRU tail to make room for
	// a new entry.
	ReasonCapacity EjectReason = iota + 1
)

// EjectCallback is invoked synchronously, inside the cache's critical
// section, whenever PushFront evicts the tail to satisfy capacity pressure.
// It is NOT invoked for PopBack, whose evicted cell is returned to the
// caller directly instead. The callback runs on the calling goroutine and
// must not block or re-enter the same Cache — doing either will stall every
// other goroutine contending for the gate.
type EjectCallback[K comparable, V any] func(key K, val V, reason EjectReason)

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	logger   *zap.Logger
	registry *prometheus.Registry
	weightFn WeightFn[V]
	ejectCb  EjectCallback[K, V]
	hasher   hasher.Builder[K]
}

func defaultWeightFn[V any](v V) int {
	w := int(unsafe.Sizeof(v))
	if w <= 0 {
		return 1
	}
	return w
}

func defaultConfig[K comparable, V any]() *config[K, V] {
	return &config[K, V]{
		logger:   zap.NewNop(),
		weightFn: defaultWeightFn[V],
		hasher:   hasher.NewMapHashBuilder[K](),
	}
}

// WithLogger plugs an external zap.Logger. The cache logs construction and
// recovered eject-callback panics, plus a debug-level entry whenever a
// cell's last reference is released (which can happen inside PushFront
// when it evicts the tail, or in Close).
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection for the cache instance.
// A nil registry (the default) keeps metrics disabled and the hot path free
// of label-lookup overhead.
func WithMetrics[K comparable, V any](reg *prometheus.Registry) Option[K, V] {
	return func(c *config[K, V]) {
		c.registry = reg
	}
}

// WithWeightFn overrides the default size-based weight calculation used to
// maintain SizeBytes(). The function must be cheap and deterministic; it
// runs on every PushFront call. Passing nil disables the byte-weight
// counter entirely (SizeBytes always reports 0).
func WithWeightFn[K comparable, V any](fn WeightFn[V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.weightFn = fn
	}
}

// WithEjectCallback registers a function invoked whenever PushFront evicts
// the LRU tail under capacity pressure.
func WithEjectCallback[K comparable, V any](cb EjectCallback[K, V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.ejectCb = cb
	}
}

// WithHasher substitutes the default hash/maphash-backed hasher adapter with
// a caller-supplied implementation — the cache's "pluggable HasherBuilder"
// extension point.
func WithHasher[K comparable, V any](hb hasher.Builder[K]) Option[K, V] {
	return func(c *config[K, V]) {
		if hb != nil {
			c.hasher = hb
		}
	}
}

func applyOptions[K comparable, V any](cfg *config[K, V], opts []Option[K, V]) {
	for _, opt := range opts {
		opt(cfg)
	}
}

var errNegativeCapacity = errors.New("lrucache: capacity must be >= 0")
