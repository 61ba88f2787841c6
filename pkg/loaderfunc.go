package cache

// loaderfunc.go defines LoaderFunc, the caller-supplied callback that
// produces a value when GetOrLoad misses. It lives in its own file so it can
// be referenced from both cache.go and loader.go without cluttering either.
//
// • The function should be side-effect free with regard to the cache it
//   serves. It runs with the cache's gate released, but it must not call
//   GetOrLoad for the same key on the same Cache, or the
//   singleflight-deduplicated call will wait on itself forever.
// • It should honour the provided context for cancellation and deadlines.
// • If the loader returns an error, the value is not stored in the cache
//   and the error is propagated to the caller of GetOrLoad.
//
// © 2025 arena-cache authors. MIT License.

import "context"

// LoaderFunc is invoked by GetOrLoad when a key is absent.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)
