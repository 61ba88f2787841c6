package cache

// loader.go implements GetOrLoad's singleflight-based de-duplication: when
// many goroutines request the same missing key simultaneously, only one of
// them runs the loader; the rest wait for its result. This is a host-level
// convenience layered on top of Get/PushFront in the same sense that the
// cache's own spec treats streamed/ranged reads and status shaping as
// external collaborators — it never touches the gate or the slot table
// directly, it only serializes concurrent loader invocations.
//
// © 2025 arena-cache authors. MIT License.

import (
	"context"
	"strconv"

	"github.com/Voskan/lrucache/internal/cellrc"
)

// GetOrLoad returns the cached cell for key if present, promoting it like
// Get. On a miss, it invokes loader exactly once across all concurrent
// callers racing for the same key, stores the result with PushFront, and
// returns the newly inserted cell. If loader returns an error, nothing is
// stored and the error is propagated to every waiter.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, loader LoaderFunc[K, V]) (*cellrc.Cell[K, V], error) {
	if cell := c.Get(ctx, key); cell != nil {
		return cell, nil
	}

	h := c.cfg.hasher.Hash(key)
	sfKey := strconv.FormatUint(h, 16)

	v, err, _ := c.loaders.Do(sfKey, func() (any, error) {
		return loader(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	// PushFront's return value is the *previous* cell for key (per the
	// cache's replacement-isolation contract), which is nil here since the
	// Get above established key was absent. GetOrLoad's caller wants the
	// newly stored cell, so fetch it explicitly; this promotion is a no-op
	// since PushFront already placed it at the head.
	c.PushFront(ctx, key, v.(V))
	return c.Get(ctx, key), nil
}
