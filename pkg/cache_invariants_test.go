package cache

import (
	"context"
	"testing"

	"github.com/Voskan/lrucache/internal/slot"
)

// checkInvariants is the Go analogue of the original gws-cache's
// #[cfg(debug_assertions)] assert_head_tail self-check: a test-only
// consistency walk, never part of the public API, that verifies the
// recency list and the table agree with each other.
func (c *Cache[K, V]) checkInvariants(t testing.TB) {
	t.Helper()

	if err := c.gate.Acquire(context.Background()); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
	defer c.gate.Release()

	if c.table.Len() > c.table.Capacity() {
		t.Fatalf("len %d exceeds capacity %d", c.table.Len(), c.table.Capacity())
	}

	if (c.head == slot.NoIndex) != (c.tail == slot.NoIndex) {
		t.Fatalf("head/tail disagree on emptiness: head=%v tail=%v", c.head, c.tail)
	}
	if c.table.Len() == 0 && c.head != slot.NoIndex {
		t.Fatalf("len is 0 but head is %v", c.head)
	}

	if c.head != slot.NoIndex && c.table.Node(c.head).Prev != slot.NoIndex {
		t.Fatalf("head.Prev is not NoIndex: %v", c.table.Node(c.head).Prev)
	}
	if c.tail != slot.NoIndex && c.table.Node(c.tail).Next != slot.NoIndex {
		t.Fatalf("tail.Next is not NoIndex: %v", c.table.Node(c.tail).Next)
	}

	seen := make(map[slot.Index]bool, c.table.Len())
	count := 0
	for idx := c.head; idx != slot.NoIndex; {
		if seen[idx] {
			t.Fatalf("cycle detected in recency list at index %v", idx)
		}
		seen[idx] = true
		count++

		n := c.table.Node(idx)
		if n.Next != slot.NoIndex && c.table.Node(n.Next).Prev != idx {
			t.Fatalf("list not well-formed: node %v's next.prev != self", idx)
		}
		if n.Prev != slot.NoIndex && c.table.Node(n.Prev).Next != idx {
			t.Fatalf("list not well-formed: node %v's prev.next != self", idx)
		}
		idx = n.Next
	}

	if count != c.table.Len() {
		t.Fatalf("chain length %d does not equal table len %d", count, c.table.Len())
	}
}
