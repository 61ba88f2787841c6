package slot

// ToHead makes idx the new head of the recency list owned by *head/*tail,
// splicing it out of wherever it currently sits. It implements the five
// cases the spec enumerates for to_head, transcribed from the case analysis
// in the original Rust implementation's unsafe to_head:
//
//   - middle:            prev and next both present
//   - at tail:           prev present, next absent
//   - fresh, empty list: prev and next absent, list was empty
//   - fresh, non-empty:  prev and next absent, list was non-empty
//   - already at head:   idx == *head (no-op)
func ToHead[K comparable, V any](t *Table[K, V], head, tail *Index, idx Index) {
	if *head == idx {
		return
	}

	n := t.Node(idx)
	prev, next := n.Prev, n.Next

	switch {
	case prev != NoIndex && next != NoIndex: // middle
		t.Node(prev).Next = next
		t.Node(next).Prev = prev
	case prev != NoIndex && next == NoIndex: // at tail
		t.Node(prev).Next = NoIndex
		*tail = prev
	case prev == NoIndex && next == NoIndex && *tail == NoIndex: // fresh, empty list
		*head = idx
		*tail = idx
		n.Prev = NoIndex
		n.Next = NoIndex
		return
	case prev == NoIndex && next == NoIndex: // fresh, non-empty list
		// node is not yet linked anywhere; fall through to head-splice below
	}

	oldHead := *head
	if oldHead != NoIndex {
		t.Node(oldHead).Prev = idx
	}
	n.Next = oldHead
	n.Prev = NoIndex
	*head = idx
}

// Unlink removes idx from the recency list owned by *head/*tail without
// touching the table's storage — the caller erases the slot separately via
// EraseWithoutDropping once it has extracted whatever it needs from the
// node. Implements the four cases from the spec's remove: middle, at tail,
// at head, and sole element.
func Unlink[K comparable, V any](t *Table[K, V], head, tail *Index, idx Index) {
	n := t.Node(idx)
	prev, next := n.Prev, n.Next

	switch {
	case prev != NoIndex && next != NoIndex: // middle
		t.Node(prev).Next = next
		t.Node(next).Prev = prev
	case prev != NoIndex && next == NoIndex: // at tail
		*tail = prev
		t.Node(prev).Next = NoIndex
	case prev == NoIndex && next != NoIndex: // at head
		*head = next
		t.Node(next).Prev = NoIndex
	default: // sole element
		*head = NoIndex
		*tail = NoIndex
	}
}
