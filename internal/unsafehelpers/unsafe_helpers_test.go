package unsafehelpers

import (
	"testing"
	"unsafe"
)

func TestBytesToStringRoundTrip(t *testing.T) {
	b := []byte("hello")
	s := BytesToString(b)
	if s != "hello" {
		t.Fatalf("BytesToString = %q, want %q", s, "hello")
	}
}

func TestBytesToStringEmpty(t *testing.T) {
	if got := BytesToString(nil); got != "" {
		t.Fatalf("BytesToString(nil) = %q, want empty", got)
	}
}

func TestStringToBytesRoundTrip(t *testing.T) {
	b := StringToBytes("hello")
	if string(b) != "hello" {
		t.Fatalf("StringToBytes = %q, want %q", b, "hello")
	}
}

func TestStringToBytesEmpty(t *testing.T) {
	if got := StringToBytes(""); got != nil {
		t.Fatalf("StringToBytes(\"\") = %v, want nil", got)
	}
}

func TestByteSliceFromMatchesUnderlyingMemory(t *testing.T) {
	type pair struct{ a, b int32 }
	p := pair{a: 1, b: 2}
	view := ByteSliceFrom(unsafe.Pointer(&p), unsafe.Sizeof(p))
	if len(view) != 8 {
		t.Fatalf("len(view) = %d, want 8", len(view))
	}
}
