// Package unsafehelpers centralises **all** unavoidable usage of the
// `unsafe` standard-library package so that the rest of lrucache stays clean
// and easier to audit. Every helper is documented with clear pre-/post-
// conditions.
//
// ⚠️  **DISCLAIMER**   These helpers deliberately break the Go memory-safety
// model for the sake of zero-allocation conversions. Use ONLY inside this
// repository; they are not part of the public API and may change without
// notice. Misuse will lead to subtle data-races or garbage-collector
// corruption.
//
// All functions are `go:linkname`-free, cgo-free and pure Go 1.24.
//
// © 2025 arena-cache authors. MIT License.

package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Zero-copy string/[]byte conversions
   ------------------------------------------------------------------------- */

// BytesToString converts a mutable byte slice to an immutable string without
// allocating. The caller must guarantee that `b` will never be modified for
// the lifetime of the resulting string; otherwise the program exhibits
// undefined behaviour.
//
// Used by internal/hasher when a key's dynamic type is []byte (an
// interface-typed K holding a []byte), so hashing a byte-slice key yields
// the same hash as a string key of equal content, without paying for a
// copy on every PushFront/Get.
//
// DO NOT expose the returned string outside controlled scopes.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes re-interprets string data as a byte slice using unsafe.Pointer.
// The slice MUST remain read-only; writing to it will mutate immutable string
// storage and crash in future versions of Go.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	strHdr := (*[2]uintptr)(unsafe.Pointer(&s))
	return unsafe.Slice((*byte)(unsafe.Pointer(strHdr[0])), strHdr[1])
}

/* -------------------------------------------------------------------------
   2. Raw-pointer → byte-slice helper
   ------------------------------------------------------------------------- */

// ByteSliceFrom returns a []byte view of raw memory starting at `ptr` with the
// given length. Caller must ensure the memory block is at least `length`
// bytes. Used by internal/hasher for scalar keys, where we only know the
// address and size of K at runtime.
func ByteSliceFrom(ptr unsafe.Pointer, length uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), length)
}
