package engine

import "unsafe"

// unsafeStringToBytes views s as a byte slice without copying.
// The result must never be written to.
func unsafeStringToBytes(s string) []byte {
	if s == "" {
		return []byte{}
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// memEqual compares the first length bytes of a and b, a machine word at a
// time where it can. Both slices must hold at least length bytes.
func memEqual(a, b []byte, length int) bool {
	if length == 0 {
		return true
	}

	const wordSize = int(unsafe.Sizeof(uintptr(0)))

	words := length / wordSize
	for i := 0; i < words; i++ {
		aWord := *(*uintptr)(unsafe.Pointer(&a[i*wordSize]))
		bWord := *(*uintptr)(unsafe.Pointer(&b[i*wordSize]))
		if aWord != bWord {
			return false
		}
	}

	for i := words * wordSize; i < length; i++ {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// hasAt reports whether needle occurs in haystack starting at byte i.
func hasAt(haystack, needle []byte, i int) bool {
	if i < 0 || len(haystack)-i < len(needle) {
		return false
	}
	return memEqual(haystack[i:], needle, len(needle))
}
