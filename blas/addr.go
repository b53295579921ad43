package blas

import "unsafe"

// sliceAddr returns the address of a float32 slice's backing array for
// passing across the purego ABI boundary. The slice must outlive the
// call; SGEMM is synchronous so that always holds.
func sliceAddr(s []float32) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&s[0]))
}
