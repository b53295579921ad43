//go:build amd64

package simd

import "unsafe"

//go:noescape
func storeNT32(dst unsafe.Pointer, src *Word32)

//go:noescape
func storeNT64(dst unsafe.Pointer, src *Word64)

//go:noescape
func loadCompare32(src unsafe.Pointer, expected *Word32) (mismatches uint64)

//go:noescape
func loadCompare64(src unsafe.Pointer, expected *Word64) (mismatches uint64, mask uint64)

//go:noescape
func sfence()

//go:noescape
func lfence()

//go:noescape
func clflushopt(ptr unsafe.Pointer)
