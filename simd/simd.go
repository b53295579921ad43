// Package simd supplies the two SIMD-word instantiations the kernel and
// battery are built against: a 32-byte (AVX2) word and a 64-byte (AVX512)
// word, each exposing the small capability set spec.md's Design Notes call
// for — broadcast, xor, aligned load, non-temporal store, and a
// mismatch/popcount compare — so the kernel can be written once and
// instantiated twice (see kernel.SweepUp/SweepDown).
package simd

import "unsafe"

// Word32 is the bit pattern held in one AVX2-width (256-bit) SIMD slot.
type Word32 [32]byte

// Word64 is the bit pattern held in one AVX512-width (512-bit) SIMD slot.
type Word64 [64]byte

// Broadcast32 fills every byte of a Word32 with b.
func Broadcast32(b byte) Word32 {
	var w Word32
	for i := range w {
		w[i] = b
	}
	return w
}

// Broadcast64 fills every byte of a Word64 with b.
func Broadcast64(b byte) Word64 {
	var w Word64
	for i := range w {
		w[i] = b
	}
	return w
}

// Xor32 returns the bitwise XOR of a and b.
func Xor32(a, b Word32) Word32 {
	var out Word32
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Xor64 returns the bitwise XOR of a and b.
func Xor64(a, b Word64) Word64 {
	var out Word64
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Not32 returns the bitwise complement of w (w XOR 0xFF...).
func Not32(w Word32) Word32 { return Xor32(w, Broadcast32(0xFF)) }

// Not64 returns the bitwise complement of w (w XOR 0xFF...).
func Not64(w Word64) Word64 { return Xor64(w, Broadcast64(0xFF)) }

// StoreNT32 issues an aligned, cache-bypassing 32-byte store of v at
// mem[idx:idx+32]. idx must be 32-byte aligned and mem[idx:idx+32] must lie
// within mem; violating either is a misconfiguration per spec.md section 7
// and the behavior is undefined (the assembly will fault on a genuinely
// misaligned non-temporal store on real hardware).
func StoreNT32(mem []byte, idx int, v Word32) {
	storeNT32(unsafe.Pointer(&mem[idx]), &v)
}

// StoreNT64 is StoreNT32's 64-byte counterpart.
func StoreNT64(mem []byte, idx int, v Word64) {
	storeNT64(unsafe.Pointer(&mem[idx]), &v)
}

// Load32 issues an aligned 32-byte load from mem[idx:idx+32].
func Load32(mem []byte, idx int) Word32 {
	var out Word32
	copy(out[:], mem[idx:idx+32])
	return out
}

// Load64 issues an aligned 64-byte load from mem[idx:idx+64].
func Load64(mem []byte, idx int) Word64 {
	var out Word64
	copy(out[:], mem[idx:idx+64])
	return out
}

// Equal32 loads mem[idx:idx+32], compares it byte-wise to expected, and
// returns the number of mismatching bytes (0 on a match).
func Equal32(mem []byte, idx int, expected Word32) uint64 {
	return loadCompare32(unsafe.Pointer(&mem[idx]), &expected)
}

// Equal64 loads mem[idx:idx+64], compares it byte-wise to expected, issuing
// a load fence first (spec.md section 5 ordering guarantee 2), and returns
// both the mismatch popcount and the 64-bit per-byte mismatch mask (bit i
// set iff byte i differs).
func Equal64(mem []byte, idx int, expected Word64) (mismatches uint64, mask uint64) {
	return loadCompare64(unsafe.Pointer(&mem[idx]), &expected)
}

// SFence retires all outstanding non-temporal stores. Must be called
// between a write-phase sweep and its paired read-phase sweep.
func SFence() { sfence() }

// LFence defeats speculative loads being satisfied from the store buffer
// ahead of a non-temporal store's retirement. Used on the AVX512 path
// immediately before each compare.
func LFence() { lfence() }

// CLFlushLine evicts the 64-byte cache line containing mem[idx]. The
// SGEMM battery test flushes every line of a freshly computed tile this
// way before fencing it, so its writeback is forced out of cache rather
// than resolved from a store buffer that masks eviction-path faults
// (spec.md section 4.4).
func CLFlushLine(mem []byte, idx int) {
	clflushopt(unsafe.Pointer(&mem[idx]))
}
