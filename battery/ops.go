// Package battery implements the fourteen memory-fault detection
// procedures spec.md section 5.5 names, each written once against the
// generic Ops[W] capability set below and instantiated twice — Ops32 for
// the AVX2 (32-byte) tier and Ops64 for the AVX512 (64-byte) tier — the
// same way the original's avx2_*/avx512_* function pairs share a single
// algorithm across two SIMD widths, collapsed here into one generic body
// per test instead of two copy-pasted C translation units.
package battery

import (
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
	"github.com/dramforge/dramdiag/simd"
)

// Ops is the capability set a battery test needs out of a SIMD word type:
// construct one, compare/xor it, move it in and out of the buffer, and
// report a mismatch the way its tier's wire format requires. Each battery
// test in this package is written once against Ops[W] and instantiated by
// plugging in Ops32 or Ops64.
type Ops[W any] struct {
	Width int

	Broadcast func(byte) W
	Xor       func(W, W) W
	Not       func(W) W
	Rand      func(*rng.Source) W

	Store func(mem []byte, idx int, v W)
	Load  func(mem []byte, idx int) W

	// ToBytes/FromBytes expose a word's raw bytes for tests (moving
	// inversions, moving saturations) that need to reshape a pattern as
	// a vector of 64-bit or 16-bit lanes rather than treat it as an
	// opaque blob — the Go equivalent of the original reaching past
	// _mm256_set1_epi8 to _mm256_set1_epi64x/_epi16 for the same word.
	ToBytes   func(W) []byte
	FromBytes func([]byte) W

	// Equal compares mem[idx:idx+Width] to expected and reports any
	// mismatch to errs, tagged with offset. It does not return a value:
	// every caller in this package only ever needs the side-effecting
	// report, matching the original's get() which logs and returns void.
	Equal func(errs *kernel.ErrorCounter, mem []byte, idx int, expected W)
}

// Ops32 is the AVX2-tier instantiation of Ops, built on the simd package's
// 32-byte primitives.
var Ops32 = Ops[simd.Word32]{
	Width:     32,
	Broadcast: simd.Broadcast32,
	Xor:       simd.Xor32,
	Not:       simd.Not32,
	Rand:      func(s *rng.Source) simd.Word32 { return simd.Word32(s.Next32()) },
	Store:     simd.StoreNT32,
	Load:      simd.Load32,
	ToBytes:   func(w simd.Word32) []byte { out := w; return out[:] },
	FromBytes: func(b []byte) simd.Word32 { var w simd.Word32; copy(w[:], b); return w },
	Equal: func(errs *kernel.ErrorCounter, mem []byte, idx int, expected simd.Word32) {
		mismatches := simd.Equal32(mem, idx, expected)
		errs.ReportAVX2(idx, mismatches)
	},
}

// Ops64 is the AVX512-tier instantiation of Ops, built on the simd
// package's 64-byte primitives.
var Ops64 = Ops[simd.Word64]{
	Width:     64,
	Broadcast: simd.Broadcast64,
	Xor:       simd.Xor64,
	Not:       simd.Not64,
	Rand:      func(s *rng.Source) simd.Word64 { return simd.Word64(s.Next64()) },
	Store:     simd.StoreNT64,
	Load:      simd.Load64,
	ToBytes:   func(w simd.Word64) []byte { out := w; return out[:] },
	FromBytes: func(b []byte) simd.Word64 { var w simd.Word64; copy(w[:], b); return w },
	Equal: func(errs *kernel.ErrorCounter, mem []byte, idx int, expected simd.Word64) {
		simd.LFence()
		mismatches, mask := simd.Equal64(mem, idx, expected)
		errs.ReportAVX512(idx, mismatches, mask)
	},
}

// setAllUp writes v to every aligned slot across all stripes, ascending,
// then retires the non-temporal stores with a store fence before
// returning — spec.md section 3's invariant and section 9's Fences note
// both require every write-phase sweep to be fenced before its paired
// read-phase sweep runs.
func setAllUp[W any](ctx kernel.RunContext, ops Ops[W], v W) {
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, ctx.StripeSize())
		ops.Store(ctx.Buffer, idx, v)
	})
	simd.SFence()
}

// setAllDown writes v to every aligned slot across all stripes,
// descending, then store-fences for the same reason setAllUp does.
func setAllDown[W any](ctx kernel.RunContext, ops Ops[W], v W) {
	kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, ctx.StripeSize())
		ops.Store(ctx.Buffer, idx, v)
	})
	simd.SFence()
}

// getAllUp verifies every aligned slot against expected, ascending.
func getAllUp[W any](ctx kernel.RunContext, ops Ops[W], expected W) {
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, ctx.StripeSize())
		ops.Equal(ctx.Errors, ctx.Buffer, idx, expected)
	})
}

// getAllDown verifies every aligned slot against expected, descending.
func getAllDown[W any](ctx kernel.RunContext, ops Ops[W], expected W) {
	kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, ctx.StripeSize())
		ops.Equal(ctx.Errors, ctx.Buffer, idx, expected)
	})
}
