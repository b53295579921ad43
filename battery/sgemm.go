package battery

import (
	"unsafe"

	"github.com/dramforge/dramdiag/blas"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

const (
	sgemmDim       = 64
	sgemmMatBytes  = sgemmDim * sgemmDim * 4 // one 64x64 float32 matrix
	sgemmCacheLine = 64
)

// SGEMM zeroes the buffer, then repeatedly treats each consecutive triple
// of 64x64 float32 matrices (A, B, C) within a stripe as an OpenBLAS
// cblas_sgemm(A,B) -> C compute-and-store stress test, and finally
// verifies the whole buffer is still all zero. It is a
// no-op if no OpenBLAS could be dynamically loaded (blas.Load reports
// ok=false) — the engine runs the rest of the battery either
// way, per spec.md section 5.5's explicit "skip if unavailable" note.
//
// Per spec.md section 4.4, the accumulated stress this test applies comes
// from explicitly evicting each computed tile from cache rather than
// trusting it to age out naturally: after cblas_sgemm writes a tile, the
// loop below walks all sgemmMatBytes/sgemmCacheLine 64-byte lines of that
// tile issuing CLFlushLine on each, then fences once the whole tile has
// been flushed. This mirrors the original's avx2_sgemm, which
// clflushopt's every line of C before a single sfence per tile
// (tests-256.c).
func SGEMM[W any](ctx kernel.RunContext, ops Ops[W]) {
	k, ok := blas.Load()
	if !ok {
		return
	}

	zeroes := ops.Broadcast(0x00)
	setAllDown(ctx, ops, zeroes)

	stripeSize := ctx.StripeSize()
	const lead = sgemmMatBytes * 2

	for pass := 0; pass < 32; pass++ {
		kernel.SweepUp(ctx, sgemmMatBytes, func(stripe, offset int) {
			if offset < lead {
				return
			}
			base := kernel.BlockIdx(stripe, offset, stripeSize)
			a := asFloat32(ctx.Buffer, base-2*sgemmMatBytes)
			b := asFloat32(ctx.Buffer, base-1*sgemmMatBytes)
			c := asFloat32(ctx.Buffer, base-0*sgemmMatBytes)
			k.SGEMM(sgemmDim, 1.0, a, b, 0.0, c)

			for line := 0; line < sgemmMatBytes; line += sgemmCacheLine {
				simd.CLFlushLine(ctx.Buffer, base+line)
			}
			simd.SFence()
		})
	}

	getAllUp(ctx, ops, zeroes)
}

// asFloat32 reinterprets one sgemmMatBytes-sized window of buf starting
// at off as a 64x64 row-major float32 matrix.
func asFloat32(buf []byte, off int) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&buf[off])), sgemmDim*sgemmDim)
}
