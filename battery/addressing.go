package battery

import (
	"encoding/binary"

	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

// addressPattern builds the word written at offset idx: each 8-byte lane
// holds idx plus that lane's byte offset within the word, so a
// misdecoded address line shows up as a lane holding the wrong absolute
// offset instead of the one it was actually stored at.
func addressPattern[W any](ops Ops[W], idx int) W {
	buf := make([]byte, ops.Width)
	for lane := 0; lane*8 < ops.Width; lane++ {
		binary.LittleEndian.PutUint64(buf[lane*8:], uint64(idx+lane*8))
	}
	return ops.FromBytes(buf)
}

// Addressing encodes each slot's own address into its contents and
// verifies it round-trips, ascending and descending, 16 times — the
// canonical address-line / decoder fault detector. Each write sweep is
// store-fenced before its paired read sweep begins (spec.md section 3).
func Addressing[W any](ctx kernel.RunContext, ops Ops[W]) {
	stripeSize := ctx.StripeSize()
	for pass := 0; pass < 16; pass++ {
		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Store(ctx.Buffer, idx, addressPattern(ops, idx))
		})
		simd.SFence()
		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, addressPattern(ops, idx))
		})
		kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Store(ctx.Buffer, idx, addressPattern(ops, idx))
		})
		simd.SFence()
		kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, addressPattern(ops, idx))
		})
	}
}
