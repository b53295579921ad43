package battery

import (
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

// March runs a MATS+-style march element twice: a descending write of
// zeroes, then four ascending/descending read-modify-write elements that
// alternate each slot through zero/one transitions, detecting coupling
// faults between adjacent cells. Each sweep below ends with a store
// fence before the next sweep's leading read, per spec.md section 3's
// write-phase/read-phase invariant.
func March[W any](ctx kernel.RunContext, ops Ops[W]) {
	zeroes := ops.Broadcast(0x00)
	ones := ops.Broadcast(0xFF)
	stripeSize := ctx.StripeSize()

	for pass := 0; pass < 2; pass++ {
		kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Store(ctx.Buffer, idx, zeroes)
		})
		simd.SFence()

		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, zeroes)
			ops.Store(ctx.Buffer, idx, ones)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, ones)
			ops.Store(ctx.Buffer, idx, zeroes)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, zeroes)
			ops.Store(ctx.Buffer, idx, ones)
		})
		simd.SFence()

		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, ones)
			ops.Store(ctx.Buffer, idx, zeroes)
			ops.Store(ctx.Buffer, idx, ones)
		})
		simd.SFence()

		kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, ones)
			ops.Store(ctx.Buffer, idx, zeroes)
			ops.Store(ctx.Buffer, idx, ones)
			ops.Store(ctx.Buffer, idx, zeroes)
		})
		simd.SFence()

		kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, zeroes)
			ops.Store(ctx.Buffer, idx, ones)
			ops.Store(ctx.Buffer, idx, zeroes)
		})
		simd.SFence()
	}
}
