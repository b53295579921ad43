package battery

import (
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

// Checkerboard alternates 0xAA/0x55 by slot parity, verifies it, then
// inverts the assignment and verifies again — detects adjacent-cell
// coupling faults and pattern sensitivity the fixed broadcast patterns in
// BasicTests can miss. Each write sweep is store-fenced before its
// paired read sweep begins (spec.md section 3).
func Checkerboard[W any](ctx kernel.RunContext, ops Ops[W]) {
	pattern1 := ops.Broadcast(0xAA)
	pattern2 := ops.Broadcast(0x55)
	stripeSize := ctx.StripeSize()

	slotPattern := func(idx int, swap bool) W {
		odd := (idx/ops.Width)%2 != 0
		if swap {
			odd = !odd
		}
		if odd {
			return pattern1
		}
		return pattern2
	}

	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Store(ctx.Buffer, idx, slotPattern(idx, false))
	})
	simd.SFence()
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Equal(ctx.Errors, ctx.Buffer, idx, slotPattern(idx, false))
	})

	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Store(ctx.Buffer, idx, slotPattern(idx, true))
	})
	simd.SFence()
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Equal(ctx.Errors, ctx.Buffer, idx, slotPattern(idx, true))
	})
}
