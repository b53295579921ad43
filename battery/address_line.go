package battery

import (
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/simd"
)

// AddressLineTest exercises address decoding three ways: the raw address
// as data (ascending), the bitwise-inverted address as data (descending),
// and address XORed with itself shifted by 1/2/4/8/16 bits (ascending) —
// the last catches coupling between specific address line pairs that a
// plain address-as-data pass does not. Each write sweep is store-fenced
// before its paired read sweep begins (spec.md section 3).
func AddressLineTest[W any](ctx kernel.RunContext, ops Ops[W]) {
	stripeSize := ctx.StripeSize()

	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Store(ctx.Buffer, idx, lane64Pattern(ops, uint64(idx)))
	})
	simd.SFence()
	kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Equal(ctx.Errors, ctx.Buffer, idx, lane64Pattern(ops, uint64(idx)))
	})

	kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Store(ctx.Buffer, idx, lane64Pattern(ops, ^uint64(idx)))
	})
	simd.SFence()
	kernel.SweepDown(ctx, ops.Width, func(stripe, offset int) {
		idx := kernel.BlockIdx(stripe, offset, stripeSize)
		ops.Equal(ctx.Errors, ctx.Buffer, idx, lane64Pattern(ops, ^uint64(idx)))
	})

	for shift := uint(1); shift <= 16; shift <<= 1 {
		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			v := uint64(idx) ^ (uint64(idx) << shift)
			ops.Store(ctx.Buffer, idx, lane64Pattern(ops, v))
		})
		simd.SFence()
		kernel.SweepUp(ctx, ops.Width, func(stripe, offset int) {
			idx := kernel.BlockIdx(stripe, offset, stripeSize)
			v := uint64(idx) ^ (uint64(idx) << shift)
			ops.Equal(ctx.Errors, ctx.Buffer, idx, lane64Pattern(ops, v))
		})
	}
}
