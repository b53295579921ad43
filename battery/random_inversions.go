package battery

import (
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
)

// RandomInversions writes 16 independently drawn random words and their
// bitwise complements across the whole buffer, verifying each before
// moving to the next, to shake out pattern-sensitive faults a fixed
// pattern battery would miss.
func RandomInversions[W any](ctx kernel.RunContext, ops Ops[W], src *rng.Source) {
	for i := 0; i < 16; i++ {
		pattern := ops.Rand(src)
		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		notPattern := ops.Not(pattern)
		setAllUp(ctx, ops, notPattern)
		getAllUp(ctx, ops, notPattern)
	}
}
