package battery

import "github.com/dramforge/dramdiag/kernel"

// InverseDataPatterns clears one byte, then one 16-bit word, then one
// 32-bit dword out of an all-ones 64-bit lane, writing and verifying each
// pattern and its complement — detects faults specific to a narrow run of
// clear bits within an otherwise saturated lane.
func InverseDataPatterns[W any](ctx kernel.RunContext, ops Ops[W]) {
	const allOnes = ^uint64(0)

	run := func(v uint64) {
		pattern := lane64Pattern(ops, v)
		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		inverse := ops.Not(pattern)
		setAllUp(ctx, ops, inverse)
		getAllUp(ctx, ops, inverse)
	}

	for byteIdx := uint(0); byteIdx < 8; byteIdx++ {
		run(allOnes ^ (uint64(0xFF) << (byteIdx * 8)))
	}
	for wordIdx := uint(0); wordIdx < 4; wordIdx++ {
		run(allOnes ^ (uint64(0xFFFF) << (wordIdx * 16)))
	}
	for dwordIdx := uint(0); dwordIdx < 2; dwordIdx++ {
		run(allOnes ^ (uint64(0xFFFFFFFF) << (dwordIdx * 32)))
	}
}
