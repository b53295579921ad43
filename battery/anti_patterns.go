package battery

import "github.com/dramforge/dramdiag/kernel"

var antiPatternSeeds = [...]byte{
	0x00, 0xFF, 0x0F, 0xF0, 0x55, 0xAA, 0x33, 0xCC,
	0x11, 0xEE, 0x22, 0xDD, 0x44, 0xBB, 0x66, 0x99,
	0x77, 0x88, 0x01, 0xFE, 0x02, 0xFD, 0x04, 0xFB,
	0x08, 0xF7, 0x10, 0xEF, 0x20, 0xDF, 0x40, 0xBF,
	0x80, 0x7F,
}

// AntiPatterns runs 34 byte patterns and their bitwise complements
// through both ascending and descending sweeps, a broader spread of data
// values than BasicTests' six to surface pattern-dependent faults.
func AntiPatterns[W any](ctx kernel.RunContext, ops Ops[W]) {
	for _, b := range antiPatternSeeds {
		pattern := ops.Broadcast(b)
		antiPattern := ops.Not(pattern)

		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)
		setAllUp(ctx, ops, antiPattern)
		getAllUp(ctx, ops, antiPattern)

		setAllDown(ctx, ops, pattern)
		getAllDown(ctx, ops, pattern)
		setAllDown(ctx, ops, antiPattern)
		getAllDown(ctx, ops, antiPattern)
	}
}
