package battery

import (
	"encoding/binary"

	"github.com/dramforge/dramdiag/kernel"
)

// lane64Pattern tiles a single 64-bit value across every 8-byte lane of a
// Width-byte word.
func lane64Pattern[W any](ops Ops[W], v uint64) W {
	buf := make([]byte, ops.Width)
	for lane := 0; lane*8 < ops.Width; lane++ {
		binary.LittleEndian.PutUint64(buf[lane*8:], v)
	}
	return ops.FromBytes(buf)
}

// Walking1 walks a single set bit through every position of a 64-bit
// lane, writing and verifying both the pattern and its complement at
// each position — detects stuck-at-0 and bit-coupling faults.
func Walking1[W any](ctx kernel.RunContext, ops Ops[W]) {
	for bit := uint(0); bit < 64; bit++ {
		pattern := lane64Pattern(ops, uint64(1)<<bit)
		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		notPattern := ops.Not(pattern)
		setAllUp(ctx, ops, notPattern)
		getAllUp(ctx, ops, notPattern)
	}
}

// Walking0 walks a single clear bit through every position of a 64-bit
// lane — detects stuck-at-1 and bit-coupling faults.
func Walking0[W any](ctx kernel.RunContext, ops Ops[W]) {
	for bit := uint(0); bit < 64; bit++ {
		pattern := lane64Pattern(ops, ^(uint64(1) << bit))
		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		notPattern := ops.Not(pattern)
		setAllUp(ctx, ops, notPattern)
		getAllUp(ctx, ops, notPattern)
	}
}
