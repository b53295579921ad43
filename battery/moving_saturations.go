package battery

import (
	"encoding/binary"

	"github.com/dramforge/dramdiag/kernel"
)

// shiftLane16 shifts every 2-byte lane of data by i bits, left when left
// is set and right otherwise, element-wise, the epi16 analogue of
// shiftLane's epi64 shift.
func shiftLane16(data []byte, left bool, i uint) {
	for lane := 0; lane+2 <= len(data); lane += 2 {
		v := binary.LittleEndian.Uint16(data[lane : lane+2])
		if left {
			v <<= i
		} else {
			v >>= i
		}
		binary.LittleEndian.PutUint16(data[lane:lane+2], v)
	}
}

// movingSaturationTemplate drives iters passes of: shift the 16-bit-lane
// seed by i (left or right), write+verify it, write+verify all-zero,
// write+verify the pattern again, write+verify all-one — the saturation
// round-trip both moving_saturations_* variants share, differing only in
// seed, shift direction and iteration count.
func movingSaturationTemplate[W any](ctx kernel.RunContext, ops Ops[W], iters int, left bool, seedUnit []byte) {
	base := tile(ops.Width, seedUnit)
	zeroes := ops.Broadcast(0x00)
	ones := ops.Broadcast(0xFF)

	for i := 0; i < iters; i++ {
		shifted := make([]byte, ops.Width)
		copy(shifted, base)
		shiftLane16(shifted, left, uint(i))
		pattern := ops.FromBytes(shifted)

		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		setAllUp(ctx, ops, zeroes)
		getAllUp(ctx, ops, zeroes)

		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		setAllUp(ctx, ops, ones)
		getAllUp(ctx, ops, ones)
	}
}

// MovingSaturationsRight16 walks a single high bit right through each
// 16-bit lane, seeded from 0x8000, across 16 iterations.
func MovingSaturationsRight16[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingSaturationTemplate(ctx, ops, 16, false, []byte{0x00, 0x80})
}

// MovingSaturationsLeft8 walks a single low bit left through each 16-bit
// lane, seeded from 0x0001, across 8 iterations.
func MovingSaturationsLeft8[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingSaturationTemplate(ctx, ops, 8, true, []byte{0x01, 0x00})
}
