package battery

import (
	"encoding/binary"

	"github.com/dramforge/dramdiag/kernel"
)

// ShiftKind selects which direction movingInversionsTemplate shifts its
// seed pattern through each 64-bit lane of the word (bits shifted out are
// dropped, not rotated back in), mirroring the
// original's two distinct shift intrinsics (_mm256_slli_epi64 /
// _mm256_srli_epi64) used across the five moving_inversions_* variants.
type ShiftKind int

const (
	ShiftLeft64 ShiftKind = iota
	ShiftRight64
)

// shiftLane shifts every 8-byte lane of data independently by i bits —
// element-wise, the way a SIMD epi64 shift never carries across lanes.
func shiftLane(data []byte, kind ShiftKind, i uint) {
	for lane := 0; lane+8 <= len(data); lane += 8 {
		v := binary.LittleEndian.Uint64(data[lane : lane+8])
		if kind == ShiftLeft64 {
			v <<= i
		} else {
			v >>= i
		}
		binary.LittleEndian.PutUint64(data[lane:lane+8], v)
	}
}

// tile repeats unit across a width-byte buffer, the byte-level equivalent
// of _mm256_set1_epiNN for whatever lane width unit represents.
func tile(width int, unit []byte) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = unit[i%len(unit)]
	}
	return out
}

// movingInversionsTemplate draws iters patterns by shifting the seed
// pattern's 64-bit lanes by 0..iters-1 bits, writing and verifying each
// pattern and its complement across the whole buffer — the template all
// five moving_inversions_* tests share in the original.
func movingInversionsTemplate[W any](ctx kernel.RunContext, ops Ops[W], iters int, kind ShiftKind, seedUnit []byte) {
	base := tile(ops.Width, seedUnit)
	for i := 0; i < iters; i++ {
		shifted := make([]byte, ops.Width)
		copy(shifted, base)
		shiftLane(shifted, kind, uint(i))
		pattern := ops.FromBytes(shifted)

		setAllUp(ctx, ops, pattern)
		getAllUp(ctx, ops, pattern)

		notPattern := ops.Not(pattern)
		setAllUp(ctx, ops, notPattern)
		getAllUp(ctx, ops, notPattern)
	}
}

// MovingInversionsLeft64 shifts a single bit left through each 64-bit lane.
func MovingInversionsLeft64[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingInversionsTemplate(ctx, ops, 64, ShiftLeft64, []byte{1, 0, 0, 0, 0, 0, 0, 0})
}

// MovingInversionsRight32 shifts a high bit right through each 64-bit
// lane, seeded from a 32-bit-wide 0x80000000 pattern per the original.
func MovingInversionsRight32[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingInversionsTemplate(ctx, ops, 32, ShiftRight64, []byte{0, 0, 0, 0x80})
}

// MovingInversionsLeft16 shifts a single bit left, seeded from a 16-bit
// 0x0001 pattern.
func MovingInversionsLeft16[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingInversionsTemplate(ctx, ops, 16, ShiftLeft64, []byte{1, 0})
}

// MovingInversionsRight8 shifts a high bit right, seeded from an 8-bit
// 0x80 pattern.
func MovingInversionsRight8[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingInversionsTemplate(ctx, ops, 8, ShiftRight64, []byte{0x80})
}

// MovingInversionsLeft4 shifts left four times, seeded from an 8-bit 0x11
// pattern.
func MovingInversionsLeft4[W any](ctx kernel.RunContext, ops Ops[W]) {
	movingInversionsTemplate(ctx, ops, 4, ShiftLeft64, []byte{0x11})
}
