package dispatch

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/dramforge/dramdiag/hostprobe"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
)

// alignedBuffer returns a size-byte slice 64-byte aligned, so a full
// dispatch run exercises the real amd64 SIMD path rather than only the
// portable fallback.
func alignedBuffer(size int) []byte {
	const align = 64
	raw := make([]byte, size+align)
	off := (-uintptr(unsafe.Pointer(&raw[0]))) & (align - 1)
	return raw[off : off+uintptr(size) : off+uintptr(size)]
}

func TestForUnsupportedTier(t *testing.T) {
	_, err := For(hostprobe.TierSSE)
	if !errors.Is(err, ErrTierUnsupported) {
		t.Fatalf("For(TierSSE) err = %v, want ErrTierUnsupported", err)
	}
}

func TestForTableHasEveryName(t *testing.T) {
	for _, tier := range []hostprobe.Tier{hostprobe.TierAVX2, hostprobe.TierAVX512} {
		table, err := For(tier)
		if err != nil {
			t.Fatalf("For(%s) error: %v", tier, err)
		}
		for _, name := range Names {
			if _, ok := table[name]; !ok {
				t.Errorf("For(%s) table missing %q", tier, name)
			}
		}
	}
}

func TestRunAllAVX2FaultFree(t *testing.T) {
	ctx := kernel.RunContext{
		Buffer:  alignedBuffer(4096),
		Workers: 2,
		Errors:  kernel.NewErrorCounter(),
	}
	ctx.Errors.Output = discardWriter{}
	if err := Run(hostprobe.TierAVX2, ctx, rng.New()); err != nil {
		t.Fatalf("Run(TierAVX2) error: %v", err)
	}
	if got := ctx.Errors.Total(); got != 0 {
		t.Fatalf("Run(TierAVX2) on a fault-free buffer reported %d errors, want 0", got)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
