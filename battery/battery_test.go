package battery

import (
	"testing"
	"unsafe"

	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
)

// alignedBuffer returns a size-byte slice whose start address is a
// multiple of 64 — the widest SIMD word width in play (simd.Word64) —
// so these tests exercise the real VMOVDQA/VMOVNTDQ-based amd64 path
// instead of silently only ever running the !amd64 scalar fallback,
// which tolerates any alignment.
func alignedBuffer(size int) []byte {
	const align = 64
	raw := make([]byte, size+align)
	off := (-uintptr(unsafe.Pointer(&raw[0]))) & (align - 1)
	return raw[off : off+uintptr(size) : off+uintptr(size)]
}

func newTestContext(t *testing.T, size, workers int) kernel.RunContext {
	t.Helper()
	return kernel.RunContext{
		Buffer:  alignedBuffer(size),
		Workers: workers,
		Errors:  kernel.NewErrorCounter(),
	}
}

func assertClean(t *testing.T, ctx kernel.RunContext) {
	t.Helper()
	if got := ctx.Errors.Total(); got != 0 {
		t.Fatalf("a fault-free buffer must report zero errors, got %d", got)
	}
}

func TestBasicTestsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	BasicTests(ctx, Ops32)
	assertClean(t, ctx)
}

func TestMarchFaultFree(t *testing.T) {
	ctx := newTestContext(t, 512, 2)
	ctx.Errors.Output = discardWriter{}
	March(ctx, Ops64)
	assertClean(t, ctx)
}

func TestRandomInversionsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	RandomInversions(ctx, Ops32, rng.New())
	assertClean(t, ctx)
}

func TestMovingInversionsVariantsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 2048, 4)
	ctx.Errors.Output = discardWriter{}
	MovingInversionsLeft64(ctx, Ops32)
	MovingInversionsRight32(ctx, Ops32)
	MovingInversionsLeft16(ctx, Ops32)
	MovingInversionsRight8(ctx, Ops32)
	MovingInversionsLeft4(ctx, Ops32)
	assertClean(t, ctx)
}

func TestMovingSaturationsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	MovingSaturationsRight16(ctx, Ops32)
	MovingSaturationsLeft8(ctx, Ops32)
	assertClean(t, ctx)
}

func TestAddressingFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	Addressing(ctx, Ops32)
	assertClean(t, ctx)
}

func TestWalkingFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	Walking1(ctx, Ops64)
	Walking0(ctx, Ops64)
	assertClean(t, ctx)
}

func TestCheckerboardFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	Checkerboard(ctx, Ops32)
	assertClean(t, ctx)
}

func TestAddressLineTestFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	AddressLineTest(ctx, Ops64)
	assertClean(t, ctx)
}

func TestAntiPatternsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	AntiPatterns(ctx, Ops32)
	assertClean(t, ctx)
}

func TestInverseDataPatternsFaultFree(t *testing.T) {
	ctx := newTestContext(t, 1024, 4)
	ctx.Errors.Output = discardWriter{}
	InverseDataPatterns(ctx, Ops64)
	assertClean(t, ctx)
}

func TestSGEMMSkipsWithoutBLAS(t *testing.T) {
	// blas.Load will almost certainly fail to find OpenBLAS in a test
	// sandbox; SGEMM must treat that as a clean no-op, not a panic.
	ctx := newTestContext(t, 4096, 2)
	ctx.Errors.Output = discardWriter{}
	SGEMM(ctx, Ops32)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
