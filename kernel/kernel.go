// Package kernel implements the parallel block-sweep kernel: it partitions
// a buffer into N equal stripes and drives ascending or descending sweeps
// of a caller-supplied body function across them, one goroutine per
// stripe, joined with a barrier at the end of the sweep — the fork-join
// shape spec.md section 5 calls for, built on golang.org/x/sync/errgroup
// the same way the engine's own coprocessor workers are each driven by one
// goroutine per CPU-mode worker (coprocessor_manager.go), generalized here
// from OS threads to a static one-goroutine-per-stripe partition.
package kernel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunContext is the immutable context threaded through every battery call,
// replacing the original's module-level CPUS/ERRORS globals per spec.md's
// Design Notes section 9 ("Globals"). The RNG is not part of it: tests that
// draw random patterns take an *rng.Source as a separate argument.
type RunContext struct {
	Buffer  []byte
	Workers int
	Errors  *ErrorCounter
}

// StripeSize returns the number of bytes owned by each of ctx.Workers
// stripes. Panics if the precondition S divisible by N is violated —
// spec.md section 7 treats a misconfigured buffer/worker count as
// undefined behavior the core may assert and abort on.
func (ctx RunContext) StripeSize() int {
	if ctx.Workers <= 0 {
		panic("kernel: Workers must be >= 1")
	}
	if len(ctx.Buffer)%ctx.Workers != 0 {
		panic(fmt.Sprintf("kernel: buffer size %d is not divisible by %d workers", len(ctx.Buffer), ctx.Workers))
	}
	return len(ctx.Buffer) / ctx.Workers
}

// BlockIdx is spec.md's BLOCK_IDX: the absolute byte offset of slot
// (stripe, offset) within the buffer.
func BlockIdx(stripe, offset, stripeSize int) int {
	return offset + stripe*stripeSize
}

// Body is invoked once per W-aligned slot in a stripe during a sweep.
type Body func(stripe, offset int)

// SweepUp visits every word-aligned slot ascending: stripes 0..N-1, and
// within each stripe, offsets 0, W, 2W, ... one goroutine per stripe,
// sequential within a stripe, joined before SweepUp returns.
func SweepUp(ctx RunContext, width int, body Body) {
	stripeSize := ctx.StripeSize()
	var g errgroup.Group
	for i := 0; i < ctx.Workers; i++ {
		stripe := i
		g.Go(func() error {
			for j := 0; j < stripeSize; j += width {
				body(stripe, j)
			}
			return nil
		})
	}
	_ = g.Wait() // body never returns an error; kept for the errgroup shape.
}

// SweepDown visits every word-aligned slot descending: stripes N-1..0,
// and within each stripe, offsets from the top down to 0.
func SweepDown(ctx RunContext, width int, body Body) {
	stripeSize := ctx.StripeSize()
	var g errgroup.Group
	for i := 0; i < ctx.Workers; i++ {
		stripe := i
		g.Go(func() error {
			for j := stripeSize - width; j >= 0; j -= width {
				body(stripe, j)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// WithContext returns an errgroup.Group bound to a context derived from
// parent, for a caller that wants cancellation; spec.md section 5 does not
// mandate mid-sweep interruption, so SweepUp/SweepDown above intentionally
// use the plain, context-free errgroup.Group. No caller in this module
// uses it at present.
func WithContext(parent context.Context) (*errgroup.Group, context.Context) {
	return errgroup.WithContext(parent)
}
