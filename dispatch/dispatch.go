// Package dispatch binds the tier a host probe reports to the matching
// set of battery procedures, replacing the original's avx2_tests_init /
// avx512_tests_init pair plus hand-picked call sites in main() with a
// single lookup table keyed by test name.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/dramforge/dramdiag/battery"
	"github.com/dramforge/dramdiag/hostprobe"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
)

// ErrTierUnsupported is returned by For when asked to dispatch on a tier
// with no battery instantiation — currently hostprobe.TierSSE, since the
// engine only ships AVX2 and AVX512 kernels (spec.md section 5 Non-goals).
var ErrTierUnsupported = errors.New("dispatch: no battery available for this instruction set tier")

// Test is one runnable battery procedure bound to a concrete SIMD tier.
type Test func(ctx kernel.RunContext, src *rng.Source) error

// Names is the battery's canonical run order, matching spec.md section
// 5.5's listing.
var Names = []string{
	"basic_tests",
	"march",
	"random_inversions",
	"moving_inversions_left_64",
	"moving_inversions_right_32",
	"moving_inversions_left_16",
	"moving_inversions_right_8",
	"moving_inversions_left_4",
	"moving_saturations_right_16",
	"moving_saturations_left_8",
	"addressing",
	"walking_1",
	"walking_0",
	"checkerboard",
	"address_line_test",
	"anti_patterns",
	"inverse_data_patterns",
	"sgemm",
}

// For returns the named-test table for tier, keyed by the names in Names
// (the map itself has no order; Run walks Names for that), or
// ErrTierUnsupported for a tier the engine can't drive.
func For(tier hostprobe.Tier) (map[string]Test, error) {
	switch tier {
	case hostprobe.TierAVX2:
		return tableFor(battery.Ops32), nil
	case hostprobe.TierAVX512:
		return tableFor(battery.Ops64), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrTierUnsupported, tier)
	}
}

func tableFor[W any](ops battery.Ops[W]) map[string]Test {
	wrap := func(f func(kernel.RunContext, battery.Ops[W])) Test {
		return func(ctx kernel.RunContext, _ *rng.Source) error {
			f(ctx, ops)
			return nil
		}
	}
	return map[string]Test{
		"basic_tests":                 wrap(battery.BasicTests[W]),
		"march":                       wrap(battery.March[W]),
		"moving_inversions_left_64":   wrap(battery.MovingInversionsLeft64[W]),
		"moving_inversions_right_32":  wrap(battery.MovingInversionsRight32[W]),
		"moving_inversions_left_16":   wrap(battery.MovingInversionsLeft16[W]),
		"moving_inversions_right_8":   wrap(battery.MovingInversionsRight8[W]),
		"moving_inversions_left_4":    wrap(battery.MovingInversionsLeft4[W]),
		"moving_saturations_right_16": wrap(battery.MovingSaturationsRight16[W]),
		"moving_saturations_left_8":   wrap(battery.MovingSaturationsLeft8[W]),
		"addressing":                  wrap(battery.Addressing[W]),
		"walking_1":                   wrap(battery.Walking1[W]),
		"walking_0":                   wrap(battery.Walking0[W]),
		"checkerboard":                wrap(battery.Checkerboard[W]),
		"address_line_test":           wrap(battery.AddressLineTest[W]),
		"anti_patterns":               wrap(battery.AntiPatterns[W]),
		"inverse_data_patterns":       wrap(battery.InverseDataPatterns[W]),
		"sgemm":                       wrap(battery.SGEMM[W]),
		"random_inversions": func(ctx kernel.RunContext, src *rng.Source) error {
			battery.RandomInversions(ctx, ops, src)
			return nil
		},
	}
}

// Run executes every named test in Names in order against ctx, stopping
// at the first error (none of the current tests return one; the error
// path exists for future tests and for console-driven cancellation via
// context-aware bodies).
func Run(tier hostprobe.Tier, ctx kernel.RunContext, src *rng.Source) error {
	table, err := For(tier)
	if err != nil {
		return err
	}
	for _, name := range Names {
		test, ok := table[name]
		if !ok {
			continue
		}
		if err := test(ctx, src); err != nil {
			return fmt.Errorf("dispatch: %s: %w", name, err)
		}
	}
	return nil
}
