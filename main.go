// main.go - Main entry point for the dramdiag memory diagnostic engine

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/dramforge/dramdiag/console"
	"github.com/dramforge/dramdiag/dispatch"
	"github.com/dramforge/dramdiag/hostprobe"
	"github.com/dramforge/dramdiag/kernel"
	"github.com/dramforge/dramdiag/rng"
	"github.com/dramforge/dramdiag/visualize"
)

func boilerPlate() {
	fmt.Println("\033[38;2;255;20;147mdramdiag\033[0m — parallel SIMD DRAM diagnostic engine")
}

func main() {
	var (
		tierFlag      = flag.String("tier", "auto", "instruction set tier: auto, avx2, avx512")
		sizeFlag      = flag.String("size", "1G", "buffer size, accepts K/M/G suffixes")
		workersFlag   = flag.Int("workers", 0, "worker stripes (0 = autodetect from CPU affinity)")
		testFlag      = flag.String("test", "all", "battery test name, or \"all\"")
		consoleFlag   = flag.Bool("console", false, "start the interactive operator console instead of running the battery")
		snapshotFlag  = flag.String("snapshot", "", "write a heatmap PNG to this path after the run")
		featuresFlag  = flag.Bool("features", false, "print compiled features and exit")
	)
	flag.Parse()

	boilerPlate()

	if *featuresFlag {
		printFeatures()
		return
	}

	size, err := parseSize(*sizeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -size: %v\n", err)
		os.Exit(1)
	}

	tier, err := parseTier(*tierFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -tier: %v\n", err)
		os.Exit(1)
	}

	workers := *workersFlag
	if workers <= 0 {
		workers = hostprobe.CPUCount()
	}
	size = alignSize(size, workers)

	if hostprobe.HasKnownErratum() {
		fmt.Fprintln(os.Stderr, "warning: this CPU model is flagged for known memory-test reliability issues")
	}
	if mhz := hostprobe.RAMSpeedMHz(); mhz != 0 {
		fmt.Printf("RAM speed (SMBIOS): %d MHz\n", mhz)
	}

	buf, release, err := allocateBuffer(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to allocate %d byte test buffer: %v\n", size, err)
		os.Exit(1)
	}
	defer release()

	ctx := kernel.RunContext{
		Buffer:  buf,
		Workers: workers,
		Errors:  kernel.NewErrorCounter(),
	}

	var heatmapBackend visualize.Backend
	if *snapshotFlag != "" {
		backend, err := visualize.NewBackend(size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snapshot unavailable: %v\n", err)
		} else {
			heatmapBackend = backend
			ctx.Errors.Sink = backend.UpdateBlock
		}
	}

	fmt.Printf("tier=%s size=%d workers=%d\n", tier, size, workers)

	if *consoleFlag {
		repl := console.NewREPL(ctx, tier)
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := repl.Run(sigCtx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "console exited with error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	src := rng.New()
	if *testFlag == "all" {
		err = dispatch.Run(tier, ctx, src)
	} else {
		err = runOne(tier, ctx, src, *testFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "battery run failed: %v\n", err)
		os.Exit(1)
	}

	total := ctx.Errors.Total()
	fmt.Printf("run complete: %d errors detected\n", total)

	if heatmapBackend != nil {
		if err := writeSnapshot(heatmapBackend, *snapshotFlag); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
		}
	}

	if total > 0 {
		os.Exit(1)
	}
}

func runOne(tier hostprobe.Tier, ctx kernel.RunContext, src *rng.Source, name string) error {
	table, err := dispatch.For(tier)
	if err != nil {
		return err
	}
	test, ok := table[name]
	if !ok {
		return fmt.Errorf("no such test %q (see -test=all for the full battery)", name)
	}
	return test(ctx, src)
}

func writeSnapshot(backend visualize.Backend, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return visualize.SnapshotPNG(backend, 512, 512, f)
}

func parseTier(s string) (hostprobe.Tier, error) {
	switch strings.ToLower(s) {
	case "auto":
		return hostprobe.InstructionSetTier(), nil
	case "avx2":
		return hostprobe.TierAVX2, nil
	case "avx512":
		return hostprobe.TierAVX512, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", s)
	}
}

// parseSize accepts a plain byte count or one suffixed with K/M/G
// (base-1024).
func parseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	mult := 1
	switch suffix := s[len(s)-1]; suffix {
	case 'k', 'K':
		mult, s = 1<<10, s[:len(s)-1]
	case 'm', 'M':
		mult, s = 1<<20, s[:len(s)-1]
	case 'g', 'G':
		mult, s = 1<<30, s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}
	return n * mult, nil
}

// alignSize rounds size down to the nearest multiple of workers so
// RunContext.StripeSize never panics on a misconfigured command line.
func alignSize(size, workers int) int {
	if workers <= 0 {
		return size
	}
	return (size / workers) * workers
}
