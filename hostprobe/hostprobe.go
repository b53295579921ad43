// Package hostprobe reports the instruction-set tier, logical CPU count,
// RAM speed, and known-erratum status of the host the engine is running on.
package hostprobe

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Tier names the widest SIMD instruction set the dispatcher may target.
type Tier int

const (
	TierSSE Tier = iota
	TierAVX2
	TierAVX512
)

func (t Tier) String() string {
	switch t {
	case TierAVX512:
		return "avx512"
	case TierAVX2:
		return "avx2"
	default:
		return "sse"
	}
}

// InstructionSetTier reports the host's SIMD tier. A host is AVX512 iff it
// reports both the Foundation and Byte-and-Word extensions; otherwise AVX2
// iff it reports AVX2; otherwise SSE.
//
// cpuid.CPU is detected once at package init and cached; re-running Detect
// here guards against the transient all-zero read the original hand-rolled
// CPUID loop retried on (see DESIGN.md).
func InstructionSetTier() Tier {
	if cpuid.CPU.BrandName == "" {
		cpuid.Detect()
	}
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512BW):
		return TierAVX512
	case cpuid.CPU.Supports(cpuid.AVX2):
		return TierAVX2
	default:
		return TierSSE
	}
}

// HasKnownErratum reports whether CPUID identifies a processor
// family/model combination flagged as having memory-test reliability
// issues. Advisory only.
func HasKnownErratum() bool {
	return cpuid.CPU.Family == 6 && cpuid.CPU.Model == 0x97
}

// CPUCount returns the number of logical CPUs available to the process,
// never zero. It reconciles OS-level affinity with the Go scheduler's
// cooperative pool size (GOMAXPROCS): if the affinity mask permits more
// CPUs than the pool currently uses, the pool is grown to match.
func CPUCount() int {
	affinity := affinityCount()
	pool := runtime.GOMAXPROCS(0)
	if affinity > pool {
		runtime.GOMAXPROCS(affinity)
		return affinity
	}
	return pool
}
