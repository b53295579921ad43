//go:build !linux

package hostprobe

import "runtime"

// affinityCount falls back to NumCPU on platforms without an affinity
// mask syscall the engine can read directly (mirrors hardware.c's own
// PLATFORM_WINDOWS branch, which uses GetSystemInfo instead of cpuset).
func affinityCount() int {
	return runtime.NumCPU()
}
