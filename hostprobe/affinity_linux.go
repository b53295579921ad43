//go:build linux

package hostprobe

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// affinityCount reads the OS-level scheduling affinity mask for this
// process, mirroring the original's sched_getaffinity(2)/CPU_COUNT use.
func affinityCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	return set.Count()
}
