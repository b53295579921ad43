//go:build linux

package main

import "golang.org/x/sys/unix"

// allocateBuffer maps an anonymous, page-aligned, locked buffer of size
// bytes — locked so the test pattern isn't silently paged out mid-run,
// the same guarantee the original's plain malloc'd buffer got implicitly
// from running as a privileged, non-swapped diagnostic tool.
func allocateBuffer(size int) ([]byte, func(), error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, nil, err
	}
	if err := unix.Mlock(buf); err != nil {
		// Locking is best-effort: an unprivileged process may be unable
		// to lock a large buffer (RLIMIT_MEMLOCK). Proceed unlocked
		// rather than fail the whole run.
		_ = err
	}
	release := func() {
		_ = unix.Munlock(buf)
		_ = unix.Munmap(buf)
	}
	return buf, release, nil
}
