//go:build !linux

package main

// allocateBuffer falls back to a plain heap allocation on non-Linux
// hosts, where Mlock/anonymous Mmap semantics aren't uniformly available
// through golang.org/x/sys/unix.
func allocateBuffer(size int) ([]byte, func(), error) {
	return make([]byte, size), func() {}, nil
}
