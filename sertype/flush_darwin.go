//go:build darwin

package sertype

import "golang.org/x/sys/unix"

// msync flushes data's pages to the backing shared-memory segment.
//
// Darwin's msync requires the address passed in to match the original
// mmap address, so unlike Linux we cannot safely sync an arbitrary
// sub-slice of a larger mapping; callers are expected to hand Chunk the
// exact region returned by its mmap/shm_open call.
func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}
