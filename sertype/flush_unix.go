//go:build linux || freebsd

package sertype

import "golang.org/x/sys/unix"

// msync flushes data's pages to the backing shared-memory segment.
func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}
