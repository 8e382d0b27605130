//go:build windows

package sertype

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// msync flushes data's pages to the backing shared-memory segment using
// FlushViewOfFile, the Windows analogue of msync for a mapped view.
func msync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.FlushViewOfFile(addr, uintptr(len(data)))
}
