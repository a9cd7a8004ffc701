//go:build !windows

package rowindex

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile memory-maps f's current contents read-only, shared. The
// returned slice is a zero-copy view into the kernel page cache; no
// pointer into it may outlive unmapFile.
func mmapFile(f *os.File, size int) ([]byte, error) {
	if size == 0 {
		// mmap of a zero-length region is not portable; the sidecar is
		// always at least headerSize bytes for any file worth mapping,
		// so this only triggers for a pathologically empty sidecar,
		// which the caller treats as invalid anyway.
		return nil, unix.EINVAL
	}
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
}

// unmapFile releases a mapping obtained from mmapFile.
func unmapFile(data []byte) error {
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
