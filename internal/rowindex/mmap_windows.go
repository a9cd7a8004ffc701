//go:build windows

package rowindex

import (
	"io"
	"os"
)

// mmapFile on Windows reads the sidecar entirely into an owned buffer
// instead of creating a real file mapping. The design notes explicitly
// sanction this for small (sub few-GB) sidecars — a row-offset index is
// 8 bytes per row, so even a hundred-million-row CSV maps to well under
// a gigabyte of sidecar.
func mmapFile(f *os.File, size int) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// unmapFile is a no-op on Windows: mmapFile returned an owned buffer, not
// a real mapping, so there is nothing to release beyond normal GC.
func unmapFile(data []byte) error {
	return nil
}
