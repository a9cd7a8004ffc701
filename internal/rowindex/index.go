package rowindex

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Index owns the memory-mapped sidecar for one CSV file: the validated
// header plus a read-only view of the packed offset array. It is the
// Row-Offset Index component from the design — building, persisting,
// validating, and mapping are all internal to Open/Close.
type Index struct {
	mapped []byte // full mapped region: header + offsets
	h      header
}

// Open ensures a valid sidecar exists for csv (rebuilding if missing,
// stale, or corrupt) and memory-maps it. csv's read position is not
// restored: a rebuild scans it to EOF. Callers reposition before reading
// rows.
func Open(csv *os.File) (*Index, error) {
	idxPath := csv.Name() + ".idx"

	info, err := csv.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVOpenFailed, err)
	}
	csvSize := uint64(info.Size())

	if idx, ok := tryLoad(idxPath, csvSize); ok {
		return idx, nil
	}

	offsets, size, err := scanOffsets(csv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVOpenFailed, err)
	}
	if err := writeSidecar(idxPath, offsets, size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}

	idx, ok := tryLoad(idxPath, csvSize)
	if !ok {
		return nil, fmt.Errorf("%w: sidecar invalid immediately after write", ErrIndexMapFailed)
	}
	return idx, nil
}

// tryLoad stats and memory-maps idxPath, returning ok=false (never an
// error) for anything that makes the sidecar invalid: missing file, a
// magic/version mismatch, a stale file_size, or a region too short to
// hold its declared row_count. All of these are silently recoverable by
// rebuilding — the caller is Open, which does exactly that.
func tryLoad(idxPath string, csvSize uint64) (*Index, bool) {
	f, err := os.Open(idxPath)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() < headerSize {
		return nil, false
	}

	mapped, err := mmapFile(f, int(info.Size()))
	if err != nil {
		return nil, false
	}

	h := decodeHeader(mapped)
	if !h.validFor(csvSize) {
		_ = unmapFile(mapped)
		return nil, false
	}
	if uint64(len(mapped)) < headerSize+h.rowCount*8 {
		_ = unmapFile(mapped)
		return nil, false
	}

	return &Index{mapped: mapped, h: h}, true
}

// writeSidecar writes the header and packed offset array to idxPath in a
// single pass. A failure partway through (disk full, permissions) leaves
// whatever bytes were flushed on disk; that is fine, because the next
// load's magic/version/size/length checks treat any non-conforming
// sidecar as invalid and rebuild rather than trusting a partial write.
func writeSidecar(idxPath string, offsets []uint64, csvSize uint64) error {
	f, err := os.Create(idxPath)
	if err != nil {
		return err
	}
	defer f.Close()

	h := header{magic: magic, version: version, fileSize: csvSize, rowCount: uint64(len(offsets))}
	buf := make([]byte, headerSize+len(offsets)*8)
	h.encode(buf)
	for i, off := range offsets {
		binary.LittleEndian.PutUint64(buf[headerSize+i*8:], off)
	}

	_, err = f.Write(buf)
	return err
}

// RowCount is the number of logical rows the index describes.
func (idx *Index) RowCount() uint64 {
	return idx.h.rowCount
}

// Offset returns the byte offset of row i's first byte. The caller must
// have already checked i < RowCount().
func (idx *Index) Offset(i uint64) uint64 {
	base := headerSize + i*8
	return binary.LittleEndian.Uint64(idx.mapped[base : base+8])
}

// Close unmaps the sidecar. Safe to call once; the Index must not be used
// afterward.
func (idx *Index) Close() error {
	return unmapFile(idx.mapped)
}
