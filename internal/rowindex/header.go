// Package rowindex builds, persists, validates, and memory-maps the
// row-offset index sidecar: a fixed header followed by a packed array of
// 64-bit little-endian byte offsets, one per logical CSV row.
package rowindex

import "encoding/binary"

// magic identifies the sidecar format: 0x4353564944583031, the exact
// constant the spec and its C++ reference mandate.
const magic uint64 = 0x4353564944583031

// version is bumped whenever the on-disk layout changes incompatibly.
const version uint64 = 1

// headerSize is the fixed byte size of the header: four uint64 fields.
const headerSize = 32

// header is the fixed-size sidecar header. Every field is little-endian
// on disk regardless of host byte order.
type header struct {
	magic    uint64
	version  uint64
	fileSize uint64
	rowCount uint64
}

// encode writes the header to the first headerSize bytes of buf.
func (h header) encode(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], h.magic)
	binary.LittleEndian.PutUint64(buf[8:16], h.version)
	binary.LittleEndian.PutUint64(buf[16:24], h.fileSize)
	binary.LittleEndian.PutUint64(buf[24:32], h.rowCount)
}

// decodeHeader reads a header from the first headerSize bytes of buf.
// The caller is responsible for checking buf is long enough.
func decodeHeader(buf []byte) header {
	return header{
		magic:    binary.LittleEndian.Uint64(buf[0:8]),
		version:  binary.LittleEndian.Uint64(buf[8:16]),
		fileSize: binary.LittleEndian.Uint64(buf[16:24]),
		rowCount: binary.LittleEndian.Uint64(buf[24:32]),
	}
}

// validFor reports whether h describes a sidecar that is current for a
// CSV file of size csvSize, per the data model's invariant: magic and
// version must match, and file_size must equal the CSV's current size.
func (h header) validFor(csvSize uint64) bool {
	return h.magic == magic && h.version == version && h.fileSize == csvSize
}
