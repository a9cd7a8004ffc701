// Package csvfile implements the Indexed File: it owns the CSV read
// handle and the mapped row-offset index, and drives full-scan predicate
// evaluation over the file's rows (the Query Runner).
package csvfile

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nycopendata/dobpermits/internal/permit"
	"github.com/nycopendata/dobpermits/internal/predicate"
	"github.com/nycopendata/dobpermits/internal/rowindex"
)

// ErrOutOfRange is returned by ReadRow for an index >= RowCount().
var ErrOutOfRange = fmt.Errorf("csvfile: row index out of range")

// File is the Indexed File: a CSV read handle plus its validated,
// memory-mapped row-offset index. Queries on a single File must be
// serialized by the caller — the CSV handle's seek position is shared
// mutable state.
type File struct {
	csv   *os.File
	index *rowindex.Index

	// Logger receives one line per row that matches a predicate but fails
	// to parse into a permit.Record; such rows are skipped, not surfaced
	// as a query error. Defaults to stderr; set to log.New(io.Discard, ...)
	// to silence it entirely.
	Logger *log.Logger

	readBuf []byte // reused by ReadRow across calls
}

// Open opens path's CSV, ensuring a valid mapped row-offset index exists
// (building it if the sidecar is missing, stale, or corrupt).
func Open(path string) (*File, error) {
	csv, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rowindex.ErrCSVOpenFailed, err)
	}

	idx, err := rowindex.Open(csv)
	if err != nil {
		csv.Close()
		return nil, err
	}

	return &File{
		csv:    csv,
		index:  idx,
		Logger: log.New(os.Stderr, "", log.LstdFlags),
	}, nil
}

// RowCount is the number of logical rows in the CSV.
func (f *File) RowCount() uint64 {
	return f.index.RowCount()
}

// ReadRow returns the bytes of logical row i, with any trailing "\n" (and
// a "\r" immediately preceding it) stripped. The returned slice is only
// valid until the next call to ReadRow on this File.
func (f *File) ReadRow(i uint64) ([]byte, error) {
	if i >= f.index.RowCount() {
		return nil, ErrOutOfRange
	}

	start := f.index.Offset(i)
	var end uint64
	if i+1 < f.index.RowCount() {
		end = f.index.Offset(i + 1)
	} else {
		info, err := f.csv.Stat()
		if err != nil {
			return nil, err
		}
		end = uint64(info.Size())
	}

	length := int(end - start)
	if cap(f.readBuf) < length {
		f.readBuf = make([]byte, length)
	}
	f.readBuf = f.readBuf[:length]

	if _, err := f.csv.Seek(int64(start), io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(f.csv, f.readBuf); err != nil {
		return nil, err
	}

	row := f.readBuf
	if n := len(row); n > 0 && row[n-1] == '\n' {
		row = row[:n-1]
		if n := len(row); n > 0 && row[n-1] == '\r' {
			row = row[:n-1]
		}
	}
	return row, nil
}

// RunQuery performs one full scan, in ascending row-index order,
// evaluating p against every row and materializing matches into
// permit.Record via permit.ParseRow. A row that matches but fails to
// parse is logged and skipped rather than aborting the scan.
func (f *File) RunQuery(p predicate.Node) ([]permit.Record, error) {
	var results []permit.Record

	for i := uint64(0); i < f.index.RowCount(); i++ {
		row, err := f.ReadRow(i)
		if err != nil {
			return nil, err
		}
		if !p.Evaluate(row) {
			continue
		}

		rec, err := permit.ParseRow(row)
		if err != nil {
			if f.Logger != nil {
				f.Logger.Printf("csvfile: skipping row %d: %v", i, err)
			}
			continue
		}
		results = append(results, rec)
	}

	return results, nil
}

// Close unmaps the sidecar and closes the CSV handle.
func (f *File) Close() error {
	idxErr := f.index.Close()
	csvErr := f.csv.Close()
	if idxErr != nil {
		return idxErr
	}
	return csvErr
}
