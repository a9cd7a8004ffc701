package rowindex

import (
	"bufio"
	"os"

	"github.com/nycopendata/dobpermits/internal/tokenize"
)

// scanOffsets walks csv from the start, recording the byte position right
// after every newline encountered outside quotes — one entry per logical
// row start, beginning with offset 0. It shares tokenize.ToggleQuote with
// the per-row field splitter so the two can never disagree about what
// "inside quotes" means.
//
// If the file ends with a newline, the scan records one phantom row start
// at EOF; that trailing entry is dropped before returning, since it does
// not begin a row.
func scanOffsets(csv *os.File) ([]uint64, uint64, error) {
	if _, err := csv.Seek(0, 0); err != nil {
		return nil, 0, err
	}

	r := bufio.NewReaderSize(csv, 1<<20)
	offsets := []uint64{0}
	inQuotes := false
	var pos uint64

	for {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		pos++

		inQuotes = tokenize.ToggleQuote(b, inQuotes)
		if b == '\n' && !inQuotes {
			offsets = append(offsets, pos)
		}
	}

	info, err := csv.Stat()
	if err != nil {
		return nil, 0, err
	}
	size := uint64(info.Size())

	if len(offsets) > 0 && offsets[len(offsets)-1] == size {
		offsets = offsets[:len(offsets)-1]
	}

	return offsets, size, nil
}
