package csvfile

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nycopendata/dobpermits/internal/catalog"
	"github.com/nycopendata/dobpermits/internal/predicate"
)

func writeCSV(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openFile(t *testing.T, path string) *File {
	t.Helper()
	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Logger = log.New(io.Discard, "", 0)
	t.Cleanup(func() { f.Close() })
	return f
}

// scenarioCatalog mirrors the spec's 4-column end-to-end fixture: id
// (Numeric, 0), borough (Numeric, 2), status (String, 16), residential
// (Boolean, 60).
func scenarioCatalog() *catalog.Catalog {
	return catalog.FromEntries([]catalog.Entry{
		{Name: "id", Index: 0, Category: catalog.Numeric},
		{Name: "borough", Index: 2, Category: catalog.Numeric},
		{Name: "status", Index: 16, Category: catalog.String},
		{Name: "residential", Index: 60, Category: catalog.Boolean},
	})
}

type fixtureRow struct {
	id          int
	borough     int
	status      string
	residential bool
}

var fixture = []fixtureRow{
	{1000, 0, "ISSUED", true},
	{1001, 1, "PENDING", false},
	{1002, 2, "ISSUED", true},
	{1003, 1, "ISSUED", false},
	{1004, 3, "APPROVED", true},
	{1005, 2, "PENDING", false},
}

func fixtureCSV() string {
	var out string
	for _, r := range fixture {
		fields := make([]string, 61)
		for i := range fields {
			fields[i] = ""
		}
		fields[0] = strconv.Itoa(r.id)
		fields[2] = strconv.Itoa(r.borough)
		fields[16] = `"` + r.status + `"`
		if r.residential {
			fields[60] = "1"
		} else {
			fields[60] = "0"
		}
		row := fields[0]
		for _, f := range fields[1:] {
			row += "," + f
		}
		out += row + "\n"
	}
	return out
}

func TestRunQueryAndStatusBorough(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, fixtureCSV())
	f := openFile(t, path)

	cat := scenarioCatalog()
	statusEq, err := predicate.NewMatch(cat, "status", predicate.String("ISSUED"))
	if err != nil {
		t.Fatal(err)
	}
	boroughEq, err := predicate.NewMatch(cat, "borough", predicate.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	p := predicate.NewAnd(statusEq, boroughEq)

	recs, err := f.RunQuery(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].JobNumber != 1003 {
		t.Errorf("JobNumber = %d, want 1003", recs[0].JobNumber)
	}
}

func TestRunQueryOrBoroughs(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, fixtureCSV())
	f := openFile(t, path)

	cat := scenarioCatalog()
	b0, err := predicate.NewMatch(cat, "borough", predicate.Int(0))
	if err != nil {
		t.Fatal(err)
	}
	b3, err := predicate.NewMatch(cat, "borough", predicate.Int(3))
	if err != nil {
		t.Fatal(err)
	}
	p := predicate.NewOr(b0, b3)

	recs, err := f.RunQuery(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].JobNumber != 1000 || recs[1].JobNumber != 1004 {
		t.Errorf("got job numbers %d, %d; want 1000, 1004", recs[0].JobNumber, recs[1].JobNumber)
	}
}

func TestRunQueryNotResidential(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, fixtureCSV())
	f := openFile(t, path)

	cat := scenarioCatalog()
	residential, err := predicate.NewMatch(cat, "residential", predicate.Bool(true))
	if err != nil {
		t.Fatal(err)
	}
	p := predicate.NewNot(residential)

	recs, err := f.RunQuery(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
}

func TestRunQueryRangeID(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, fixtureCSV())
	f := openFile(t, path)

	cat := scenarioCatalog()
	p, err := predicate.NewRange(cat, "id", predicate.Int(1001), predicate.Int(1003))
	if err != nil {
		t.Fatal(err)
	}

	recs, err := f.RunQuery(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
}

func TestReadRowBoundaries(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "a,b\nc,d\ne,f\n")
	f := openFile(t, path)

	first, err := f.ReadRow(0)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != "a,b" {
		t.Errorf("ReadRow(0) = %q, want a,b", first)
	}

	last, err := f.ReadRow(f.RowCount() - 1)
	if err != nil {
		t.Fatal(err)
	}
	if string(last) != "e,f" {
		t.Errorf("ReadRow(last) = %q, want e,f", last)
	}
}

func TestReadRowOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "a,b\n")
	f := openFile(t, path)

	if _, err := f.ReadRow(f.RowCount()); err != ErrOutOfRange {
		t.Fatalf("ReadRow(out of range) error = %v, want ErrOutOfRange", err)
	}
}

func TestReadRowNoTrailingNewlineOnLastRow(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "a,b\nc,d")
	f := openFile(t, path)

	last, err := f.ReadRow(1)
	if err != nil {
		t.Fatal(err)
	}
	if string(last) != "c,d" {
		t.Errorf("ReadRow(1) = %q, want c,d", last)
	}
}

func TestReadRowStableAcrossRepeatedCalls(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "a,b\nc,d\ne,f\n")
	f := openFile(t, path)

	first, err := f.ReadRow(0)
	if err != nil {
		t.Fatal(err)
	}
	firstCopy := string(first)

	if _, err := f.ReadRow(1); err != nil {
		t.Fatal(err)
	}

	again, err := f.ReadRow(0)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != firstCopy {
		t.Errorf("ReadRow(0) second call = %q, want %q", again, firstCopy)
	}
}

func TestRoundTripIdenticalContentProducesIdenticalRows(t *testing.T) {
	content := fixtureCSV()
	dir1, dir2 := t.TempDir(), t.TempDir()
	path1 := writeCSV(t, dir1, content)
	path2 := writeCSV(t, dir2, content)

	f1 := openFile(t, path1)
	f2 := openFile(t, path2)

	if f1.RowCount() != f2.RowCount() {
		t.Fatalf("row counts differ: %d vs %d", f1.RowCount(), f2.RowCount())
	}
	for i := uint64(0); i < f1.RowCount(); i++ {
		r1, err := f1.ReadRow(i)
		if err != nil {
			t.Fatal(err)
		}
		want := string(r1)
		r2, err := f2.ReadRow(i)
		if err != nil {
			t.Fatal(err)
		}
		if string(r2) != want {
			t.Fatalf("row %d differs between identical files: %q vs %q", i, want, r2)
		}
	}
}

func TestRunQueryShortRowStillMatchesAndParses(t *testing.T) {
	dir := t.TempDir()
	// A row far shorter than the full column set still matches on its
	// present columns and parses into a record with zero-valued trailing
	// fields, rather than aborting the scan. Fixture row 1000 matches too,
	// after the short row (row 0).
	path := writeCSV(t, dir, "1000,9,0\n"+fixtureCSV())
	f := openFile(t, path)

	cat := scenarioCatalog()
	p, err := predicate.NewMatch(cat, "id", predicate.Int(1000))
	if err != nil {
		t.Fatal(err)
	}

	recs, err := f.RunQuery(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].JobNumber != 1000 {
		t.Errorf("JobNumber = %d, want 1000", recs[0].JobNumber)
	}
}
