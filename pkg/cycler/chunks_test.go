package cycler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/battkit/bdfconvert/internal/fixtures"
	"github.com/battkit/bdfconvert/pkg/bdf"
)

func TestReadTableChunkedMatchesSingleBatch(t *testing.T) {
	p := writeExport(t, fixtures.Export{PreambleLines: 2, Rows: 25})
	hdr, err := LocateHeader(p)
	if err != nil {
		t.Fatal(err)
	}

	whole, err := ReadTable(p, hdr.Columns, hdr.Line+1)
	if err != nil {
		t.Fatal(err)
	}

	tmpParent := t.TempDir()
	chunked, err := ReadTableChunked(p, hdr.Columns, hdr.Line+1,
		ChunkOptions{ChunkSize: 10, TempDir: tmpParent})
	if err != nil {
		t.Fatal(err)
	}

	if chunked.Rows() != whole.Rows() {
		t.Fatalf("got %d rows, want %d", chunked.Rows(), whole.Rows())
	}
	for _, cs := range whole.Schema().Columns {
		switch cs.Type {
		case bdf.KindFloat:
			a, _ := whole.Float(cs.Name)
			b, err := chunked.Float(cs.Name)
			if err != nil {
				t.Fatalf("%s: %v", cs.Name, err)
			}
			for i := 0; i < whole.Rows(); i++ {
				av, aok := a.Get(i)
				bv, bok := b.Get(i)
				if av != bv || aok != bok {
					t.Fatalf("%s row %d: %v/%v vs %v/%v", cs.Name, i, av, aok, bv, bok)
				}
			}
		case bdf.KindInt:
			a, _ := whole.Int(cs.Name)
			b, err := chunked.Int(cs.Name)
			if err != nil {
				t.Fatalf("%s: %v", cs.Name, err)
			}
			for i := 0; i < whole.Rows(); i++ {
				av, aok := a.Get(i)
				bv, bok := b.Get(i)
				if av != bv || aok != bok {
					t.Fatalf("%s row %d: %v/%v vs %v/%v", cs.Name, i, av, aok, bv, bok)
				}
			}
		default:
			a, _ := whole.Str(cs.Name)
			b, err := chunked.Str(cs.Name)
			if err != nil {
				t.Fatalf("%s: %v", cs.Name, err)
			}
			for i := 0; i < whole.Rows(); i++ {
				av, aok := a.Get(i)
				bv, bok := b.Get(i)
				if av != bv || aok != bok {
					t.Fatalf("%s row %d: %q/%v vs %q/%v", cs.Name, i, av, aok, bv, bok)
				}
			}
		}
	}

	assertNoFragments(t, tmpParent)
}

func TestReadTableChunkedCleansUpOnError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gone.txt")
	tmpParent := t.TempDir()
	if _, err := ReadTableChunked(p, []string{"a"}, 0, ChunkOptions{TempDir: tmpParent}); err == nil {
		t.Fatal("expected error for missing file")
	}
	assertNoFragments(t, tmpParent)
}

func assertNoFragments(t *testing.T, parent string) {
	t.Helper()
	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("fragment directory leaked: %v", entries)
	}
}
