package parquetio_test

import (
	"path/filepath"
	"testing"

	"github.com/battkit/bdfconvert/pkg/bdf"
	"github.com/battkit/bdfconvert/pkg/io/parquetio"
)

func bdfFrame(t *testing.T, rows int) *bdf.Frame {
	t.Helper()
	f := bdf.NewFrame(bdf.OutputSchema())
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		cells := map[string]any{
			bdf.ColTestTime: float64(i),
			bdf.ColUnixTime: 1717236000.0 + float64(i),
			bdf.ColCurrent:  0.5,
			bdf.ColVoltage:  3.7,
			bdf.ColCycle:    int64(1 + i/10),
			bdf.ColStep:     int64(2),
			bdf.ColCapacity: 0.001 * float64(i),
		}
		for name, v := range cells {
			if err := f.SetCell(i, name, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return f
}

func TestRoundTripPreservesSchemaAndValues(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.bdf.parquet")
	want := bdfFrame(t, 12)
	if err := parquetio.WriteAll(p, want); err != nil {
		t.Fatal(err)
	}

	rd, err := parquetio.OpenReader(p)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	gotSchema := rd.Schema()
	wantSchema := bdf.OutputSchema()
	if len(gotSchema.Columns) != len(wantSchema.Columns) {
		t.Fatalf("got %d columns, want %d", len(gotSchema.Columns), len(wantSchema.Columns))
	}
	for i := range wantSchema.Columns {
		if gotSchema.Columns[i] != wantSchema.Columns[i] {
			t.Fatalf("column %d: got %+v, want %+v", i, gotSchema.Columns[i], wantSchema.Columns[i])
		}
	}

	got, err := rd.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if got.Rows() != want.Rows() {
		t.Fatalf("got %d rows, want %d", got.Rows(), want.Rows())
	}
	tt, err := got.Float(bdf.ColTestTime)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := tt.Get(11); !ok || v != 11 {
		t.Fatalf("got test time %v/%v, want 11", v, ok)
	}
	cyc, err := got.Int(bdf.ColCycle)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := cyc.Get(11); !ok || v != 2 {
		t.Fatalf("got cycle %v/%v, want 2", v, ok)
	}
}

func TestWriteAllOverwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.bdf.parquet")
	if err := parquetio.WriteAll(p, bdfFrame(t, 5)); err != nil {
		t.Fatal(err)
	}
	if err := parquetio.WriteAll(p, bdfFrame(t, 2)); err != nil {
		t.Fatal(err)
	}
	rd, err := parquetio.OpenReader(p)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	f, err := rd.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 {
		t.Fatalf("got %d rows, want 2 after overwrite", f.Rows())
	}
}
