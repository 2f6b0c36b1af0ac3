package golearn

import (
	"testing"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

func TestToDenseInstances(t *testing.T) {
	f := bdf.NewFrame(bdf.OutputSchema())
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, bdf.ColTestTime, float64(i))
		_ = f.SetCell(i, bdf.ColUnixTime, 1717236000.0+float64(i))
		_ = f.SetCell(i, bdf.ColCurrent, 0.5)
		_ = f.SetCell(i, bdf.ColVoltage, 3.7)
		_ = f.SetCell(i, bdf.ColCycle, int64(1))
		_ = f.SetCell(i, bdf.ColStep, int64(2))
		_ = f.SetCell(i, bdf.ColCapacity, 0.01*float64(i))
	}

	inst, err := ToDenseInstances(f)
	if err != nil {
		t.Fatal(err)
	}
	ncols, nrows := inst.Size()
	if nrows != 4 {
		t.Fatalf("got %d rows, want 4", nrows)
	}
	if ncols != len(bdf.OutputSchema().Columns) {
		t.Fatalf("got %d attributes, want %d", ncols, len(bdf.OutputSchema().Columns))
	}
	names := make(map[string]bool)
	for _, a := range inst.AllAttributes() {
		names[a.GetName()] = true
	}
	if !names[bdf.ColVoltage] {
		t.Fatalf("voltage attribute missing: %v", names)
	}
}
