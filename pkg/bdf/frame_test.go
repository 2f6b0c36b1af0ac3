package bdf

import "testing"

func TestFrameAppendAndAccess(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{
		{Name: "x", Type: KindFloat},
		{Name: "n", Type: KindInt},
		{Name: "s", Type: KindString},
	}}
	f := NewFrame(s)
	f.AppendNullRow()
	if err := f.SetCell(0, "x", 1.5); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCell(0, "n", int64(7)); err != nil {
		t.Fatal(err)
	}

	x, err := f.Float("x")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := x.Get(0); !ok || v != 1.5 {
		t.Fatalf("got %v/%v, want 1.5", v, ok)
	}
	ss, err := f.Str("s")
	if err != nil {
		t.Fatal(err)
	}
	if !ss.IsNull(0) {
		t.Fatal("unset string cell should be null")
	}
	if _, err := f.Float("nope"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestFrameAppendFrame(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{{Name: "x", Type: KindFloat}}}
	a := NewFrame(s)
	b := NewFrame(s)
	for i := 0; i < 3; i++ {
		a.AppendNullRow()
		_ = a.SetCell(i, "x", float64(i))
	}
	b.AppendNullRow()
	_ = b.SetCell(0, "x", 9.0)

	if err := a.AppendFrame(b); err != nil {
		t.Fatal(err)
	}
	if a.Rows() != 4 {
		t.Fatalf("got %d rows, want 4", a.Rows())
	}
	x, _ := a.Float("x")
	if v, _ := x.Get(3); v != 9.0 {
		t.Fatalf("got %v, want 9.0", v)
	}

	other := NewFrame(Schema{Columns: []ColumnSchema{{Name: "y", Type: KindFloat}}})
	if err := a.AppendFrame(other); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
