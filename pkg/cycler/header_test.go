package cycler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLocateHeaderVariablePreamble(t *testing.T) {
	p := writeFile(t, "a.txt",
		"Arbin export, channel 4\n"+
			"some free text\n"+
			"more metadata\n"+
			"Rec# Cyc#\tStep\tTest(Sec)\tDPt-Time\tAmps\tVolts\tState\tAmp-hr\n"+
			"1\t0\t1\t0\t2024-06-01 12:00:00\t0.5\t3.7\tD\t0\n")
	hdr, err := LocateHeader(p)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Line != 3 {
		t.Fatalf("got header line %d, want 3", hdr.Line)
	}
	if len(hdr.Columns) != 9 {
		t.Fatalf("got %d columns, want 9: %v", len(hdr.Columns), hdr.Columns)
	}
	if hdr.Columns[0] != "Rec#" || hdr.Columns[4] != "DPt-Time" {
		t.Fatalf("column order not preserved: %v", hdr.Columns)
	}
}

func TestLocateHeaderFirstMatchWins(t *testing.T) {
	// two qualifying lines; the scan must take the first
	p := writeFile(t, "a.txt",
		"Rec#\tCyc#\tState\tDPt-Time\n"+
			"Rec#\tCyc#\tState\tDPt-Time\textra\n")
	hdr, err := LocateHeader(p)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Line != 0 {
		t.Fatalf("got header line %d, want 0", hdr.Line)
	}
}

func TestLocateHeaderSchemaNotFound(t *testing.T) {
	p := writeFile(t, "a.txt",
		"just some text\n"+
			"Rec#\tCyc#\tState\n"+ // closest line: missing DPt-Time only
			"1\t2\t3\n")
	_, err := LocateHeader(p)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if len(se.Missing) != 1 || se.Missing[0] != "DPt-Time" {
		t.Fatalf("got missing %v, want [DPt-Time]", se.Missing)
	}
}

func TestLocateHeaderEmptyFile(t *testing.T) {
	p := writeFile(t, "a.txt", "")
	_, err := LocateHeader(p)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SchemaError", err)
	}
	if len(se.Missing) != len(RequiredTokens) {
		t.Fatalf("got missing %v, want all required tokens", se.Missing)
	}
}
