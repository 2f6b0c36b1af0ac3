// Package cycler reads battery-cycler export files: tab/space-delimited
// text with a variable-length metadata preamble ahead of the data
// header.
package cycler

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RequiredTokens are the header markers a valid export must carry: a
// record index, a cycle counter, a state field, and a timestamp.
var RequiredTokens = []string{"Rec#", "Cyc#", "State", "DPt-Time"}

// Header is the located column header of an export file.
type Header struct {
	// Line is the zero-based index of the header line.
	Line int
	// Columns are the header tokens in file order, duplicates kept.
	Columns []string
}

// SchemaError reports that no line of the file looked like a header.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema not found in %s: missing tokens %s",
		e.Path, strings.Join(e.Missing, ", "))
}

// LocateHeader scans the file for the first line whose tokens are a
// superset of RequiredTokens and returns its index and columns. The
// exports mix spaces and tabs between header fields, so each candidate
// line has literal spaces collapsed to tabs before splitting; the
// tokens themselves never contain spaces.
//
// If no line qualifies, the returned SchemaError names the required
// tokens the closest line was missing.
func LocateHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	bestMissing := append([]string(nil), RequiredTokens...)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		cols := splitHeaderLine(sc.Text())
		missing := missingTokens(cols)
		if len(missing) == 0 {
			return Header{Line: line, Columns: cols}, nil
		}
		if len(missing) < len(bestMissing) {
			bestMissing = missing
		}
		line++
	}
	if err := sc.Err(); err != nil {
		return Header{}, err
	}
	return Header{}, &SchemaError{Path: path, Missing: bestMissing}
}

func splitHeaderLine(line string) []string {
	collapsed := strings.ReplaceAll(line, " ", "\t")
	var cols []string
	for _, tok := range strings.Split(collapsed, "\t") {
		if tok != "" {
			cols = append(cols, tok)
		}
	}
	return cols
}

func missingTokens(cols []string) []string {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	var missing []string
	for _, want := range RequiredTokens {
		if _, ok := set[want]; !ok {
			missing = append(missing, want)
		}
	}
	return missing
}
