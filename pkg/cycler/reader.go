package cycler

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// sampleRows is how many data rows kind inference looks at.
const sampleRows = 100

var numRE = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// ReadTable loads the data rows of an export into a frame, one column
// per name, starting at line skip (the header index plus one). The data
// rows are tab-delimited; rows with too few fields leave the trailing
// columns null and rows with too many are truncated. Neither is an
// error: cycler exports are routinely ragged.
func ReadTable(path string, columns []string, skip int) (*bdf.Frame, error) {
	rs, err := openRows(path, skip)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	schema, buf, err := rs.inferSchema(columns)
	if err != nil {
		return nil, err
	}
	f := bdf.NewFrame(schema)
	for _, rec := range buf {
		rs.appendRecord(f, schema, rec)
	}
	for {
		rec, err := rs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rs.appendRecord(f, schema, rec)
	}
	return f, nil
}

// rowScanner yields tab-split data records from an export file.
type rowScanner struct {
	f  *os.File
	sc *bufio.Scanner

	shortRecords int
	longRecords  int
}

func openRows(path string, skip int) (*rowScanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for i := 0; i < skip; i++ {
		if !sc.Scan() {
			break
		}
	}
	return &rowScanner{f: f, sc: sc}, nil
}

func (r *rowScanner) Close() error { return r.f.Close() }

// Next returns the next record or io.EOF.
func (r *rowScanner) Next() ([]string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := strings.TrimRight(r.sc.Text(), "\r")
	return strings.Split(line, "\t"), nil
}

// inferSchema samples up to sampleRows records to type each column,
// returning the schema and the sampled records so they are not lost.
func (r *rowScanner) inferSchema(columns []string) (bdf.Schema, [][]string, error) {
	var buf [][]string
	for len(buf) < sampleRows {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return bdf.Schema{}, nil, err
		}
		buf = append(buf, rec)
	}

	schema := bdf.Schema{Columns: make([]bdf.ColumnSchema, len(columns))}
	for i, name := range columns {
		schema.Columns[i] = bdf.ColumnSchema{Name: name, Type: inferKind(buf, i)}
	}
	return schema, buf, nil
}

// inferKind types one column from the sample, preferring float over int
// when any value carries a fraction or exponent. Columns that never
// look numeric stay strings.
func inferKind(rows [][]string, col int) bdf.Kind {
	num, integer, str := 0, 0, 0
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		if numRE.MatchString(v) {
			num++
			if !strings.ContainsAny(v, ".eE") {
				integer++
			}
		} else {
			str++
		}
	}
	switch {
	case num > str && integer == num:
		return bdf.KindInt
	case num > str:
		return bdf.KindFloat
	default:
		return bdf.KindString
	}
}

func (r *rowScanner) appendRecord(f *bdf.Frame, schema bdf.Schema, rec []string) {
	f.AppendNullRow()
	row := f.Rows() - 1
	if len(rec) > len(schema.Columns) {
		r.longRecords++
	}
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			r.shortRecords++
			continue
		}
		val := strings.TrimSpace(rec[i])
		if val == "" {
			continue
		}
		switch cs.Type {
		case bdf.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case bdf.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
}

// Warnings summarizes ragged-row repairs seen while reading.
func (r *rowScanner) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
