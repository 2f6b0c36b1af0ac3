package parquetio

import (
	"os"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// Reader reads a Parquet file back into frames.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[map[string]any]
	schema bdf.Schema
}

// OpenReader opens path and derives the bdf schema from the Parquet
// footer, preserving column order.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	schema := schemaFromFile(pf)
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Reader{
		file:   f,
		reader: parquet.NewGenericReader[map[string]any](f, pf.Schema()),
		schema: schema,
	}, nil
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() bdf.Schema { return r.schema }

// ReadAll loads every row into one frame.
func (r *Reader) ReadAll() (*bdf.Frame, error) {
	f := bdf.NewFrame(r.schema)
	buf := make([]map[string]any, 1024)
	for i := range buf {
		// The parquet reader reconstructs rows into the maps it is
		// given and panics on nil maps rather than allocating them.
		buf[i] = make(map[string]any)
	}
	for {
		n, err := r.reader.Read(buf)
		for i := 0; i < n; i++ {
			appendRow(f, buf[i])
		}
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func schemaFromFile(pf *parquet.File) bdf.Schema {
	fields := pf.Schema().Fields()
	s := bdf.Schema{Columns: make([]bdf.ColumnSchema, len(fields))}
	for i, fld := range fields {
		kind := bdf.KindString
		switch fld.Type().Kind() {
		case parquet.Double, parquet.Float:
			kind = bdf.KindFloat
		case parquet.Int64, parquet.Int32:
			kind = bdf.KindInt
		}
		s.Columns[i] = bdf.ColumnSchema{Name: fld.Name(), Type: kind}
	}
	return s
}

func appendRow(f *bdf.Frame, m map[string]any) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case bdf.KindFloat:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, t)
			case float32:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int64:
				_ = f.SetCell(row, cs.Name, float64(t))
			}
		case bdf.KindInt:
			switch t := v.(type) {
			case int64:
				_ = f.SetCell(row, cs.Name, t)
			case int32:
				_ = f.SetCell(row, cs.Name, int64(t))
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			case []byte:
				_ = f.SetCell(row, cs.Name, string(t))
			}
		}
	}
}

func isEOF(err error) bool {
	return err != nil && strings.Contains(err.Error(), "EOF")
}
