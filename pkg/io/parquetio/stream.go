package parquetio

import (
	"io"

	"github.com/battkit/bdfconvert/pkg/bdf"
)

// StreamReader yields a Parquet file's rows as frames of up to
// chunkSize rows, so a fragment never has to be materialized whole.
type StreamReader struct {
	r         *Reader
	chunkSize int
	buf       []map[string]any
}

func NewStreamReader(path string, chunkSize int) (*StreamReader, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 8192
	}
	buf := make([]map[string]any, chunkSize)
	for i := range buf {
		// The parquet reader reconstructs rows into the maps it is
		// given and panics on nil maps rather than allocating them.
		buf[i] = make(map[string]any)
	}
	return &StreamReader{r: r, chunkSize: chunkSize, buf: buf}, nil
}

func (s *StreamReader) Close() error { return s.r.Close() }

func (s *StreamReader) Schema() bdf.Schema { return s.r.schema }

// Next returns the next chunk, or io.EOF when the file is exhausted.
func (s *StreamReader) Next() (*bdf.Frame, error) {
	n, err := s.r.reader.Read(s.buf)
	if n == 0 {
		if err == nil || isEOF(err) {
			return nil, io.EOF
		}
		return nil, err
	}
	f := bdf.NewFrame(s.r.schema)
	for i := 0; i < n; i++ {
		appendRow(f, s.buf[i])
	}
	if err != nil && !isEOF(err) {
		return nil, err
	}
	return f, nil
}
