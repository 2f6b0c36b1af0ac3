package cycler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/battkit/bdfconvert/pkg/bdf"
	"github.com/battkit/bdfconvert/pkg/io/parquetio"
)

// DefaultChunkSize is the row-batch size for the large-file path.
const DefaultChunkSize = 500_000

// ChunkOptions tunes ReadTableChunked.
type ChunkOptions struct {
	// ChunkSize is rows per batch; DefaultChunkSize when <= 0.
	ChunkSize int
	// TempDir is where the fragment directory is created; the OS
	// temp dir when empty.
	TempDir string
}

// ReadTableChunked is the large-file variant of ReadTable. The file is
// read in fixed-size row batches, each batch written to a Parquet
// fragment in a scoped temporary directory, and the fragments scanned
// back chunk-by-chunk into one table. The fragment directory is
// removed on every exit path.
func ReadTableChunked(path string, columns []string, skip int, opt ChunkOptions) (*bdf.Frame, error) {
	chunkSize := opt.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	rs, err := openRows(path, skip)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	schema, buf, err := rs.inferSchema(columns)
	if err != nil {
		return nil, err
	}

	fragDir, err := os.MkdirTemp(opt.TempDir, "bdfconvert-frag-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(fragDir)

	// batch phase: spill row batches as parquet fragments
	var fragments []string
	batch := bdf.NewFrame(schema)
	flush := func() error {
		if batch.Rows() == 0 {
			return nil
		}
		frag := filepath.Join(fragDir, fmt.Sprintf("frag-%05d.parquet", len(fragments)))
		if err := parquetio.WriteAll(frag, batch); err != nil {
			return fmt.Errorf("write fragment %s: %w", frag, err)
		}
		fragments = append(fragments, frag)
		batch = bdf.NewFrame(schema)
		return nil
	}
	for _, rec := range buf {
		rs.appendRecord(batch, schema, rec)
		if batch.Rows() >= chunkSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	for {
		rec, err := rs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rs.appendRecord(batch, schema, rec)
		if batch.Rows() >= chunkSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	// concat phase: scan fragments lazily into the result
	out := bdf.NewFrame(schema)
	for _, frag := range fragments {
		if err := appendFragment(out, frag, chunkSize); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func appendFragment(dst *bdf.Frame, frag string, chunkSize int) error {
	sr, err := parquetio.NewStreamReader(frag, chunkSize)
	if err != nil {
		return fmt.Errorf("scan fragment %s: %w", frag, err)
	}
	defer sr.Close()
	for {
		chunk, err := sr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dst.AppendFrame(chunk); err != nil {
			return err
		}
	}
}
